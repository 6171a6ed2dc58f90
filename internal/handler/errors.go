package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// ルートに付けるミドルウェア一式
type Guards struct {
	// JWT + セッション必須
	Auth []echo.MiddlewareFunc
	// 未ログインでも通す
	OptionalAuth []echo.MiddlewareFunc
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message, Retryable: he.Retryable()})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func with(base []echo.MiddlewareFunc, extra ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
	out := make([]echo.MiddlewareFunc, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}
