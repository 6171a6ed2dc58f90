package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	auth := e.Group("/auth")
	auth.POST("/signup", h.signUp)
	auth.POST("/signin", h.signIn)
	auth.POST("/signout", h.signOut, g.Auth...)
}

func (h *AuthHandler) signUp(c echo.Context) error {
	var req usecase.SignUpInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	user, err := h.uc.SignUp(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) signIn(c echo.Context) error {
	var req usecase.SignInInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.SignIn(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) signOut(c echo.Context) error {
	if err := h.uc.SignOut(c.Request().Context(), middleware.SessionFromContext(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "signed out"})
}
