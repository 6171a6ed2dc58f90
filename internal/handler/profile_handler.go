package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	uc *usecase.ProfileUsecase
}

func NewProfileHandler(uc *usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	me := e.Group("/me", g.Auth...)
	me.GET("", h.get)
	me.PATCH("", h.update)
}

func (h *ProfileHandler) get(c echo.Context) error {
	user, err := h.uc.Me(c.Request().Context(), middleware.SessionFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) update(c echo.Context) error {
	var req usecase.UpdateProfileInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	user, err := h.uc.UpdateMe(c.Request().Context(), middleware.SessionFromContext(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
