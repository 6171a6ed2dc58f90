package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type SellerActivityHandler struct {
	uc *usecase.ActivityUsecase
}

func NewSellerActivityHandler(uc *usecase.ActivityUsecase) *SellerActivityHandler {
	return &SellerActivityHandler{uc: uc}
}

func (h *SellerActivityHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	e.GET("/seller/activity", h.list, with(g.Auth, middleware.RequireCapability(model.CapDashboard))...)
}

// GET /seller/activity?action=&resource_type=&limit=&offset=
func (h *SellerActivityHandler) list(c echo.Context) error {
	var q usecase.ActivityQuery
	if err := c.Bind(&q); err != nil {
		return badRequest(c, "invalid query")
	}

	out, err := h.uc.ListMine(c.Request().Context(), middleware.SessionFromContext(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
