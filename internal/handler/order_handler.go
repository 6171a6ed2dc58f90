package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 購入者の注文履歴
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	orders := e.Group("/orders", with(g.Auth, middleware.RequireCapability(model.CapMyOrders))...)

	orders.GET("", h.list)
	orders.GET("/:id", h.detail)
}

func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.uc.ListMine(c.Request().Context(), middleware.SessionFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	out, err := h.uc.GetMine(c.Request().Context(), middleware.SessionFromContext(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
