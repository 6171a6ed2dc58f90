package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type SellerOrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewSellerOrderHandler(uc *usecase.OrderUsecase) *SellerOrderHandler {
	return &SellerOrderHandler{uc: uc}
}

func (h *SellerOrderHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	seller := e.Group("/seller/orders", with(g.Auth, middleware.RequireCapability(model.CapSellerOrders))...)

	seller.GET("", h.list)
	seller.PUT("/:id/status", h.updateStatus)
}

func (h *SellerOrderHandler) list(c echo.Context) error {
	out, err := h.uc.ListForSeller(c.Request().Context(), middleware.SessionFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SellerOrderHandler) updateStatus(c echo.Context) error {
	var req usecase.UpdateOrderStatusInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.SellerUpdateStatus(c.Request().Context(), middleware.SessionFromContext(c), c.Param("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
