package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// カート購入と即購入
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	e.POST("/cart/checkout", h.checkoutCart, with(g.Auth, middleware.RequireCapability(model.CapCart))...)
	e.POST("/products/:id/buy", h.buyNow, with(g.Auth, middleware.RequireCapability(model.CapShop))...)
}

func (h *CheckoutHandler) checkoutCart(c echo.Context) error {
	var req usecase.CheckoutInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.CheckoutCart(c.Request().Context(), middleware.SessionFromContext(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CheckoutHandler) buyNow(c echo.Context) error {
	var req usecase.CheckoutInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.BuyNow(c.Request().Context(), middleware.SessionFromContext(c), c.Param("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
