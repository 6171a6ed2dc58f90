package server

import (
	"net/http"

	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth          *handler.AuthHandler
	Profile       *handler.ProfileHandler
	Navigation    *handler.NavigationHandler
	Product       *handler.ProductHandler
	SellerProduct *handler.SellerProductHandler
	Cart          *handler.CartHandler
	Checkout      *handler.CheckoutHandler
	Order         *handler.OrderHandler
	SellerOrder   *handler.SellerOrderHandler
	Activity      *handler.SellerActivityHandler
}

func RegisterRoutes(e *echo.Echo, g handler.Guards, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, handler.SuccessResponse{Message: "ok"})
	})

	h.Auth.RegisterRoutes(e, g)
	h.Profile.RegisterRoutes(e, g)
	h.Navigation.RegisterRoutes(e, g)
	h.Product.RegisterRoutes(e)
	h.SellerProduct.RegisterRoutes(e, g)
	h.Cart.RegisterRoutes(e, g)
	h.Checkout.RegisterRoutes(e, g)
	h.Order.RegisterRoutes(e, g)
	h.SellerOrder.RegisterRoutes(e, g)
	h.Activity.RegisterRoutes(e, g)
}
