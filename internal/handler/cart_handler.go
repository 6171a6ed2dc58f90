package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	cart := e.Group("/cart", with(g.Auth, middleware.RequireCapability(model.CapCart))...)

	cart.GET("", h.get)
	cart.DELETE("", h.clear)
	cart.POST("/items", h.add)
	cart.PATCH("/items/:product_id", h.update)
	cart.DELETE("/items/:product_id", h.remove)
}

func (h *CartHandler) get(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), middleware.SessionFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) add(c echo.Context) error {
	var req usecase.AddCartInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.AddItem(c.Request().Context(), middleware.SessionFromContext(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) update(c echo.Context) error {
	var req usecase.UpdateCartItemInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.UpdateItem(c.Request().Context(), middleware.SessionFromContext(c), c.Param("product_id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) remove(c echo.Context) error {
	out, err := h.uc.RemoveItem(c.Request().Context(), middleware.SessionFromContext(c), c.Param("product_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) clear(c echo.Context) error {
	out, err := h.uc.Clear(c.Request().Context(), middleware.SessionFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
