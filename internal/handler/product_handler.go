package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)
}

// ?pincode= で配送エリアを絞る
func (h *ProductHandler) list(c echo.Context) error {
	items, err := h.uc.List(c.Request().Context(), c.QueryParam("pincode"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) detail(c echo.Context) error {
	p, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
