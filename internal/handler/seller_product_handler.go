package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ImageUploadResponse struct {
	URL string `json:"url"`
}

// 出品者の商品管理
type SellerProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewSellerProductHandler(uc *usecase.ProductUsecase) *SellerProductHandler {
	return &SellerProductHandler{uc: uc}
}

func (h *SellerProductHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	seller := e.Group("/seller/products", with(g.Auth, middleware.RequireCapability(model.CapDashboard))...)

	seller.GET("", h.list)
	seller.POST("", h.create)
	seller.POST("/images", h.uploadImage)
	seller.PUT("/:id", h.update)
	seller.DELETE("/:id", h.delete)
}

func (h *SellerProductHandler) list(c echo.Context) error {
	items, err := h.uc.ListMine(c.Request().Context(), middleware.SessionFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *SellerProductHandler) create(c echo.Context) error {
	var req usecase.ProductInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	p, err := h.uc.Create(c.Request().Context(), middleware.SessionFromContext(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *SellerProductHandler) update(c echo.Context) error {
	var req usecase.ProductInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	p, err := h.uc.Update(c.Request().Context(), middleware.SessionFromContext(c), c.Param("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *SellerProductHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), middleware.SessionFromContext(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// multipart の "image"
func (h *SellerProductHandler) uploadImage(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "image is required")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "invalid image")
	}
	defer f.Close()

	url, err := h.uc.UploadImage(
		c.Request().Context(),
		middleware.SessionFromContext(c),
		fh.Filename,
		fh.Header.Get("Content-Type"),
		f,
	)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, ImageUploadResponse{URL: url})
}
