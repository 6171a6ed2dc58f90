package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type NavigationResponse struct {
	SignedIn     bool               `json:"signed_in"`
	Role         model.Role         `json:"role,omitempty"`
	Capabilities []model.Capability `json:"capabilities"`
	Links        []usecase.NavLink  `json:"links"`
}

type NavigationHandler struct{}

func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

func (h *NavigationHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	e.GET("/navigation", h.get, g.OptionalAuth...)
}

func (h *NavigationHandler) get(c echo.Context) error {
	sess := middleware.SessionFromContext(c)

	res := NavigationResponse{
		Capabilities: []model.Capability{},
		Links:        usecase.BuildNavigation(sess),
	}
	if sess != nil {
		res.SignedIn = true
		res.Role = sess.Role
		res.Capabilities = sess.Capabilities()
	}
	return c.JSON(http.StatusOK, res)
}
