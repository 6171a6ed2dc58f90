package middleware

import (
	"net/http"

	"storefront/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// セッションの権限を見る。プロフィールは引き直さない。
func RequireCapability(capability model.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFromContext(c)
			if sess == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if !sess.Can(capability) {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}

			return next(c)
		}
	}
}
