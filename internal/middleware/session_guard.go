package middleware

import (
	"net/http"

	"storefront/internal/session"

	"github.com/labstack/echo/v4"
)

type SessionLookup interface {
	Get(id string) (*session.Session, bool)
}

// JWTのsidからセッションを引いてcontextに入れる。
// サインアウト済み・期限切れなら401。
func SessionGuard(sessions SessionLookup) echo.MiddlewareFunc {
	return sessionGuard(sessions, false)
}

// セッションがなくても通す（未ログイン扱い）
func OptionalSessionGuard(sessions SessionLookup) echo.MiddlewareFunc {
	return sessionGuard(sessions, true)
}

func sessionGuard(sessions SessionLookup, optional bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, _ := c.Get(CtxSessionIDKey).(string)
			userID, _ := c.Get(CtxUserIDKey).(string)

			sess, ok := sessions.Get(sid)
			if sid == "" || !ok || sess.UserID != userID {
				if optional {
					return next(c)
				}
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			c.Set(CtxSessionKey, sess)
			return next(c)
		}
	}
}

// なければnil
func SessionFromContext(c echo.Context) *session.Session {
	sess, _ := c.Get(CtxSessionKey).(*session.Session)
	return sess
}
