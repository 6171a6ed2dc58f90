package middleware

import (
	"net/http"
	"strings"

	"storefront/internal/infra/token"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey    = "user_id"    // string
	CtxUserRoleKey  = "user_role"  // model.Role
	CtxSessionIDKey = "session_id" // string
	CtxSessionKey   = "session"    // *session.Session
)

// JWTを検証する約束（infra/token.JWTが満たす）
type TokenParser interface {
	Parse(raw string) (token.Claims, error)
}

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(parser TokenParser) echo.MiddlewareFunc {
	return authJWT(parser, false)
}

// ヘッダがなければ未ログインとして通す。あって不正なら401。
func OptionalAuthJWT(parser TokenParser) echo.MiddlewareFunc {
	return authJWT(parser, true)
}

func authJWT(parser TokenParser, optional bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				if optional {
					return next(c)
				}
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//JWTをパースして検証する
			claims, err := parser.Parse(rawToken)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxUserRoleKey, claims.Role)
			c.Set(CtxSessionIDKey, claims.SessionID)

			return next(c)
		}
	}
}

type errorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
