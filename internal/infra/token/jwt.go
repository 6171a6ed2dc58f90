package token

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

// JWTに載せる値。権限そのものは載せず、セッション側で持つ。
type Claims struct {
	UserID    string
	SessionID string
	Role      model.Role
}

type JWT struct {
	secret []byte
	ttl    time.Duration
}

func NewJWT(secret string, ttl time.Duration) *JWT {
	return &JWT{secret: []byte(secret), ttl: ttl}
}

func (j *JWT) Issue(sessionID string, userID string, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(j.ttl)

	claims := jwt.MapClaims{
		"sub":  userID,
		"sid":  sessionID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// 署名と期限を確認してClaimsを返す
func (j *JWT) Parse(raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// HS256以外は拒否
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	sub, _ := mc["sub"].(string)
	sid, _ := mc["sid"].(string)
	role, _ := mc["role"].(string)
	if sub == "" || sid == "" {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: sub, SessionID: sid, Role: model.Role(role)}, nil
}
