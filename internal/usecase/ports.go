package usecase

import (
	"context"
	"io"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/session"
)

type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

// 平文パスワードをハッシュにする約束
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// セッションに紐づくJWTを発行する約束
type TokenIssuer interface {
	Issue(sessionID string, userID string, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

// サインイン/サインアウトでセッションを作る・捨てる
type SessionStore interface {
	Start(userID string, role model.Role) *session.Session
	End(id string)
}

// 注文確認の通知内容
type OrderConfirmation struct {
	OrderID         string
	ToName          string
	ToEmail         string
	Items           []model.OrderItem
	Total           float64
	DeliveryAddress string
	Pincode         string
	PaymentMethod   model.PaymentMethod
}

// 注文確定の通知。失敗しても注文は成立している。
type OrderNotifier interface {
	NotifyOrderPlaced(ctx context.Context, c OrderConfirmation) error
}

// 商品画像を保存して公開URLを返す
type ImageStore interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateSignUp(ctx context.Context, in SignUpInput) error
	ValidateSignIn(ctx context.Context, in SignInInput) error
	ValidateProfile(ctx context.Context, in UpdateProfileInput) error
}
