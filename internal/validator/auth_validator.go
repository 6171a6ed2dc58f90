package validator

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
	"storefront/internal/usecase"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// パスワード最低文字数
const minPasswordLen = 6

type authValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

// サインアップの入力を検証
func (v *authValidator) ValidateSignUp(ctx context.Context, in usecase.SignUpInput) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	// 必須チェック
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return invalid("first_name and last_name are required")
	}
	if !isEmailLike(email) {
		return invalid("invalid email")
	}
	if len(in.Password) < minPasswordLen {
		return invalid("password must be at least 6 characters")
	}
	if _, ok := model.ParseRole(in.AccountType); !ok {
		return invalid("invalid account type")
	}

	// email重複チェック（DBが必要）
	_, err := v.users.FindByEmail(ctx, email)
	if err == nil {
		return usecase.NewHTTPError(http.StatusConflict, usecase.MsgEmailTaken)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return usecase.NewHTTPError(http.StatusServiceUnavailable, "db error")
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateSignIn(_ context.Context, in usecase.SignInInput) error {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return invalid("email and password are required")
	}
	if !isEmailLike(strings.TrimSpace(in.Email)) {
		return invalid("invalid email")
	}
	return nil
}

// プロフィール更新。送られてきた項目だけ見る。
func (v *authValidator) ValidateProfile(_ context.Context, in usecase.UpdateProfileInput) error {
	if in.FirstName != nil && strings.TrimSpace(*in.FirstName) == "" {
		return invalid("first_name must not be empty")
	}
	if in.LastName != nil && strings.TrimSpace(*in.LastName) == "" {
		return invalid("last_name must not be empty")
	}
	return nil
}

func invalid(msg string) error {
	return usecase.NewHTTPError(http.StatusBadRequest, msg)
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	return emailRe.MatchString(s)
}
