package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// メールの一意制約に当たった
var ErrDuplicateEmail = errors.New("duplicate email")

// プロフィールの保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	//IDからユーザーを1件取得する。なければErrNotFound
	FindByID(ctx context.Context, userID string) (*model.User, error)
	//メールからユーザーを1件取得する。なければErrNotFound
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//氏名・電話・住所の更新（ロールは変えない）
	Update(ctx context.Context, user *model.User) error
}
