package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	domainrepo "storefront/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

type userGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserGormRepository(db *gorm.DB) domainrepo.UserRepository {
	return &userGormRepository{db: db}
}

// Create はユーザーを新規作成
func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if isUniqueViolation(err) {
		return domainrepo.ErrDuplicateEmail
	}
	return err
}

// TranslateErrorありならErrDuplicatedKey、なしならpgのエラーコードで判定
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// emailでユーザーを1件取得
func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainrepo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// IDでユーザーを1件取得
func (r *userGormRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainrepo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// プロフィール更新。roleとemailは触らない。
func (r *userGormRepository) Update(ctx context.Context, user *model.User) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"phone":      user.Phone,
			"address":    user.Address,
			"updated_at": user.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}

	// 0件更新は「対象がない」
	if res.RowsAffected == 0 {
		return domainrepo.ErrNotFound
	}
	return nil
}
