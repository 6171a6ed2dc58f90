package usecase

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
	"storefront/internal/session"
)

// nilの項目は変更しない
type UpdateProfileInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

type ProfileUsecase struct {
	users     repository.UserRepository
	validator AuthValidator
	clock     Clock
}

func NewProfileUsecase(users repository.UserRepository, validator AuthValidator, clock Clock) *ProfileUsecase {
	return &ProfileUsecase{users: users, validator: validator, clock: clock}
}

func (u *ProfileUsecase) Me(ctx context.Context, sess *session.Session) (UserDTO, error) {
	user, err := u.load(ctx, sess)
	if err != nil {
		return UserDTO{}, err
	}
	return toUserDTO(user), nil
}

// account_typeは受け付けない
func (u *ProfileUsecase) UpdateMe(ctx context.Context, sess *session.Session, in UpdateProfileInput) (UserDTO, error) {
	if err := u.validator.ValidateProfile(ctx, in); err != nil {
		return UserDTO{}, err
	}

	user, err := u.load(ctx, sess)
	if err != nil {
		return UserDTO{}, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	apply(&user.FirstName, in.FirstName)
	apply(&user.LastName, in.LastName)
	apply(&user.Phone, in.Phone)
	apply(&user.Address, in.Address)
	user.UpdatedAt = u.clock.Now()

	if err := u.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return UserDTO{}, unauthorizedError()
		}
		return UserDTO{}, storeError("db error")
	}
	return toUserDTO(user), nil
}

// プロフィールがない利用者は未認証と同じ扱い
func (u *ProfileUsecase) load(ctx context.Context, sess *session.Session) (*model.User, error) {
	if sess == nil {
		return nil, unauthorizedError()
	}
	user, err := u.users.FindByID(ctx, sess.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, unauthorizedError()
	}
	if err != nil {
		return nil, storeError("db error")
	}
	return user, nil
}
