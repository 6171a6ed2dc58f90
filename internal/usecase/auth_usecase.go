package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
	"storefront/internal/session"
)

type SignUpInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	AccountType string `json:"account_type"`
}

type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	AccountType model.Role `json:"account_type"`
}

type AccessTokenDTO struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type SignInOutput struct {
	User         UserDTO            `json:"user"`
	Token        AccessTokenDTO     `json:"token"`
	Capabilities []model.Capability `json:"capabilities"`
	Navigation   []NavLink          `json:"navigation"`
}

type AuthUsecase struct {
	users     repository.UserRepository
	validator AuthValidator
	hasher    PasswordHasher
	verifier  PasswordVerifier
	issuer    TokenIssuer
	sessions  SessionStore
	idGen     IDGenerator
	clock     Clock
}

func NewAuthUsecase(
	users repository.UserRepository,
	validator AuthValidator,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	sessions SessionStore,
	idGen IDGenerator,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		validator: validator,
		hasher:    hasher,
		verifier:  verifier,
		issuer:    issuer,
		sessions:  sessions,
		idGen:     idGen,
		clock:     clock,
	}
}

// 会員登録。ロールはここで決まり、以後は変えられない。
func (u *AuthUsecase) SignUp(ctx context.Context, in SignUpInput) (UserDTO, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateSignUp(ctx, in); err != nil {
		return UserDTO{}, err
	}

	role, ok := model.ParseRole(in.AccountType)
	if !ok {
		return UserDTO{}, validationError("invalid account type")
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	now := u.clock.Now()
	user := &model.User{
		ID:           u.idGen.NewID(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        normalizeEmail(in.Email),
		PasswordHash: pwHash,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.users.Create(ctx, user); err != nil {
		// 同時登録で検証をすり抜けた場合
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return UserDTO{}, NewHTTPError(http.StatusConflict, MsgEmailTaken)
		}
		return UserDTO{}, storeError("db error")
	}

	return toUserDTO(user), nil
}

// ログイン。セッションを作って、そのIDを入れたJWTを返す。
func (u *AuthUsecase) SignIn(ctx context.Context, in SignInInput) (SignInOutput, error) {
	if err := u.validator.ValidateSignIn(ctx, in); err != nil {
		return SignInOutput{}, err
	}

	user, err := u.users.FindByEmail(ctx, normalizeEmail(in.Email))
	if errors.Is(err, repository.ErrNotFound) {
		return SignInOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return SignInOutput{}, storeError("db error")
	}

	//パスワード照合
	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return SignInOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	// 権限はここで1回だけ解決される
	sess := u.sessions.Start(user.ID, user.Role)

	token, exp, err := u.issuer.Issue(sess.ID, user.ID, user.Role, u.clock.Now())
	if err != nil {
		u.sessions.End(sess.ID)
		return SignInOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return SignInOutput{
		User:         toUserDTO(user),
		Token:        AccessTokenDTO{AccessToken: token, ExpiresAt: exp},
		Capabilities: sess.Capabilities(),
		Navigation:   BuildNavigation(sess),
	}, nil
}

// セッションを捨てる（カートも消える）
func (u *AuthUsecase) SignOut(_ context.Context, sess *session.Session) error {
	if sess == nil {
		return unauthorizedError()
	}
	u.sessions.End(sess.ID)
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// model.UserをAPI返却用DTOに変換。
func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Phone:       u.Phone,
		Address:     u.Address,
		AccountType: u.Role,
	}
}
