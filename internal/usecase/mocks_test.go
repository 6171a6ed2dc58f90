package usecase

import (
	"context"
	"io"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks
// =====================

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *userRepoMock) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) Update(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

type productRepoMock struct{ mock.Mock }

func (m *productRepoMock) ListAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *productRepoMock) ListByPincode(ctx context.Context, pincode string) ([]model.Product, error) {
	args := m.Called(ctx, pincode)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *productRepoMock) ListBySeller(ctx context.Context, sellerID string) ([]model.Product, error) {
	args := m.Called(ctx, sellerID)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *productRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *productRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *productRepoMock) Update(ctx context.Context, p model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *productRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type orderRepoMock struct{ mock.Mock }

func (m *orderRepoMock) Create(ctx context.Context, o model.Order) (string, error) {
	args := m.Called(ctx, o)
	return args.String(0), args.Error(1)
}

func (m *orderRepoMock) FindByID(ctx context.Context, id string) (model.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *orderRepoMock) ListByBuyer(ctx context.Context, userID string) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]model.Order)
	return out, args.Error(1)
}

func (m *orderRepoMock) ListBySeller(ctx context.Context, sellerID string) ([]model.Order, error) {
	args := m.Called(ctx, sellerID)
	out, _ := args.Get(0).([]model.Order)
	return out, args.Error(1)
}

func (m *orderRepoMock) UpdateStatus(ctx context.Context, id string, s model.OrderStatus) error {
	return m.Called(ctx, id, s).Error(0)
}

type auditRepoMock struct{ mock.Mock }

func (m *auditRepoMock) Create(ctx context.Context, l model.AuditLog) error {
	return m.Called(ctx, l).Error(0)
}

func (m *auditRepoMock) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, f)
	ls, _ := args.Get(0).([]model.AuditLog)
	return ls, args.Error(1)
}

// =====================
// TxManager / TxRepos mocks
// =====================

// WithinTx の中で渡す repos を固定して unit テストを回す
// fnがエラーを返したらrollback扱いで数える
type txManagerMock struct {
	repos      repo.TxRepos
	calls      int
	rolledBack int
}

func (m *txManagerMock) WithinTx(_ context.Context, fn func(r repo.TxRepos) error) error {
	m.calls++
	if err := fn(m.repos); err != nil {
		m.rolledBack++
		return err
	}
	return nil
}

type txReposMock struct {
	orders    repo.OrderRepository
	products  repo.ProductRepository
	auditLogs repo.AuditLogRepository
}

func (r *txReposMock) Orders() repo.OrderRepository        { return r.orders }
func (r *txReposMock) Products() repo.ProductRepository    { return r.products }
func (r *txReposMock) AuditLogs() repo.AuditLogRepository { return r.auditLogs }

// =====================
// ports
// =====================

type notifierMock struct{ mock.Mock }

func (m *notifierMock) NotifyOrderPlaced(ctx context.Context, c OrderConfirmation) error {
	return m.Called(ctx, c).Error(0)
}

type imageStoreMock struct{ mock.Mock }

func (m *imageStoreMock) Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}

type validatorMock struct{ mock.Mock }

func (m *validatorMock) ValidateSignUp(ctx context.Context, in SignUpInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *validatorMock) ValidateSignIn(ctx context.Context, in SignInInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *validatorMock) ValidateProfile(ctx context.Context, in UpdateProfileInput) error {
	return m.Called(ctx, in).Error(0)
}

type hasherStub struct{ err error }

func (h hasherStub) Hash(plain string) (string, error) { return "hashed:" + plain, h.err }

type verifierStub struct{}

func (verifierStub) Verify(plain string, hashed string) bool { return hashed == "hashed:"+plain }

type issuerMock struct{ mock.Mock }

func (m *issuerMock) Issue(sessionID string, userID string, role model.Role, now time.Time) (string, time.Time, error) {
	args := m.Called(sessionID, userID, role, now)
	exp, _ := args.Get(1).(time.Time)
	return args.String(0), exp, args.Error(2)
}

type fixedID string

func (f fixedID) NewID() string { return string(f) }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
