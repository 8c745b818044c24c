package impl

import (
	"context"
	"time"

	"muziris/internal/domain/entity"
	"muziris/internal/domain/repository"
	"muziris/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
)

// Hand-written testify mocks for the repository and service contracts used
// by the usecase tests.

type mockRequestRepo struct{ mock.Mock }

func (m *mockRequestRepo) Create(ctx context.Context, req *entity.MembershipRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockRequestRepo) FindByID(ctx context.Context, id string) (*entity.MembershipRequest, error) {
	args := m.Called(ctx, id)
	if req, ok := args.Get(0).(*entity.MembershipRequest); ok {
		return req, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockRequestRepo) FindByVerificationToken(ctx context.Context, token string) (*entity.MembershipRequest, error) {
	args := m.Called(ctx, token)
	if req, ok := args.Get(0).(*entity.MembershipRequest); ok {
		return req, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockRequestRepo) FindApprovedByEmail(ctx context.Context, email string) (*entity.MembershipRequest, error) {
	args := m.Called(ctx, email)
	if req, ok := args.Get(0).(*entity.MembershipRequest); ok {
		return req, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockRequestRepo) ListByStatus(ctx context.Context, status entity.RequestStatus) ([]*entity.MembershipRequest, error) {
	args := m.Called(ctx, status)
	if reqs, ok := args.Get(0).([]*entity.MembershipRequest); ok {
		return reqs, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockRequestRepo) Update(ctx context.Context, req *entity.MembershipRequest) error {
	return m.Called(ctx, req).Error(0)
}

type mockMemberRepo struct{ mock.Mock }

func (m *mockMemberRepo) FindByEmail(ctx context.Context, email string) (*entity.Member, error) {
	args := m.Called(ctx, email)
	if member, ok := args.Get(0).(*entity.Member); ok {
		return member, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockMemberRepo) Create(ctx context.Context, member *entity.Member) error {
	return m.Called(ctx, member).Error(0)
}

func (m *mockMemberRepo) UpdateLastLogin(ctx context.Context, email string, at time.Time) error {
	return m.Called(ctx, email, at).Error(0)
}

type mockProfileRepo struct{ mock.Mock }

func (m *mockProfileRepo) FindByUserID(ctx context.Context, userID string) (*entity.UserProfile, error) {
	args := m.Called(ctx, userID)
	if profile, ok := args.Get(0).(*entity.UserProfile); ok {
		return profile, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockProfileRepo) Create(ctx context.Context, profile *entity.UserProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockProfileRepo) Update(ctx context.Context, profile *entity.UserProfile) error {
	return m.Called(ctx, profile).Error(0)
}

type mockProjectionRepo struct{ mock.Mock }

func (m *mockProjectionRepo) SetLoyaltyPoints(ctx context.Context, userID, email string, points int) error {
	return m.Called(ctx, userID, email, points).Error(0)
}

type mockCredentialRepo struct{ mock.Mock }

func (m *mockCredentialRepo) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	args := m.Called(ctx, email)
	if cred, ok := args.Get(0).(*entity.Credential); ok {
		return cred, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCredentialRepo) Create(ctx context.Context, cred *entity.Credential) error {
	return m.Called(ctx, cred).Error(0)
}

func (m *mockCredentialRepo) Update(ctx context.Context, cred *entity.Credential) error {
	return m.Called(ctx, cred).Error(0)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) FindByRefreshToken(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	if session, ok := args.Get(0).(*entity.Session); ok {
		return session, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockSessionRepo) Revoke(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type mockLoginTokenRepo struct{ mock.Mock }

func (m *mockLoginTokenRepo) Create(ctx context.Context, token *entity.LoginToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockLoginTokenRepo) FindByToken(ctx context.Context, token string) (*entity.LoginToken, error) {
	args := m.Called(ctx, token)
	if loginToken, ok := args.Get(0).(*entity.LoginToken); ok {
		return loginToken, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockLoginTokenRepo) MarkUsed(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type mockSpiceRepo struct{ mock.Mock }

func (m *mockSpiceRepo) List(ctx context.Context) ([]*entity.Spice, error) {
	args := m.Called(ctx)
	if spices, ok := args.Get(0).([]*entity.Spice); ok {
		return spices, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockSpiceRepo) FindByID(ctx context.Context, id string) (*entity.Spice, error) {
	args := m.Called(ctx, id)
	if spice, ok := args.Get(0).(*entity.Spice); ok {
		return spice, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockCartRepo struct{ mock.Mock }

func (m *mockCartRepo) FindByUserID(ctx context.Context, userID string) (*entity.UserCart, error) {
	args := m.Called(ctx, userID)
	if cart, ok := args.Get(0).(*entity.UserCart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCartRepo) Save(ctx context.Context, cart *entity.UserCart) error {
	return m.Called(ctx, cart).Error(0)
}

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepo) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if order, ok := args.Get(0).(*entity.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockOrderRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Order, error) {
	args := m.Called(ctx, userID)
	if orders, ok := args.Get(0).([]*entity.Order); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockOrderRepo) UpdatePaymentStatus(ctx context.Context, id string, status entity.OrderPaymentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *mockPaymentRepo) FindByOrderID(ctx context.Context, orderID string) (*entity.Payment, error) {
	args := m.Called(ctx, orderID)
	if payment, ok := args.Get(0).(*entity.Payment); ok {
		return payment, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockPaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

type mockActivityRepo struct{ mock.Mock }

func (m *mockActivityRepo) Append(ctx context.Context, entry *entity.ActivityEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockActivityRepo) ListByUserID(ctx context.Context, userID string, limit int) ([]*entity.ActivityEntry, error) {
	args := m.Called(ctx, userID, limit)
	if entries, ok := args.Get(0).([]*entity.ActivityEntry); ok {
		return entries, args.Error(1)
	}

	return nil, args.Error(1)
}

// mockRepositoryFactory hands the per-test mocks to transaction bodies.
type mockRepositoryFactory struct {
	requests    *mockRequestRepo
	members     *mockMemberRepo
	profiles    *mockProfileRepo
	credentials *mockCredentialRepo
	carts       *mockCartRepo
	orders      *mockOrderRepo
	payments    *mockPaymentRepo
}

func (f *mockRepositoryFactory) Requests() repository.RequestRepository       { return f.requests }
func (f *mockRepositoryFactory) Members() repository.MemberRepository         { return f.members }
func (f *mockRepositoryFactory) Profiles() repository.ProfileRepository       { return f.profiles }
func (f *mockRepositoryFactory) Credentials() repository.CredentialRepository { return f.credentials }
func (f *mockRepositoryFactory) Carts() repository.CartRepository             { return f.carts }
func (f *mockRepositoryFactory) Orders() repository.OrderRepository           { return f.orders }
func (f *mockRepositoryFactory) Payments() repository.PaymentRepository       { return f.payments }

// mockTxManager runs the transaction body against the given factory; the
// mocks inside the factory carry the per-test expectations.
type mockTxManager struct {
	factory *mockRepositoryFactory
	err     error
}

func (m *mockTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	if m.err != nil {
		return m.err
	}

	return fn(m.factory)
}

type mockHasher struct{ mock.Mock }

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

func (m *mockHasher) ValidatePasswordStrength(password string) error {
	return m.Called(password).Error(0)
}

type mockTokenService struct{ mock.Mock }

func (m *mockTokenService) GenerateTokens(email string, roles []string) (string, string, error) {
	args := m.Called(email, roles)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) ValidateToken(tokenString, secret string) (*jwt.Token, error) {
	args := m.Called(tokenString, secret)
	if token, ok := args.Get(0).(*jwt.Token); ok {
		return token, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockTokenService) GetRefreshTokenDuration() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

type mockTokenGenerator struct{ mock.Mock }

func (m *mockTokenGenerator) NewToken() (string, error) {
	args := m.Called()

	return args.String(0), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendApplicationReceived(ctx context.Context, to, name string) error {
	return m.Called(ctx, to, name).Error(0)
}

func (m *mockMailer) SendApprovalWithSetup(ctx context.Context, to, name, setupLink string) error {
	return m.Called(ctx, to, name, setupLink).Error(0)
}

func (m *mockMailer) SendRejection(ctx context.Context, to, name, reason string) error {
	return m.Called(ctx, to, name, reason).Error(0)
}

func (m *mockMailer) SendLoginLink(ctx context.Context, to, link string) error {
	return m.Called(ctx, to, link).Error(0)
}

func (m *mockMailer) SendOrderConfirmation(ctx context.Context, to, name string, order *entity.Order) error {
	return m.Called(ctx, to, name, order).Error(0)
}

type mockRateLimiter struct{ mock.Mock }

func (m *mockRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)

	return args.Bool(0), args.Error(1)
}

// staticAdminDirectory answers IsAdmin from a fixed set.
type staticAdminDirectory map[string]bool

func (d staticAdminDirectory) IsAdmin(email string) bool { return d[email] }

type mockEventPublisher struct{ mock.Mock }

func (m *mockEventPublisher) PublishActivityEvent(ctx context.Context, event *service.ActivityEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventPublisher) Close() error {
	return m.Called().Error(0)
}

type mockQRCodeService struct{ mock.Mock }

func (m *mockQRCodeService) GeneratePaymentQR(payment *entity.Payment) ([]byte, error) {
	args := m.Called(payment)
	if png, ok := args.Get(0).([]byte); ok {
		return png, args.Error(1)
	}

	return nil, args.Error(1)
}
