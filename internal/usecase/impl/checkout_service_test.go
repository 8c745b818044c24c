package impl

import (
	"context"
	"testing"
	"time"

	"muziris/config"
	"muziris/internal/domain/entity"
	domainerrors "muziris/internal/domain/errors"
	"muziris/internal/domain/repository"
	"muziris/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutFixtures struct {
	service        usecase.CheckoutUsecase
	factory        *mockRepositoryFactory
	orderRepo      *mockOrderRepo
	paymentRepo    *mockPaymentRepo
	projectionRepo *mockProjectionRepo
	activityRepo   *mockActivityRepo
	eventPublisher *mockEventPublisher
	qrService      *mockQRCodeService
	mailer         *mockMailer
}

func createTestCheckoutService(t *testing.T) checkoutFixtures {
	t.Helper()

	factory := &mockRepositoryFactory{
		requests:    &mockRequestRepo{},
		members:     &mockMemberRepo{},
		profiles:    &mockProfileRepo{},
		credentials: &mockCredentialRepo{},
		carts:       &mockCartRepo{},
		orders:      &mockOrderRepo{},
		payments:    &mockPaymentRepo{},
	}

	orderRepo := &mockOrderRepo{}
	paymentRepo := &mockPaymentRepo{}
	projectionRepo := &mockProjectionRepo{}
	activityRepo := &mockActivityRepo{}
	eventPublisher := &mockEventPublisher{}
	qrService := &mockQRCodeService{}
	mailer := &mockMailer{}

	cfg := &config.Config{
		Loyalty:  &config.LoyaltyConfig{EarnPerUnit: 1, RedeemPerUnit: 10},
		Currency: &config.CurrencyConfig{Primary: "USD"},
		Payment:  &config.PaymentConfig{UPIID: "pay@houseofmuziris"},
	}

	service := NewCheckoutService(CheckoutServiceParams{
		TxManager:      &mockTxManager{factory: factory},
		OrderRepo:      orderRepo,
		PaymentRepo:    paymentRepo,
		ProjectionRepo: projectionRepo,
		ActivityRepo:   activityRepo,
		EventPublisher: eventPublisher,
		QRService:      qrService,
		Mailer:         mailer,
		Config:         cfg,
		Logger:         discardLogger(),
	})

	return checkoutFixtures{
		service:        service,
		factory:        factory,
		orderRepo:      orderRepo,
		paymentRepo:    paymentRepo,
		projectionRepo: projectionRepo,
		activityRepo:   activityRepo,
		eventPublisher: eventPublisher,
		qrService:      qrService,
		mailer:         mailer,
	}
}

// expectBestEffortAfterCheckout swallows the post-commit projection, trail,
// event and email work.
func (fx *checkoutFixtures) expectBestEffortAfterCheckout() {
	fx.projectionRepo.On("SetLoyaltyPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	fx.activityRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	fx.eventPublisher.On("PublishActivityEvent", mock.Anything, mock.Anything).Return(nil)
	fx.mailer.On("SendOrderConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
}

func TestCheckoutService_Checkout_RedeemsAndEarnsPoints(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	// Subtotal 25.00, balance 100, member asks to redeem 60 points.
	// At 10 points per currency unit that is a 6.00 discount, total 19.00,
	// which earns 19 points, leaving a balance of 100 - 60 + 19 = 59.
	fx.factory.carts.On("FindByUserID", ctx, "anjali@example.com").Return(&entity.UserCart{
		UserID: "anjali@example.com",
		Items: []entity.CartItem{
			{ID: "line-1", SpiceID: "cinnamon-ceylon", Name: "Ceylon Cinnamon", Price: 12.50, Quantity: 2},
		},
	}, nil)
	fx.factory.profiles.On("FindByUserID", ctx, "anjali@example.com").Return(&entity.UserProfile{
		UserID:        "anjali@example.com",
		Email:         "anjali@example.com",
		DisplayName:   "Anjali Menon",
		LoyaltyPoints: 100,
	}, nil)
	fx.factory.orders.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	fx.factory.payments.On("Create", ctx, mock.AnythingOfType("*entity.Payment")).Return(nil)
	fx.factory.profiles.On("Update", ctx, mock.AnythingOfType("*entity.UserProfile")).Return(nil)
	fx.factory.carts.On("Save", ctx, mock.AnythingOfType("*entity.UserCart")).Return(nil)
	fx.expectBestEffortAfterCheckout()

	output, err := fx.service.Checkout(ctx, &usecase.CheckoutInput{
		UserID:       "anjali@example.com",
		UserName:     "Anjali Menon",
		RedeemPoints: 60,
	})

	require.NoError(t, err)
	assert.Equal(t, 25.00, output.Order.Subtotal)
	assert.Equal(t, 6.00, output.Order.Discount)
	assert.Equal(t, 19.00, output.Order.Total)
	assert.Equal(t, 60, output.Order.LoyaltyPointsUsed)
	assert.Equal(t, 19, output.Order.LoyaltyPointsEarned)
	assert.Equal(t, 59, output.PointsBalance)
	assert.Equal(t, entity.OrderPaymentPending, output.Order.PaymentStatus)

	assert.Equal(t, 19.00, output.Payment.Amount)
	assert.Equal(t, "USD", output.Payment.Currency)
	assert.Equal(t, "pay@houseofmuziris", output.Payment.UPIID)
	assert.Equal(t, output.Order.ID, output.Payment.OrderID)

	savedCart := fx.factory.carts.Calls[len(fx.factory.carts.Calls)-1].Arguments.Get(1).(*entity.UserCart)
	assert.Empty(t, savedCart.Items)

	savedProfile := fx.factory.profiles.Calls[len(fx.factory.profiles.Calls)-1].Arguments.Get(1).(*entity.UserProfile)
	assert.Equal(t, 59, savedProfile.LoyaltyPoints)
}

func TestCheckoutService_Checkout_RedemptionCappedBySubtotal(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	// Subtotal 4.00 caps redemption at 40 points even with a huge balance.
	fx.factory.carts.On("FindByUserID", ctx, "anjali@example.com").Return(&entity.UserCart{
		UserID: "anjali@example.com",
		Items: []entity.CartItem{
			{ID: "line-1", SpiceID: "sumac-wild", Price: 4.00, Quantity: 1},
		},
	}, nil)
	fx.factory.profiles.On("FindByUserID", ctx, "anjali@example.com").Return(&entity.UserProfile{
		UserID:        "anjali@example.com",
		LoyaltyPoints: 500,
	}, nil)
	fx.factory.orders.On("Create", ctx, mock.Anything).Return(nil)
	fx.factory.payments.On("Create", ctx, mock.Anything).Return(nil)
	fx.factory.profiles.On("Update", ctx, mock.Anything).Return(nil)
	fx.factory.carts.On("Save", ctx, mock.Anything).Return(nil)
	fx.expectBestEffortAfterCheckout()

	output, err := fx.service.Checkout(ctx, &usecase.CheckoutInput{
		UserID:       "anjali@example.com",
		RedeemPoints: 200,
	})

	require.NoError(t, err)
	assert.Equal(t, 40, output.Order.LoyaltyPointsUsed)
	assert.Equal(t, 0.00, output.Order.Total)
	assert.Equal(t, 0, output.Order.LoyaltyPointsEarned)
	assert.Equal(t, 460, output.PointsBalance)
}

func TestCheckoutService_Checkout_EmptyCart(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	fx.factory.carts.On("FindByUserID", ctx, "anjali@example.com").Return(&entity.UserCart{
		UserID: "anjali@example.com",
		Items:  []entity.CartItem{},
	}, nil)

	_, err := fx.service.Checkout(ctx, &usecase.CheckoutInput{UserID: "anjali@example.com"})

	assert.ErrorIs(t, err, domainerrors.ErrCartEmpty)
	fx.factory.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckoutService_Checkout_NoCartDocument(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	fx.factory.carts.On("FindByUserID", ctx, "anjali@example.com").
		Return(nil, repository.ErrCartNotFound)

	_, err := fx.service.Checkout(ctx, &usecase.CheckoutInput{UserID: "anjali@example.com"})

	assert.ErrorIs(t, err, domainerrors.ErrCartEmpty)
}

func TestCheckoutService_Checkout_FirstOrderCreatesProfile(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	fx.factory.carts.On("FindByUserID", ctx, "trader@example.com").Return(&entity.UserCart{
		UserID: "trader@example.com",
		Items: []entity.CartItem{
			{ID: "line-1", SpiceID: "cardamom-guatemalan", Price: 34.99, Quantity: 1},
		},
	}, nil)
	fx.factory.profiles.On("FindByUserID", ctx, "trader@example.com").
		Return(nil, repository.ErrProfileNotFound)
	fx.factory.orders.On("Create", ctx, mock.Anything).Return(nil)
	fx.factory.payments.On("Create", ctx, mock.Anything).Return(nil)
	fx.factory.profiles.On("Create", ctx, mock.AnythingOfType("*entity.UserProfile")).Return(nil)
	fx.factory.carts.On("Save", ctx, mock.Anything).Return(nil)
	fx.expectBestEffortAfterCheckout()

	output, err := fx.service.Checkout(ctx, &usecase.CheckoutInput{
		UserID:   "trader@example.com",
		UserName: "Spice Trader",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, output.Order.LoyaltyPointsUsed)
	assert.Equal(t, 34, output.Order.LoyaltyPointsEarned)
	assert.Equal(t, 34, output.PointsBalance)
	fx.factory.profiles.AssertCalled(t, "Create", ctx, mock.Anything)
	fx.factory.profiles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCheckoutService_Checkout_TransactionFailure(t *testing.T) {
	ctx := context.Background()

	service := NewCheckoutService(CheckoutServiceParams{
		TxManager: &mockTxManager{err: errors.New("firestore deadline exceeded")},
		Config: &config.Config{
			Loyalty: &config.LoyaltyConfig{EarnPerUnit: 1, RedeemPerUnit: 10},
		},
		Logger: discardLogger(),
	})

	_, err := service.Checkout(ctx, &usecase.CheckoutInput{UserID: "anjali@example.com"})

	assert.ErrorIs(t, err, domainerrors.ErrTransactionFailed)
}

func TestCheckoutService_ConfirmPayment_MarksPaidAndConfirmsOrder(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	fx.orderRepo.On("FindByID", ctx, "order-1").Return(&entity.Order{
		ID:          "order-1",
		OrderNumber: "ORD-20260829-0001",
		UserID:      "anjali@example.com",
	}, nil)
	payment := &entity.Payment{
		ID:      "doc-1",
		OrderID: "order-1",
		Amount:  19.00,
		Status:  entity.PaymentPending,
	}
	fx.paymentRepo.On("FindByOrderID", ctx, "order-1").Return(payment, nil)
	fx.paymentRepo.On("Update", ctx, payment).Return(nil)
	fx.orderRepo.On("UpdatePaymentStatus", ctx, "order-1", entity.OrderPaymentConfirmed).Return(nil)
	fx.activityRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	fx.eventPublisher.On("PublishActivityEvent", mock.Anything, mock.Anything).Return(nil)

	err := fx.service.ConfirmPayment(ctx, "anjali@example.com", "order-1")

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentSuccess, payment.Status)
	assert.WithinDuration(t, time.Now(), payment.VerifiedAt, 5*time.Second)
}

func TestCheckoutService_ConfirmPayment_AlreadyPaidSkipsPaymentWrite(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	fx.orderRepo.On("FindByID", ctx, "order-1").Return(&entity.Order{
		ID:     "order-1",
		UserID: "anjali@example.com",
	}, nil)
	fx.paymentRepo.On("FindByOrderID", ctx, "order-1").Return(&entity.Payment{
		OrderID: "order-1",
		Status:  entity.PaymentSuccess,
	}, nil)
	fx.orderRepo.On("UpdatePaymentStatus", ctx, "order-1", entity.OrderPaymentConfirmed).Return(nil)
	fx.activityRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	fx.eventPublisher.On("PublishActivityEvent", mock.Anything, mock.Anything).Return(nil)

	err := fx.service.ConfirmPayment(ctx, "anjali@example.com", "order-1")

	require.NoError(t, err)
	fx.paymentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCheckoutService_ConfirmPayment_ForeignOrderLooksMissing(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	fx.orderRepo.On("FindByID", ctx, "order-1").Return(&entity.Order{
		ID:     "order-1",
		UserID: "someone-else@example.com",
	}, nil)

	err := fx.service.ConfirmPayment(ctx, "anjali@example.com", "order-1")

	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
	fx.paymentRepo.AssertNotCalled(t, "FindByOrderID", mock.Anything, mock.Anything)
}

func TestCheckoutService_PaymentQR_RendersPNG(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	payment := &entity.Payment{OrderID: "order-1", Amount: 19.00, UPIID: "pay@houseofmuziris"}
	fx.orderRepo.On("FindByID", ctx, "order-1").Return(&entity.Order{
		ID:     "order-1",
		UserID: "anjali@example.com",
	}, nil)
	fx.paymentRepo.On("FindByOrderID", ctx, "order-1").Return(payment, nil)
	fx.qrService.On("GeneratePaymentQR", payment).Return([]byte{0x89, 0x50, 0x4e, 0x47}, nil)

	png, err := fx.service.PaymentQR(ctx, "anjali@example.com", "order-1")

	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestCheckoutService_ListOrders(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	expected := []*entity.Order{{ID: "order-2"}, {ID: "order-1"}}
	fx.orderRepo.On("ListByUserID", ctx, "anjali@example.com").Return(expected, nil)

	orders, err := fx.service.ListOrders(ctx, "anjali@example.com")

	require.NoError(t, err)
	assert.Equal(t, expected, orders)
}
