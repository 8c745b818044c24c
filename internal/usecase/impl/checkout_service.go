package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"muziris/config"
	deliverycontext "muziris/internal/delivery/context"
	"muziris/internal/domain/entity"
	domainerrors "muziris/internal/domain/errors"
	"muziris/internal/domain/repository"
	"muziris/internal/domain/service"
	"muziris/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	txManager      repository.TransactionManager
	orderRepo      repository.OrderRepository
	paymentRepo    repository.PaymentRepository
	projectionRepo repository.UserProjectionRepository
	activityRepo   repository.ActivityRepository
	eventPublisher service.EventPublisher
	qrService      service.QRCodeService
	mailer         service.Mailer
	loyalty        *config.LoyaltyConfig
	currency       string
	upiID          string
	logger         *slog.Logger
}

// CheckoutServiceParams holds dependencies for the checkout service,
// injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	OrderRepo      repository.OrderRepository
	PaymentRepo    repository.PaymentRepository
	ProjectionRepo repository.UserProjectionRepository
	ActivityRepo   repository.ActivityRepository
	EventPublisher service.EventPublisher
	QRService      service.QRCodeService
	Mailer         service.Mailer
	Config         *config.Config
	Logger         *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	currency := "USD"
	if params.Config.Currency != nil && params.Config.Currency.Primary != "" {
		currency = params.Config.Currency.Primary
	}

	var upiID string
	if params.Config.Payment != nil {
		upiID = params.Config.Payment.UPIID
	}

	return &checkoutService{
		txManager:      params.TxManager,
		orderRepo:      params.OrderRepo,
		paymentRepo:    params.PaymentRepo,
		projectionRepo: params.ProjectionRepo,
		activityRepo:   params.ActivityRepo,
		eventPublisher: params.EventPublisher,
		qrService:      params.QRService,
		mailer:         params.Mailer,
		loyalty:        params.Config.Loyalty,
		currency:       currency,
		upiID:          upiID,
		logger:         params.Logger,
	}
}

func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout converts the user's cart into an order. Totals, loyalty
// redemption and accrual, the order and payment records, the balance update
// and the cart clear commit in one store transaction; everything after the
// commit (projection, trail, events, email) is best-effort.
func (srv *checkoutService) Checkout(ctx context.Context, input *usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	now := time.Now()

	// Document IDs are minted before the transaction so the payment can
	// reference its order inside the same atomic write set.
	orderID := uuid.NewString()
	paymentID := uuid.NewString()
	orderNumber := entity.NewOrderNumber(now)

	var order *entity.Order
	var payment *entity.Payment
	var newBalance int

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// Reads come first: the store rejects reads after any write.
		cart, err := repoFactory.Carts().FindByUserID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return domainerrors.ErrCartEmpty
			}

			return errors.Wrap(err, "failed to load cart")
		}
		if len(cart.Items) == 0 {
			return domainerrors.ErrCartEmpty
		}

		profileExists := true
		profile, err := repoFactory.Profiles().FindByUserID(ctx, input.UserID)
		if err != nil {
			if !errors.Is(err, repository.ErrProfileNotFound) {
				return errors.Wrap(err, "failed to load profile")
			}
			profileExists = false
			profile = &entity.UserProfile{
				UserID:      input.UserID,
				Email:       input.UserID,
				DisplayName: input.UserName,
				CreatedAt:   now,
			}
		}

		quote := entity.QuoteRedemption(
			cart.Subtotal(),
			input.RedeemPoints,
			profile.LoyaltyPoints,
			srv.loyalty.RedeemPerUnit,
			srv.loyalty.EarnPerUnit,
		)

		order = &entity.Order{
			ID:                  orderID,
			OrderNumber:         orderNumber,
			UserID:              input.UserID,
			UserEmail:           input.UserID,
			UserName:            input.UserName,
			Items:               append([]entity.CartItem(nil), cart.Items...),
			Subtotal:            quote.Subtotal,
			Discount:            quote.Discount,
			Total:               quote.Total,
			LoyaltyPointsEarned: quote.PointsEarned,
			LoyaltyPointsUsed:   quote.PointsUsed,
			PaymentStatus:       entity.OrderPaymentPending,
			PaymentMethod:       "UPI",
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := repoFactory.Orders().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		payment = &entity.Payment{
			ID:            paymentID,
			PaymentID:     fmt.Sprintf("PAY-%s", uuid.NewString()[:8]),
			OrderID:       orderID,
			OrderNumber:   orderNumber,
			UserID:        input.UserID,
			UserEmail:     input.UserID,
			Amount:        quote.Total,
			Currency:      srv.currency,
			PaymentMethod: "UPI",
			Status:        entity.PaymentPending,
			UPIID:         srv.upiID,
			CreatedAt:     now,
		}
		if err := repoFactory.Payments().Create(ctx, payment); err != nil {
			return errors.Wrap(err, "failed to create payment")
		}

		newBalance = profile.LoyaltyPoints - quote.PointsUsed + quote.PointsEarned
		profile.LoyaltyPoints = newBalance
		profile.UpdatedAt = now
		if profileExists {
			if err := repoFactory.Profiles().Update(ctx, profile); err != nil {
				return errors.Wrap(err, "failed to update loyalty balance")
			}
		} else if err := repoFactory.Profiles().Create(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to create profile")
		}

		cart.Clear()
		cart.UpdatedAt = now
		if err := repoFactory.Carts().Save(ctx, cart); err != nil {
			return errors.Wrap(err, "failed to clear cart")
		}

		return nil
	})
	if err != nil {
		if appErr, ok := domainAppError(err); ok {
			return nil, appErr
		}

		return nil, domainerrors.ErrTransactionFailed.WrapMessage("checkout transaction: " + err.Error())
	}

	srv.log(ctx).Info("Order placed",
		slog.String("order_number", order.OrderNumber),
		slog.Float64("total", order.Total),
		slog.Int("points_used", order.LoyaltyPointsUsed),
		slog.Int("points_earned", order.LoyaltyPointsEarned),
	)

	srv.afterCheckout(ctx, order, newBalance)

	return &usecase.CheckoutOutput{
		Order:         order,
		Payment:       payment,
		PointsBalance: newBalance,
	}, nil
}

// ConfirmPayment records the payer's "I've paid" signal for a pending
// payment and moves the order to confirmed.
func (srv *checkoutService) ConfirmPayment(ctx context.Context, userID, orderID string) error {
	order, err := srv.findOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return err
	}

	payment, err := srv.paymentRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return domainerrors.ErrPaymentNotFound
		}

		return errors.Wrap(err, "failed to load payment")
	}

	now := time.Now()
	if payment.Status == entity.PaymentPending {
		payment.Status = entity.PaymentSuccess
		payment.VerifiedAt = now
		if err := srv.paymentRepo.Update(ctx, payment); err != nil {
			return errors.Wrap(err, "failed to update payment")
		}
	}

	if err := srv.orderRepo.UpdatePaymentStatus(ctx, orderID, entity.OrderPaymentConfirmed); err != nil {
		return errors.Wrap(err, "failed to update order payment status")
	}

	srv.recordActivity(ctx, order.UserID, entity.ActivityPaymentConfirmed,
		fmt.Sprintf("Payment confirmed for order %s", order.OrderNumber),
		map[string]any{"order_number": order.OrderNumber, "amount": payment.Amount},
	)

	return nil
}

// PaymentQR renders the UPI QR PNG for an order's payment.
func (srv *checkoutService) PaymentQR(ctx context.Context, userID, orderID string) ([]byte, error) {
	if _, err := srv.findOwnedOrder(ctx, userID, orderID); err != nil {
		return nil, err
	}

	payment, err := srv.paymentRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, domainerrors.ErrPaymentNotFound
		}

		return nil, errors.Wrap(err, "failed to load payment")
	}

	png, err := srv.qrService.GeneratePaymentQR(payment)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render payment QR")
	}

	return png, nil
}

// ListOrders returns the user's order history, newest first.
func (srv *checkoutService) ListOrders(ctx context.Context, userID string) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// findOwnedOrder loads an order and verifies the caller owns it. A foreign
// order is reported as not found rather than forbidden, so order IDs leak
// nothing.
func (srv *checkoutService) findOwnedOrder(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	if order.UserID != userID {
		return nil, domainerrors.ErrOrderNotFound
	}

	return order, nil
}

// afterCheckout runs the best-effort post-commit work: projection refresh,
// trail entries, activity events and the confirmation email.
func (srv *checkoutService) afterCheckout(ctx context.Context, order *entity.Order, balance int) {
	if err := srv.projectionRepo.SetLoyaltyPoints(ctx, order.UserID, order.UserEmail, balance); err != nil {
		srv.log(ctx).Warn("Loyalty projection refresh failed", slog.Any("error", err))
	}

	srv.recordActivity(ctx, order.UserID, entity.ActivityOrderPlaced,
		fmt.Sprintf("Order %s placed for %.2f", order.OrderNumber, order.Total),
		map[string]any{"order_number": order.OrderNumber, "total": order.Total, "items": len(order.Items)},
	)

	if order.LoyaltyPointsUsed > 0 {
		srv.recordActivity(ctx, order.UserID, entity.ActivityPointsRedeemed,
			fmt.Sprintf("Redeemed %d points on order %s", order.LoyaltyPointsUsed, order.OrderNumber),
			map[string]any{"order_number": order.OrderNumber, "points": order.LoyaltyPointsUsed},
		)
	}

	if order.LoyaltyPointsEarned > 0 {
		srv.recordActivity(ctx, order.UserID, entity.ActivityPointsEarned,
			fmt.Sprintf("Earned %d points on order %s", order.LoyaltyPointsEarned, order.OrderNumber),
			map[string]any{"order_number": order.OrderNumber, "points": order.LoyaltyPointsEarned},
		)
	}

	if err := srv.mailer.SendOrderConfirmation(ctx, order.UserEmail, order.UserName, order); err != nil {
		srv.log(ctx).Warn("Order confirmation email failed",
			slog.String("order_number", order.OrderNumber),
			slog.Any("error", err),
		)
	}
}

// recordActivity appends a trail entry and publishes the matching event.
// Both are best-effort; failures are logged, never surfaced.
func (srv *checkoutService) recordActivity(ctx context.Context, userID, action, description string, metadata map[string]any) {
	now := time.Now()
	entry := &entity.ActivityEntry{
		UserID:      userID,
		UserEmail:   userID,
		Action:      action,
		Description: description,
		Metadata:    metadata,
		CreatedAt:   now,
	}
	if err := srv.activityRepo.Append(ctx, entry); err != nil {
		srv.log(ctx).Warn("Activity trail append failed",
			slog.String("action", action),
			slog.Any("error", err),
		)
	}

	event := &service.ActivityEvent{
		EventID:     uuid.NewString(),
		UserID:      userID,
		UserEmail:   userID,
		Action:      action,
		Description: description,
		Metadata:    metadata,
		OccurredAt:  now.UTC().Format(time.RFC3339),
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
	}
	if err := srv.eventPublisher.PublishActivityEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Activity event publish failed",
			slog.String("action", action),
			slog.Any("error", err),
		)
	}
}
