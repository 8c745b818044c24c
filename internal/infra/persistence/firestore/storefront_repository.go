package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	"muziris/internal/domain/entity"
	"muziris/internal/domain/repository"
	"muziris/internal/infra/persistence/model"
)

// spiceRepository implements the domain.SpiceRepository interface.
type spiceRepository struct {
	ds *datastore
}

// NewSpiceRepository is the constructor used by the DI container.
func NewSpiceRepository(client *firestore.Client) repository.SpiceRepository {
	return &spiceRepository{ds: &datastore{client: client}}
}

func (repo *spiceRepository) collection() *firestore.CollectionRef {
	return repo.ds.client.Collection(collectionSpices)
}

// List returns the whole catalog. An empty collection yields an empty slice;
// the catalog fallback lives in the use case layer.
func (repo *spiceRepository) List(ctx context.Context) ([]*entity.Spice, error) {
	iter := repo.ds.documents(ctx, repo.collection().Query)
	defer iter.Stop()

	var out []*entity.Spice
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list spices")
		}

		var data model.SpiceModel
		if err := snap.DataTo(&data); err != nil {
			return nil, errors.Wrap(err, "failed to decode spice document")
		}
		out = append(out, toSpiceDomain(snap.Ref.ID, &data))
	}

	return out, nil
}

// FindByID retrieves a single catalog item.
func (repo *spiceRepository) FindByID(ctx context.Context, id string) (*entity.Spice, error) {
	snap, err := repo.ds.get(ctx, repo.collection().Doc(id))
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrSpiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find spice by id")
	}

	var data model.SpiceModel
	if err := snap.DataTo(&data); err != nil {
		return nil, errors.Wrap(err, "failed to decode spice document")
	}

	return toSpiceDomain(snap.Ref.ID, &data), nil
}

func toSpiceDomain(id string, data *model.SpiceModel) *entity.Spice {
	return &entity.Spice{
		ID:          id,
		Name:        data.Name,
		Origin:      data.Origin,
		Description: data.Description,
		Price:       data.Price,
		Unit:        data.Unit,
		InStock:     data.InStock,
	}
}

// cartRepository implements the domain.CartRepository interface. One cart
// document per user, keyed by user ID, last write wins.
type cartRepository struct {
	ds *datastore
}

// NewCartRepository is the constructor used by the DI container for
// non-transactional access.
func NewCartRepository(client *firestore.Client) repository.CartRepository {
	return newCartRepository(&datastore{client: client})
}

func newCartRepository(ds *datastore) repository.CartRepository {
	return &cartRepository{ds: ds}
}

func (repo *cartRepository) doc(userID string) *firestore.DocumentRef {
	return repo.ds.client.Collection(collectionCarts).Doc(userID)
}

func (repo *cartRepository) FindByUserID(ctx context.Context, userID string) (*entity.UserCart, error) {
	snap, err := repo.ds.get(ctx, repo.doc(userID))
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart by user id")
	}

	var data model.CartModel
	if err := snap.DataTo(&data); err != nil {
		return nil, errors.Wrap(err, "failed to decode cart document")
	}

	return &entity.UserCart{
		UserID:    snap.Ref.ID,
		Items:     toCartItemsDomain(data.Items),
		UpdatedAt: data.UpdatedAt,
	}, nil
}

func (repo *cartRepository) Save(ctx context.Context, cart *entity.UserCart) error {
	cart.UpdatedAt = time.Now()
	data := &model.CartModel{
		UserID:    cart.UserID,
		Items:     fromCartItemsDomain(cart.Items),
		UpdatedAt: cart.UpdatedAt,
	}

	if err := repo.ds.set(ctx, repo.doc(cart.UserID), data); err != nil {
		return errors.Wrap(err, "failed to save cart")
	}

	return nil
}

func toCartItemsDomain(items []model.CartItemModel) []entity.CartItem {
	out := make([]entity.CartItem, 0, len(items))
	for _, item := range items {
		out = append(out, entity.CartItem{
			ID:       item.ID,
			SpiceID:  item.SpiceID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	return out
}

func fromCartItemsDomain(items []entity.CartItem) []model.CartItemModel {
	out := make([]model.CartItemModel, 0, len(items))
	for _, item := range items {
		out = append(out, model.CartItemModel{
			ID:       item.ID,
			SpiceID:  item.SpiceID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	return out
}

// orderRepository implements the domain.OrderRepository interface.
type orderRepository struct {
	ds *datastore
}

// NewOrderRepository is the constructor used by the DI container for
// non-transactional access.
func NewOrderRepository(client *firestore.Client) repository.OrderRepository {
	return newOrderRepository(&datastore{client: client})
}

func newOrderRepository(ds *datastore) repository.OrderRepository {
	return &orderRepository{ds: ds}
}

func (repo *orderRepository) collection() *firestore.CollectionRef {
	return repo.ds.client.Collection(collectionOrders)
}

// Create persists the order under its pre-generated document ID. The ID is
// minted by the use case before the transaction starts so the payment record
// can reference it inside the same transaction.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		return errors.New("order id must be set before create")
	}

	if err := repo.ds.set(ctx, repo.collection().Doc(order.ID), fromOrderDomain(order)); err != nil {
		return errors.Wrap(err, "failed to create order")
	}

	return nil
}

func (repo *orderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	snap, err := repo.ds.get(ctx, repo.collection().Doc(id))
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return snapshotToOrder(snap)
}

// ListByUserID returns the user's orders, newest first.
func (repo *orderRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Order, error) {
	query := repo.collection().
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	iter := repo.ds.documents(ctx, query)
	defer iter.Stop()

	var out []*entity.Order
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list orders by user id")
		}

		order, err := snapshotToOrder(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, order)
	}

	return out, nil
}

// UpdatePaymentStatus mutates only paymentStatus and updatedAt; the snapshot
// fields stay frozen.
func (repo *orderRepository) UpdatePaymentStatus(ctx context.Context, id string, paymentStatus entity.OrderPaymentStatus) error {
	err := repo.ds.update(ctx, repo.collection().Doc(id), []firestore.Update{
		{Path: "paymentStatus", Value: string(paymentStatus)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if isNotFound(err) {
			return repository.ErrOrderNotFound
		}

		return errors.Wrap(err, "failed to update order payment status")
	}

	return nil
}

func snapshotToOrder(snap *firestore.DocumentSnapshot) (*entity.Order, error) {
	var data model.OrderModel
	if err := snap.DataTo(&data); err != nil {
		return nil, errors.Wrap(err, "failed to decode order document")
	}

	return &entity.Order{
		ID:                  snap.Ref.ID,
		OrderNumber:         data.OrderNumber,
		UserID:              data.UserID,
		UserEmail:           data.UserEmail,
		UserName:            data.UserName,
		Items:               toCartItemsDomain(data.Items),
		Subtotal:            data.Subtotal,
		Discount:            data.Discount,
		Total:               data.Total,
		LoyaltyPointsEarned: data.LoyaltyPointsEarned,
		LoyaltyPointsUsed:   data.LoyaltyPointsUsed,
		PaymentStatus:       entity.OrderPaymentStatus(data.PaymentStatus),
		PaymentMethod:       data.PaymentMethod,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}, nil
}

func fromOrderDomain(order *entity.Order) *model.OrderModel {
	return &model.OrderModel{
		OrderNumber:         order.OrderNumber,
		UserID:              order.UserID,
		UserEmail:           order.UserEmail,
		UserName:            order.UserName,
		Items:               fromCartItemsDomain(order.Items),
		Subtotal:            order.Subtotal,
		Discount:            order.Discount,
		Total:               order.Total,
		LoyaltyPointsEarned: order.LoyaltyPointsEarned,
		LoyaltyPointsUsed:   order.LoyaltyPointsUsed,
		PaymentStatus:       string(order.PaymentStatus),
		PaymentMethod:       order.PaymentMethod,
		CreatedAt:           order.CreatedAt,
		UpdatedAt:           order.UpdatedAt,
	}
}

// paymentRepository implements the domain.PaymentRepository interface.
type paymentRepository struct {
	ds *datastore
}

// NewPaymentRepository is the constructor used by the DI container for
// non-transactional access.
func NewPaymentRepository(client *firestore.Client) repository.PaymentRepository {
	return newPaymentRepository(&datastore{client: client})
}

func newPaymentRepository(ds *datastore) repository.PaymentRepository {
	return &paymentRepository{ds: ds}
}

func (repo *paymentRepository) collection() *firestore.CollectionRef {
	return repo.ds.client.Collection(collectionPayments)
}

// Create persists the payment under its pre-generated document ID.
func (repo *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == "" {
		return errors.New("payment id must be set before create")
	}

	if err := repo.ds.set(ctx, repo.collection().Doc(payment.ID), fromPaymentDomain(payment)); err != nil {
		return errors.Wrap(err, "failed to create payment")
	}

	return nil
}

func (repo *paymentRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.Payment, error) {
	query := repo.collection().Where("orderId", "==", orderID).Limit(1)

	iter := repo.ds.documents(ctx, query)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, repository.ErrPaymentNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find payment by order id")
	}

	var data model.PaymentModel
	if err := snap.DataTo(&data); err != nil {
		return nil, errors.Wrap(err, "failed to decode payment document")
	}

	return toPaymentDomain(snap.Ref.ID, &data), nil
}

func (repo *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	if err := repo.ds.set(ctx, repo.collection().Doc(payment.ID), fromPaymentDomain(payment)); err != nil {
		return errors.Wrap(err, "failed to update payment")
	}

	return nil
}

func toPaymentDomain(id string, data *model.PaymentModel) *entity.Payment {
	return &entity.Payment{
		ID:            id,
		PaymentID:     data.PaymentID,
		OrderID:       data.OrderID,
		OrderNumber:   data.OrderNumber,
		UserID:        data.UserID,
		UserEmail:     data.UserEmail,
		Amount:        data.Amount,
		Currency:      data.Currency,
		PaymentMethod: data.PaymentMethod,
		Status:        entity.PaymentState(data.Status),
		UPIID:         data.UPIID,
		TransactionID: data.TransactionID,
		CreatedAt:     data.CreatedAt,
		VerifiedAt:    data.VerifiedAt,
	}
}

func fromPaymentDomain(payment *entity.Payment) *model.PaymentModel {
	return &model.PaymentModel{
		PaymentID:     payment.PaymentID,
		OrderID:       payment.OrderID,
		OrderNumber:   payment.OrderNumber,
		UserID:        payment.UserID,
		UserEmail:     payment.UserEmail,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		PaymentMethod: payment.PaymentMethod,
		Status:        string(payment.Status),
		UPIID:         payment.UPIID,
		TransactionID: payment.TransactionID,
		CreatedAt:     payment.CreatedAt,
		VerifiedAt:    payment.VerifiedAt,
	}
}
