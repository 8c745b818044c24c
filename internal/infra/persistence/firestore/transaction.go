package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"

	"muziris/internal/domain/repository"
)

// firestoreTransactionManager implements the domain's TransactionManager
// interface on Firestore transactions.
type firestoreTransactionManager struct {
	client *firestore.Client
}

// firestoreRepositoryFactory implements the domain's RepositoryFactory
// interface. It holds one bound transaction and hands out repository
// instances that read and write through it.
type firestoreRepositoryFactory struct {
	ds *datastore
}

func (f *firestoreRepositoryFactory) Requests() repository.RequestRepository {
	return newRequestRepository(f.ds)
}

func (f *firestoreRepositoryFactory) Members() repository.MemberRepository {
	return newMemberRepository(f.ds)
}

func (f *firestoreRepositoryFactory) Profiles() repository.ProfileRepository {
	return newProfileRepository(f.ds)
}

func (f *firestoreRepositoryFactory) Credentials() repository.CredentialRepository {
	return newCredentialRepository(f.ds)
}

func (f *firestoreRepositoryFactory) Carts() repository.CartRepository {
	return newCartRepository(f.ds)
}

func (f *firestoreRepositoryFactory) Orders() repository.OrderRepository {
	return newOrderRepository(f.ds)
}

func (f *firestoreRepositoryFactory) Payments() repository.PaymentRepository {
	return newPaymentRepository(f.ds)
}

// NewTransactionManager is the constructor for firestoreTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(client *firestore.Client) repository.TransactionManager {
	return &firestoreTransactionManager{client: client}
}

// Execute runs the given function within a single Firestore transaction.
// Firestore requires all reads to happen before the first write inside a
// transaction; use cases honor that by reading their documents up front.
func (tm *firestoreTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	err := tm.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		factory := &firestoreRepositoryFactory{
			ds: &datastore{client: tm.client, tx: tx},
		}

		return fn(factory)
	})
	if err != nil {
		return errors.Wrap(err, "run transaction")
	}

	return nil
}
