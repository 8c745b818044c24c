package repository

import "context"

// TransactionManager defines the interface for running multi-document writes
// atomically. This lets the use case layer demand all-or-nothing semantics
// (checkout: order + payment + point balance + cart clear) without depending
// on the document store driver.
type TransactionManager interface {
	// Execute runs a function within a single store transaction. If the
	// function returns an error the transaction is discarded, otherwise it
	// commits. All repository operations obtained from the factory are bound
	// to that transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to one transaction.
type RepositoryFactory interface {
	Requests() RequestRepository
	Members() MemberRepository
	Profiles() ProfileRepository
	Credentials() CredentialRepository
	Carts() CartRepository
	Orders() OrderRepository
	Payments() PaymentRepository
}
