package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// datastore bridges direct client access and transactional access so the
// repositories stay oblivious to which mode they run in. When tx is nil the
// operations go straight to the client; inside TransactionManager.Execute
// every repository shares the one bound transaction.
type datastore struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (d *datastore) get(ctx context.Context, ref *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	if d.tx != nil {
		return d.tx.Get(ref)
	}

	return ref.Get(ctx)
}

func (d *datastore) set(ctx context.Context, ref *firestore.DocumentRef, data any) error {
	if d.tx != nil {
		return d.tx.Set(ref, data)
	}

	_, err := ref.Set(ctx, data)

	return err
}

func (d *datastore) update(ctx context.Context, ref *firestore.DocumentRef, updates []firestore.Update) error {
	if d.tx != nil {
		return d.tx.Update(ref, updates)
	}

	_, err := ref.Update(ctx, updates)

	return err
}

func (d *datastore) documents(ctx context.Context, query firestore.Query) *firestore.DocumentIterator {
	if d.tx != nil {
		return d.tx.Documents(query)
	}

	return query.Documents(ctx)
}

// isNotFound reports whether the error is the store's missing-document signal.
func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
