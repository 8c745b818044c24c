package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	"muziris/internal/domain/entity"
	"muziris/internal/domain/repository"
	"muziris/internal/infra/persistence/model"
)

// activityRepository implements the domain.ActivityRepository interface.
// The trail is append-only; entries are never updated or deleted.
type activityRepository struct {
	ds *datastore
}

// NewActivityRepository is the constructor used by the DI container.
func NewActivityRepository(client *firestore.Client) repository.ActivityRepository {
	return &activityRepository{ds: &datastore{client: client}}
}

func (repo *activityRepository) collection() *firestore.CollectionRef {
	return repo.ds.client.Collection(collectionTrail)
}

// Append writes one trail entry under a generated document ID.
func (repo *activityRepository) Append(ctx context.Context, entry *entity.ActivityEntry) error {
	ref := repo.collection().NewDoc()
	entry.ID = ref.ID

	data := &model.ActivityModel{
		UserID:      entry.UserID,
		UserEmail:   entry.UserEmail,
		Action:      entry.Action,
		Description: entry.Description,
		Metadata:    entry.Metadata,
		CreatedAt:   entry.CreatedAt,
	}

	if err := repo.ds.set(ctx, ref, data); err != nil {
		return errors.Wrap(err, "failed to append activity entry")
	}

	return nil
}

// ListByUserID returns the user's most recent entries, newest first, bounded
// by limit.
func (repo *activityRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*entity.ActivityEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := repo.collection().
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)

	iter := repo.ds.documents(ctx, query)
	defer iter.Stop()

	var out []*entity.ActivityEntry
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list activity entries")
		}

		var data model.ActivityModel
		if err := snap.DataTo(&data); err != nil {
			return nil, errors.Wrap(err, "failed to decode activity document")
		}

		out = append(out, &entity.ActivityEntry{
			ID:          snap.Ref.ID,
			UserID:      data.UserID,
			UserEmail:   data.UserEmail,
			Action:      data.Action,
			Description: data.Description,
			Metadata:    data.Metadata,
			CreatedAt:   data.CreatedAt,
		})
	}

	return out, nil
}
