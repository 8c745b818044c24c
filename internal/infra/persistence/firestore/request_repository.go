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

// requestRepository implements the domain.RequestRepository interface on
// Firestore.
type requestRepository struct {
	ds *datastore
}

// NewRequestRepository is the constructor used by the DI container for
// non-transactional access.
func NewRequestRepository(client *firestore.Client) repository.RequestRepository {
	return newRequestRepository(&datastore{client: client})
}

func newRequestRepository(ds *datastore) repository.RequestRepository {
	return &requestRepository{ds: ds}
}

func (repo *requestRepository) collection() *firestore.CollectionRef {
	return repo.ds.client.Collection(collectionRequests)
}

// Create persists a new request under a generated document ID and writes the
// ID back onto the entity.
func (repo *requestRepository) Create(ctx context.Context, req *entity.MembershipRequest) error {
	ref := repo.collection().NewDoc()
	req.ID = ref.ID

	if err := repo.ds.set(ctx, ref, fromRequestDomain(req)); err != nil {
		return errors.Wrap(err, "failed to create membership request")
	}

	return nil
}

// FindByID retrieves a single request by its document ID.
func (repo *requestRepository) FindByID(ctx context.Context, id string) (*entity.MembershipRequest, error) {
	snap, err := repo.ds.get(ctx, repo.collection().Doc(id))
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find request by id")
	}

	return snapshotToRequest(snap)
}

// FindByVerificationToken retrieves the approved request holding the exact
// token. Token values are unique by construction, so the first hit wins.
func (repo *requestRepository) FindByVerificationToken(ctx context.Context, token string) (*entity.MembershipRequest, error) {
	query := repo.collection().
		Where("verificationToken", "==", token).
		Where("status", "==", string(entity.RequestStatusApproved)).
		Limit(1)

	return repo.first(ctx, query, "failed to find request by verification token")
}

// FindApprovedByEmail retrieves the approved request for a normalized email.
func (repo *requestRepository) FindApprovedByEmail(ctx context.Context, email string) (*entity.MembershipRequest, error) {
	query := repo.collection().
		Where("email", "==", email).
		Where("status", "==", string(entity.RequestStatusApproved)).
		Limit(1)

	return repo.first(ctx, query, "failed to find approved request by email")
}

// ListByStatus returns requests with the given status, newest first. An empty
// status returns the whole collection.
func (repo *requestRepository) ListByStatus(ctx context.Context, requestStatus entity.RequestStatus) ([]*entity.MembershipRequest, error) {
	query := repo.collection().Query
	if requestStatus != "" {
		query = query.Where("status", "==", string(requestStatus))
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	iter := repo.ds.documents(ctx, query)
	defer iter.Stop()

	var out []*entity.MembershipRequest
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list requests by status")
		}

		req, err := snapshotToRequest(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}

	return out, nil
}

// Update overwrites a request document.
func (repo *requestRepository) Update(ctx context.Context, req *entity.MembershipRequest) error {
	if req.ID == "" {
		return repository.ErrRequestNotFound
	}

	req.UpdatedAt = time.Now()
	if err := repo.ds.set(ctx, repo.collection().Doc(req.ID), fromRequestDomain(req)); err != nil {
		return errors.Wrap(err, "failed to update membership request")
	}

	return nil
}

func (repo *requestRepository) first(ctx context.Context, query firestore.Query, wrapMsg string) (*entity.MembershipRequest, error) {
	iter := repo.ds.documents(ctx, query)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, repository.ErrRequestNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	return snapshotToRequest(snap)
}

// --- Mapper Functions ---

func snapshotToRequest(snap *firestore.DocumentSnapshot) (*entity.MembershipRequest, error) {
	var data model.RequestModel
	if err := snap.DataTo(&data); err != nil {
		return nil, errors.Wrap(err, "failed to decode request document")
	}

	return toRequestDomain(snap.Ref.ID, &data), nil
}

func toRequestDomain(id string, data *model.RequestModel) *entity.MembershipRequest {
	return &entity.MembershipRequest{
		ID:                id,
		MemberType:        entity.MemberType(data.MemberType),
		Name:              data.Name,
		Email:             data.Email,
		Phone:             data.Phone,
		Message:           data.Message,
		Company:           data.Company,
		Role:              data.Role,
		BusinessType:      data.BusinessType,
		MonthlyVolume:     data.MonthlyVolume,
		Status:            entity.RequestStatus(data.Status),
		RejectionReason:   data.RejectionReason,
		EmailVerified:     data.EmailVerified,
		VerificationToken: data.VerificationToken,
		TokenExpiresAt:    data.TokenExpiresAt,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

func fromRequestDomain(req *entity.MembershipRequest) *model.RequestModel {
	return &model.RequestModel{
		MemberType:        string(req.MemberType),
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Message:           req.Message,
		Company:           req.Company,
		Role:              req.Role,
		BusinessType:      req.BusinessType,
		MonthlyVolume:     req.MonthlyVolume,
		Status:            string(req.Status),
		RejectionReason:   req.RejectionReason,
		EmailVerified:     req.EmailVerified,
		VerificationToken: req.VerificationToken,
		TokenExpiresAt:    req.TokenExpiresAt,
		CreatedAt:         req.CreatedAt,
		UpdatedAt:         req.UpdatedAt,
	}
}
