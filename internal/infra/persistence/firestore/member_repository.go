package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"

	"muziris/internal/domain/entity"
	"muziris/internal/domain/repository"
	"muziris/internal/infra/persistence/model"
)

// memberRepository implements the domain.MemberRepository interface on
// Firestore. Member documents are keyed by normalized email, which doubles
// as the unique constraint.
type memberRepository struct {
	ds *datastore
}

// NewMemberRepository is the constructor used by the DI container for
// non-transactional access.
func NewMemberRepository(client *firestore.Client) repository.MemberRepository {
	return newMemberRepository(&datastore{client: client})
}

func newMemberRepository(ds *datastore) repository.MemberRepository {
	return &memberRepository{ds: ds}
}

func (repo *memberRepository) doc(email string) *firestore.DocumentRef {
	return repo.ds.client.Collection(collectionMembers).Doc(email)
}

// FindByEmail retrieves a member by normalized email.
func (repo *memberRepository) FindByEmail(ctx context.Context, email string) (*entity.Member, error) {
	snap, err := repo.ds.get(ctx, repo.doc(email))
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrMemberNotFound
		}

		return nil, errors.Wrap(err, "failed to find member by email")
	}

	var data model.MemberModel
	if err := snap.DataTo(&data); err != nil {
		return nil, errors.Wrap(err, "failed to decode member document")
	}

	return &entity.Member{
		Email:       data.Email,
		Name:        data.Name,
		Company:     data.Company,
		Role:        data.Role,
		ApprovedAt:  data.ApprovedAt,
		CreatedAt:   data.CreatedAt,
		LastLoginAt: data.LastLoginAt,
	}, nil
}

// Create writes the member document at its email key.
func (repo *memberRepository) Create(ctx context.Context, member *entity.Member) error {
	data := &model.MemberModel{
		Email:       member.Email,
		Name:        member.Name,
		Company:     member.Company,
		Role:        member.Role,
		ApprovedAt:  member.ApprovedAt,
		CreatedAt:   member.CreatedAt,
		LastLoginAt: member.LastLoginAt,
	}

	if err := repo.ds.set(ctx, repo.doc(member.Email), data); err != nil {
		return errors.Wrap(err, "failed to create member")
	}

	return nil
}

// UpdateLastLogin stamps the member's last successful sign-in.
func (repo *memberRepository) UpdateLastLogin(ctx context.Context, email string, at time.Time) error {
	err := repo.ds.update(ctx, repo.doc(email), []firestore.Update{
		{Path: "lastLoginAt", Value: at},
	})
	if err != nil {
		if isNotFound(err) {
			return repository.ErrMemberNotFound
		}

		return errors.Wrap(err, "failed to update member last login")
	}

	return nil
}

// profileRepository implements the domain.ProfileRepository interface.
// Profile documents are keyed by user ID and hold the authoritative loyalty
// balance.
type profileRepository struct {
	ds *datastore
}

// NewProfileRepository is the constructor used by the DI container for
// non-transactional access.
func NewProfileRepository(client *firestore.Client) repository.ProfileRepository {
	return newProfileRepository(&datastore{client: client})
}

func newProfileRepository(ds *datastore) repository.ProfileRepository {
	return &profileRepository{ds: ds}
}

func (repo *profileRepository) doc(userID string) *firestore.DocumentRef {
	return repo.ds.client.Collection(collectionProfiles).Doc(userID)
}

// FindByUserID retrieves a profile by user ID.
func (repo *profileRepository) FindByUserID(ctx context.Context, userID string) (*entity.UserProfile, error) {
	snap, err := repo.ds.get(ctx, repo.doc(userID))
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile by user id")
	}

	var data model.ProfileModel
	if err := snap.DataTo(&data); err != nil {
		return nil, errors.Wrap(err, "failed to decode profile document")
	}

	return toProfileDomain(snap.Ref.ID, &data), nil
}

// Create persists a new profile document keyed by user ID.
func (repo *profileRepository) Create(ctx context.Context, profile *entity.UserProfile) error {
	if err := repo.ds.set(ctx, repo.doc(profile.UserID), fromProfileDomain(profile)); err != nil {
		return errors.Wrap(err, "failed to create profile")
	}

	return nil
}

// Update overwrites a profile document.
func (repo *profileRepository) Update(ctx context.Context, profile *entity.UserProfile) error {
	profile.UpdatedAt = time.Now()
	if err := repo.ds.set(ctx, repo.doc(profile.UserID), fromProfileDomain(profile)); err != nil {
		return errors.Wrap(err, "failed to update profile")
	}

	return nil
}

// userProjectionRepository maintains the denormalized points mirror in the
// users collection. Writes are best-effort and happen after the
// authoritative balance commits.
type userProjectionRepository struct {
	ds *datastore
}

// NewUserProjectionRepository is the constructor used by the DI container.
func NewUserProjectionRepository(client *firestore.Client) repository.UserProjectionRepository {
	return &userProjectionRepository{ds: &datastore{client: client}}
}

// SetLoyaltyPoints overwrites the projected balance for a user.
func (repo *userProjectionRepository) SetLoyaltyPoints(ctx context.Context, userID, email string, points int) error {
	data := &model.UserModel{
		Email:         email,
		LoyaltyPoints: points,
		UpdatedAt:     time.Now(),
	}

	ref := repo.ds.client.Collection(collectionUsers).Doc(userID)
	if err := repo.ds.set(ctx, ref, data); err != nil {
		return errors.Wrap(err, "failed to project loyalty points")
	}

	return nil
}

// --- Mapper Functions ---

func toProfileDomain(userID string, data *model.ProfileModel) *entity.UserProfile {
	return &entity.UserProfile{
		UserID:         userID,
		Email:          data.Email,
		DisplayName:    data.DisplayName,
		LoyaltyPoints:  data.LoyaltyPoints,
		HasSetPassword: data.HasSetPassword,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func fromProfileDomain(profile *entity.UserProfile) *model.ProfileModel {
	return &model.ProfileModel{
		UserID:         profile.UserID,
		Email:          profile.Email,
		DisplayName:    profile.DisplayName,
		LoyaltyPoints:  profile.LoyaltyPoints,
		HasSetPassword: profile.HasSetPassword,
		CreatedAt:      profile.CreatedAt,
		UpdatedAt:      profile.UpdatedAt,
	}
}
