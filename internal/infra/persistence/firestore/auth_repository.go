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

// credentialRepository implements the domain.CredentialRepository interface.
// Credential documents are keyed by normalized email.
type credentialRepository struct {
	ds *datastore
}

// NewCredentialRepository is the constructor used by the DI container for
// non-transactional access.
func NewCredentialRepository(client *firestore.Client) repository.CredentialRepository {
	return newCredentialRepository(&datastore{client: client})
}

func newCredentialRepository(ds *datastore) repository.CredentialRepository {
	return &credentialRepository{ds: ds}
}

func (repo *credentialRepository) doc(email string) *firestore.DocumentRef {
	return repo.ds.client.Collection(collectionCredentials).Doc(email)
}

func (repo *credentialRepository) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	snap, err := repo.ds.get(ctx, repo.doc(email))
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, errors.Wrap(err, "failed to find credential by email")
	}

	var data model.CredentialModel
	if err := snap.DataTo(&data); err != nil {
		return nil, errors.Wrap(err, "failed to decode credential document")
	}

	return &entity.Credential{
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}, nil
}

func (repo *credentialRepository) Create(ctx context.Context, cred *entity.Credential) error {
	if err := repo.ds.set(ctx, repo.doc(cred.Email), fromCredentialDomain(cred)); err != nil {
		return errors.Wrap(err, "failed to create credential")
	}

	return nil
}

func (repo *credentialRepository) Update(ctx context.Context, cred *entity.Credential) error {
	cred.UpdatedAt = time.Now()
	if err := repo.ds.set(ctx, repo.doc(cred.Email), fromCredentialDomain(cred)); err != nil {
		return errors.Wrap(err, "failed to update credential")
	}

	return nil
}

func fromCredentialDomain(cred *entity.Credential) *model.CredentialModel {
	return &model.CredentialModel{
		Email:        cred.Email,
		PasswordHash: cred.PasswordHash,
		CreatedAt:    cred.CreatedAt,
		UpdatedAt:    cred.UpdatedAt,
	}
}

// sessionRepository implements the domain.SessionRepository interface.
type sessionRepository struct {
	ds *datastore
}

// NewSessionRepository is the constructor used by the DI container.
func NewSessionRepository(client *firestore.Client) repository.SessionRepository {
	return &sessionRepository{ds: &datastore{client: client}}
}

func (repo *sessionRepository) collection() *firestore.CollectionRef {
	return repo.ds.client.Collection(collectionSessions)
}

func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	ref := repo.collection().NewDoc()
	session.ID = ref.ID

	data := &model.SessionModel{
		Email:        session.Email,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    session.ExpiresAt,
		CreatedAt:    session.CreatedAt,
		RevokedAt:    session.RevokedAt,
	}

	if err := repo.ds.set(ctx, ref, data); err != nil {
		return errors.Wrap(err, "failed to create session")
	}

	return nil
}

func (repo *sessionRepository) FindByRefreshToken(ctx context.Context, token string) (*entity.Session, error) {
	query := repo.collection().Where("refreshToken", "==", token).Limit(1)

	iter := repo.ds.documents(ctx, query)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, repository.ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find session by refresh token")
	}

	var data model.SessionModel
	if err := snap.DataTo(&data); err != nil {
		return nil, errors.Wrap(err, "failed to decode session document")
	}

	return &entity.Session{
		ID:           snap.Ref.ID,
		Email:        data.Email,
		RefreshToken: data.RefreshToken,
		ExpiresAt:    data.ExpiresAt,
		CreatedAt:    data.CreatedAt,
		RevokedAt:    data.RevokedAt,
	}, nil
}

func (repo *sessionRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	err := repo.ds.update(ctx, repo.collection().Doc(id), []firestore.Update{
		{Path: "revokedAt", Value: at},
	})
	if err != nil {
		if isNotFound(err) {
			return repository.ErrSessionNotFound
		}

		return errors.Wrap(err, "failed to revoke session")
	}

	return nil
}

// loginTokenRepository implements the domain.LoginTokenRepository interface.
type loginTokenRepository struct {
	ds *datastore
}

// NewLoginTokenRepository is the constructor used by the DI container.
func NewLoginTokenRepository(client *firestore.Client) repository.LoginTokenRepository {
	return &loginTokenRepository{ds: &datastore{client: client}}
}

func (repo *loginTokenRepository) collection() *firestore.CollectionRef {
	return repo.ds.client.Collection(collectionLoginTokens)
}

func (repo *loginTokenRepository) Create(ctx context.Context, token *entity.LoginToken) error {
	ref := repo.collection().NewDoc()
	token.ID = ref.ID

	data := &model.LoginTokenModel{
		Email:     token.Email,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
		UsedAt:    token.UsedAt,
	}

	if err := repo.ds.set(ctx, ref, data); err != nil {
		return errors.Wrap(err, "failed to create login token")
	}

	return nil
}

func (repo *loginTokenRepository) FindByToken(ctx context.Context, token string) (*entity.LoginToken, error) {
	query := repo.collection().Where("token", "==", token).Limit(1)

	iter := repo.ds.documents(ctx, query)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, repository.ErrLoginTokenNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find login token")
	}

	var data model.LoginTokenModel
	if err := snap.DataTo(&data); err != nil {
		return nil, errors.Wrap(err, "failed to decode login token document")
	}

	return &entity.LoginToken{
		ID:        snap.Ref.ID,
		Email:     data.Email,
		Token:     data.Token,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
		UsedAt:    data.UsedAt,
	}, nil
}

func (repo *loginTokenRepository) MarkUsed(ctx context.Context, id string, at time.Time) error {
	err := repo.ds.update(ctx, repo.collection().Doc(id), []firestore.Update{
		{Path: "usedAt", Value: at},
	})
	if err != nil {
		if isNotFound(err) {
			return repository.ErrLoginTokenNotFound
		}

		return errors.Wrap(err, "failed to mark login token used")
	}

	return nil
}
