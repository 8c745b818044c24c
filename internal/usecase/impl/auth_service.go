package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
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

// authService implements the AuthUsecase interface.
type authService struct {
	txManager      repository.TransactionManager
	requestRepo    repository.RequestRepository
	memberRepo     repository.MemberRepository
	profileRepo    repository.ProfileRepository
	credentialRepo repository.CredentialRepository
	sessionRepo    repository.SessionRepository
	loginTokenRepo repository.LoginTokenRepository
	projectionRepo repository.UserProjectionRepository
	activityRepo   repository.ActivityRepository
	hasher         service.PasswordHasher
	tokenService   service.TokenService
	tokenGen       service.TokenGenerator
	mailer         service.Mailer
	rateLimiter    service.RateLimiter
	adminDirectory service.AdminDirectory
	eventPublisher service.EventPublisher
	baseURL        string
	refreshSecret  string
	tokenTTL       time.Duration
	logger         *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	RequestRepo    repository.RequestRepository
	MemberRepo     repository.MemberRepository
	ProfileRepo    repository.ProfileRepository
	CredentialRepo repository.CredentialRepository
	SessionRepo    repository.SessionRepository
	LoginTokenRepo repository.LoginTokenRepository
	ProjectionRepo repository.UserProjectionRepository
	ActivityRepo   repository.ActivityRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	TokenGen       service.TokenGenerator
	Mailer         service.Mailer
	RateLimiter    service.RateLimiter
	AdminDirectory service.AdminDirectory
	EventPublisher service.EventPublisher
	Config         *config.Config
	Logger         *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	tokenTTL := time.Hour
	if params.Config.Verification != nil && params.Config.Verification.TokenTTL > 0 {
		tokenTTL = params.Config.Verification.TokenTTL
	}

	return &authService{
		txManager:      params.TxManager,
		requestRepo:    params.RequestRepo,
		memberRepo:     params.MemberRepo,
		profileRepo:    params.ProfileRepo,
		credentialRepo: params.CredentialRepo,
		sessionRepo:    params.SessionRepo,
		loginTokenRepo: params.LoginTokenRepo,
		projectionRepo: params.ProjectionRepo,
		activityRepo:   params.ActivityRepo,
		hasher:         params.Hasher,
		tokenService:   params.TokenService,
		tokenGen:       params.TokenGen,
		mailer:         params.Mailer,
		rateLimiter:    params.RateLimiter,
		adminDirectory: params.AdminDirectory,
		eventPublisher: params.EventPublisher,
		baseURL:        params.Config.HTTP.BaseURL,
		refreshSecret:  params.Config.SecretKey.Refresh,
		tokenTTL:       tokenTTL,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// LoginStart performs the email step of the member sign-in flow. The caller
// learns only whether to show the password prompt or the setup prompt; all
// blocking states surface as specific errors.
func (srv *authService) LoginStart(ctx context.Context, email string) (*usecase.LoginStartOutput, error) {
	email = NormalizeEmail(email)

	req, err := srv.gateApprovedVerified(ctx, email)
	if err != nil {
		return nil, err
	}

	needsSetup := false
	if _, err := srv.credentialRepo.FindByEmail(ctx, email); err != nil {
		if !errors.Is(err, repository.ErrCredentialNotFound) {
			return nil, errors.Wrap(err, "failed to look up credential")
		}
		needsSetup = true
	}

	return &usecase.LoginStartOutput{
		Email:      email,
		Name:       req.Name,
		NeedsSetup: needsSetup,
	}, nil
}

// SetupPassword consumes a one-time setup token, stores the credential and
// derives the Member and profile in a single store transaction.
func (srv *authService) SetupPassword(ctx context.Context, input *usecase.SetupPasswordInput) (*usecase.AuthTokensOutput, error) {
	loginToken, err := srv.consumeLoginToken(ctx, input.SetupToken)
	if err != nil {
		return nil, err
	}
	email := loginToken.Email

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerrors.ErrPasswordStrength.WrapMessage(err.Error())
	}

	req, err := srv.gateApprovedVerified(ctx, email)
	if err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	now := time.Now()
	var memberCreated bool
	var points int

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// Firestore transactions demand reads before writes.
		if _, err := repoFactory.Credentials().FindByEmail(ctx, email); err == nil {
			return domainerrors.ErrCredentialExists
		} else if !errors.Is(err, repository.ErrCredentialNotFound) {
			return errors.Wrap(err, "failed to check existing credential")
		}

		created, profile, err := ensureMemberAndProfile(ctx, repoFactory, req, now, true)
		if err != nil {
			return err
		}
		memberCreated = created
		points = profile.LoyaltyPoints

		return repoFactory.Credentials().Create(ctx, &entity.Credential{
			Email:        email,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	})
	if err != nil {
		if appErr, ok := domainAppError(err); ok {
			return nil, appErr
		}

		return nil, domainerrors.ErrTransactionFailed.WrapMessage("password setup transaction: " + err.Error())
	}

	srv.afterMemberDerived(ctx, email, req.Name, memberCreated, points)

	return srv.issueSession(ctx, email, req.Name)
}

// Login performs a password sign-in.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthTokensOutput, error) {
	email := NormalizeEmail(input.Email)

	cred, err := srv.credentialRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to look up credential")
	}

	if !srv.hasher.Check(input.Password, cred.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	name := email
	if member, err := srv.memberRepo.FindByEmail(ctx, email); err == nil {
		name = member.Name
		if err := srv.memberRepo.UpdateLastLogin(ctx, email, time.Now()); err != nil {
			srv.log(ctx).Warn("Failed to stamp last login", slog.Any("error", err))
		}
	}

	return srv.issueSession(ctx, email, name)
}

// RequestLoginLink emails a one-time sign-in link to an approved, verified
// member.
func (srv *authService) RequestLoginLink(ctx context.Context, input *usecase.LoginLinkInput) error {
	email := NormalizeEmail(input.Email)

	if _, err := srv.gateApprovedVerified(ctx, email); err != nil {
		return err
	}

	return srv.sendLoginLink(ctx, email, input.Origin)
}

// RequestAdminLoginLink emails a one-time sign-in link to an allow-listed
// admin. The endpoint sits behind a shared per-IP budget, and non-admin
// emails get the same flat refusal regardless of whether they exist anywhere.
func (srv *authService) RequestAdminLoginLink(ctx context.Context, input *usecase.LoginLinkInput) error {
	allowed, err := srv.rateLimiter.Allow(ctx, input.ClientIP)
	if err != nil {
		return errors.Wrap(err, "failed to check rate limit")
	}
	if !allowed {
		return domainerrors.ErrRateLimited
	}

	email := NormalizeEmail(input.Email)
	if !srv.adminDirectory.IsAdmin(email) {
		srv.log(ctx).Warn("Admin link requested for non-admin email",
			slog.String("client_ip", input.ClientIP),
		)

		return domainerrors.ErrForbidden
	}

	return srv.sendLoginLink(ctx, email, input.Origin)
}

// CompleteLoginLink consumes a one-time token and issues a session. Admin
// emails bypass the membership gate; everyone else must hold an approved,
// verified request.
func (srv *authService) CompleteLoginLink(ctx context.Context, token string) (*usecase.AuthTokensOutput, error) {
	loginToken, err := srv.consumeLoginToken(ctx, token)
	if err != nil {
		return nil, err
	}
	email := loginToken.Email

	if srv.adminDirectory.IsAdmin(email) {
		return srv.issueSession(ctx, email, email)
	}

	req, err := srv.gateApprovedVerified(ctx, email)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var memberCreated bool
	var points int

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		created, profile, err := ensureMemberAndProfile(ctx, repoFactory, req, now, false)
		if err != nil {
			return err
		}
		memberCreated = created
		points = profile.LoyaltyPoints

		return nil
	})
	if err != nil {
		if appErr, ok := domainAppError(err); ok {
			return nil, appErr
		}

		return nil, domainerrors.ErrTransactionFailed.WrapMessage("sign-in transaction: " + err.Error())
	}

	srv.afterMemberDerived(ctx, email, req.Name, memberCreated, points)

	if err := srv.memberRepo.UpdateLastLogin(ctx, email, now); err != nil {
		srv.log(ctx).Warn("Failed to stamp last login", slog.Any("error", err))
	}

	return srv.issueSession(ctx, email, req.Name)
}

// Refresh rotates a refresh token: the presented session is revoked and a
// fresh pair issued.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthTokensOutput, error) {
	if _, err := srv.tokenService.ValidateToken(refreshToken, srv.refreshSecret); err != nil {
		return nil, domainerrors.ErrSessionInvalid
	}

	session, err := srv.sessionRepo.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrSessionInvalid
		}

		return nil, errors.Wrap(err, "failed to look up session")
	}

	now := time.Now()
	if !session.Active(now) {
		return nil, domainerrors.ErrSessionInvalid
	}

	if err := srv.sessionRepo.Revoke(ctx, session.ID, now); err != nil {
		return nil, errors.Wrap(err, "failed to revoke rotated session")
	}

	name := session.Email
	if member, err := srv.memberRepo.FindByEmail(ctx, session.Email); err == nil {
		name = member.Name
	}

	return srv.issueSession(ctx, session.Email, name)
}

// Logout revokes the session holding the refresh token. Unknown tokens are
// treated as already logged out.
func (srv *authService) Logout(ctx context.Context, refreshToken string) error {
	session, err := srv.sessionRepo.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to look up session")
	}

	if err := srv.sessionRepo.Revoke(ctx, session.ID, time.Now()); err != nil {
		return errors.Wrap(err, "failed to revoke session")
	}

	return nil
}

// gateApprovedVerified enforces the membership gate: an approved request must
// exist for the email and its address must be verified.
func (srv *authService) gateApprovedVerified(ctx context.Context, email string) (*entity.MembershipRequest, error) {
	req, err := srv.requestRepo.FindApprovedByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, domainerrors.ErrNotApproved
		}

		return nil, errors.Wrap(err, "failed to look up approved request")
	}

	if !req.EmailVerified {
		return nil, domainerrors.ErrEmailNotVerified
	}

	return req, nil
}

// consumeLoginToken looks up a one-time token and marks it used. The check
// and the write are separate store calls, so two near-simultaneous
// completions of the same link can both observe it as usable; last write
// wins and the token ends up used either way.
func (srv *authService) consumeLoginToken(ctx context.Context, token string) (*entity.LoginToken, error) {
	if token == "" {
		return nil, domainerrors.ErrLoginLinkInvalid
	}

	loginToken, err := srv.loginTokenRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrLoginTokenNotFound) {
			return nil, domainerrors.ErrLoginLinkInvalid
		}

		return nil, errors.Wrap(err, "failed to look up login token")
	}

	now := time.Now()
	if !loginToken.Usable(now) {
		return nil, domainerrors.ErrLoginLinkInvalid
	}

	if err := srv.loginTokenRepo.MarkUsed(ctx, loginToken.ID, now); err != nil {
		return nil, errors.Wrap(err, "failed to consume login token")
	}

	return loginToken, nil
}

func (srv *authService) sendLoginLink(ctx context.Context, email, origin string) error {
	token, err := srv.tokenGen.NewToken()
	if err != nil {
		return errors.Wrap(err, "failed to mint login token")
	}

	now := time.Now()
	loginToken := &entity.LoginToken{
		Email:     email,
		Token:     token,
		ExpiresAt: now.Add(srv.tokenTTL),
		CreatedAt: now,
	}
	if err := srv.loginTokenRepo.Create(ctx, loginToken); err != nil {
		return errors.Wrap(err, "failed to store login token")
	}

	base := strings.TrimRight(origin, "/")
	if base == "" {
		base = strings.TrimRight(srv.baseURL, "/")
	}
	link := fmt.Sprintf("%s/member/signin?token=%s", base, token)

	if err := srv.mailer.SendLoginLink(ctx, email, link); err != nil {
		srv.log(ctx).Error("Login link email failed", slog.Any("error", err))

		return domainerrors.ErrEmailSendFailed.WrapMessage(err.Error())
	}

	return nil
}

// issueSession generates a JWT pair and persists the refresh-token session.
func (srv *authService) issueSession(ctx context.Context, email, name string) (*usecase.AuthTokensOutput, error) {
	isAdmin := srv.adminDirectory.IsAdmin(email)
	roles := []string{"member"}
	if isAdmin {
		roles = []string{"admin", "member"}
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(email, roles)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	now := time.Now()
	session := &entity.Session{
		Email:        email,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(srv.tokenService.GetRefreshTokenDuration()),
		CreatedAt:    now,
	}
	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to store session")
	}

	return &usecase.AuthTokensOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Email:        email,
		Name:         name,
		IsAdmin:      isAdmin,
	}, nil
}

// afterMemberDerived runs the best-effort post-commit work when a Member was
// first materialized: projection refresh, trail append, activity event.
func (srv *authService) afterMemberDerived(ctx context.Context, email, name string, created bool, points int) {
	if !created {
		return
	}

	if err := srv.projectionRepo.SetLoyaltyPoints(ctx, email, email, points); err != nil {
		srv.log(ctx).Warn("Loyalty projection refresh failed", slog.Any("error", err))
	}

	entry := &entity.ActivityEntry{
		UserID:      email,
		UserEmail:   email,
		Action:      entity.ActivityMemberCreated,
		Description: fmt.Sprintf("Member record created for %s", name),
		CreatedAt:   time.Now(),
	}
	if err := srv.activityRepo.Append(ctx, entry); err != nil {
		srv.log(ctx).Warn("Activity trail append failed", slog.Any("error", err))
	}

	event := &service.ActivityEvent{
		EventID:     uuid.NewString(),
		UserID:      email,
		UserEmail:   email,
		Action:      entity.ActivityMemberCreated,
		Description: entry.Description,
		OccurredAt:  entry.CreatedAt.UTC().Format(time.RFC3339),
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
	}
	if err := srv.eventPublisher.PublishActivityEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Activity event publish failed", slog.Any("error", err))
	}
}

// ensureMemberAndProfile reads, then creates or updates, the Member and
// profile documents inside a bound transaction. Reads happen before any
// write, as the store requires.
func ensureMemberAndProfile(ctx context.Context, repoFactory repository.RepositoryFactory, req *entity.MembershipRequest, now time.Time, setPassword bool) (bool, *entity.UserProfile, error) {
	memberRepo := repoFactory.Members()
	profileRepo := repoFactory.Profiles()
	email := req.Email

	_, memberErr := memberRepo.FindByEmail(ctx, email)
	if memberErr != nil && !errors.Is(memberErr, repository.ErrMemberNotFound) {
		return false, nil, errors.Wrap(memberErr, "failed to look up member")
	}

	profile, profileErr := profileRepo.FindByUserID(ctx, email)
	if profileErr != nil && !errors.Is(profileErr, repository.ErrProfileNotFound) {
		return false, nil, errors.Wrap(profileErr, "failed to look up profile")
	}

	created := false
	if errors.Is(memberErr, repository.ErrMemberNotFound) {
		if err := memberRepo.Create(ctx, entity.NewMemberFromRequest(req, now)); err != nil {
			return false, nil, errors.Wrap(err, "failed to create member")
		}
		created = true
	}

	if errors.Is(profileErr, repository.ErrProfileNotFound) {
		profile = &entity.UserProfile{
			UserID:         email,
			Email:          email,
			DisplayName:    req.Name,
			LoyaltyPoints:  0,
			HasSetPassword: setPassword,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := profileRepo.Create(ctx, profile); err != nil {
			return false, nil, errors.Wrap(err, "failed to create profile")
		}
	} else if setPassword && !profile.HasSetPassword {
		profile.HasSetPassword = true
		if err := profileRepo.Update(ctx, profile); err != nil {
			return false, nil, errors.Wrap(err, "failed to update profile")
		}
	}

	return created, profile, nil
}

// domainAppError unwraps an error chain down to a domain AppError, so
// transaction wrapping does not bury business failures.
func domainAppError(err error) (domainerrors.AppError, bool) {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}

	return nil, false
}
