// Package impl contains the application-specific business rules implementations.
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

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// membershipService implements the MembershipUsecase interface.
type membershipService struct {
	requestRepo    repository.RequestRepository
	loginTokenRepo repository.LoginTokenRepository
	tokenGen       service.TokenGenerator
	mailer         service.Mailer
	baseURL        string
	tokenTTL       time.Duration
	logger         *slog.Logger
}

// MembershipServiceParams holds dependencies for the membership service,
// injected by Fx.
type MembershipServiceParams struct {
	fx.In

	RequestRepo    repository.RequestRepository
	LoginTokenRepo repository.LoginTokenRepository
	TokenGen       service.TokenGenerator
	Mailer         service.Mailer
	Config         *config.Config
	Logger         *slog.Logger
}

// NewMembershipService is the constructor for membershipService.
func NewMembershipService(params MembershipServiceParams) usecase.MembershipUsecase {
	tokenTTL := time.Hour
	if params.Config.Verification != nil && params.Config.Verification.TokenTTL > 0 {
		tokenTTL = params.Config.Verification.TokenTTL
	}

	return &membershipService{
		requestRepo:    params.RequestRepo,
		loginTokenRepo: params.LoginTokenRepo,
		tokenGen:       params.TokenGen,
		mailer:         params.Mailer,
		baseURL:        params.Config.HTTP.BaseURL,
		tokenTTL:       tokenTTL,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *membershipService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// NormalizeEmail lowercases and trims an email so every collection keys the
// same identity the same way.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SubmitApplication validates and stores a new pending request. The
// acknowledgment email is best-effort: a send failure never rolls back the
// stored application.
func (srv *membershipService) SubmitApplication(ctx context.Context, input *usecase.SubmitApplicationInput) (*usecase.SubmitApplicationOutput, error) {
	now := time.Now()
	req := &entity.MembershipRequest{
		MemberType:    input.MemberType,
		Name:          strings.TrimSpace(input.Name),
		Email:         NormalizeEmail(input.Email),
		Phone:         strings.TrimSpace(input.Phone),
		Message:       strings.TrimSpace(input.Message),
		Company:       strings.TrimSpace(input.Company),
		Role:          strings.TrimSpace(input.Role),
		BusinessType:  strings.TrimSpace(input.BusinessType),
		MonthlyVolume: strings.TrimSpace(input.MonthlyVolume),
		Status:        entity.RequestStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := srv.requestRepo.Create(ctx, req); err != nil {
		return nil, errors.Wrap(err, "failed to store membership application")
	}

	srv.log(ctx).Info("Membership application submitted",
		slog.String("request_id", req.ID),
		slog.String("member_type", string(req.MemberType)),
	)

	if err := srv.mailer.SendApplicationReceived(ctx, req.Email, req.Name); err != nil {
		srv.log(ctx).Warn("Acknowledgment email failed",
			slog.String("request_id", req.ID),
			slog.Any("error", err),
		)
	}

	return &usecase.SubmitApplicationOutput{RequestID: req.ID}, nil
}

// ListRequests returns requests filtered by status, newest first.
func (srv *membershipService) ListRequests(ctx context.Context, requestStatus entity.RequestStatus) ([]*entity.MembershipRequest, error) {
	requests, err := srv.requestRepo.ListByStatus(ctx, requestStatus)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list membership requests")
	}

	return requests, nil
}

// ApproveRequest flips a pending request to approved and mints the email
// verification token. The decision is one-way: re-deciding a decided request
// is a conflict. If the setup email fails after the store write, the approval
// stands and the failure surfaces distinctly.
func (srv *membershipService) ApproveRequest(ctx context.Context, requestID string) error {
	req, err := srv.findPending(ctx, requestID)
	if err != nil {
		return err
	}

	token, err := srv.tokenGen.NewToken()
	if err != nil {
		return errors.Wrap(err, "failed to mint verification token")
	}

	now := time.Now()
	req.Status = entity.RequestStatusApproved
	req.EmailVerified = false
	req.VerificationToken = token
	req.TokenExpiresAt = now.Add(srv.tokenTTL)
	req.UpdatedAt = now

	if err := srv.requestRepo.Update(ctx, req); err != nil {
		return errors.Wrap(err, "failed to store approval")
	}

	srv.log(ctx).Info("Membership request approved", slog.String("request_id", req.ID))

	setupLink := srv.verificationLink(token)
	if err := srv.mailer.SendApprovalWithSetup(ctx, req.Email, req.Name, setupLink); err != nil {
		srv.log(ctx).Error("Approval email failed after store write",
			slog.String("request_id", req.ID),
			slog.Any("error", err),
		)

		return domainerrors.ErrApprovedEmailFailed.WrapMessage(err.Error())
	}

	return nil
}

// RejectRequest flips a pending request to rejected with an optional reason.
func (srv *membershipService) RejectRequest(ctx context.Context, input *usecase.RejectRequestInput) error {
	req, err := srv.findPending(ctx, input.RequestID)
	if err != nil {
		return err
	}

	req.Status = entity.RequestStatusRejected
	req.RejectionReason = strings.TrimSpace(input.Reason)
	req.UpdatedAt = time.Now()

	if err := srv.requestRepo.Update(ctx, req); err != nil {
		return errors.Wrap(err, "failed to store rejection")
	}

	srv.log(ctx).Info("Membership request rejected", slog.String("request_id", req.ID))

	if err := srv.mailer.SendRejection(ctx, req.Email, req.Name, req.RejectionReason); err != nil {
		srv.log(ctx).Error("Rejection email failed after store write",
			slog.String("request_id", req.ID),
			slog.Any("error", err),
		)

		return domainerrors.ErrEmailSendFailed.WrapMessage(err.Error())
	}

	return nil
}

// VerifyEmailByToken consumes a verification token. On success the request is
// marked verified, the token cleared, and a fresh one-time setup token is
// issued so the applicant can create a password.
func (srv *membershipService) VerifyEmailByToken(ctx context.Context, token string) (*usecase.VerifyEmailOutput, error) {
	if token == "" {
		return nil, domainerrors.ErrTokenInvalidOrExpired
	}

	req, err := srv.requestRepo.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, domainerrors.ErrTokenInvalidOrExpired
		}

		return nil, errors.Wrap(err, "failed to look up verification token")
	}

	now := time.Now()
	if !req.CanVerify(now) {
		return nil, domainerrors.ErrTokenInvalidOrExpired
	}

	req.EmailVerified = true
	req.VerificationToken = ""
	req.TokenExpiresAt = time.Time{}
	req.UpdatedAt = now

	if err := srv.requestRepo.Update(ctx, req); err != nil {
		return nil, errors.Wrap(err, "failed to store email verification")
	}

	setupToken, err := srv.tokenGen.NewToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to mint setup token")
	}

	loginToken := &entity.LoginToken{
		Email:     req.Email,
		Token:     setupToken,
		ExpiresAt: now.Add(srv.tokenTTL),
		CreatedAt: now,
	}
	if err := srv.loginTokenRepo.Create(ctx, loginToken); err != nil {
		return nil, errors.Wrap(err, "failed to store setup token")
	}

	srv.log(ctx).Info("Membership email verified", slog.String("request_id", req.ID))

	return &usecase.VerifyEmailOutput{
		Email:      req.Email,
		Name:       req.Name,
		SetupToken: setupToken,
	}, nil
}

func (srv *membershipService) findPending(ctx context.Context, requestID string) (*entity.MembershipRequest, error) {
	req, err := srv.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, domainerrors.ErrRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find membership request")
	}

	if req.Status != entity.RequestStatusPending {
		return nil, domainerrors.ErrRequestAlreadyDecided
	}

	return req, nil
}

func (srv *membershipService) verificationLink(token string) string {
	return fmt.Sprintf("%s/member/verify?token=%s", strings.TrimRight(srv.baseURL, "/"), token)
}
