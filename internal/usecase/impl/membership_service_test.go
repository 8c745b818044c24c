package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"muziris/config"
	"muziris/internal/domain/entity"
	domainerrors "muziris/internal/domain/errors"
	"muziris/internal/domain/repository"
	"muziris/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func membershipTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.HTTP.BaseURL = "https://houseofmuziris.com"
	cfg.Verification = &config.VerificationConfig{TokenTTL: time.Hour}

	return cfg
}

// membershipFixtures holds all test dependencies for membership service tests.
type membershipFixtures struct {
	service        usecase.MembershipUsecase
	requestRepo    *mockRequestRepo
	loginTokenRepo *mockLoginTokenRepo
	tokenGen       *mockTokenGenerator
	mailer         *mockMailer
}

func createTestMembershipService(t *testing.T) membershipFixtures {
	t.Helper()

	requestRepo := &mockRequestRepo{}
	loginTokenRepo := &mockLoginTokenRepo{}
	tokenGen := &mockTokenGenerator{}
	mailer := &mockMailer{}

	service := NewMembershipService(MembershipServiceParams{
		RequestRepo:    requestRepo,
		LoginTokenRepo: loginTokenRepo,
		TokenGen:       tokenGen,
		Mailer:         mailer,
		Config:         membershipTestConfig(),
		Logger:         discardLogger(),
	})

	return membershipFixtures{
		service:        service,
		requestRepo:    requestRepo,
		loginTokenRepo: loginTokenRepo,
		tokenGen:       tokenGen,
		mailer:         mailer,
	}
}

func TestMembershipService_SubmitApplication_Success(t *testing.T) {
	fx := createTestMembershipService(t)
	ctx := context.Background()

	fx.requestRepo.On("Create", ctx, mock.AnythingOfType("*entity.MembershipRequest")).
		Run(func(args mock.Arguments) {
			req := args.Get(1).(*entity.MembershipRequest)
			req.ID = "req-1"
		}).
		Return(nil)
	fx.mailer.On("SendApplicationReceived", ctx, "anjali@example.com", "Anjali Menon").Return(nil)

	output, err := fx.service.SubmitApplication(ctx, &usecase.SubmitApplicationInput{
		MemberType: entity.MemberTypePrivate,
		Name:       "  Anjali Menon  ",
		Email:      " Anjali@Example.com ",
		Phone:      "+91 98470 00000",
		Message:    "Interested in saffron.",
	})

	require.NoError(t, err)
	assert.Equal(t, "req-1", output.RequestID)

	created := fx.requestRepo.Calls[0].Arguments.Get(1).(*entity.MembershipRequest)
	assert.Equal(t, "anjali@example.com", created.Email)
	assert.Equal(t, "Anjali Menon", created.Name)
	assert.Equal(t, entity.RequestStatusPending, created.Status)
}

func TestMembershipService_SubmitApplication_EmailFailureIsBestEffort(t *testing.T) {
	fx := createTestMembershipService(t)
	ctx := context.Background()

	fx.requestRepo.On("Create", ctx, mock.Anything).Return(nil)
	fx.mailer.On("SendApplicationReceived", ctx, mock.Anything, mock.Anything).
		Return(errors.New("resend unavailable"))

	output, err := fx.service.SubmitApplication(ctx, &usecase.SubmitApplicationInput{
		MemberType: entity.MemberTypeTrade,
		Name:       "Spice Trader",
		Email:      "trader@example.com",
		Company:    "Malabar Imports",
	})

	require.NoError(t, err)
	assert.NotNil(t, output)
}

func TestMembershipService_ApproveRequest_Success(t *testing.T) {
	fx := createTestMembershipService(t)
	ctx := context.Background()

	pending := &entity.MembershipRequest{
		ID:     "req-1",
		Name:   "Anjali Menon",
		Email:  "anjali@example.com",
		Status: entity.RequestStatusPending,
	}

	fx.requestRepo.On("FindByID", ctx, "req-1").Return(pending, nil)
	fx.tokenGen.On("NewToken").Return("tok123", nil)
	fx.requestRepo.On("Update", ctx, mock.AnythingOfType("*entity.MembershipRequest")).Return(nil)
	fx.mailer.On("SendApprovalWithSetup", ctx, "anjali@example.com", "Anjali Menon",
		"https://houseofmuziris.com/member/verify?token=tok123").Return(nil)

	err := fx.service.ApproveRequest(ctx, "req-1")

	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusApproved, pending.Status)
	assert.Equal(t, "tok123", pending.VerificationToken)
	assert.False(t, pending.EmailVerified)
	assert.WithinDuration(t, time.Now().Add(time.Hour), pending.TokenExpiresAt, 5*time.Second)
}

func TestMembershipService_ApproveRequest_AlreadyDecided(t *testing.T) {
	fx := createTestMembershipService(t)
	ctx := context.Background()

	fx.requestRepo.On("FindByID", ctx, "req-1").Return(&entity.MembershipRequest{
		ID:     "req-1",
		Status: entity.RequestStatusApproved,
	}, nil)

	err := fx.service.ApproveRequest(ctx, "req-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrRequestAlreadyDecided)
	fx.requestRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMembershipService_ApproveRequest_EmailFailureSurfacesDistinctly(t *testing.T) {
	fx := createTestMembershipService(t)
	ctx := context.Background()

	fx.requestRepo.On("FindByID", ctx, "req-1").Return(&entity.MembershipRequest{
		ID:     "req-1",
		Email:  "anjali@example.com",
		Status: entity.RequestStatusPending,
	}, nil)
	fx.tokenGen.On("NewToken").Return("tok123", nil)
	fx.requestRepo.On("Update", ctx, mock.Anything).Return(nil)
	fx.mailer.On("SendApprovalWithSetup", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("resend 500"))

	err := fx.service.ApproveRequest(ctx, "req-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrApprovedEmailFailed)
	// The approval itself was stored before the email failed.
	fx.requestRepo.AssertCalled(t, "Update", ctx, mock.Anything)
}

func TestMembershipService_RejectRequest_Success(t *testing.T) {
	fx := createTestMembershipService(t)
	ctx := context.Background()

	pending := &entity.MembershipRequest{
		ID:     "req-2",
		Name:   "Someone",
		Email:  "someone@example.com",
		Status: entity.RequestStatusPending,
	}

	fx.requestRepo.On("FindByID", ctx, "req-2").Return(pending, nil)
	fx.requestRepo.On("Update", ctx, pending).Return(nil)
	fx.mailer.On("SendRejection", ctx, "someone@example.com", "Someone", "Incomplete application").Return(nil)

	err := fx.service.RejectRequest(ctx, &usecase.RejectRequestInput{
		RequestID: "req-2",
		Reason:    "  Incomplete application  ",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusRejected, pending.Status)
	assert.Equal(t, "Incomplete application", pending.RejectionReason)
}

func TestMembershipService_RejectRequest_NotFound(t *testing.T) {
	fx := createTestMembershipService(t)
	ctx := context.Background()

	fx.requestRepo.On("FindByID", ctx, "missing").Return(nil, repository.ErrRequestNotFound)

	err := fx.service.RejectRequest(ctx, &usecase.RejectRequestInput{RequestID: "missing"})

	assert.ErrorIs(t, err, domainerrors.ErrRequestNotFound)
}

func TestMembershipService_VerifyEmailByToken_Success(t *testing.T) {
	fx := createTestMembershipService(t)
	ctx := context.Background()

	req := &entity.MembershipRequest{
		ID:                "req-1",
		Name:              "Anjali Menon",
		Email:             "anjali@example.com",
		Status:            entity.RequestStatusApproved,
		VerificationToken: "tok123",
		TokenExpiresAt:    time.Now().Add(30 * time.Minute),
	}

	fx.requestRepo.On("FindByVerificationToken", ctx, "tok123").Return(req, nil)
	fx.requestRepo.On("Update", ctx, req).Return(nil)
	fx.tokenGen.On("NewToken").Return("setup456", nil)
	fx.loginTokenRepo.On("Create", ctx, mock.AnythingOfType("*entity.LoginToken")).Return(nil)

	output, err := fx.service.VerifyEmailByToken(ctx, "tok123")

	require.NoError(t, err)
	assert.Equal(t, "anjali@example.com", output.Email)
	assert.Equal(t, "setup456", output.SetupToken)
	assert.True(t, req.EmailVerified)
	assert.Empty(t, req.VerificationToken)

	stored := fx.loginTokenRepo.Calls[0].Arguments.Get(1).(*entity.LoginToken)
	assert.Equal(t, "anjali@example.com", stored.Email)
	assert.Equal(t, "setup456", stored.Token)
}

func TestMembershipService_VerifyEmailByToken_Expired(t *testing.T) {
	fx := createTestMembershipService(t)
	ctx := context.Background()

	fx.requestRepo.On("FindByVerificationToken", ctx, "stale").Return(&entity.MembershipRequest{
		ID:                "req-1",
		Status:            entity.RequestStatusApproved,
		VerificationToken: "stale",
		TokenExpiresAt:    time.Now().Add(-time.Minute),
	}, nil)

	_, err := fx.service.VerifyEmailByToken(ctx, "stale")

	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalidOrExpired)
	fx.requestRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMembershipService_VerifyEmailByToken_Unknown(t *testing.T) {
	fx := createTestMembershipService(t)
	ctx := context.Background()

	fx.requestRepo.On("FindByVerificationToken", ctx, "nope").Return(nil, repository.ErrRequestNotFound)

	_, err := fx.service.VerifyEmailByToken(ctx, "nope")

	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalidOrExpired)
}

func TestMembershipService_ListRequests(t *testing.T) {
	fx := createTestMembershipService(t)
	ctx := context.Background()

	expected := []*entity.MembershipRequest{{ID: "a"}, {ID: "b"}}
	fx.requestRepo.On("ListByStatus", ctx, entity.RequestStatusPending).Return(expected, nil)

	requests, err := fx.service.ListRequests(ctx, entity.RequestStatusPending)

	require.NoError(t, err)
	assert.Equal(t, expected, requests)
}
