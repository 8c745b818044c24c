package impl

import (
	"context"
	"testing"

	"muziris/internal/domain/entity"
	"muziris/internal/domain/repository"
	"muziris/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memberFixtures struct {
	service      usecase.MemberUsecase
	memberRepo   *mockMemberRepo
	profileRepo  *mockProfileRepo
	activityRepo *mockActivityRepo
}

func createTestMemberService(t *testing.T) memberFixtures {
	t.Helper()

	memberRepo := &mockMemberRepo{}
	profileRepo := &mockProfileRepo{}
	activityRepo := &mockActivityRepo{}

	service := NewMemberService(MemberServiceParams{
		MemberRepo:   memberRepo,
		ProfileRepo:  profileRepo,
		ActivityRepo: activityRepo,
		Logger:       discardLogger(),
	})

	return memberFixtures{
		service:      service,
		memberRepo:   memberRepo,
		profileRepo:  profileRepo,
		activityRepo: activityRepo,
	}
}

func TestMemberService_GetDashboard_ExistingProfile(t *testing.T) {
	fx := createTestMemberService(t)
	ctx := context.Background()

	fx.profileRepo.On("FindByUserID", ctx, "anjali@example.com").Return(&entity.UserProfile{
		UserID:        "anjali@example.com",
		DisplayName:   "Anjali Menon",
		LoyaltyPoints: 59,
	}, nil)
	fx.memberRepo.On("FindByEmail", ctx, "anjali@example.com").Return(&entity.Member{
		Email: "anjali@example.com",
		Name:  "Anjali Menon",
	}, nil)
	activity := []*entity.ActivityEntry{{Action: entity.ActivityOrderPlaced}}
	fx.activityRepo.On("ListByUserID", ctx, "anjali@example.com", 50).Return(activity, nil)

	output, err := fx.service.GetDashboard(ctx, "Anjali@Example.com")

	require.NoError(t, err)
	assert.Equal(t, 59, output.Profile.LoyaltyPoints)
	assert.Equal(t, "Anjali Menon", output.Member.Name)
	assert.Equal(t, activity, output.RecentActivity)
	fx.profileRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMemberService_GetDashboard_CreatesProfileLazily(t *testing.T) {
	fx := createTestMemberService(t)
	ctx := context.Background()

	fx.profileRepo.On("FindByUserID", ctx, "anjali@example.com").
		Return(nil, repository.ErrProfileNotFound)
	fx.profileRepo.On("Create", ctx, mock.AnythingOfType("*entity.UserProfile")).Return(nil)
	fx.memberRepo.On("FindByEmail", ctx, "anjali@example.com").
		Return(nil, repository.ErrMemberNotFound)
	fx.activityRepo.On("ListByUserID", ctx, "anjali@example.com", 50).
		Return([]*entity.ActivityEntry{}, nil)

	output, err := fx.service.GetDashboard(ctx, "anjali@example.com")

	require.NoError(t, err)
	assert.Equal(t, "anjali@example.com", output.Profile.UserID)
	assert.Equal(t, 0, output.Profile.LoyaltyPoints)
	assert.Nil(t, output.Member)
}

func TestMemberService_GetDashboard_MemberNameBackfillsDisplayName(t *testing.T) {
	fx := createTestMemberService(t)
	ctx := context.Background()

	fx.profileRepo.On("FindByUserID", ctx, "anjali@example.com").Return(&entity.UserProfile{
		UserID: "anjali@example.com",
	}, nil)
	fx.memberRepo.On("FindByEmail", ctx, "anjali@example.com").Return(&entity.Member{
		Email: "anjali@example.com",
		Name:  "Anjali Menon",
	}, nil)
	fx.activityRepo.On("ListByUserID", ctx, "anjali@example.com", 50).
		Return([]*entity.ActivityEntry{}, nil)

	output, err := fx.service.GetDashboard(ctx, "anjali@example.com")

	require.NoError(t, err)
	assert.Equal(t, "Anjali Menon", output.Profile.DisplayName)
}

func TestMemberService_GetDashboard_ActivityFailureIsBestEffort(t *testing.T) {
	fx := createTestMemberService(t)
	ctx := context.Background()

	fx.profileRepo.On("FindByUserID", ctx, "anjali@example.com").Return(&entity.UserProfile{
		UserID: "anjali@example.com",
	}, nil)
	fx.memberRepo.On("FindByEmail", ctx, "anjali@example.com").
		Return(nil, repository.ErrMemberNotFound)
	fx.activityRepo.On("ListByUserID", ctx, "anjali@example.com", 50).
		Return(nil, errors.New("index missing"))

	output, err := fx.service.GetDashboard(ctx, "anjali@example.com")

	require.NoError(t, err)
	assert.Nil(t, output.RecentActivity)
}
