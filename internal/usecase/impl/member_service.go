package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "muziris/internal/delivery/context"
	"muziris/internal/domain/entity"
	"muziris/internal/domain/repository"
	"muziris/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const recentActivityLimit = 50

// memberService implements the MemberUsecase interface.
type memberService struct {
	memberRepo   repository.MemberRepository
	profileRepo  repository.ProfileRepository
	activityRepo repository.ActivityRepository
	logger       *slog.Logger
}

// MemberServiceParams holds dependencies for the member service, injected
// by Fx.
type MemberServiceParams struct {
	fx.In

	MemberRepo   repository.MemberRepository
	ProfileRepo  repository.ProfileRepository
	ActivityRepo repository.ActivityRepository
	Logger       *slog.Logger
}

// NewMemberService is the constructor for memberService.
func NewMemberService(params MemberServiceParams) usecase.MemberUsecase {
	return &memberService{
		memberRepo:   params.MemberRepo,
		profileRepo:  params.ProfileRepo,
		activityRepo: params.ActivityRepo,
		logger:       params.Logger,
	}
}

func (srv *memberService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetDashboard aggregates the member dashboard: the profile (created lazily
// on first access), the member record, and the recent activity trail. The
// member record and trail are optional reads; only the profile is required.
func (srv *memberService) GetDashboard(ctx context.Context, email string) (*usecase.DashboardOutput, error) {
	email = NormalizeEmail(email)

	profile, err := srv.profileRepo.FindByUserID(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrProfileNotFound) {
			return nil, errors.Wrap(err, "failed to load profile")
		}

		now := time.Now()
		profile = &entity.UserProfile{
			UserID:    email,
			Email:     email,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := srv.profileRepo.Create(ctx, profile); err != nil {
			return nil, errors.Wrap(err, "failed to create profile")
		}

		srv.log(ctx).Info("Profile created on first dashboard access")
	}

	out := &usecase.DashboardOutput{Profile: profile}

	member, err := srv.memberRepo.FindByEmail(ctx, email)
	if err == nil {
		out.Member = member
		if profile.DisplayName == "" {
			profile.DisplayName = member.Name
		}
	} else if !errors.Is(err, repository.ErrMemberNotFound) {
		srv.log(ctx).Warn("Member record read failed", slog.Any("error", err))
	}

	activity, err := srv.activityRepo.ListByUserID(ctx, email, recentActivityLimit)
	if err != nil {
		srv.log(ctx).Warn("Activity trail read failed", slog.Any("error", err))
	} else {
		out.RecentActivity = activity
	}

	return out, nil
}
