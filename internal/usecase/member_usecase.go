package usecase

import (
	"context"

	"muziris/internal/domain/entity"
)

// DashboardOutput aggregates what the member dashboard renders in one shape.
type DashboardOutput struct {
	Profile        *entity.UserProfile
	Member         *entity.Member
	RecentActivity []*entity.ActivityEntry
}

// MemberUsecase defines member-facing profile and activity reads.
type MemberUsecase interface {
	// GetDashboard returns the member's profile (created lazily on first
	// access), member record and recent activity trail.
	GetDashboard(ctx context.Context, email string) (*DashboardOutput, error)
}
