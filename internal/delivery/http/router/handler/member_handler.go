package handler

import (
	"log/slog"
	"net/http"
	"time"

	"muziris/internal/delivery/http/response"
	"muziris/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type profileResponse struct {
	Email          string    `json:"email"`
	DisplayName    string    `json:"displayName,omitempty"`
	LoyaltyPoints  int       `json:"loyaltyPoints"`
	HasSetPassword bool      `json:"hasSetPassword"`
	CreatedAt      time.Time `json:"createdAt"`
}

type memberResponse struct {
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Company     string    `json:"company,omitempty"`
	Role        string    `json:"role,omitempty"`
	ApprovedAt  time.Time `json:"approvedAt"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

type activityResponse struct {
	Action      string         `json:"action"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type dashboardResponse struct {
	Profile        profileResponse    `json:"profile"`
	Member         *memberResponse    `json:"member,omitempty"`
	RecentActivity []activityResponse `json:"recentActivity"`
}

// MemberHandler holds dependencies for the member dashboard endpoints.
type MemberHandler struct {
	uc     usecase.MemberUsecase
	logger *slog.Logger
}

// NewMemberHandler is the constructor for MemberHandler, injected by Fx.
func NewMemberHandler(uc usecase.MemberUsecase, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{uc: uc, logger: logger}
}

// GetDashboard returns the member's profile, member record and recent
// activity in one payload.
func (h *MemberHandler) GetDashboard(c echo.Context) error {
	email, err := memberEmail(c)
	if err != nil {
		return err
	}

	output, err := h.uc.GetDashboard(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	out := dashboardResponse{
		Profile: profileResponse{
			Email:          output.Profile.Email,
			DisplayName:    output.Profile.DisplayName,
			LoyaltyPoints:  output.Profile.LoyaltyPoints,
			HasSetPassword: output.Profile.HasSetPassword,
			CreatedAt:      output.Profile.CreatedAt,
		},
		RecentActivity: make([]activityResponse, 0, len(output.RecentActivity)),
	}

	if output.Member != nil {
		out.Member = &memberResponse{
			Email:       output.Member.Email,
			Name:        output.Member.Name,
			Company:     output.Member.Company,
			Role:        output.Member.Role,
			ApprovedAt:  output.Member.ApprovedAt,
			LastLoginAt: output.Member.LastLoginAt,
		}
	}

	for _, entry := range output.RecentActivity {
		out.RecentActivity = append(out.RecentActivity, activityResponse{
			Action:      entry.Action,
			Description: entry.Description,
			Metadata:    entry.Metadata,
			CreatedAt:   entry.CreatedAt,
		})
	}

	return response.Success(c, http.StatusOK, out, "Dashboard retrieved")
}
