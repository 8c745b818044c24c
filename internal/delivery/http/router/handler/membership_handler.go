// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"muziris/internal/delivery/http/response"
	"muziris/internal/domain/entity"
	"muziris/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// applyRequest is the public application form payload. Private applicants
// fill phone/message; trade applicants fill the company block.
type applyRequest struct {
	MemberType    string `json:"memberType" validate:"required,oneof=private trade"`
	Name          string `json:"name" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email,max=100"`
	Phone         string `json:"phone" validate:"max=100"`
	Message       string `json:"message" validate:"max=500"`
	Company       string `json:"company" validate:"max=100"`
	Role          string `json:"role" validate:"max=100"`
	BusinessType  string `json:"businessType" validate:"max=100"`
	MonthlyVolume string `json:"monthlyVolume" validate:"max=100"`
}

type applyResponse struct {
	RequestID string `json:"requestId"`
}

type verifyEmailResponse struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	SetupToken string `json:"setupToken"`
}

// requestResponse is the admin view of one membership request.
type requestResponse struct {
	ID              string    `json:"id"`
	MemberType      string    `json:"memberType"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Message         string    `json:"message,omitempty"`
	Company         string    `json:"company,omitempty"`
	Role            string    `json:"role,omitempty"`
	BusinessType    string    `json:"businessType,omitempty"`
	MonthlyVolume   string    `json:"monthlyVolume,omitempty"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	EmailVerified   bool      `json:"emailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toRequestResponse(req *entity.MembershipRequest) requestResponse {
	return requestResponse{
		ID:              req.ID,
		MemberType:      string(req.MemberType),
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Message:         req.Message,
		Company:         req.Company,
		Role:            req.Role,
		BusinessType:    req.BusinessType,
		MonthlyVolume:   req.MonthlyVolume,
		Status:          string(req.Status),
		RejectionReason: req.RejectionReason,
		EmailVerified:   req.EmailVerified,
		CreatedAt:       req.CreatedAt,
		UpdatedAt:       req.UpdatedAt,
	}
}

// MembershipHandler holds dependencies for the public membership endpoints.
type MembershipHandler struct {
	uc     usecase.MembershipUsecase
	logger *slog.Logger
}

// NewMembershipHandler is the constructor for MembershipHandler, injected by Fx.
func NewMembershipHandler(uc usecase.MembershipUsecase, logger *slog.Logger) *MembershipHandler {
	return &MembershipHandler{uc: uc, logger: logger}
}

// Apply handles a new membership application.
func (h *MembershipHandler) Apply(c echo.Context) error {
	var input applyRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid application input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Please provide a valid name and email address")
	}

	output, err := h.uc.SubmitApplication(c.Request().Context(), &usecase.SubmitApplicationInput{
		MemberType:    entity.MemberType(input.MemberType),
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Message:       input.Message,
		Company:       input.Company,
		Role:          input.Role,
		BusinessType:  input.BusinessType,
		MonthlyVolume: input.MonthlyVolume,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, applyResponse{RequestID: output.RequestID}, "Application received")
}

// VerifyEmail consumes the emailed verification token and returns the
// one-time setup token that authorizes password creation.
func (h *MembershipHandler) VerifyEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Verification token is required")
	}

	output, err := h.uc.VerifyEmailByToken(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, verifyEmailResponse{
		Email:      output.Email,
		Name:       output.Name,
		SetupToken: output.SetupToken,
	}, "Email verified")
}
