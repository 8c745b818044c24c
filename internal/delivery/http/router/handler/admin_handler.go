package handler

import (
	"log/slog"
	"net/http"

	"muziris/internal/delivery/http/response"
	"muziris/internal/domain/entity"
	"muziris/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type rejectRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// AdminHandler holds dependencies for the admin review dashboard endpoints.
type AdminHandler struct {
	uc     usecase.MembershipUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.MembershipUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{uc: uc, logger: logger}
}

// ListRequests returns membership requests, optionally filtered by the
// status query parameter, newest first.
func (h *AdminHandler) ListRequests(c echo.Context) error {
	status := entity.RequestStatus(c.QueryParam("status"))
	switch status {
	case "", entity.RequestStatusPending, entity.RequestStatusApproved, entity.RequestStatusRejected:
	default:
		return response.BadRequest(c, "INVALID_INPUT", "Unknown status filter")
	}

	requests, err := h.uc.ListRequests(c.Request().Context(), status)
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]requestResponse, 0, len(requests))
	for _, req := range requests {
		out = append(out, toRequestResponse(req))
	}

	return response.Success(c, http.StatusOK, out, "Requests retrieved")
}

// ApproveRequest approves a pending request and sends the setup email.
func (h *AdminHandler) ApproveRequest(c echo.Context) error {
	requestID := c.Param("id")
	if requestID == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Request ID is required")
	}

	if err := h.uc.ApproveRequest(c.Request().Context(), requestID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Request approved")
}

// RejectRequest rejects a pending request with an optional reason.
func (h *AdminHandler) RejectRequest(c echo.Context) error {
	requestID := c.Param("id")
	if requestID == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Request ID is required")
	}

	var input rejectRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rejection input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Rejection reason is too long")
	}

	if err := h.uc.RejectRequest(c.Request().Context(), &usecase.RejectRequestInput{
		RequestID: requestID,
		Reason:    input.Reason,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Request rejected")
}
