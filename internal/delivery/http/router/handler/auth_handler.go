package handler

import (
	"log/slog"
	"net/http"

	"muziris/internal/delivery/http/response"
	"muziris/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type loginStartRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type setupPasswordRequest struct {
	SetupToken string `json:"setupToken" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginLinkRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Origin string `json:"origin" validate:"omitempty,url"`
}

type completeLinkRequest struct {
	Token string `json:"token" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type loginStartResponse struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	NeedsSetup bool   `json:"needsSetup"`
}

type tokensResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	IsAdmin      bool   `json:"isAdmin"`
}

func toTokensResponse(out *usecase.AuthTokensOutput) tokensResponse {
	return tokensResponse{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		Email:        out.Email,
		Name:         out.Name,
		IsAdmin:      out.IsAdmin,
	}
}

// AuthHandler holds dependencies for authentication endpoints.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

// LoginStart handles the email step of member sign-in.
func (h *AuthHandler) LoginStart(c echo.Context) error {
	var input loginStartRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "A valid email address is required")
	}

	output, err := h.uc.LoginStart(c.Request().Context(), input.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loginStartResponse{
		Email:      output.Email,
		Name:       output.Name,
		NeedsSetup: output.NeedsSetup,
	}, "")
}

// SetupPassword consumes a setup token and creates the member's password.
func (h *AuthHandler) SetupPassword(c echo.Context) error {
	var input setupPasswordRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Setup token and password are required")
	}

	output, err := h.uc.SetupPassword(c.Request().Context(), &usecase.SetupPasswordInput{
		SetupToken: input.SetupToken,
		Password:   input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toTokensResponse(output), "Password created")
}

// Login handles password sign-in.
func (h *AuthHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Email and password are required")
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTokensResponse(output), "Login successful")
}

// RequestLoginLink emails a one-time sign-in link to a member.
func (h *AuthHandler) RequestLoginLink(c echo.Context) error {
	var input loginLinkRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "A valid email address is required")
	}

	if err := h.uc.RequestLoginLink(c.Request().Context(), &usecase.LoginLinkInput{
		Email:  input.Email,
		Origin: input.Origin,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"success": true}, "Sign-in link sent")
}

// RequestAdminLoginLink emails a one-time sign-in link to an allow-listed
// admin. Sits behind a per-IP rate limit; non-admin emails get a flat 403.
func (h *AuthHandler) RequestAdminLoginLink(c echo.Context) error {
	var input loginLinkRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "A valid email address is required")
	}

	if err := h.uc.RequestAdminLoginLink(c.Request().Context(), &usecase.LoginLinkInput{
		Email:    input.Email,
		Origin:   input.Origin,
		ClientIP: c.RealIP(),
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"success": true}, "Sign-in link sent")
}

// CompleteLoginLink exchanges a one-time link token for a session.
func (h *AuthHandler) CompleteLoginLink(c echo.Context) error {
	var input completeLinkRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Sign-in token is required")
	}

	output, err := h.uc.CompleteLoginLink(c.Request().Context(), input.Token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTokensResponse(output), "Login successful")
}

// Refresh rotates a refresh token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var input refreshRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Refresh token is required")
	}

	output, err := h.uc.Refresh(c.Request().Context(), input.RefreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTokensResponse(output), "Token refreshed")
}

// Logout revokes the presented refresh token's session.
func (h *AuthHandler) Logout(c echo.Context) error {
	var input refreshRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid logout input")
	}

	if err := h.uc.Logout(c.Request().Context(), input.RefreshToken); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}
