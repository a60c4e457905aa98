package controller

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ilkol21/company-crm/internal/domain"
	"github.com/ilkol21/company-crm/internal/middleware"
	"github.com/ilkol21/company-crm/internal/service"
)

// AuthController handles registration, login and the token lifecycle
type AuthController struct {
	authService service.IAuthService
	logger      *zap.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(authService service.IAuthService, logger *zap.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Register handles POST /auth/register
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	user, err := c.authService.Register(r.Context(), service.RegisterRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		c.logger.Warn("register failed", zap.String("email", req.Email), zap.Error(err))
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	user, err := c.authService.ValidateCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		c.logger.Warn("login rejected", zap.String("email", req.Email), zap.Error(err))
		middleware.WriteError(w, err)
		return
	}

	resp, err := c.authService.Login(r.Context(), user)
	if err != nil {
		c.logger.Error("login failed", zap.Int64("user_id", user.ID), zap.Error(err))
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, resp)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh handles POST /auth/refresh-token. The refresh guard has already
// verified the token signature; the service checks it against the stored
// hash and rotates the pair. The token to rotate comes from the request
// body when one is sent, otherwise from the Authorization header.
func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	a := actor(w, r)
	if a == nil {
		return
	}

	var req refreshRequest
	_ = json.NewDecoder(r.Body).Decode(&req) // body is optional
	presented := req.RefreshToken
	if presented == "" {
		var err error
		presented, err = middleware.BearerToken(r)
		if err != nil {
			middleware.WriteError(w, err)
			return
		}
	}

	pair, err := c.authService.Refresh(r.Context(), a.ID, presented)
	if err != nil {
		c.logger.Warn("refresh rejected", zap.Int64("user_id", a.ID), zap.Error(err))
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, pair)
}

// Logout handles POST /auth/logout
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	a := actor(w, r)
	if a == nil {
		return
	}

	if err := c.authService.Logout(r.Context(), a.ID); err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword handles POST /auth/reset-password
func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	if err := c.authService.ResetPassword(r.Context(), req.Email, req.NewPassword); err != nil {
		c.logger.Warn("password reset failed", zap.String("email", req.Email), zap.Error(err))
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword handles PATCH /users/profile/change-password
func (c *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	a := actor(w, r)
	if a == nil {
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	if err := c.authService.ChangePassword(r.Context(), a.ID, req.CurrentPassword, req.NewPassword); err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "password changed"})
}
