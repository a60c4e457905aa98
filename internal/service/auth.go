package service

import (
	"context"
	"fmt"

	"github.com/ilkol21/company-crm/internal/domain"
	"github.com/ilkol21/company-crm/internal/repository"
	"github.com/ilkol21/company-crm/internal/token"
	"github.com/ilkol21/company-crm/internal/utils"
)

// Emitter fans out a named event to realtime subscribers.
type Emitter interface {
	Emit(name string, payload any)
}

// AuthService handles credential validation, token issuance and rotation
type AuthService struct {
	userRepo  repository.IUserRepository
	history   *HistoryService
	hasher    *utils.PasswordHasher
	issuer    *token.Issuer
	validator *utils.Validator
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.IUserRepository,
	history *HistoryService,
	hasher *utils.PasswordHasher,
	issuer *token.Issuer,
	validator *utils.Validator,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		history:   history,
		hasher:    hasher,
		issuer:    issuer,
		validator: validator,
	}
}

// RegisterRequest represents registration input
type RegisterRequest struct {
	FullName string
	Email    string
	Password string
	Role     domain.Role
}

// Register creates a new identity. No tokens are issued; the caller must
// log in afterwards.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.PublicUser, error) {
	if err := s.validator.ValidateEmail(req.Email); err != nil {
		return nil, &domain.ValidationError{Message: "invalid email format", Field: "email"}
	}
	if err := s.validator.ValidatePassword(req.Password); err != nil {
		return nil, &domain.ValidationError{Message: "password must be at least 6 characters", Field: "password"}
	}
	if req.FullName == "" {
		return nil, &domain.ValidationError{Message: "full name is required", Field: "fullName"}
	}

	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, &domain.ValidationError{Message: "unknown role", Field: "role"}
	}

	exists, err := s.userRepo.ExistsEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &domain.ConflictError{Message: "user with this email already exists"}
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, &domain.InternalError{Message: "failed to process password", Err: err}
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FullName:     req.FullName,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.history.Record(ctx, RecordRequest{
		UserID:     &user.ID,
		Action:     domain.ActionUserCreated,
		EntityType: domain.EntityUser,
		EntityID:   &user.ID,
		Details:    fmt.Sprintf("Registered user: %s (ID: %d)", user.FullName, user.ID),
	}); err != nil {
		return nil, err
	}

	public := user.Public()
	return &public, nil
}

// ValidateCredentials loads the identity by email and compares the supplied
// password against the stored hash. This is the local-credential step that
// runs before Login.
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, &domain.UnauthorizedError{Message: "invalid email or password"}
		}
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, &domain.UnauthorizedError{Message: "invalid email or password"}
	}

	return user, nil
}

// LoginUser is the user projection embedded in a login response
type LoginUser struct {
	ID       int64       `json:"id"`
	FullName string      `json:"fullName"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	Avatar   *string     `json:"avatar"`
}

// LoginResponse represents login output
type LoginResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	User         LoginUser `json:"user"`
}

// Login issues a token pair for an already credential-validated user and
// persists the refresh token's hash, overwriting any prior value. One active
// session per identity: logging in again invalidates the previous refresh
// token.
func (s *AuthService) Login(ctx context.Context, user *domain.User) (*LoginResponse, error) {
	accessToken, err := s.issuer.SignAccess(user)
	if err != nil {
		return nil, &domain.InternalError{Message: "failed to sign access token", Err: err}
	}

	refreshToken, err := s.issuer.SignRefresh(user)
	if err != nil {
		return nil, &domain.InternalError{Message: "failed to sign refresh token", Err: err}
	}

	refreshHash, err := s.hasher.HashToken(refreshToken)
	if err != nil {
		return nil, &domain.InternalError{Message: "failed to hash refresh token", Err: err}
	}

	if err := s.userRepo.SetRefreshTokenHash(ctx, user.ID, &refreshHash); err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: LoginUser{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			Role:     user.Role,
			Avatar:   user.Avatar,
		},
	}, nil
}

// TokenPair represents refresh output
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Refresh rotates a refresh token: the presented token must hash-match the
// stored value, then a new pair is issued and the new hash replaces the old
// one atomically. The replaced token is dead from that point on; a stolen
// refresh token is usable at most once before the legitimate client's next
// refresh revokes it.
func (s *AuthService) Refresh(ctx context.Context, userID int64, presented string) (*TokenPair, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, &domain.UnauthorizedError{Message: "user not found"}
		}
		return nil, err
	}

	if user.RefreshTokenHash == nil {
		return nil, &domain.UnauthorizedError{Message: "no active session"}
	}
	oldHash := *user.RefreshTokenHash

	if !s.hasher.VerifyToken(oldHash, presented) {
		return nil, &domain.UnauthorizedError{Message: "invalid refresh token"}
	}

	accessToken, err := s.issuer.SignAccess(user)
	if err != nil {
		return nil, &domain.InternalError{Message: "failed to sign access token", Err: err}
	}

	refreshToken, err := s.issuer.SignRefresh(user)
	if err != nil {
		return nil, &domain.InternalError{Message: "failed to sign refresh token", Err: err}
	}

	newHash, err := s.hasher.HashToken(refreshToken)
	if err != nil {
		return nil, &domain.InternalError{Message: "failed to hash refresh token", Err: err}
	}

	// Compare-and-swap on the stored hash. If a concurrent rotation replaced
	// it between our read and this write, zero rows match and the presented
	// token is treated as already rotated away.
	swapped, err := s.userRepo.SwapRefreshTokenHash(ctx, user.ID, oldHash, newHash)
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, &domain.UnauthorizedError{Message: "refresh token already rotated"}
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout clears the stored refresh-token hash, invalidating all outstanding
// refresh tokens for the identity. Idempotent.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.userRepo.SetRefreshTokenHash(ctx, userID, nil)
}

// ResetPassword replaces the password for the identity behind the email.
// Existing refresh tokens stay valid: reset does not force logout.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if err := s.validator.ValidatePassword(newPassword); err != nil {
		return &domain.ValidationError{Message: "password must be at least 6 characters", Field: "newPassword"}
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return &domain.ValidationError{Message: "user with this email not found", Field: "email"}
		}
		return err
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return &domain.InternalError{Message: "failed to process password", Err: err}
	}

	return s.userRepo.UpdatePassword(ctx, user.ID, passwordHash)
}

// ChangePassword replaces the caller's own password after verifying the
// current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if err := s.validator.ValidatePassword(newPassword); err != nil {
		return &domain.ValidationError{Message: "password must be at least 6 characters", Field: "newPassword"}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(user.PasswordHash, currentPassword) {
		return &domain.ValidationError{Message: "current password is incorrect", Field: "currentPassword"}
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return &domain.InternalError{Message: "failed to process password", Err: err}
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return err
	}

	return s.history.Record(ctx, RecordRequest{
		UserID:     &user.ID,
		Action:     domain.ActionPasswordChanged,
		EntityType: domain.EntityUser,
		EntityID:   &user.ID,
		Details:    fmt.Sprintf("User %s (ID: %d) changed their password.", user.FullName, user.ID),
	})
}
