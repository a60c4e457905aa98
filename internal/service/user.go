package service

import (
	"context"
	"fmt"

	"github.com/ilkol21/company-crm/internal/domain"
	"github.com/ilkol21/company-crm/internal/repository"
	"github.com/ilkol21/company-crm/internal/utils"
)

// UserService handles user management business logic
type UserService struct {
	userRepo repository.IUserRepository
	history  *HistoryService
	hasher   *utils.PasswordHasher
	events   Emitter
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.IUserRepository,
	history *HistoryService,
	hasher *utils.PasswordHasher,
	events Emitter,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		history:  history,
		hasher:   hasher,
		events:   events,
	}
}

// ListUsersRequest represents user listing input
type ListUsersRequest struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Role      *domain.Role
	Search    string
}

// ListUsersResponse represents user listing output
type ListUsersResponse struct {
	Users []domain.PublicUser
	Total int64
}

// List returns users with pagination, role filter and search
func (s *UserService) List(ctx context.Context, req ListUsersRequest) (*ListUsersResponse, error) {
	users, total, err := s.userRepo.List(ctx, repository.ListUsersQuery{
		Page:      req.Page,
		Limit:     req.Limit,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Role:      req.Role,
		Search:    req.Search,
	})
	if err != nil {
		return nil, err
	}

	public := make([]domain.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}

	return &ListUsersResponse{Users: public, Total: total}, nil
}

// Get returns a single user without credential fields
func (s *UserService) Get(ctx context.Context, userID int64) (*domain.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

// UpdateUserRequest represents user update input. Nil fields are untouched.
type UpdateUserRequest struct {
	FullName *string
	Avatar   *string
	Role     *domain.Role
}

// Update modifies a user subject to the role permission matrix:
// plain Users may only touch themselves, SuperAdmin roles are managed by
// SuperAdmins only, and Admins can neither promote to Admin nor escalate
// their own role.
func (s *UserService) Update(ctx context.Context, targetID int64, req UpdateUserRequest, actor *domain.User) (*domain.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if actor.Role == domain.RoleUser && actor.ID != targetID {
		return nil, &domain.ForbiddenError{Message: "you do not have permission to update this user"}
	}

	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, &domain.ValidationError{Message: "unknown role", Field: "role"}
		}
		if err := checkRoleChange(user, *req.Role, actor); err != nil {
			return nil, err
		}
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.history.Record(ctx, RecordRequest{
		UserID:     &actor.ID,
		Action:     domain.ActionUserUpdated,
		EntityType: domain.EntityUser,
		EntityID:   &user.ID,
		Details:    fmt.Sprintf("Updated user: %s", user.FullName),
	}); err != nil {
		return nil, err
	}

	public := user.Public()
	s.events.Emit("userUpdated", public)

	return &public, nil
}

// checkRoleChange enforces who may assign which role to whom.
func checkRoleChange(target *domain.User, newRole domain.Role, actor *domain.User) error {
	// SuperAdmin roles are only managed by SuperAdmins, whether assigning
	// the role or touching a user who already holds it.
	if (newRole == domain.RoleSuperAdmin || target.Role == domain.RoleSuperAdmin) &&
		actor.Role != domain.RoleSuperAdmin {
		return &domain.ForbiddenError{Message: "only SuperAdmins can manage SuperAdmin roles or assign SuperAdmin role"}
	}

	// Admins promote Users through the dedicated admin-creation endpoint.
	if target.Role == domain.RoleUser && newRole == domain.RoleAdmin && actor.Role == domain.RoleAdmin {
		return &domain.ForbiddenError{Message: "admins cannot promote users to Admin role via this endpoint"}
	}

	// Self role escalation.
	if actor.ID == target.ID && newRole != actor.Role {
		if actor.Role == domain.RoleUser && newRole != domain.RoleUser {
			return &domain.ForbiddenError{Message: "users cannot change their own role"}
		}
		if actor.Role == domain.RoleAdmin && newRole == domain.RoleSuperAdmin {
			return &domain.ForbiddenError{Message: "admins cannot change their own role to SuperAdmin"}
		}
	}

	return nil
}

// Delete removes a user, subject to role constraints
func (s *UserService) Delete(ctx context.Context, targetID int64, actor *domain.User) error {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if actor.ID == targetID {
		return &domain.ForbiddenError{Message: "you cannot delete your own account"}
	}

	if actor.Role == domain.RoleAdmin &&
		(user.Role == domain.RoleAdmin || user.Role == domain.RoleSuperAdmin) {
		return &domain.ForbiddenError{Message: "admins cannot delete other Admins or SuperAdmins"}
	}

	if actor.Role == domain.RoleSuperAdmin && user.Role == domain.RoleSuperAdmin {
		return &domain.ForbiddenError{Message: "SuperAdmins cannot delete other SuperAdmins via this endpoint"}
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return err
	}

	if err := s.history.Record(ctx, RecordRequest{
		UserID:     &actor.ID,
		Action:     domain.ActionUserDeleted,
		EntityType: domain.EntityUser,
		EntityID:   &targetID,
		Details:    fmt.Sprintf("Deleted user: %s", user.FullName),
	}); err != nil {
		return err
	}

	s.events.Emit("userDeleted", map[string]int64{"id": targetID})

	return nil
}

// CreateAdminRequest represents admin creation input
type CreateAdminRequest struct {
	FullName string
	Email    string
	Password string
}

// CreateAdmin creates a new Admin user. Reachable by SuperAdmins only (the
// route declares the requirement).
func (s *UserService) CreateAdmin(ctx context.Context, req CreateAdminRequest, actor *domain.User) (*domain.PublicUser, error) {
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

	admin := &domain.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FullName:     req.FullName,
		Role:         domain.RoleAdmin,
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	if err := s.history.Record(ctx, RecordRequest{
		UserID:     &actor.ID,
		Action:     domain.ActionAdminCreated,
		EntityType: domain.EntityUser,
		EntityID:   &admin.ID,
		Details: fmt.Sprintf("SuperAdmin (ID: %d) created new Admin: %s (ID: %d).",
			actor.ID, admin.FullName, admin.ID),
	}); err != nil {
		return nil, err
	}

	public := admin.Public()
	return &public, nil
}
