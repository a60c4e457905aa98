package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ilkol21/company-crm/internal/domain"
)

// ListUsersQuery describes pagination, sorting and filtering for user lists
type ListUsersQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Role      *domain.Role
	Search    string
}

var allowedUserSortFields = map[string]bool{
	"id":         true,
	"email":      true,
	"full_name":  true,
	"role":       true,
	"created_at": true,
	"updated_at": true,
}

// UserRepository handles user-related database operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &domain.ConflictError{Message: "email already registered"}
		}
		return &domain.InternalError{Message: "failed to create user", Err: err}
	}
	return nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Message: "user not found"}
		}
		return nil, &domain.InternalError{Message: "failed to get user", Err: err}
	}

	return &user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Message: "user not found"}
		}
		return nil, &domain.InternalError{Message: "failed to get user", Err: err}
	}

	return &user, nil
}

// List retrieves users with pagination, optional role filter and search
func (r *UserRepository) List(ctx context.Context, query ListUsersQuery) ([]domain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.User{})

	if query.Role != nil {
		q = q.Where("role = ?", *query.Role)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		q = q.Where("LOWER(full_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, &domain.InternalError{Message: "failed to count users", Err: err}
	}

	sortBy := query.SortBy
	if !allowedUserSortFields[sortBy] {
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if query.SortOrder == "ASC" {
		sortOrder = "ASC"
	}

	page, limit := normalizePage(query.Page, query.Limit)

	var users []domain.User
	err := q.Order(sortBy + " " + sortOrder).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, &domain.InternalError{Message: "failed to list users", Err: err}
	}

	return users, total, nil
}

// Update saves all fields of an existing user
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return &domain.InternalError{Message: "failed to update user", Err: err}
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, newPasswordHash string) error {
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update("password_hash", newPasswordHash).Error
	if err != nil {
		return &domain.InternalError{Message: "failed to update password", Err: err}
	}
	return nil
}

// SetRefreshTokenHash overwrites the stored refresh-token hash. A nil hash
// clears it (no active session).
func (r *UserRepository) SetRefreshTokenHash(ctx context.Context, userID int64, hash *string) error {
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update("refresh_token_hash", hash).Error
	if err != nil {
		return &domain.InternalError{Message: "failed to set refresh token hash", Err: err}
	}
	return nil
}

// SwapRefreshTokenHash replaces oldHash with newHash only if oldHash is
// still the stored value. Returns false when another rotation won the race;
// the row is left untouched in that case.
func (r *UserRepository) SwapRefreshTokenHash(ctx context.Context, userID int64, oldHash, newHash string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ? AND refresh_token_hash = ?", userID, oldHash).
		Update("refresh_token_hash", newHash)
	if result.Error != nil {
		return false, &domain.InternalError{Message: "failed to rotate refresh token hash", Err: result.Error}
	}
	return result.RowsAffected > 0, nil
}

// ExistsEmail checks if an email already exists
func (r *UserRepository) ExistsEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ?", email).
		Count(&count).Error

	if err != nil {
		return false, &domain.InternalError{Message: "failed to check email", Err: err}
	}

	return count > 0, nil
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		Delete(&domain.User{}).Error
	if err != nil {
		return &domain.InternalError{Message: "failed to delete user", Err: err}
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
