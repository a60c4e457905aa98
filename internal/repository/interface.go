package repository

import (
	"context"

	"github.com/ilkol21/company-crm/internal/domain"
)

// IUserRepository defines the interface for user repository operations
type IUserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, userID int64) (*domain.User, error)
	List(ctx context.Context, query ListUsersQuery) ([]domain.User, int64, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, userID int64, newPasswordHash string) error
	SetRefreshTokenHash(ctx context.Context, userID int64, hash *string) error
	SwapRefreshTokenHash(ctx context.Context, userID int64, oldHash, newHash string) (bool, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
	Delete(ctx context.Context, userID int64) error
}

// ICompanyRepository defines the interface for company repository operations
type ICompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, companyID int64) (*domain.Company, error)
	List(ctx context.Context, query ListCompaniesQuery) ([]domain.Company, int64, error)
	Update(ctx context.Context, company *domain.Company) error
	Delete(ctx context.Context, companyID int64) error
	Count(ctx context.Context) (int64, error)
	TotalCapital(ctx context.Context) (float64, error)
}

// IHistoryRepository defines the interface for audit-log repository operations
type IHistoryRepository interface {
	Create(ctx context.Context, record *domain.History) error
	List(ctx context.Context, page, limit int) ([]domain.History, int64, error)
}

// Compile-time checks to ensure structs implement their interfaces
var (
	_ IUserRepository    = (*UserRepository)(nil)
	_ ICompanyRepository = (*CompanyRepository)(nil)
	_ IHistoryRepository = (*HistoryRepository)(nil)
)
