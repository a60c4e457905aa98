package service

import (
	"context"

	"github.com/ilkol21/company-crm/internal/domain"
)

// IAuthService defines the interface for the auth core
type IAuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.PublicUser, error)
	ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, user *domain.User) (*LoginResponse, error)
	Refresh(ctx context.Context, userID int64, presented string) (*TokenPair, error)
	Logout(ctx context.Context, userID int64) error
	ResetPassword(ctx context.Context, email, newPassword string) error
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
}

// IUserService defines the interface for user management
type IUserService interface {
	List(ctx context.Context, req ListUsersRequest) (*ListUsersResponse, error)
	Get(ctx context.Context, userID int64) (*domain.PublicUser, error)
	Update(ctx context.Context, targetID int64, req UpdateUserRequest, actor *domain.User) (*domain.PublicUser, error)
	Delete(ctx context.Context, targetID int64, actor *domain.User) error
	CreateAdmin(ctx context.Context, req CreateAdminRequest, actor *domain.User) (*domain.PublicUser, error)
}

// ICompanyService defines the interface for company management
type ICompanyService interface {
	Create(ctx context.Context, req CreateCompanyRequest, actor *domain.User) (*domain.Company, error)
	List(ctx context.Context, req ListCompaniesRequest, actor *domain.User) (*ListCompaniesResponse, error)
	Get(ctx context.Context, companyID int64, actor *domain.User) (*domain.Company, error)
	Update(ctx context.Context, companyID int64, req UpdateCompanyRequest, actor *domain.User) (*domain.Company, error)
	Delete(ctx context.Context, companyID int64, actor *domain.User) error
	Stats(ctx context.Context) (*CompanyStats, error)
}

// IHistoryService defines the interface for the audit trail
type IHistoryService interface {
	Record(ctx context.Context, req RecordRequest) error
	List(ctx context.Context, req ListHistoryRequest) (*ListHistoryResponse, error)
}

// Compile-time checks
var (
	_ IAuthService    = (*AuthService)(nil)
	_ IUserService    = (*UserService)(nil)
	_ ICompanyService = (*CompanyService)(nil)
	_ IHistoryService = (*HistoryService)(nil)
)
