// Package mocks provides function-field test doubles for the service
// interfaces.
package mocks

import (
	"context"

	"github.com/ilkol21/company-crm/internal/domain"
	"github.com/ilkol21/company-crm/internal/service"
)

// MockAuthService is a configurable IAuthService double.
type MockAuthService struct {
	RegisterFunc            func(ctx context.Context, req service.RegisterRequest) (*domain.PublicUser, error)
	ValidateCredentialsFunc func(ctx context.Context, email, password string) (*domain.User, error)
	LoginFunc               func(ctx context.Context, user *domain.User) (*service.LoginResponse, error)
	RefreshFunc             func(ctx context.Context, userID int64, presented string) (*service.TokenPair, error)
	LogoutFunc              func(ctx context.Context, userID int64) error
	ResetPasswordFunc       func(ctx context.Context, email, newPassword string) error
	ChangePasswordFunc      func(ctx context.Context, userID int64, currentPassword, newPassword string) error
}

func (m *MockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*domain.PublicUser, error) {
	if m.RegisterFunc == nil {
		return nil, &domain.InternalError{Message: "RegisterFunc not set"}
	}
	return m.RegisterFunc(ctx, req)
}

func (m *MockAuthService) ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	if m.ValidateCredentialsFunc == nil {
		return nil, &domain.UnauthorizedError{Message: "invalid email or password"}
	}
	return m.ValidateCredentialsFunc(ctx, email, password)
}

func (m *MockAuthService) Login(ctx context.Context, user *domain.User) (*service.LoginResponse, error) {
	if m.LoginFunc == nil {
		return nil, &domain.InternalError{Message: "LoginFunc not set"}
	}
	return m.LoginFunc(ctx, user)
}

func (m *MockAuthService) Refresh(ctx context.Context, userID int64, presented string) (*service.TokenPair, error) {
	if m.RefreshFunc == nil {
		return nil, &domain.UnauthorizedError{Message: "refresh not configured"}
	}
	return m.RefreshFunc(ctx, userID, presented)
}

func (m *MockAuthService) Logout(ctx context.Context, userID int64) error {
	if m.LogoutFunc == nil {
		return nil
	}
	return m.LogoutFunc(ctx, userID)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if m.ResetPasswordFunc == nil {
		return nil
	}
	return m.ResetPasswordFunc(ctx, email, newPassword)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if m.ChangePasswordFunc == nil {
		return nil
	}
	return m.ChangePasswordFunc(ctx, userID, currentPassword, newPassword)
}

// MockUserService is a configurable IUserService double.
type MockUserService struct {
	ListFunc        func(ctx context.Context, req service.ListUsersRequest) (*service.ListUsersResponse, error)
	GetFunc         func(ctx context.Context, userID int64) (*domain.PublicUser, error)
	UpdateFunc      func(ctx context.Context, targetID int64, req service.UpdateUserRequest, actor *domain.User) (*domain.PublicUser, error)
	DeleteFunc      func(ctx context.Context, targetID int64, actor *domain.User) error
	CreateAdminFunc func(ctx context.Context, req service.CreateAdminRequest, actor *domain.User) (*domain.PublicUser, error)
}

func (m *MockUserService) List(ctx context.Context, req service.ListUsersRequest) (*service.ListUsersResponse, error) {
	if m.ListFunc == nil {
		return &service.ListUsersResponse{}, nil
	}
	return m.ListFunc(ctx, req)
}

func (m *MockUserService) Get(ctx context.Context, userID int64) (*domain.PublicUser, error) {
	if m.GetFunc == nil {
		return nil, &domain.NotFoundError{Message: "user not found"}
	}
	return m.GetFunc(ctx, userID)
}

func (m *MockUserService) Update(ctx context.Context, targetID int64, req service.UpdateUserRequest, actor *domain.User) (*domain.PublicUser, error) {
	if m.UpdateFunc == nil {
		return nil, &domain.NotFoundError{Message: "user not found"}
	}
	return m.UpdateFunc(ctx, targetID, req, actor)
}

func (m *MockUserService) Delete(ctx context.Context, targetID int64, actor *domain.User) error {
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, targetID, actor)
}

func (m *MockUserService) CreateAdmin(ctx context.Context, req service.CreateAdminRequest, actor *domain.User) (*domain.PublicUser, error) {
	if m.CreateAdminFunc == nil {
		return nil, &domain.InternalError{Message: "CreateAdminFunc not set"}
	}
	return m.CreateAdminFunc(ctx, req, actor)
}

// MockCompanyService is a configurable ICompanyService double.
type MockCompanyService struct {
	CreateFunc func(ctx context.Context, req service.CreateCompanyRequest, actor *domain.User) (*domain.Company, error)
	ListFunc   func(ctx context.Context, req service.ListCompaniesRequest, actor *domain.User) (*service.ListCompaniesResponse, error)
	GetFunc    func(ctx context.Context, companyID int64, actor *domain.User) (*domain.Company, error)
	UpdateFunc func(ctx context.Context, companyID int64, req service.UpdateCompanyRequest, actor *domain.User) (*domain.Company, error)
	DeleteFunc func(ctx context.Context, companyID int64, actor *domain.User) error
	StatsFunc  func(ctx context.Context) (*service.CompanyStats, error)
}

func (m *MockCompanyService) Create(ctx context.Context, req service.CreateCompanyRequest, actor *domain.User) (*domain.Company, error) {
	if m.CreateFunc == nil {
		return nil, &domain.InternalError{Message: "CreateFunc not set"}
	}
	return m.CreateFunc(ctx, req, actor)
}

func (m *MockCompanyService) List(ctx context.Context, req service.ListCompaniesRequest, actor *domain.User) (*service.ListCompaniesResponse, error) {
	if m.ListFunc == nil {
		return &service.ListCompaniesResponse{}, nil
	}
	return m.ListFunc(ctx, req, actor)
}

func (m *MockCompanyService) Get(ctx context.Context, companyID int64, actor *domain.User) (*domain.Company, error) {
	if m.GetFunc == nil {
		return nil, &domain.NotFoundError{Message: "company not found"}
	}
	return m.GetFunc(ctx, companyID, actor)
}

func (m *MockCompanyService) Update(ctx context.Context, companyID int64, req service.UpdateCompanyRequest, actor *domain.User) (*domain.Company, error) {
	if m.UpdateFunc == nil {
		return nil, &domain.NotFoundError{Message: "company not found"}
	}
	return m.UpdateFunc(ctx, companyID, req, actor)
}

func (m *MockCompanyService) Delete(ctx context.Context, companyID int64, actor *domain.User) error {
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, companyID, actor)
}

func (m *MockCompanyService) Stats(ctx context.Context) (*service.CompanyStats, error) {
	if m.StatsFunc == nil {
		return &service.CompanyStats{}, nil
	}
	return m.StatsFunc(ctx)
}

// MockHistoryService is a configurable IHistoryService double.
type MockHistoryService struct {
	RecordFunc func(ctx context.Context, req service.RecordRequest) error
	ListFunc   func(ctx context.Context, req service.ListHistoryRequest) (*service.ListHistoryResponse, error)
}

func (m *MockHistoryService) Record(ctx context.Context, req service.RecordRequest) error {
	if m.RecordFunc == nil {
		return nil
	}
	return m.RecordFunc(ctx, req)
}

func (m *MockHistoryService) List(ctx context.Context, req service.ListHistoryRequest) (*service.ListHistoryResponse, error) {
	if m.ListFunc == nil {
		return &service.ListHistoryResponse{}, nil
	}
	return m.ListFunc(ctx, req)
}

// Compile-time interface checks
var (
	_ service.IAuthService    = (*MockAuthService)(nil)
	_ service.IUserService    = (*MockUserService)(nil)
	_ service.ICompanyService = (*MockCompanyService)(nil)
	_ service.IHistoryService = (*MockHistoryService)(nil)
)
