package mocks

import (
	"context"

	"github.com/ilkol21/company-crm/internal/domain"
	"github.com/ilkol21/company-crm/internal/repository"
)

// MockUserRepository is a mock implementation of IUserRepository
type MockUserRepository struct {
	CreateFunc               func(ctx context.Context, user *domain.User) error
	GetByEmailFunc           func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFunc              func(ctx context.Context, userID int64) (*domain.User, error)
	ListFunc                 func(ctx context.Context, query repository.ListUsersQuery) ([]domain.User, int64, error)
	UpdateFunc               func(ctx context.Context, user *domain.User) error
	UpdatePasswordFunc       func(ctx context.Context, userID int64, newPasswordHash string) error
	SetRefreshTokenHashFunc  func(ctx context.Context, userID int64, hash *string) error
	SwapRefreshTokenHashFunc func(ctx context.Context, userID int64, oldHash, newHash string) (bool, error)
	ExistsEmailFunc          func(ctx context.Context, email string) (bool, error)
	DeleteFunc               func(ctx context.Context, userID int64) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, &domain.NotFoundError{Message: "user not found"}
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID)
	}
	return nil, &domain.NotFoundError{Message: "user not found"}
}

func (m *MockUserRepository) List(ctx context.Context, query repository.ListUsersQuery) ([]domain.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, query)
	}
	return nil, 0, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID int64, newPasswordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, userID, newPasswordHash)
	}
	return nil
}

func (m *MockUserRepository) SetRefreshTokenHash(ctx context.Context, userID int64, hash *string) error {
	if m.SetRefreshTokenHashFunc != nil {
		return m.SetRefreshTokenHashFunc(ctx, userID, hash)
	}
	return nil
}

func (m *MockUserRepository) SwapRefreshTokenHash(ctx context.Context, userID int64, oldHash, newHash string) (bool, error) {
	if m.SwapRefreshTokenHashFunc != nil {
		return m.SwapRefreshTokenHashFunc(ctx, userID, oldHash, newHash)
	}
	return true, nil
}

func (m *MockUserRepository) ExistsEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsEmailFunc != nil {
		return m.ExistsEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, userID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID)
	}
	return nil
}

// MockCompanyRepository is a mock implementation of ICompanyRepository
type MockCompanyRepository struct {
	CreateFunc       func(ctx context.Context, company *domain.Company) error
	GetByIDFunc      func(ctx context.Context, companyID int64) (*domain.Company, error)
	ListFunc         func(ctx context.Context, query repository.ListCompaniesQuery) ([]domain.Company, int64, error)
	UpdateFunc       func(ctx context.Context, company *domain.Company) error
	DeleteFunc       func(ctx context.Context, companyID int64) error
	CountFunc        func(ctx context.Context) (int64, error)
	TotalCapitalFunc func(ctx context.Context) (float64, error)
}

func (m *MockCompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, company)
	}
	return nil
}

func (m *MockCompanyRepository) GetByID(ctx context.Context, companyID int64) (*domain.Company, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, companyID)
	}
	return nil, &domain.NotFoundError{Message: "company not found"}
}

func (m *MockCompanyRepository) List(ctx context.Context, query repository.ListCompaniesQuery) ([]domain.Company, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, query)
	}
	return nil, 0, nil
}

func (m *MockCompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, company)
	}
	return nil
}

func (m *MockCompanyRepository) Delete(ctx context.Context, companyID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, companyID)
	}
	return nil
}

func (m *MockCompanyRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockCompanyRepository) TotalCapital(ctx context.Context) (float64, error) {
	if m.TotalCapitalFunc != nil {
		return m.TotalCapitalFunc(ctx)
	}
	return 0, nil
}

// MockHistoryRepository is a mock implementation of IHistoryRepository
type MockHistoryRepository struct {
	CreateFunc func(ctx context.Context, record *domain.History) error
	ListFunc   func(ctx context.Context, page, limit int) ([]domain.History, int64, error)
}

func (m *MockHistoryRepository) Create(ctx context.Context, record *domain.History) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	return nil
}

func (m *MockHistoryRepository) List(ctx context.Context, page, limit int) ([]domain.History, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, limit)
	}
	return nil, 0, nil
}

// Compile-time checks
var (
	_ repository.IUserRepository    = (*MockUserRepository)(nil)
	_ repository.ICompanyRepository = (*MockCompanyRepository)(nil)
	_ repository.IHistoryRepository = (*MockHistoryRepository)(nil)
)
