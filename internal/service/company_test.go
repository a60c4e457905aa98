package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkol21/company-crm/internal/domain"
	"github.com/ilkol21/company-crm/internal/repository"
	"github.com/ilkol21/company-crm/internal/repository/mocks"
)

func testCompanyService(companyRepo *mocks.MockCompanyRepository) (*CompanyService, *recordingEmitter) {
	emitter := &recordingEmitter{}
	history := NewHistoryService(&mocks.MockHistoryRepository{})
	return NewCompanyService(companyRepo, history, emitter), emitter
}

func TestCompanyService_CreateTagsOwnerAndEmits(t *testing.T) {
	actor := &domain.User{ID: 7, Role: domain.RoleUser}
	var created *domain.Company

	companyRepo := &mocks.MockCompanyRepository{
		CreateFunc: func(ctx context.Context, company *domain.Company) error {
			company.ID = 1
			created = company
			return nil
		},
	}
	svc, emitter := testCompanyService(companyRepo)

	company, err := svc.Create(context.Background(), CreateCompanyRequest{
		Name:    "Acme",
		Capital: 1000,
	}, actor)
	require.NoError(t, err)

	assert.Equal(t, int64(7), company.OwnerID)
	require.NotNil(t, created)
	assert.Equal(t, []string{"companyCreated"}, emitter.names())
}

func TestCompanyService_CreateRequiresName(t *testing.T) {
	svc, _ := testCompanyService(&mocks.MockCompanyRepository{})

	_, err := svc.Create(context.Background(), CreateCompanyRequest{}, &domain.User{ID: 1, Role: domain.RoleUser})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCompanyService_ListScopesPlainUsers(t *testing.T) {
	var captured repository.ListCompaniesQuery
	companyRepo := &mocks.MockCompanyRepository{
		ListFunc: func(ctx context.Context, query repository.ListCompaniesQuery) ([]domain.Company, int64, error) {
			captured = query
			return nil, 0, nil
		},
	}
	svc, _ := testCompanyService(companyRepo)

	_, err := svc.List(context.Background(), ListCompaniesRequest{}, &domain.User{ID: 7, Role: domain.RoleUser})
	require.NoError(t, err)
	require.NotNil(t, captured.OwnerID)
	assert.Equal(t, int64(7), *captured.OwnerID)

	_, err = svc.List(context.Background(), ListCompaniesRequest{}, &domain.User{ID: 8, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Nil(t, captured.OwnerID)
}

func TestCompanyService_OwnerScoping(t *testing.T) {
	company := &domain.Company{ID: 1, Name: "Acme", OwnerID: 7}
	companyRepo := &mocks.MockCompanyRepository{
		GetByIDFunc: func(ctx context.Context, companyID int64) (*domain.Company, error) {
			return company, nil
		},
	}
	svc, _ := testCompanyService(companyRepo)

	owner := &domain.User{ID: 7, Role: domain.RoleUser}
	stranger := &domain.User{ID: 8, Role: domain.RoleUser}
	admin := &domain.User{ID: 9, Role: domain.RoleAdmin}

	_, err := svc.Get(context.Background(), 1, owner)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), 1, stranger)
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))

	// Admins see all companies.
	_, err = svc.Get(context.Background(), 1, admin)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), 1, UpdateCompanyRequest{Name: strRef("Evil")}, stranger)
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))

	err = svc.Delete(context.Background(), 1, stranger)
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))
}

func TestCompanyService_UpdateEmits(t *testing.T) {
	company := &domain.Company{ID: 1, Name: "Acme", OwnerID: 7, Capital: 100}
	var saved *domain.Company
	companyRepo := &mocks.MockCompanyRepository{
		GetByIDFunc: func(ctx context.Context, companyID int64) (*domain.Company, error) {
			return company, nil
		},
		UpdateFunc: func(ctx context.Context, c *domain.Company) error {
			saved = c
			return nil
		},
	}
	svc, emitter := testCompanyService(companyRepo)

	capital := 500.0
	updated, err := svc.Update(context.Background(), 1, UpdateCompanyRequest{Capital: &capital}, &domain.User{ID: 7, Role: domain.RoleUser})
	require.NoError(t, err)

	assert.Equal(t, 500.0, updated.Capital)
	require.NotNil(t, saved)
	assert.Equal(t, []string{"companyUpdated"}, emitter.names())
}

func TestCompanyService_Stats(t *testing.T) {
	companyRepo := &mocks.MockCompanyRepository{
		CountFunc: func(ctx context.Context) (int64, error) {
			return 3, nil
		},
		TotalCapitalFunc: func(ctx context.Context) (float64, error) {
			return 4500.5, nil
		},
	}
	svc, _ := testCompanyService(companyRepo)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Count)
	assert.Equal(t, 4500.5, stats.TotalCapital)
}
