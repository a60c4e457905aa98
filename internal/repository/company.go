package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ilkol21/company-crm/internal/domain"
)

// ListCompaniesQuery describes pagination, sorting and filtering for company
// lists. A non-nil OwnerID restricts results to that owner.
type ListCompaniesQuery struct {
	Page           int
	Limit          int
	SortBy         string
	SortOrder      string
	NameSearch     string
	ServiceSearch  string
	CreatedAtStart *time.Time
	CreatedAtEnd   *time.Time
	CapitalMin     *float64
	CapitalMax     *float64
	OwnerID        *int64
}

var allowedCompanySortFields = map[string]bool{
	"id":         true,
	"name":       true,
	"service":    true,
	"capital":    true,
	"created_at": true,
	"updated_at": true,
}

// CompanyRepository handles company-related database operations
type CompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create persists a new company
func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		return &domain.InternalError{Message: "failed to create company", Err: err}
	}
	return nil
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(ctx context.Context, companyID int64) (*domain.Company, error) {
	var company domain.Company
	err := r.db.WithContext(ctx).
		Where("id = ?", companyID).
		First(&company).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Message: "company not found"}
		}
		return nil, &domain.InternalError{Message: "failed to get company", Err: err}
	}

	return &company, nil
}

// List retrieves companies matching the query filters
func (r *CompanyRepository) List(ctx context.Context, query ListCompaniesQuery) ([]domain.Company, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Company{})

	if query.OwnerID != nil {
		q = q.Where("owner_id = ?", *query.OwnerID)
	}
	if query.NameSearch != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+query.NameSearch+"%")
	}
	if query.ServiceSearch != "" {
		q = q.Where("LOWER(service) LIKE LOWER(?)", "%"+query.ServiceSearch+"%")
	}
	if query.CreatedAtStart != nil {
		q = q.Where("created_at >= ?", *query.CreatedAtStart)
	}
	if query.CreatedAtEnd != nil {
		q = q.Where("created_at <= ?", *query.CreatedAtEnd)
	}
	if query.CapitalMin != nil {
		q = q.Where("capital >= ?", *query.CapitalMin)
	}
	if query.CapitalMax != nil {
		q = q.Where("capital <= ?", *query.CapitalMax)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, &domain.InternalError{Message: "failed to count companies", Err: err}
	}

	sortBy := query.SortBy
	if !allowedCompanySortFields[sortBy] {
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if query.SortOrder == "ASC" {
		sortOrder = "ASC"
	}

	page, limit := normalizePage(query.Page, query.Limit)

	var companies []domain.Company
	err := q.Order(sortBy + " " + sortOrder).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&companies).Error
	if err != nil {
		return nil, 0, &domain.InternalError{Message: "failed to list companies", Err: err}
	}

	return companies, total, nil
}

// Update saves all fields of an existing company
func (r *CompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	if err := r.db.WithContext(ctx).Save(company).Error; err != nil {
		return &domain.InternalError{Message: "failed to update company", Err: err}
	}
	return nil
}

// Delete removes a company
func (r *CompanyRepository) Delete(ctx context.Context, companyID int64) error {
	err := r.db.WithContext(ctx).
		Where("id = ?", companyID).
		Delete(&domain.Company{}).Error
	if err != nil {
		return &domain.InternalError{Message: "failed to delete company", Err: err}
	}
	return nil
}

// Count returns the total number of companies
func (r *CompanyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Company{}).
		Count(&count).Error
	if err != nil {
		return 0, &domain.InternalError{Message: "failed to count companies", Err: err}
	}
	return count, nil
}

// TotalCapital returns the sum of capital across all companies
func (r *CompanyRepository) TotalCapital(ctx context.Context) (float64, error) {
	var total *float64
	err := r.db.WithContext(ctx).
		Model(&domain.Company{}).
		Select("SUM(capital)").
		Scan(&total).Error
	if err != nil {
		return 0, &domain.InternalError{Message: "failed to sum capital", Err: err}
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
