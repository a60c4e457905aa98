package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ilkol21/company-crm/internal/domain"
	"github.com/ilkol21/company-crm/internal/repository"
)

// CompanyService handles company management business logic. Plain Users see
// and touch only their own companies; Admins and SuperAdmins see all.
type CompanyService struct {
	companyRepo repository.ICompanyRepository
	history     *HistoryService
	events      Emitter
}

// NewCompanyService creates a new company service
func NewCompanyService(
	companyRepo repository.ICompanyRepository,
	history *HistoryService,
	events Emitter,
) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		history:     history,
		events:      events,
	}
}

// CreateCompanyRequest represents company creation input
type CreateCompanyRequest struct {
	Name        string
	Service     *string
	Capital     float64
	Logo        *string
	LocationLat *float64
	LocationLon *float64
}

// Create persists a new company owned by the actor
func (s *CompanyService) Create(ctx context.Context, req CreateCompanyRequest, actor *domain.User) (*domain.Company, error) {
	if req.Name == "" {
		return nil, &domain.ValidationError{Message: "name is required", Field: "name"}
	}

	company := &domain.Company{
		Name:        req.Name,
		Service:     req.Service,
		Capital:     req.Capital,
		Logo:        req.Logo,
		LocationLat: req.LocationLat,
		LocationLon: req.LocationLon,
		OwnerID:     actor.ID,
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	if err := s.history.Record(ctx, RecordRequest{
		UserID:     &actor.ID,
		Action:     domain.ActionCompanyCreated,
		EntityType: domain.EntityCompany,
		EntityID:   &company.ID,
		Details: fmt.Sprintf("User (ID: %d) created company: %s (ID: %d).",
			actor.ID, company.Name, company.ID),
	}); err != nil {
		return nil, err
	}

	s.events.Emit("companyCreated", company)

	return company, nil
}

// ListCompaniesRequest represents company listing input
type ListCompaniesRequest struct {
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
}

// ListCompaniesResponse represents company listing output
type ListCompaniesResponse struct {
	Companies []domain.Company
	Total     int64
}

// List returns companies matching the filters, owner-scoped for plain Users
func (s *CompanyService) List(ctx context.Context, req ListCompaniesRequest, actor *domain.User) (*ListCompaniesResponse, error) {
	query := repository.ListCompaniesQuery{
		Page:           req.Page,
		Limit:          req.Limit,
		SortBy:         req.SortBy,
		SortOrder:      req.SortOrder,
		NameSearch:     req.NameSearch,
		ServiceSearch:  req.ServiceSearch,
		CreatedAtStart: req.CreatedAtStart,
		CreatedAtEnd:   req.CreatedAtEnd,
		CapitalMin:     req.CapitalMin,
		CapitalMax:     req.CapitalMax,
	}

	if actor.Role == domain.RoleUser {
		query.OwnerID = &actor.ID
	}

	companies, total, err := s.companyRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	return &ListCompaniesResponse{Companies: companies, Total: total}, nil
}

// Get returns a single company, denying plain Users access to companies
// they do not own
func (s *CompanyService) Get(ctx context.Context, companyID int64, actor *domain.User) (*domain.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if actor.Role == domain.RoleUser && company.OwnerID != actor.ID {
		return nil, &domain.ForbiddenError{Message: "you do not have access to this company"}
	}

	return company, nil
}

// UpdateCompanyRequest represents company update input. Nil fields are
// untouched.
type UpdateCompanyRequest struct {
	Name        *string
	Service     *string
	Capital     *float64
	Logo        *string
	LocationLat *float64
	LocationLon *float64
}

// Update modifies a company
func (s *CompanyService) Update(ctx context.Context, companyID int64, req UpdateCompanyRequest, actor *domain.User) (*domain.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if actor.Role == domain.RoleUser && company.OwnerID != actor.ID {
		return nil, &domain.ForbiddenError{Message: "you are not authorized to update this company"}
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Service != nil {
		company.Service = req.Service
	}
	if req.Capital != nil {
		company.Capital = *req.Capital
	}
	if req.Logo != nil {
		company.Logo = req.Logo
	}
	if req.LocationLat != nil {
		company.LocationLat = req.LocationLat
	}
	if req.LocationLon != nil {
		company.LocationLon = req.LocationLon
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	if err := s.history.Record(ctx, RecordRequest{
		UserID:     &actor.ID,
		Action:     domain.ActionCompanyEdited,
		EntityType: domain.EntityCompany,
		EntityID:   &company.ID,
		Details: fmt.Sprintf("%s (ID: %d) updated company: %s (ID: %d).",
			actor.Role, actor.ID, company.Name, company.ID),
	}); err != nil {
		return nil, err
	}

	s.events.Emit("companyUpdated", company)

	return company, nil
}

// Delete removes a company
func (s *CompanyService) Delete(ctx context.Context, companyID int64, actor *domain.User) error {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}

	if actor.Role == domain.RoleUser && company.OwnerID != actor.ID {
		return &domain.ForbiddenError{Message: "you are not authorized to delete this company"}
	}

	if err := s.companyRepo.Delete(ctx, companyID); err != nil {
		return err
	}

	if err := s.history.Record(ctx, RecordRequest{
		UserID:     &actor.ID,
		Action:     domain.ActionCompanyDeleted,
		EntityType: domain.EntityCompany,
		EntityID:   &companyID,
		Details: fmt.Sprintf("%s (ID: %d) deleted company: %s (ID: %d).",
			actor.Role, actor.ID, company.Name, company.ID),
	}); err != nil {
		return err
	}

	s.events.Emit("companyDeleted", map[string]int64{"id": companyID})

	return nil
}

// CompanyStats represents aggregate company statistics
type CompanyStats struct {
	Count        int64   `json:"count"`
	TotalCapital float64 `json:"totalCapital"`
}

// Stats returns aggregate statistics across all companies
func (s *CompanyService) Stats(ctx context.Context) (*CompanyStats, error) {
	count, err := s.companyRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	total, err := s.companyRepo.TotalCapital(ctx)
	if err != nil {
		return nil, err
	}

	return &CompanyStats{Count: count, TotalCapital: total}, nil
}
