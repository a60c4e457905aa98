package controller

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ilkol21/company-crm/internal/middleware"
	"github.com/ilkol21/company-crm/internal/service"
)

// CompanyController handles company CRUD and dashboard routes
type CompanyController struct {
	companyService service.ICompanyService
	logger         *zap.Logger
}

// NewCompanyController creates a new company controller
func NewCompanyController(companyService service.ICompanyService, logger *zap.Logger) *CompanyController {
	return &CompanyController{
		companyService: companyService,
		logger:         logger,
	}
}

type companyRequest struct {
	Name        string   `json:"name"`
	Service     *string  `json:"service"`
	Capital     float64  `json:"capital"`
	Logo        *string  `json:"logo"`
	LocationLat *float64 `json:"locationLat"`
	LocationLon *float64 `json:"locationLon"`
}

// Create handles POST /companies
func (c *CompanyController) Create(w http.ResponseWriter, r *http.Request) {
	a := actor(w, r)
	if a == nil {
		return
	}

	var req companyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	company, err := c.companyService.Create(r.Context(), service.CreateCompanyRequest{
		Name:        req.Name,
		Service:     req.Service,
		Capital:     req.Capital,
		Logo:        req.Logo,
		LocationLat: req.LocationLat,
		LocationLon: req.LocationLon,
	}, a)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, company)
}

// List handles GET /companies
func (c *CompanyController) List(w http.ResponseWriter, r *http.Request) {
	a := actor(w, r)
	if a == nil {
		return
	}

	req := service.ListCompaniesRequest{
		Page:           queryInt(r, "page"),
		Limit:          queryInt(r, "limit"),
		SortBy:         r.URL.Query().Get("sortBy"),
		SortOrder:      r.URL.Query().Get("sortOrder"),
		NameSearch:     r.URL.Query().Get("name"),
		ServiceSearch:  r.URL.Query().Get("service"),
		CreatedAtStart: queryTime(r, "createdAtStart"),
		CreatedAtEnd:   queryTime(r, "createdAtEnd"),
		CapitalMin:     queryFloat(r, "capitalMin"),
		CapitalMax:     queryFloat(r, "capitalMax"),
	}

	resp, err := c.companyService.List(r.Context(), req, a)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"companies": resp.Companies,
		"total":     resp.Total,
	})
}

// Get handles GET /companies/{id}
func (c *CompanyController) Get(w http.ResponseWriter, r *http.Request) {
	a := actor(w, r)
	if a == nil {
		return
	}
	id, err := idParam(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	company, err := c.companyService.Get(r.Context(), id, a)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, company)
}

type updateCompanyRequest struct {
	Name        *string  `json:"name"`
	Service     *string  `json:"service"`
	Capital     *float64 `json:"capital"`
	Logo        *string  `json:"logo"`
	LocationLat *float64 `json:"locationLat"`
	LocationLon *float64 `json:"locationLon"`
}

// Update handles PATCH /companies/{id}
func (c *CompanyController) Update(w http.ResponseWriter, r *http.Request) {
	a := actor(w, r)
	if a == nil {
		return
	}
	id, err := idParam(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	var req updateCompanyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	company, err := c.companyService.Update(r.Context(), id, service.UpdateCompanyRequest{
		Name:        req.Name,
		Service:     req.Service,
		Capital:     req.Capital,
		Logo:        req.Logo,
		LocationLat: req.LocationLat,
		LocationLon: req.LocationLon,
	}, a)
	if err != nil {
		c.logger.Warn("company update rejected",
			zap.Int64("actor_id", a.ID),
			zap.Int64("company_id", id),
			zap.Error(err),
		)
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, company)
}

// Delete handles DELETE /companies/{id}
func (c *CompanyController) Delete(w http.ResponseWriter, r *http.Request) {
	a := actor(w, r)
	if a == nil {
		return
	}
	id, err := idParam(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	if err := c.companyService.Delete(r.Context(), id, a); err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "company deleted"})
}

// Stats handles GET /companies/dashboard/stats
func (c *CompanyController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.companyService.Stats(r.Context())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, stats)
}
