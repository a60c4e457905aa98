package tests

import (
	"fmt"
	"net/http"

	"github.com/ilkol21/company-crm/internal/domain"
	"github.com/ilkol21/company-crm/internal/service"
)

func companyPath(id int64) string {
	return fmt.Sprintf("/companies/%d", id)
}

// CompanyE2ESuite exercises company CRUD, owner scoping and the audit
// trail over HTTP.
type CompanyE2ESuite struct {
	BaseTestSuite
}

type companyListBody struct {
	Companies []domain.Company `json:"companies"`
	Total     int64            `json:"total"`
}

func (s *CompanyE2ESuite) TestOwnerScoping() {
	owner := s.RegisterAndLogin("Owner", "owner@example.com", "ownerPass123", domain.RoleUser)
	stranger := s.RegisterAndLogin("Stranger", "stranger@example.com", "strangerPass1", domain.RoleUser)
	admin := s.RegisterAndLogin("Admin", "companyadmin@example.com", "adminPass123", domain.RoleAdmin)

	var created domain.Company
	status := s.DoJSON(http.MethodPost, "/companies", owner.AccessToken, map[string]any{
		"name":    "Acme Widgets",
		"service": "manufacturing",
		"capital": 50000.0,
	}, &created)
	s.Require().Equal(http.StatusCreated, status)
	s.Require().Equal(owner.User.ID, created.OwnerID)

	// The owner sees it, the stranger does not
	var list companyListBody
	status = s.DoJSON(http.MethodGet, "/companies", owner.AccessToken, nil, &list)
	s.Require().Equal(http.StatusOK, status)
	s.Require().Len(list.Companies, 1)

	status = s.DoJSON(http.MethodGet, "/companies", stranger.AccessToken, nil, &list)
	s.Require().Equal(http.StatusOK, status)
	s.Require().Empty(list.Companies)

	// Direct access by id is forbidden for the stranger
	path := companyPath(created.ID)
	status = s.DoJSON(http.MethodGet, path, stranger.AccessToken, nil, nil)
	s.Require().Equal(http.StatusForbidden, status)

	status = s.DoJSON(http.MethodPatch, path, stranger.AccessToken, map[string]any{"name": "Hijacked"}, nil)
	s.Require().Equal(http.StatusForbidden, status)

	status = s.DoJSON(http.MethodDelete, path, stranger.AccessToken, nil, nil)
	s.Require().Equal(http.StatusForbidden, status)

	// Admins see everything
	status = s.DoJSON(http.MethodGet, "/companies", admin.AccessToken, nil, &list)
	s.Require().Equal(http.StatusOK, status)
	s.Require().Len(list.Companies, 1)

	var stats service.CompanyStats
	status = s.DoJSON(http.MethodGet, "/companies/dashboard/stats", admin.AccessToken, nil, &stats)
	s.Require().Equal(http.StatusOK, status)
	s.Require().Equal(int64(1), stats.Count)
	s.Require().InDelta(50000.0, stats.TotalCapital, 0.01)

	// The owner can update and delete its own company
	var updated domain.Company
	status = s.DoJSON(http.MethodPatch, path, owner.AccessToken, map[string]any{"name": "Acme Rebranded"}, &updated)
	s.Require().Equal(http.StatusOK, status)
	s.Require().Equal("Acme Rebranded", updated.Name)

	status = s.DoJSON(http.MethodDelete, path, owner.AccessToken, nil, nil)
	s.Require().Equal(http.StatusOK, status)

	status = s.DoJSON(http.MethodGet, path, owner.AccessToken, nil, nil)
	s.Require().Equal(http.StatusNotFound, status)
}

func (s *CompanyE2ESuite) TestAuditTrail() {
	admin := s.RegisterAndLogin("Audit Admin", "audit@example.com", "auditPass123", domain.RoleAdmin)

	status := s.DoJSON(http.MethodPost, "/companies", admin.AccessToken, map[string]any{
		"name": "Audited Co", "capital": 100.0,
	}, nil)
	s.Require().Equal(http.StatusCreated, status)

	var body struct {
		Records []domain.History `json:"records"`
		Total   int64            `json:"total"`
	}
	status = s.DoJSON(http.MethodGet, "/history", admin.AccessToken, nil, &body)
	s.Require().Equal(http.StatusOK, status)
	s.Require().NotEmpty(body.Records)

	actions := make(map[domain.ActionType]bool)
	for _, rec := range body.Records {
		actions[rec.Action] = true
	}
	s.Require().True(actions[domain.ActionUserCreated])
	s.Require().True(actions[domain.ActionCompanyCreated])
}
