package controller

import (
	"net/http"

	"github.com/ilkol21/company-crm/internal/middleware"
	"github.com/ilkol21/company-crm/internal/service"
)

// HistoryController exposes the audit trail
type HistoryController struct {
	historyService service.IHistoryService
}

// NewHistoryController creates a new history controller
func NewHistoryController(historyService service.IHistoryService) *HistoryController {
	return &HistoryController{historyService: historyService}
}

// List handles GET /history
func (c *HistoryController) List(w http.ResponseWriter, r *http.Request) {
	resp, err := c.historyService.List(r.Context(), service.ListHistoryRequest{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	})
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"records": resp.Records,
		"total":   resp.Total,
	})
}
