package service

import (
	"context"

	"github.com/ilkol21/company-crm/internal/domain"
	"github.com/ilkol21/company-crm/internal/repository"
)

// HistoryService is the append-only audit-log sink. Every mutating
// operation in the system records what happened and who did it.
type HistoryService struct {
	historyRepo repository.IHistoryRepository
}

// NewHistoryService creates a new history service
func NewHistoryService(historyRepo repository.IHistoryRepository) *HistoryService {
	return &HistoryService{historyRepo: historyRepo}
}

// RecordRequest describes one audit event
type RecordRequest struct {
	UserID     *int64
	Action     domain.ActionType
	EntityType domain.EntityType
	EntityID   *int64
	Details    string
}

// Record appends an audit event
func (s *HistoryService) Record(ctx context.Context, req RecordRequest) error {
	return s.historyRepo.Create(ctx, &domain.History{
		UserID:     req.UserID,
		Action:     req.Action,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Details:    req.Details,
	})
}

// ListHistoryRequest represents audit listing input
type ListHistoryRequest struct {
	Page  int
	Limit int
}

// ListHistoryResponse represents audit listing output
type ListHistoryResponse struct {
	Records []domain.History
	Total   int64
}

// List returns audit records, newest first
func (s *HistoryService) List(ctx context.Context, req ListHistoryRequest) (*ListHistoryResponse, error) {
	records, total, err := s.historyRepo.List(ctx, req.Page, req.Limit)
	if err != nil {
		return nil, err
	}
	return &ListHistoryResponse{Records: records, Total: total}, nil
}
