package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ilkol21/company-crm/internal/domain"
)

// HistoryRepository handles audit-log database operations. The table is
// append-only: records are never updated or deleted by application code.
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create appends an audit record
func (r *HistoryRepository) Create(ctx context.Context, record *domain.History) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return &domain.InternalError{Message: "failed to create history record", Err: err}
	}
	return nil
}

// List retrieves audit records, newest first
func (r *HistoryRepository) List(ctx context.Context, page, limit int) ([]domain.History, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.History{}).Count(&total).Error; err != nil {
		return nil, 0, &domain.InternalError{Message: "failed to count history", Err: err}
	}

	page, limit = normalizePage(page, limit)

	var records []domain.History
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, &domain.InternalError{Message: "failed to list history", Err: err}
	}

	return records, total, nil
}
