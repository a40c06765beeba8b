// internal/repository/audit.go
package repository

// go generate: mockery --name AuditLogRepository --output mocks

import (
	"context"

	"gorm.io/gorm"

	"github.com/plmining/licensing-backend/internal/models"
	"github.com/plmining/licensing-backend/internal/utils"
)

type AuditLogFilter struct {
	Action       string
	ResourceType string
}

type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter, page utils.PageRequest) ([]models.AuditLog, int64, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Omit("User").Create(entry).Error
}

var auditSortColumns = map[string]string{
	"created_at":    "created_at",
	"action":        "action",
	"resource_type": "resource_type",
	"status_code":   "status_code",
}

func (r *auditLogRepository) List(ctx context.Context, filter AuditLogFilter, page utils.PageRequest) ([]models.AuditLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLog{})
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := page.Apply(query.Preload("User"), auditSortColumns).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
