// internal/services/audit_service.go
package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/plmining/licensing-backend/internal/models"
	"github.com/plmining/licensing-backend/internal/repository"
	"github.com/plmining/licensing-backend/internal/utils"
)

type AuditService struct {
	logs repository.AuditLogRepository
}

func NewAuditService(logs repository.AuditLogRepository) *AuditService {
	return &AuditService{logs: logs}
}

// Record persists an audit entry. Failures are logged and swallowed so the
// audited request is never affected.
func (s *AuditService) Record(ctx context.Context, entry *models.AuditLog) {
	entry.NewValues = redact(entry.NewValues)
	if err := s.logs.Create(ctx, entry); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"action":        entry.Action,
			"resource_type": entry.ResourceType,
		}).Error("Failed to create audit log")
	}
}

func (s *AuditService) List(ctx context.Context, filter repository.AuditLogFilter, page utils.PageRequest) ([]models.AuditLog, int64, error) {
	logs, total, err := s.logs.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}
	return logs, total, nil
}

func redact(values models.JSONB) models.JSONB {
	if values == nil {
		return nil
	}
	out := make(models.JSONB, len(values))
	for k, v := range values {
		out[k] = v
	}
	for _, field := range models.AuditRedactedFields {
		if _, ok := out[field]; ok {
			out[field] = "[REDACTED]"
		}
	}
	return out
}
