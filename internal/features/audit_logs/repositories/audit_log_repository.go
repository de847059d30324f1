package audit_logs_repositories

import (
	"context"

	audit_logs_models "projecttrack/internal/features/audit_logs/models"
	"projecttrack/internal/storage"

	"github.com/google/uuid"
)

type AuditLogRepository struct{}

func (r *AuditLogRepository) CreateAuditLog(log *audit_logs_models.AuditLog) error {
	return storage.GetDb().Create(log).Error
}

func (r *AuditLogRepository) GetByInstitution(
	ctx context.Context,
	institution string,
	limit int,
) ([]*audit_logs_models.EnrichedAuditLog, error) {
	var logs []*audit_logs_models.EnrichedAuditLog

	result := storage.GetDb().
		WithContext(ctx).
		Table("audit_logs").
		Select("audit_logs.*, users.first_name AS user_first_name, users.last_name AS user_last_name, projects.title AS project_title").
		Joins("LEFT JOIN users ON users.id = audit_logs.user_id").
		Joins("LEFT JOIN projects ON projects.id = audit_logs.project_id").
		Where("audit_logs.institution = ?", institution).
		Order("audit_logs.created_at DESC").
		Limit(limit).
		Scan(&logs)
	if result.Error != nil {
		return nil, result.Error
	}

	return logs, nil
}

func (r *AuditLogRepository) GetByProject(
	ctx context.Context,
	projectID uuid.UUID,
	limit int,
) ([]*audit_logs_models.EnrichedAuditLog, error) {
	var logs []*audit_logs_models.EnrichedAuditLog

	result := storage.GetDb().
		WithContext(ctx).
		Table("audit_logs").
		Select("audit_logs.*, users.first_name AS user_first_name, users.last_name AS user_last_name, projects.title AS project_title").
		Joins("LEFT JOIN users ON users.id = audit_logs.user_id").
		Joins("LEFT JOIN projects ON projects.id = audit_logs.project_id").
		Where("audit_logs.project_id = ?", projectID).
		Order("audit_logs.created_at DESC").
		Limit(limit).
		Scan(&logs)
	if result.Error != nil {
		return nil, result.Error
	}

	return logs, nil
}
