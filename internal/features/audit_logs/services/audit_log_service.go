package audit_logs_services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	audit_logs_models "projecttrack/internal/features/audit_logs/models"
	projects_interfaces "projecttrack/internal/features/projects/interfaces"
	users_enums "projecttrack/internal/features/users/enums"
	users_models "projecttrack/internal/features/users/models"
	"projecttrack/internal/util/apperrors"

	"github.com/google/uuid"
)

const auditLogReadLimit = 200

type AuditLogStore interface {
	CreateAuditLog(log *audit_logs_models.AuditLog) error
	GetByInstitution(ctx context.Context, institution string, limit int) ([]*audit_logs_models.EnrichedAuditLog, error)
	GetByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]*audit_logs_models.EnrichedAuditLog, error)
}

// AuditLogService records operational events and serves them back scoped by
// institution. It satisfies the AuditLogWriter interfaces of the other
// features, which is how they log without importing this package.
type AuditLogService struct {
	auditLogStore AuditLogStore
	projectStore  projects_interfaces.ProjectStore
	logger        *slog.Logger
}

// WriteAuditLog is fire-and-forget: auditing must never fail the operation
// being audited, a write failure is only logged.
func (s *AuditLogService) WriteAuditLog(
	message string,
	institution string,
	userID *uuid.UUID,
	projectID *uuid.UUID,
) {
	entry := &audit_logs_models.AuditLog{
		ID:          uuid.New(),
		Message:     message,
		Institution: institution,
		UserID:      userID,
		ProjectID:   projectID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.auditLogStore.CreateAuditLog(entry); err != nil {
		s.logger.Error("failed to write audit log",
			"message", message,
			"institution", institution,
			"error", err,
		)
	}
}

// GetInstitutionAuditLogs returns the newest entries of the actor's
// institution. Coordinators only.
func (s *AuditLogService) GetInstitutionAuditLogs(
	ctx context.Context,
	actor *users_models.User,
) ([]*audit_logs_models.EnrichedAuditLog, error) {
	if actor.Role != users_enums.UserRoleCoordinator {
		return nil, apperrors.Authorization(
			apperrors.CodeInsufficientRole,
			"only coordinators can read institution audit logs",
		)
	}

	logs, err := s.auditLogStore.GetByInstitution(ctx, actor.Institution, auditLogReadLimit)
	if err != nil {
		return nil, apperrors.Persistence(apperrors.CodeStoreFailure, "failed to load audit logs", err)
	}

	return logs, nil
}

// GetProjectAuditLogs returns the newest entries of one project, readable by
// coordinators of the institution and the project's teacher.
func (s *AuditLogService) GetProjectAuditLogs(
	ctx context.Context,
	projectID uuid.UUID,
	actor *users_models.User,
) ([]*audit_logs_models.EnrichedAuditLog, error) {
	project, err := s.projectStore.GetProjectByID(projectID)
	if err != nil {
		return nil, apperrors.Persistence(apperrors.CodeStoreFailure, "failed to load project", err)
	}
	if project == nil {
		return nil, apperrors.NotFound(
			apperrors.CodeProjectNotFound,
			fmt.Sprintf("project %s does not exist", projectID),
		)
	}
	if project.Institution != actor.Institution {
		return nil, apperrors.Authorization(
			apperrors.CodeWrongInstitution,
			"project belongs to a different institution",
		)
	}
	if actor.Role != users_enums.UserRoleCoordinator && project.TeacherID != actor.ID {
		return nil, apperrors.Authorization(
			apperrors.CodeInsufficientRole,
			"not allowed to read this project's audit logs",
		)
	}

	logs, err := s.auditLogStore.GetByProject(ctx, projectID, auditLogReadLimit)
	if err != nil {
		return nil, apperrors.Persistence(apperrors.CodeStoreFailure, "failed to load audit logs", err)
	}

	return logs, nil
}
