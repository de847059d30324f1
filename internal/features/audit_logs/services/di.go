package audit_logs_services

import (
	audit_logs_repositories "projecttrack/internal/features/audit_logs/repositories"
	progress_services "projecttrack/internal/features/progress/services"
	projects_repositories "projecttrack/internal/features/projects/repositories"
	projects_services "projecttrack/internal/features/projects/services"
	users_services "projecttrack/internal/features/users/services"
	"projecttrack/internal/util/logger"
)

var auditLogService = &AuditLogService{
	auditLogStore: &audit_logs_repositories.AuditLogRepository{},
	projectStore:  &projects_repositories.ProjectRepository{},
	logger:        logger.GetLogger(),
}

func GetAuditLogService() *AuditLogService {
	return auditLogService
}

// SetupDependencies hands the audit writer to the features that log through
// it. Called once from main after configuration is loaded.
func SetupDependencies() {
	users_services.GetUserService().SetAuditLogWriter(auditLogService)
	users_services.GetSettingsService().SetAuditLogWriter(auditLogService)
	users_services.GetManagementService().SetAuditLogWriter(auditLogService)
	projects_services.GetProjectService().SetAuditLogWriter(auditLogService)
	projects_services.GetStatusService().SetAuditLogWriter(auditLogService)
	progress_services.GetProgressService().SetAuditLogWriter(auditLogService)
}
