package audit_logs_controllers

import (
	audit_logs_services "projecttrack/internal/features/audit_logs/services"
)

var auditLogController = &AuditLogController{
	auditLogService: audit_logs_services.GetAuditLogService(),
}

func GetAuditLogController() *AuditLogController {
	return auditLogController
}
