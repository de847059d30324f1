package audit_logs_controllers

import (
	"net/http"

	audit_logs_dto "projecttrack/internal/features/audit_logs/dto"
	audit_logs_models "projecttrack/internal/features/audit_logs/models"
	audit_logs_services "projecttrack/internal/features/audit_logs/services"
	users_middleware "projecttrack/internal/features/users/middleware"
	"projecttrack/internal/util/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuditLogController struct {
	auditLogService *audit_logs_services.AuditLogService
}

func (c *AuditLogController) RegisterProtectedRoutes(router gin.IRoutes) {
	router.GET("/audit-logs", c.GetInstitutionAuditLogs)
	router.GET("/projects/:id/audit-logs", c.GetProjectAuditLogs)
}

// GetInstitutionAuditLogs
// @Summary List audit logs of the caller's institution, newest first
// @Tags audit-logs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} audit_logs_dto.ListAuditLogsResponseDTO
// @Failure 403 {object} map[string]string
// @Router /audit-logs [get]
func (c *AuditLogController) GetInstitutionAuditLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	logs, err := c.auditLogService.GetInstitutionAuditLogs(ctx.Request.Context(), user)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, toListResponse(logs))
}

// GetProjectAuditLogs
// @Summary List audit logs of one project, newest first
// @Tags audit-logs
// @Produce json
// @Param id path string true "Project ID"
// @Security BearerAuth
// @Success 200 {object} audit_logs_dto.ListAuditLogsResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/audit-logs [get]
func (c *AuditLogController) GetProjectAuditLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return
	}

	logs, err := c.auditLogService.GetProjectAuditLogs(ctx.Request.Context(), projectID, user)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, toListResponse(logs))
}

func toListResponse(logs []*audit_logs_models.EnrichedAuditLog) audit_logs_dto.ListAuditLogsResponseDTO {
	response := audit_logs_dto.ListAuditLogsResponseDTO{
		Logs: make([]audit_logs_dto.AuditLogResponseDTO, len(logs)),
	}
	for i, log := range logs {
		response.Logs[i] = audit_logs_dto.AuditLogResponseDTO{
			ID:           log.ID,
			Message:      log.Message,
			UserID:       log.UserID,
			UserName:     log.UserName(),
			ProjectID:    log.ProjectID,
			ProjectTitle: log.ProjectTitle,
			CreatedAt:    log.CreatedAt,
		}
	}

	return response
}
