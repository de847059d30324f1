package audit_logs_dto

import (
	"time"

	"github.com/google/uuid"
)

type AuditLogResponseDTO struct {
	ID           uuid.UUID  `json:"id"`
	Message      string     `json:"message"`
	UserID       *uuid.UUID `json:"userId,omitempty"`
	UserName     *string    `json:"userName,omitempty"`
	ProjectID    *uuid.UUID `json:"projectId,omitempty"`
	ProjectTitle *string    `json:"projectTitle,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type ListAuditLogsResponseDTO struct {
	Logs []AuditLogResponseDTO `json:"logs"`
}
