package users_interfaces

import (
	"github.com/google/uuid"
)

type AuditLogWriter interface {
	WriteAuditLog(message string, institution string, userID *uuid.UUID, projectID *uuid.UUID)
}
