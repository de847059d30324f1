package audit_logs_models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is one append-only operational record. Institution scopes every
// entry to its tenant; UserID and ProjectID are optional references that may
// dangle after deletions, the message text stays readable on its own.
type AuditLog struct {
	ID          uuid.UUID  `json:"id"          gorm:"column:id"`
	Message     string     `json:"message"     gorm:"column:message"`
	Institution string     `json:"institution" gorm:"column:institution"`
	UserID      *uuid.UUID `json:"userId"      gorm:"column:user_id"`
	ProjectID   *uuid.UUID `json:"projectId"   gorm:"column:project_id"`
	CreatedAt   time.Time  `json:"createdAt"   gorm:"column:created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// EnrichedAuditLog is an audit log row joined with display names at read
// time. The pointers are nil when the referenced user or project is gone.
type EnrichedAuditLog struct {
	AuditLog
	UserFirstName *string `gorm:"column:user_first_name"`
	UserLastName  *string `gorm:"column:user_last_name"`
	ProjectTitle  *string `gorm:"column:project_title"`
}

func (e *EnrichedAuditLog) UserName() *string {
	if e.UserFirstName == nil && e.UserLastName == nil {
		return nil
	}
	name := ""
	if e.UserFirstName != nil {
		name = *e.UserFirstName
	}
	if e.UserLastName != nil {
		if name != "" {
			name += " "
		}
		name += *e.UserLastName
	}
	return &name
}
