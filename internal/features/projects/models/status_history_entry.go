package projects_models

import (
	"time"

	projects_enums "projecttrack/internal/features/projects/enums"

	"github.com/google/uuid"
)

// StatusHistoryEntry is one immutable audit record of a status change.
// Entries are only ever appended, never updated or deleted. ChangeKey is the
// client-supplied idempotency key: retrying a commit with the same key after
// a partial failure reconciles instead of appending a duplicate.
type StatusHistoryEntry struct {
	ID          uuid.UUID                    `json:"id"          gorm:"column:id"`
	ProjectID   uuid.UUID                    `json:"projectId"   gorm:"column:project_id"`
	Status      projects_enums.ProjectStatus `json:"status"      gorm:"column:status"`
	Observation string                       `json:"observation" gorm:"column:observation"`
	ChangedBy   uuid.UUID                    `json:"changedBy"   gorm:"column:changed_by"`
	ChangeKey   string                       `json:"changeKey"   gorm:"column:change_key"`
	Date        time.Time                    `json:"date"        gorm:"column:date"`
}

func (StatusHistoryEntry) TableName() string {
	return "status_history"
}
