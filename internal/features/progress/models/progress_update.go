package progress_models

import (
	"time"

	"github.com/google/uuid"
)

// ProgressUpdate is a timeline entry a teacher posts on a project. Documents
// and Photos are opaque attachment references, the service never resolves or
// validates what they point at.
type ProgressUpdate struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	ProjectID   uuid.UUID `json:"projectId"   gorm:"column:project_id"`
	Description string    `json:"description" gorm:"column:description"`
	Documents   []string  `json:"documents"   gorm:"column:documents;serializer:json"`
	Photos      []string  `json:"photos"      gorm:"column:photos;serializer:json"`
	CreatedBy   uuid.UUID `json:"createdBy"   gorm:"column:created_by"`
	Date        time.Time `json:"date"        gorm:"column:date"`
}

func (ProgressUpdate) TableName() string {
	return "progress_updates"
}
