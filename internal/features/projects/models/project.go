package projects_models

import (
	"time"

	projects_enums "projecttrack/internal/features/projects/enums"

	"github.com/google/uuid"
)

// DefaultCreationObservation is the observation every project starts with.
const DefaultCreationObservation = "Project in initial stage"

type Project struct {
	ID                     uuid.UUID `json:"id"                     gorm:"column:id"`
	Title                  string    `json:"title"                  gorm:"column:title"`
	Area                   string    `json:"area"                   gorm:"column:area"`
	Objectives             string    `json:"objectives"             gorm:"column:objectives"`
	Schedule               string    `json:"schedule"               gorm:"column:schedule"`
	Budget                 float64   `json:"budget"                 gorm:"column:budget"`
	AdditionalObservations string    `json:"additionalObservations" gorm:"column:additional_observations"`
	Institution            string    `json:"institution"            gorm:"column:institution"`
	TeacherID              uuid.UUID `json:"teacherId"              gorm:"column:teacher_id"`

	// CurrentStatus always equals the status of the newest history entry,
	// or Formulation while the history is still empty.
	CurrentStatus            projects_enums.ProjectStatus `json:"currentStatus"            gorm:"column:current_status"`
	CurrentStatusObservation string                       `json:"currentStatusObservation" gorm:"column:current_status_observation"`

	// Version guards status commits with a conditional write
	Version   int64     `json:"version"   gorm:"column:version"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
