package projects_models

import (
	"github.com/google/uuid"
)

// TeamMember is an immutable snapshot of a directory entry taken at
// enrollment time. SourceUserID records where the snapshot came from but is
// never re-resolved on reads: the roster keeps the student's name and grade
// as they were when the project was created.
type TeamMember struct {
	ID             uuid.UUID `json:"id"             gorm:"column:id"`
	ProjectID      uuid.UUID `json:"projectId"      gorm:"column:project_id"`
	FirstName      string    `json:"firstName"      gorm:"column:first_name"`
	LastName       string    `json:"lastName"       gorm:"column:last_name"`
	Identification string    `json:"identification" gorm:"column:identification"`
	Grade          *string   `json:"grade,omitempty" gorm:"column:grade"`
	SourceUserID   uuid.UUID `json:"sourceUserId"   gorm:"column:source_user_id"`
	// Position preserves roster order
	Position int `json:"position" gorm:"column:position"`
}

func (TeamMember) TableName() string {
	return "team_members"
}

func (m *TeamMember) FullName() string {
	return m.FirstName + " " + m.LastName
}
