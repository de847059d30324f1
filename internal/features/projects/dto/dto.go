package projects_dto

import (
	"time"

	projects_enums "projecttrack/internal/features/projects/enums"

	"github.com/google/uuid"
)

type CreateProjectRequestDTO struct {
	Title      string `json:"title" binding:"required"`
	Area       string `json:"area" binding:"required"`
	Objectives string `json:"objectives" binding:"required"`
	Schedule   string `json:"schedule"`
	// Budget arrives as text from the form and is parsed strictly: the whole
	// trimmed string must be a finite non-negative number.
	Budget                 string      `json:"budget" binding:"required"`
	AdditionalObservations string      `json:"additionalObservations"`
	StudentIDs             []uuid.UUID `json:"studentIds"`
}

type ChangeStatusRequestDTO struct {
	Status      projects_enums.ProjectStatus `json:"status" binding:"required"`
	Observation string                       `json:"observation" binding:"required"`
	// ChangeKey is optional. Clients that want safe retries send the same key
	// on every attempt of one logical change; when omitted a fresh key is
	// generated server side and the commit is not retry-safe across requests.
	ChangeKey string `json:"changeKey"`
}

type ProjectResponseDTO struct {
	ID                       uuid.UUID                    `json:"id"`
	Title                    string                       `json:"title"`
	Area                     string                       `json:"area"`
	Objectives               string                       `json:"objectives"`
	Schedule                 string                       `json:"schedule"`
	Budget                   float64                      `json:"budget"`
	AdditionalObservations   string                       `json:"additionalObservations"`
	Institution              string                       `json:"institution"`
	TeacherID                uuid.UUID                    `json:"teacherId"`
	CurrentStatus            projects_enums.ProjectStatus `json:"currentStatus"`
	CurrentStatusObservation string                       `json:"currentStatusObservation"`
	CreatedAt                time.Time                    `json:"createdAt"`
}

// EnrichedProjectViewDTO is the read model of the dashboard: project fields
// joined with the teacher's display name and the roster snapshot names.
type EnrichedProjectViewDTO struct {
	ID                       uuid.UUID                    `json:"id"`
	Title                    string                       `json:"title"`
	Area                     string                       `json:"area"`
	Objectives               string                       `json:"objectives"`
	Schedule                 string                       `json:"schedule"`
	Budget                   float64                      `json:"budget"`
	AdditionalObservations   string                       `json:"additionalObservations"`
	Institution              string                       `json:"institution"`
	TeacherID                uuid.UUID                    `json:"teacherId"`
	TeacherName              string                       `json:"teacherName"`
	CurrentStatus            projects_enums.ProjectStatus `json:"currentStatus"`
	CurrentStatusObservation string                       `json:"currentStatusObservation"`
	Students                 []string                     `json:"students"`
	CreatedAt                time.Time                    `json:"createdAt"`
	UpdatedAt                time.Time                    `json:"updatedAt"`
}

// ProjectFilterDTO carries the dashboard filter criteria. Empty fields match
// everything; non-empty text fields match case-insensitively on substrings,
// status matches exactly.
type ProjectFilterDTO struct {
	Title   string `form:"title"`
	Student string `form:"student"`
	Teacher string `form:"teacher"`
	Status  string `form:"status"`
}

type StatusHistoryEntryResponseDTO struct {
	ID          uuid.UUID                    `json:"id"`
	Status      projects_enums.ProjectStatus `json:"status"`
	Observation string                       `json:"observation"`
	ChangedBy   uuid.UUID                    `json:"changedBy"`
	Date        time.Time                    `json:"date"`
}

type StatusHistoryResponseDTO struct {
	Entries []StatusHistoryEntryResponseDTO `json:"entries"`
}

type EnrichedProjectsResponseDTO struct {
	Projects []EnrichedProjectViewDTO `json:"projects"`
}
