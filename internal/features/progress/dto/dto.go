package progress_dto

import (
	"time"

	"github.com/google/uuid"
)

type AddProgressUpdateRequestDTO struct {
	Description string   `json:"description" binding:"required"`
	Documents   []string `json:"documents"`
	Photos      []string `json:"photos"`
}

type ProgressUpdateResponseDTO struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"projectId"`
	Description string    `json:"description"`
	Documents   []string  `json:"documents"`
	Photos      []string  `json:"photos"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	Date        time.Time `json:"date"`
}

type ListProgressUpdatesResponseDTO struct {
	Updates []ProgressUpdateResponseDTO `json:"updates"`
}
