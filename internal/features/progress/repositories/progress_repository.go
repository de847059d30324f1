package progress_repositories

import (
	"context"

	progress_models "projecttrack/internal/features/progress/models"
	"projecttrack/internal/storage"

	"github.com/google/uuid"
)

type ProgressRepository struct{}

func (r *ProgressRepository) CreateProgressUpdate(update *progress_models.ProgressUpdate) error {
	return storage.GetDb().Create(update).Error
}

func (r *ProgressRepository) GetProgressUpdates(
	ctx context.Context,
	projectID uuid.UUID,
) ([]*progress_models.ProgressUpdate, error) {
	var updates []*progress_models.ProgressUpdate

	result := storage.GetDb().
		WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("date DESC").
		Find(&updates)
	if result.Error != nil {
		return nil, result.Error
	}

	return updates, nil
}
