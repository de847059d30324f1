package projects_repositories

import (
	"context"
	"errors"

	projects_models "projecttrack/internal/features/projects/models"
	"projecttrack/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatusHistoryRepository struct{}

// GetHistory returns all entries for the project, newest first.
func (r *StatusHistoryRepository) GetHistory(
	ctx context.Context,
	projectID uuid.UUID,
) ([]*projects_models.StatusHistoryEntry, error) {
	var entries []*projects_models.StatusHistoryEntry

	result := storage.GetDb().
		WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("date DESC").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (r *StatusHistoryRepository) GetNewestEntry(
	projectID uuid.UUID,
) (*projects_models.StatusHistoryEntry, error) {
	var entry projects_models.StatusHistoryEntry

	result := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("date DESC").
		First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return &entry, nil
}

func (r *StatusHistoryRepository) GetEntryByChangeKey(
	projectID uuid.UUID,
	changeKey string,
) (*projects_models.StatusHistoryEntry, error) {
	var entry projects_models.StatusHistoryEntry

	result := storage.GetDb().
		Where("project_id = ? AND change_key = ?", projectID, changeKey).
		First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return &entry, nil
}
