package projects_repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	projects_models "projecttrack/internal/features/projects/models"
	"projecttrack/internal/storage"
	"projecttrack/internal/util/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct{}

func (r *ProjectRepository) CreateProjectWithRoster(
	project *projects_models.Project,
	members []*projects_models.TeamMember,
) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		for _, member := range members {
			if err := tx.Create(member).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *ProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	result := storage.GetDb().Where("id = ?", projectID).First(&project)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return &project, nil
}

func (r *ProjectRepository) GetProjectsByInstitution(
	ctx context.Context,
	institution string,
) ([]*projects_models.Project, error) {
	var projects []*projects_models.Project

	result := storage.GetDb().
		WithContext(ctx).
		Where("institution = ?", institution).
		Order("created_at DESC").
		Find(&projects)
	if result.Error != nil {
		return nil, result.Error
	}

	return projects, nil
}

func (r *ProjectRepository) GetAllProjects(ctx context.Context) ([]*projects_models.Project, error) {
	var projects []*projects_models.Project

	result := storage.GetDb().
		WithContext(ctx).
		Order("created_at DESC").
		Find(&projects)
	if result.Error != nil {
		return nil, result.Error
	}

	return projects, nil
}

// CommitStatusChange flips the project's current status and appends the
// history entry in one transaction. The update is conditioned on the version
// column: if another writer got there first, zero rows match, nothing is
// written and a Conflict error comes back so the caller can reload and retry.
func (r *ProjectRepository) CommitStatusChange(
	projectID uuid.UUID,
	expectedVersion int64,
	entry *projects_models.StatusHistoryEntry,
) error {
	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&projects_models.Project{}).
			Where("id = ? AND version = ?", projectID, expectedVersion).
			Updates(map[string]any{
				"current_status":             entry.Status,
				"current_status_observation": entry.Observation,
				"version":                    expectedVersion + 1,
				"updated_at":                 time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.Conflict(
				apperrors.CodeVersionConflict,
				fmt.Sprintf("project %s changed concurrently, expected version %d", projectID, expectedVersion),
			)
		}

		return tx.Create(entry).Error
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindConflict {
			return err
		}
		return apperrors.Persistence(apperrors.CodeStoreFailure, "failed to commit status change", err)
	}

	return nil
}
