package projects_repositories

import (
	"context"

	projects_models "projecttrack/internal/features/projects/models"
	"projecttrack/internal/storage"

	"github.com/google/uuid"
)

type TeamRosterRepository struct{}

func (r *TeamRosterRepository) GetTeamMembers(
	ctx context.Context,
	projectID uuid.UUID,
) ([]*projects_models.TeamMember, error) {
	var members []*projects_models.TeamMember

	result := storage.GetDb().
		WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position ASC").
		Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}

	return members, nil
}
