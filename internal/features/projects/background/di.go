package projects_background

import (
	projects_repositories "projecttrack/internal/features/projects/repositories"
	"projecttrack/internal/util/logger"
)

var consistencyService = NewConsistencyService(
	&projects_repositories.ProjectRepository{},
	&projects_repositories.StatusHistoryRepository{},
	logger.GetLogger(),
)

func GetConsistencyService() *ConsistencyService {
	return consistencyService
}
