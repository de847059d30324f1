package projects_services

import (
	projects_repositories "projecttrack/internal/features/projects/repositories"
	users_services "projecttrack/internal/features/users/services"
	"projecttrack/internal/util/logger"
)

var projectRepository = &projects_repositories.ProjectRepository{}
var statusHistoryRepository = &projects_repositories.StatusHistoryRepository{}
var teamRosterRepository = &projects_repositories.TeamRosterRepository{}

var projectService = &ProjectService{
	projectStore: projectRepository,
	directory:    users_services.GetDirectoryService(),
	capabilities: users_services.GetUserService(),
}
var statusService = &StatusService{
	projectStore: projectRepository,
	historyStore: statusHistoryRepository,
	capabilities: users_services.GetUserService(),
	logger:       logger.GetLogger(),
}
var enrichmentService = &EnrichmentService{
	projectStore: projectRepository,
	rosterStore:  teamRosterRepository,
	directory:    users_services.GetDirectoryService(),
	logger:       logger.GetLogger(),
}

func GetProjectService() *ProjectService {
	return projectService
}

func GetStatusService() *StatusService {
	return statusService
}

func GetEnrichmentService() *EnrichmentService {
	return enrichmentService
}
