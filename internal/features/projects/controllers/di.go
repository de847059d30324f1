package projects_controllers

import (
	projects_services "projecttrack/internal/features/projects/services"
)

var projectController = &ProjectController{
	projectService:    projects_services.GetProjectService(),
	statusService:     projects_services.GetStatusService(),
	enrichmentService: projects_services.GetEnrichmentService(),
}

func GetProjectController() *ProjectController {
	return projectController
}
