package projects_controllers

import (
	"net/http"

	projects_dto "projecttrack/internal/features/projects/dto"
	projects_models "projecttrack/internal/features/projects/models"
	projects_services "projecttrack/internal/features/projects/services"
	users_middleware "projecttrack/internal/features/users/middleware"
	"projecttrack/internal/util/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectController struct {
	projectService    *projects_services.ProjectService
	statusService     *projects_services.StatusService
	enrichmentService *projects_services.EnrichmentService
}

func (c *ProjectController) RegisterProtectedRoutes(router gin.IRoutes) {
	router.POST("/projects", c.CreateProject)
	router.GET("/projects", c.ListProjects)
	router.GET("/projects/:id", c.GetProject)
	router.POST("/projects/:id/status", c.ChangeStatus)
	router.GET("/projects/:id/status-history", c.GetStatusHistory)
}

// CreateProject
// @Summary Create a project
// @Description Create a project with a snapshot of its student roster
// @Tags projects
// @Accept json
// @Produce json
// @Param request body projects_dto.CreateProjectRequestDTO true "Project data"
// @Security BearerAuth
// @Success 201 {object} projects_dto.ProjectResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request projects_dto.CreateProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	project, err := c.projectService.CreateProject(&request, user)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, toProjectResponse(project))
}

// ListProjects
// @Summary List enriched project views
// @Description Institution-wide for coordinators, own projects for teachers. Supports title, student, teacher and status filters.
// @Tags projects
// @Produce json
// @Param title query string false "Title substring filter"
// @Param student query string false "Student name substring filter"
// @Param teacher query string false "Teacher name substring filter"
// @Param status query string false "Exact status filter"
// @Security BearerAuth
// @Success 200 {object} projects_dto.EnrichedProjectsResponseDTO
// @Failure 503 {object} map[string]string
// @Router /projects [get]
func (c *ProjectController) ListProjects(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var criteria projects_dto.ProjectFilterDTO
	if err := ctx.ShouldBindQuery(&criteria); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	views, err := c.enrichmentService.BuildEnrichedViews(ctx.Request.Context(), user)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, projects_dto.EnrichedProjectsResponseDTO{
		Projects: projects_services.FilterProjects(views, criteria),
	})
}

// GetProject
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Security BearerAuth
// @Success 200 {object} projects_dto.ProjectResponseDTO
// @Failure 404 {object} map[string]string
// @Router /projects/{id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return
	}

	project, err := c.projectService.GetProject(projectID, user)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, toProjectResponse(project))
}

// ChangeStatus
// @Summary Change project status
// @Description Commit a status change with a mandatory observation. Coordinators only.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body projects_dto.ChangeStatusRequestDTO true "Status change"
// @Security BearerAuth
// @Success 200 {object} projects_dto.StatusHistoryEntryResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /projects/{id}/status [post]
func (c *ProjectController) ChangeStatus(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return
	}

	var request projects_dto.ChangeStatusRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := c.statusService.CommitStatusChange(projectID, &request, user)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, toHistoryEntryResponse(entry))
}

// GetStatusHistory
// @Summary Get the status audit trail of a project
// @Description Entries newest first. Coordinators and the project's teacher only.
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Security BearerAuth
// @Success 200 {object} projects_dto.StatusHistoryResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/status-history [get]
func (c *ProjectController) GetStatusHistory(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return
	}

	entries, err := c.statusService.GetStatusHistory(ctx.Request.Context(), projectID, user)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	response := projects_dto.StatusHistoryResponseDTO{
		Entries: make([]projects_dto.StatusHistoryEntryResponseDTO, len(entries)),
	}
	for i, entry := range entries {
		response.Entries[i] = toHistoryEntryResponse(entry)
	}

	ctx.JSON(http.StatusOK, response)
}

func toProjectResponse(project *projects_models.Project) projects_dto.ProjectResponseDTO {
	return projects_dto.ProjectResponseDTO{
		ID:                       project.ID,
		Title:                    project.Title,
		Area:                     project.Area,
		Objectives:               project.Objectives,
		Schedule:                 project.Schedule,
		Budget:                   project.Budget,
		AdditionalObservations:   project.AdditionalObservations,
		Institution:              project.Institution,
		TeacherID:                project.TeacherID,
		CurrentStatus:            project.CurrentStatus,
		CurrentStatusObservation: project.CurrentStatusObservation,
		CreatedAt:                project.CreatedAt,
	}
}

func toHistoryEntryResponse(entry *projects_models.StatusHistoryEntry) projects_dto.StatusHistoryEntryResponseDTO {
	return projects_dto.StatusHistoryEntryResponseDTO{
		ID:          entry.ID,
		Status:      entry.Status,
		Observation: entry.Observation,
		ChangedBy:   entry.ChangedBy,
		Date:        entry.Date,
	}
}
