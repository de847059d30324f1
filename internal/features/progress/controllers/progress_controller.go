package progress_controllers

import (
	"errors"
	"net/http"

	progress_dto "projecttrack/internal/features/progress/dto"
	progress_models "projecttrack/internal/features/progress/models"
	progress_services "projecttrack/internal/features/progress/services"
	users_middleware "projecttrack/internal/features/users/middleware"
	"projecttrack/internal/util/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProgressController struct {
	progressService *progress_services.ProgressService
}

func (c *ProgressController) RegisterProtectedRoutes(router gin.IRoutes) {
	router.POST("/projects/:id/progress", c.AddProgressUpdate)
	router.GET("/projects/:id/progress", c.GetProgressUpdates)
}

// AddProgressUpdate
// @Summary Add a progress update to a project
// @Tags progress
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body progress_dto.AddProgressUpdateRequestDTO true "Progress update"
// @Security BearerAuth
// @Success 201 {object} progress_dto.ProgressUpdateResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /projects/{id}/progress [post]
func (c *ProgressController) AddProgressUpdate(ctx *gin.Context) {
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

	var request progress_dto.AddProgressUpdateRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	update, err := c.progressService.AddProgressUpdate(projectID, &request, user)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, toUpdateResponse(update))
}

// GetProgressUpdates
// @Summary List progress updates of a project, newest first
// @Tags progress
// @Produce json
// @Param id path string true "Project ID"
// @Security BearerAuth
// @Success 200 {object} progress_dto.ListProgressUpdatesResponseDTO
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/progress [get]
func (c *ProgressController) GetProgressUpdates(ctx *gin.Context) {
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

	updates, err := c.progressService.GetProgressUpdates(ctx.Request.Context(), projectID, user)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	response := progress_dto.ListProgressUpdatesResponseDTO{
		Updates: make([]progress_dto.ProgressUpdateResponseDTO, len(updates)),
	}
	for i, update := range updates {
		response.Updates[i] = toUpdateResponse(update)
	}

	ctx.JSON(http.StatusOK, response)
}

// statusFor maps errors to HTTP statuses, with rate limiting reported as 429
// instead of the generic validation status.
func statusFor(err error) int {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Code == apperrors.CodeRateLimitExceeded {
		return http.StatusTooManyRequests
	}
	return apperrors.HTTPStatus(err)
}

func toUpdateResponse(update *progress_models.ProgressUpdate) progress_dto.ProgressUpdateResponseDTO {
	return progress_dto.ProgressUpdateResponseDTO{
		ID:          update.ID,
		ProjectID:   update.ProjectID,
		Description: update.Description,
		Documents:   update.Documents,
		Photos:      update.Photos,
		CreatedBy:   update.CreatedBy,
		Date:        update.Date,
	}
}
