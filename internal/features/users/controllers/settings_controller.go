package users_controllers

import (
	"net/http"

	users_dto "projecttrack/internal/features/users/dto"
	users_middleware "projecttrack/internal/features/users/middleware"
	users_models "projecttrack/internal/features/users/models"
	users_services "projecttrack/internal/features/users/services"
	"projecttrack/internal/util/apperrors"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	settingsService *users_services.SettingsService
}

func (c *SettingsController) RegisterRoutes(router gin.IRoutes) {
	router.GET("/users/settings", c.GetSettings)
	router.PUT("/users/settings", c.UpdateSettings)
}

// GetSettings
// @Summary Get user settings
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_models.UsersSettings
// @Failure 401 {object} map[string]string
// @Router /users/settings [get]
func (c *SettingsController) GetSettings(ctx *gin.Context) {
	_, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	settings, err := c.settingsService.GetSettings()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settings"})
		return
	}

	ctx.JSON(http.StatusOK, settings)
}

// UpdateSettings
// @Summary Update user settings
// @Description Toggle self registration; coordinators only
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body users_dto.UpdateSettingsRequestDTO true "Settings"
// @Success 200 {object} users_models.UsersSettings
// @Failure 403 {object} map[string]string
// @Router /users/settings [put]
func (c *SettingsController) UpdateSettings(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request users_dto.UpdateSettingsRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	settings, err := c.settingsService.UpdateSettings(users_models.UsersSettings{
		IsAllowSelfRegistration: request.IsAllowSelfRegistration,
	}, user)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, settings)
}
