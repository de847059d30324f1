package users_controllers

import (
	"net/http"
	"strings"

	users_dto "projecttrack/internal/features/users/dto"
	users_enums "projecttrack/internal/features/users/enums"
	users_middleware "projecttrack/internal/features/users/middleware"
	users_models "projecttrack/internal/features/users/models"
	users_services "projecttrack/internal/features/users/services"
	"projecttrack/internal/util/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ManagementController struct {
	managementService *users_services.UserManagementService
	directoryService  *users_services.DirectoryService
}

func (c *ManagementController) RegisterRoutes(router gin.IRoutes) {
	router.GET("/users/management", c.ListManagedUsers)
	router.POST("/users/management", c.CreateManagedUser)
	router.PUT("/users/management/:id", c.UpdateManagedUser)
	router.DELETE("/users/management/:id", c.DeactivateUser)
	router.GET("/users/directory", c.GetDirectory)
}

// ListManagedUsers
// @Summary List institution users
// @Description List student and teacher accounts of the coordinator's institution
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_dto.ListUsersResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users/management [get]
func (c *ManagementController) ListManagedUsers(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	users, err := c.managementService.ListManagedUsers(user)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, toListResponse(users))
}

// CreateManagedUser
// @Summary Create a managed user
// @Description Create a student or teacher account in the coordinator's institution
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body users_dto.CreateManagedUserRequestDTO true "User data"
// @Success 200 {object} users_dto.UserProfileResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users/management [post]
func (c *ManagementController) CreateManagedUser(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request users_dto.CreateManagedUserRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	created, err := c.managementService.CreateManagedUser(&request, user)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, toProfile(created))
}

// UpdateManagedUser
// @Summary Update a managed user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body users_dto.UpdateManagedUserRequestDTO true "User data"
// @Success 200 {object} users_dto.UserProfileResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/management/{id} [put]
func (c *ManagementController) UpdateManagedUser(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var request users_dto.UpdateManagedUserRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	updated, err := c.managementService.UpdateManagedUser(userID, &request, user)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, toProfile(updated))
}

// DeactivateUser
// @Summary Deactivate a managed user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/management/{id} [delete]
func (c *ManagementController) DeactivateUser(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := c.managementService.DeactivateUser(userID, user); err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deactivated"})
}

// GetDirectory
// @Summary List institution directory
// @Description List users of the caller's institution, optionally filtered by role
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param roles query string false "Comma separated roles (STUDENT,TEACHER,COORDINATOR)"
// @Success 200 {object} users_dto.ListUsersResponseDTO
// @Failure 401 {object} map[string]string
// @Router /users/directory [get]
func (c *ManagementController) GetDirectory(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if user.Role == users_enums.UserRoleStudent {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	var request users_dto.DirectoryRequestDTO
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var roles []users_enums.UserRole
	for _, raw := range strings.Split(request.Roles, ",") {
		role := users_enums.UserRole(strings.ToUpper(strings.TrimSpace(raw)))
		if role.IsValid() {
			roles = append(roles, role)
		}
	}

	users, err := c.directoryService.ListUsersByInstitution(user.Institution, roles...)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, toListResponse(users))
}

func toProfile(user *users_models.User) users_dto.UserProfileResponseDTO {
	return users_dto.UserProfileResponseDTO{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Identification: user.Identification,
		Institution:    user.Institution,
		Grade:          user.Grade,
		Role:           user.Role,
		Status:         user.Status,
		CreatedAt:      user.CreatedAt,
	}
}

func toListResponse(users []*users_models.User) users_dto.ListUsersResponseDTO {
	profiles := make([]users_dto.UserProfileResponseDTO, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, toProfile(user))
	}

	return users_dto.ListUsersResponseDTO{Users: profiles}
}
