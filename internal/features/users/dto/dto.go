package users_dto

import (
	"time"

	users_enums "projecttrack/internal/features/users/enums"

	"github.com/google/uuid"
)

type SignUpRequestDTO struct {
	Email          string               `json:"email"          binding:"required,email"`
	Password       string               `json:"password"       binding:"required,min=8"`
	Role           users_enums.UserRole `json:"role"           binding:"required"`
	FirstName      string               `json:"firstName"      binding:"required"`
	LastName       string               `json:"lastName"       binding:"required"`
	Identification string               `json:"identification" binding:"required"`
	Institution    string               `json:"institution"    binding:"required"`
	Grade          *string              `json:"grade"`
}

type SignInRequestDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInResponseDTO struct {
	UserID      uuid.UUID            `json:"userId"`
	Email       string               `json:"email"`
	Role        users_enums.UserRole `json:"role"`
	Institution string               `json:"institution"`
	Token       string               `json:"token"`
}

type UserProfileResponseDTO struct {
	ID             uuid.UUID              `json:"id"`
	Email          string                 `json:"email"`
	FirstName      string                 `json:"firstName"`
	LastName       string                 `json:"lastName"`
	Identification string                 `json:"identification"`
	Institution    string                 `json:"institution"`
	Grade          *string                `json:"grade,omitempty"`
	Role           users_enums.UserRole   `json:"role"`
	Status         users_enums.UserStatus `json:"status"`
	CreatedAt      time.Time              `json:"createdAt"`
}

type ListUsersResponseDTO struct {
	Users []UserProfileResponseDTO `json:"users"`
}

// Coordinator user management
type CreateManagedUserRequestDTO struct {
	Email          string               `json:"email"          binding:"required,email"`
	Role           users_enums.UserRole `json:"role"           binding:"required"`
	FirstName      string               `json:"firstName"      binding:"required"`
	LastName       string               `json:"lastName"       binding:"required"`
	Identification string               `json:"identification" binding:"required"`
	Grade          *string              `json:"grade"`
}

type UpdateManagedUserRequestDTO struct {
	FirstName      string  `json:"firstName"      binding:"required"`
	LastName       string  `json:"lastName"       binding:"required"`
	Identification string  `json:"identification" binding:"required"`
	Grade          *string `json:"grade"`
}

type DirectoryRequestDTO struct {
	// comma separated roles, e.g. "STUDENT,TEACHER"; empty means all
	Roles string `form:"roles" json:"roles"`
}

type UpdateSettingsRequestDTO struct {
	IsAllowSelfRegistration bool `json:"isAllowSelfRegistration"`
}
