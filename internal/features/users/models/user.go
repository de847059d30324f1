package users_models

import (
	"time"

	users_enums "projecttrack/internal/features/users/enums"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"      gorm:"column:first_name"`
	LastName       string    `json:"lastName"       gorm:"column:last_name"`
	Identification string    `json:"identification" gorm:"column:identification"`
	Institution    string    `json:"institution"    gorm:"column:institution"`
	// Grade is set only for students
	Grade                *string                `json:"grade,omitempty" gorm:"column:grade"`
	HashedPassword       *string                `json:"-"               gorm:"column:hashed_password"`
	PasswordCreationTime time.Time              `json:"-"               gorm:"column:password_creation_time"`
	Role                 users_enums.UserRole   `json:"role"`
	Status               users_enums.UserStatus `json:"status"`
	CreatedAt            time.Time              `json:"createdAt"`
	UpdatedAt            time.Time              `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Permission methods
func (u *User) CanManageUsers() bool {
	return u.Role == users_enums.UserRoleCoordinator
}

func (u *User) CanCreateProjects() bool {
	return u.Role == users_enums.UserRoleTeacher
}

func (u *User) CanChangeProjectStatus() bool {
	return u.Role == users_enums.UserRoleCoordinator
}

func (u *User) IsActiveUser() bool {
	return u.Status == users_enums.UserStatusActive
}

func (u *User) HasPassword() bool {
	return u.HashedPassword != nil && *u.HashedPassword != ""
}
