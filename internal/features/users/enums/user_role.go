package users_enums

type UserRole string

const (
	UserRoleStudent     UserRole = "STUDENT"
	UserRoleTeacher     UserRole = "TEACHER"
	UserRoleCoordinator UserRole = "COORDINATOR"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleStudent, UserRoleTeacher, UserRoleCoordinator:
		return true
	default:
		return false
	}
}
