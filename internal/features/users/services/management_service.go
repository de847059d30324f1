package users_services

import (
	"fmt"
	"time"

	users_dto "projecttrack/internal/features/users/dto"
	users_enums "projecttrack/internal/features/users/enums"
	users_interfaces "projecttrack/internal/features/users/interfaces"
	users_models "projecttrack/internal/features/users/models"
	users_repositories "projecttrack/internal/features/users/repositories"
	"projecttrack/internal/util/apperrors"

	"github.com/google/uuid"
)

// UserManagementService covers the coordinator's user administration: creating,
// editing and deactivating student and teacher accounts of the coordinator's
// own institution.
type UserManagementService struct {
	userRepository *users_repositories.UserRepository
	auditLogWriter users_interfaces.AuditLogWriter
}

func (s *UserManagementService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *UserManagementService) CreateManagedUser(
	request *users_dto.CreateManagedUserRequestDTO,
	actor *users_models.User,
) (*users_models.User, error) {
	if !actor.CanManageUsers() {
		return nil, apperrors.Authorization(apperrors.CodeInsufficientRole, "only coordinators can manage users")
	}

	if request.Role != users_enums.UserRoleStudent && request.Role != users_enums.UserRoleTeacher {
		return nil, apperrors.Validation(apperrors.CodeInsufficientRole, "managed users must be students or teachers")
	}

	if request.Role == users_enums.UserRoleStudent && (request.Grade == nil || *request.Grade == "") {
		return nil, apperrors.Validation(apperrors.CodeGradeRequired, "grade is required for students")
	}

	existing, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return nil, apperrors.Persistence(apperrors.CodeStoreFailure, "failed to check existing user", err)
	}
	if existing != nil {
		return nil, apperrors.Validation(apperrors.CodeEmailTaken, "user with this email already exists")
	}

	var grade *string
	if request.Role == users_enums.UserRoleStudent {
		grade = request.Grade
	}

	// Created password-less; the user activates the account through sign up
	user := &users_models.User{
		ID:                   uuid.New(),
		Email:                request.Email,
		FirstName:            request.FirstName,
		LastName:             request.LastName,
		Identification:       request.Identification,
		Institution:          actor.Institution,
		Grade:                grade,
		PasswordCreationTime: time.Now().UTC(),
		Role:                 request.Role,
		Status:               users_enums.UserStatusInvited,
		CreatedAt:            time.Now().UTC(),
		UpdatedAt:            time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return nil, apperrors.Persistence(apperrors.CodeStoreFailure, "failed to create user", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User created by coordinator: %s (%s)", user.Email, user.Role),
		actor.Institution,
		&actor.ID,
		nil,
	)

	return user, nil
}

func (s *UserManagementService) UpdateManagedUser(
	userID uuid.UUID,
	request *users_dto.UpdateManagedUserRequestDTO,
	actor *users_models.User,
) (*users_models.User, error) {
	user, err := s.loadManagedUser(userID, actor)
	if err != nil {
		return nil, err
	}

	user.FirstName = request.FirstName
	user.LastName = request.LastName
	user.Identification = request.Identification
	if user.Role == users_enums.UserRoleStudent && request.Grade != nil {
		user.Grade = request.Grade
	}

	if err := s.userRepository.UpdateUser(user); err != nil {
		return nil, apperrors.Persistence(apperrors.CodeStoreFailure, "failed to update user", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User updated by coordinator: %s", user.Email),
		actor.Institution,
		&actor.ID,
		nil,
	)

	return user, nil
}

func (s *UserManagementService) DeactivateUser(userID uuid.UUID, actor *users_models.User) error {
	user, err := s.loadManagedUser(userID, actor)
	if err != nil {
		return err
	}

	if err := s.userRepository.UpdateUserStatus(user.ID, users_enums.UserStatusInactive); err != nil {
		return apperrors.Persistence(apperrors.CodeStoreFailure, "failed to deactivate user", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User deactivated by coordinator: %s", user.Email),
		actor.Institution,
		&actor.ID,
		nil,
	)

	return nil
}

func (s *UserManagementService) ListManagedUsers(actor *users_models.User) ([]*users_models.User, error) {
	if !actor.CanManageUsers() {
		return nil, apperrors.Authorization(apperrors.CodeInsufficientRole, "only coordinators can manage users")
	}

	users, err := s.userRepository.GetUsersByInstitution(
		actor.Institution,
		[]users_enums.UserRole{users_enums.UserRoleStudent, users_enums.UserRoleTeacher},
	)
	if err != nil {
		return nil, apperrors.Persistence(apperrors.CodeStoreFailure, "failed to list users", err)
	}

	return users, nil
}

func (s *UserManagementService) loadManagedUser(
	userID uuid.UUID,
	actor *users_models.User,
) (*users_models.User, error) {
	if !actor.CanManageUsers() {
		return nil, apperrors.Authorization(apperrors.CodeInsufficientRole, "only coordinators can manage users")
	}

	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return nil, apperrors.Persistence(apperrors.CodeStoreFailure, "failed to load user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound(apperrors.CodeUserNotFound, "user does not exist")
	}

	if user.Institution != actor.Institution {
		return nil, apperrors.Authorization(apperrors.CodeWrongInstitution, "user belongs to another institution")
	}

	if user.Role == users_enums.UserRoleCoordinator {
		return nil, apperrors.Authorization(apperrors.CodeInsufficientRole, "coordinators cannot manage other coordinators")
	}

	return user, nil
}
