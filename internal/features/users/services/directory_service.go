package users_services

import (
	"fmt"

	users_enums "projecttrack/internal/features/users/enums"
	users_models "projecttrack/internal/features/users/models"
	users_repositories "projecttrack/internal/features/users/repositories"
	"projecttrack/internal/util/apperrors"

	"github.com/google/uuid"
)

// DirectoryService is the read-side lookup of user records by id, institution
// and role. The projects feature consumes it through its DirectoryReader
// interface.
type DirectoryService struct {
	userRepository *users_repositories.UserRepository
}

func (s *DirectoryService) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return nil, apperrors.Persistence(apperrors.CodeStoreFailure, "failed to load user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound(apperrors.CodeUserNotFound, fmt.Sprintf("user %s does not exist", userID))
	}

	return user, nil
}

func (s *DirectoryService) ListUsersByInstitution(
	institution string,
	roles ...users_enums.UserRole,
) ([]*users_models.User, error) {
	users, err := s.userRepository.GetUsersByInstitution(institution, roles)
	if err != nil {
		return nil, apperrors.Persistence(apperrors.CodeStoreFailure, "failed to load institution users", err)
	}

	return users, nil
}
