package users_services

import (
	"fmt"

	users_interfaces "projecttrack/internal/features/users/interfaces"
	users_models "projecttrack/internal/features/users/models"
	users_repositories "projecttrack/internal/features/users/repositories"
	"projecttrack/internal/util/apperrors"
)

type SettingsService struct {
	userSettingsRepository *users_repositories.UsersSettingsRepository
	auditLogWriter         users_interfaces.AuditLogWriter
}

func (s *SettingsService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *SettingsService) GetSettings() (*users_models.UsersSettings, error) {
	return s.userSettingsRepository.GetSettings()
}

func (s *SettingsService) UpdateSettings(
	request users_models.UsersSettings,
	updatedBy *users_models.User,
) (*users_models.UsersSettings, error) {
	if !updatedBy.CanManageUsers() {
		return nil, apperrors.Authorization(apperrors.CodeInsufficientRole, "insufficient permissions to update settings")
	}

	existingSettings, err := s.userSettingsRepository.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get current settings: %w", err)
	}

	if request.IsAllowSelfRegistration != existingSettings.IsAllowSelfRegistration {
		s.auditLogWriter.WriteAuditLog(
			fmt.Sprintf(
				"isAllowSelfRegistration: %t -> %t",
				existingSettings.IsAllowSelfRegistration,
				request.IsAllowSelfRegistration,
			),
			updatedBy.Institution,
			&updatedBy.ID,
			nil,
		)
	}

	existingSettings.IsAllowSelfRegistration = request.IsAllowSelfRegistration

	if err := s.userSettingsRepository.UpdateSettings(existingSettings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	return existingSettings, nil
}
