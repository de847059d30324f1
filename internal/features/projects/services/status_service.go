package projects_services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	projects_dto "projecttrack/internal/features/projects/dto"
	projects_enums "projecttrack/internal/features/projects/enums"
	projects_interfaces "projecttrack/internal/features/projects/interfaces"
	projects_models "projecttrack/internal/features/projects/models"
	users_enums "projecttrack/internal/features/users/enums"
	users_models "projecttrack/internal/features/users/models"
	"projecttrack/internal/util/apperrors"

	"github.com/google/uuid"
)

const (
	maxCommitAttempts  = 3
	commitRetryBackoff = 50 * time.Millisecond
)

// StatusService owns status transitions. Every change is committed as one
// atomic unit: the project's current status and the appended history entry
// either both land or neither does.
type StatusService struct {
	projectStore   projects_interfaces.ProjectStore
	historyStore   projects_interfaces.StatusHistoryStore
	capabilities   projects_interfaces.CapabilityChecker
	auditLogWriter projects_interfaces.AuditLogWriter
	logger         *slog.Logger
}

func (s *StatusService) SetAuditLogWriter(auditLogWriter projects_interfaces.AuditLogWriter) {
	s.auditLogWriter = auditLogWriter
}

// CommitStatusChange applies one status change on behalf of the actor.
// Validation and authorization failures are terminal and leave the store
// untouched. Version conflicts and transient store failures are retried a
// bounded number of times; a retry that finds its change key already in the
// history returns the recorded entry instead of appending a duplicate.
func (s *StatusService) CommitStatusChange(
	projectID uuid.UUID,
	request *projects_dto.ChangeStatusRequestDTO,
	actor *users_models.User,
) (*projects_models.StatusHistoryEntry, error) {
	observation := strings.TrimSpace(request.Observation)
	if observation == "" {
		return nil, apperrors.Validation(
			apperrors.CodeObservationRequired,
			"a status change requires an observation",
		)
	}
	if !request.Status.IsValid() {
		return nil, apperrors.Validation(
			apperrors.CodeInvalidStatus,
			fmt.Sprintf("unknown status %q", request.Status),
		)
	}

	hasRole, err := s.capabilities.HasRole(actor.ID, users_enums.UserRoleCoordinator)
	if err != nil {
		return nil, err
	}
	if !hasRole {
		return nil, apperrors.Authorization(
			apperrors.CodeInsufficientRole,
			"only coordinators can change project status",
		)
	}

	project, err := s.loadProject(projectID, actor)
	if err != nil {
		return nil, err
	}

	changeKey := strings.TrimSpace(request.ChangeKey)
	if changeKey == "" {
		changeKey = uuid.New().String()
	}

	// A retried request whose previous attempt actually landed must not
	// append a second entry.
	existing, err := s.findRecordedChange(projectID, changeKey, request.Status, observation)
	if err != nil || existing != nil {
		return existing, err
	}

	entry := &projects_models.StatusHistoryEntry{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Status:      request.Status,
		Observation: observation,
		ChangedBy:   actor.ID,
		ChangeKey:   changeKey,
		Date:        time.Now().UTC(),
	}

	if err := s.commitWithRetry(project, entry); err != nil {
		return nil, err
	}

	if err := s.verifyConsistency(projectID); err != nil {
		return nil, err
	}

	if s.auditLogWriter != nil {
		s.auditLogWriter.WriteAuditLog(
			fmt.Sprintf("Project status changed: %s -> %s", project.Title, entry.Status),
			project.Institution,
			&actor.ID,
			&project.ID,
		)
	}

	return entry, nil
}

// GetStatusHistory returns the audit trail newest first. Coordinators of the
// institution and the project's own teacher may read it.
func (s *StatusService) GetStatusHistory(
	ctx context.Context,
	projectID uuid.UUID,
	actor *users_models.User,
) ([]*projects_models.StatusHistoryEntry, error) {
	project, err := s.loadProject(projectID, actor)
	if err != nil {
		return nil, err
	}
	if actor.Role != users_enums.UserRoleCoordinator && project.TeacherID != actor.ID {
		return nil, apperrors.Authorization(
			apperrors.CodeInsufficientRole,
			"not allowed to read this project's history",
		)
	}

	entries, err := s.historyStore.GetHistory(ctx, projectID)
	if err != nil {
		return nil, apperrors.Persistence(apperrors.CodeStoreFailure, "failed to load status history", err)
	}

	return entries, nil
}

func (s *StatusService) loadProject(
	projectID uuid.UUID,
	actor *users_models.User,
) (*projects_models.Project, error) {
	project, err := s.projectStore.GetProjectByID(projectID)
	if err != nil {
		return nil, apperrors.Persistence(apperrors.CodeStoreFailure, "failed to load project", err)
	}
	if project == nil {
		return nil, apperrors.NotFound(
			apperrors.CodeProjectNotFound,
			fmt.Sprintf("project %s does not exist", projectID),
		)
	}
	if project.Institution != actor.Institution {
		return nil, apperrors.Authorization(
			apperrors.CodeWrongInstitution,
			"project belongs to a different institution",
		)
	}

	return project, nil
}

func (s *StatusService) findRecordedChange(
	projectID uuid.UUID,
	changeKey string,
	status projects_enums.ProjectStatus,
	observation string,
) (*projects_models.StatusHistoryEntry, error) {
	recorded, err := s.historyStore.GetEntryByChangeKey(projectID, changeKey)
	if err != nil {
		return nil, apperrors.Persistence(apperrors.CodeStoreFailure, "failed to check change key", err)
	}
	if recorded == nil {
		return nil, nil
	}

	if recorded.Status != status || recorded.Observation != observation {
		return nil, apperrors.Validation(
			apperrors.CodeChangeKeyReused,
			fmt.Sprintf("change key %q was already used for a different change", changeKey),
		)
	}

	s.logger.Info("status change already recorded, returning existing entry",
		"projectId", projectID,
		"changeKey", changeKey,
	)

	return recorded, nil
}

func (s *StatusService) commitWithRetry(
	project *projects_models.Project,
	entry *projects_models.StatusHistoryEntry,
) error {
	expectedVersion := project.Version

	var lastErr error
	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		lastErr = s.projectStore.CommitStatusChange(project.ID, expectedVersion, entry)
		if lastErr == nil {
			return nil
		}
		if !apperrors.IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == maxCommitAttempts {
			break
		}

		s.logger.Warn("status commit failed, retrying",
			"projectId", project.ID,
			"attempt", attempt,
			"error", lastErr,
		)
		time.Sleep(commitRetryBackoff * time.Duration(attempt))

		reloaded, err := s.projectStore.GetProjectByID(project.ID)
		if err != nil || reloaded == nil {
			continue
		}
		expectedVersion = reloaded.Version
	}

	return lastErr
}

// verifyConsistency re-reads the project and the newest history entry after
// a commit and confirms they agree. A mismatch is reported as a consistency
// failure rather than silently repaired.
func (s *StatusService) verifyConsistency(projectID uuid.UUID) error {
	project, err := s.projectStore.GetProjectByID(projectID)
	if err != nil || project == nil {
		return apperrors.Persistence(apperrors.CodeStoreFailure, "failed to verify status commit", err)
	}

	newest, err := s.historyStore.GetNewestEntry(projectID)
	if err != nil {
		return apperrors.Persistence(apperrors.CodeStoreFailure, "failed to verify status commit", err)
	}
	if newest == nil || newest.Status != project.CurrentStatus {
		s.logger.Error("project status diverged from history",
			"projectId", projectID,
			"currentStatus", project.CurrentStatus,
		)
		return apperrors.Consistency(
			apperrors.CodeStatusDiverged,
			fmt.Sprintf("project %s status diverged from its history", projectID),
		)
	}

	return nil
}
