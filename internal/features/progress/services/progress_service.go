package progress_services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	progress_dto "projecttrack/internal/features/progress/dto"
	progress_models "projecttrack/internal/features/progress/models"
	projects_interfaces "projecttrack/internal/features/projects/interfaces"
	projects_models "projecttrack/internal/features/projects/models"
	users_enums "projecttrack/internal/features/users/enums"
	users_models "projecttrack/internal/features/users/models"
	"projecttrack/internal/util/apperrors"
	cache_utils "projecttrack/internal/util/cache"
	"projecttrack/internal/util/rate_limit"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	// Per-project write limits. Progress updates come from humans; anything
	// past this is a runaway client.
	progressRpsLimit   = 5
	progressBurstLimit = 20
)

type ProgressStore interface {
	CreateProgressUpdate(update *progress_models.ProgressUpdate) error
	GetProgressUpdates(ctx context.Context, projectID uuid.UUID) ([]*progress_models.ProgressUpdate, error)
}

type RateLimitChecker interface {
	CheckRateLimit(projectID uuid.UUID, rpsLimit, burstLimit int) (*rate_limit.RateLimitResult, error)
}

// ProgressService manages the progress timeline of a project. Project
// lookups go through a short-lived cache and are collapsed with singleflight
// so a burst of updates on one project hits the database once.
type ProgressService struct {
	progressStore  ProgressStore
	projectStore   projects_interfaces.ProjectStore
	projectCache   *cache_utils.CacheUtil[projects_models.Project]
	projectLoads   singleflight.Group
	rateLimiter    RateLimitChecker
	auditLogWriter projects_interfaces.AuditLogWriter
	logger         *slog.Logger
}

func (s *ProgressService) SetAuditLogWriter(auditLogWriter projects_interfaces.AuditLogWriter) {
	s.auditLogWriter = auditLogWriter
}

func (s *ProgressService) AddProgressUpdate(
	projectID uuid.UUID,
	request *progress_dto.AddProgressUpdateRequestDTO,
	actor *users_models.User,
) (*progress_models.ProgressUpdate, error) {
	description := strings.TrimSpace(request.Description)
	if description == "" {
		return nil, apperrors.Validation(
			apperrors.CodeDescriptionRequired,
			"a progress update requires a description",
		)
	}

	project, err := s.loadProject(projectID, actor)
	if err != nil {
		return nil, err
	}
	if actor.Role != users_enums.UserRoleCoordinator && project.TeacherID != actor.ID {
		return nil, apperrors.Authorization(
			apperrors.CodeInsufficientRole,
			"only the project's teacher or a coordinator can post progress updates",
		)
	}

	if s.rateLimiter != nil {
		result, err := s.rateLimiter.CheckRateLimit(projectID, progressRpsLimit, progressBurstLimit)
		if err != nil {
			// The limiter backend being down must not block writes.
			s.logger.Warn("rate limit check failed, allowing update",
				"projectId", projectID,
				"error", err,
			)
		} else if !result.Allowed {
			return nil, apperrors.Validation(
				apperrors.CodeRateLimitExceeded,
				fmt.Sprintf("too many progress updates, retry in %d seconds", result.RetryAfterSec),
			)
		}
	}

	update := &progress_models.ProgressUpdate{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Description: description,
		Documents:   request.Documents,
		Photos:      request.Photos,
		CreatedBy:   actor.ID,
		Date:        time.Now().UTC(),
	}

	if err := s.progressStore.CreateProgressUpdate(update); err != nil {
		return nil, apperrors.Persistence(apperrors.CodeStoreFailure, "failed to store progress update", err)
	}

	if s.auditLogWriter != nil {
		s.auditLogWriter.WriteAuditLog(
			fmt.Sprintf("Progress update added: %s", project.Title),
			project.Institution,
			&actor.ID,
			&project.ID,
		)
	}

	return update, nil
}

func (s *ProgressService) GetProgressUpdates(
	ctx context.Context,
	projectID uuid.UUID,
	actor *users_models.User,
) ([]*progress_models.ProgressUpdate, error) {
	if _, err := s.loadProject(projectID, actor); err != nil {
		return nil, err
	}

	updates, err := s.progressStore.GetProgressUpdates(ctx, projectID)
	if err != nil {
		return nil, apperrors.Persistence(apperrors.CodeStoreFailure, "failed to load progress updates", err)
	}

	return updates, nil
}

// loadProject resolves the project through the cache and enforces the
// institution boundary. Concurrent misses for the same project share one
// database read.
func (s *ProgressService) loadProject(
	projectID uuid.UUID,
	actor *users_models.User,
) (*projects_models.Project, error) {
	if s.projectCache != nil {
		if cached := s.projectCache.Get(projectID.String()); cached != nil {
			return s.checkInstitution(cached, actor)
		}
	}

	loaded, err, _ := s.projectLoads.Do(projectID.String(), func() (any, error) {
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
		if s.projectCache != nil {
			s.projectCache.Set(projectID.String(), project)
		}
		return project, nil
	})
	if err != nil {
		return nil, err
	}

	return s.checkInstitution(loaded.(*projects_models.Project), actor)
}

func (s *ProgressService) checkInstitution(
	project *projects_models.Project,
	actor *users_models.User,
) (*projects_models.Project, error) {
	if project.Institution != actor.Institution {
		return nil, apperrors.Authorization(
			apperrors.CodeWrongInstitution,
			"project belongs to a different institution",
		)
	}
	return project, nil
}
