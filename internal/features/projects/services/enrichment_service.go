package projects_services

import (
	"context"
	"log/slog"
	"time"

	projects_dto "projecttrack/internal/features/projects/dto"
	projects_interfaces "projecttrack/internal/features/projects/interfaces"
	projects_models "projecttrack/internal/features/projects/models"
	users_enums "projecttrack/internal/features/users/enums"
	users_models "projecttrack/internal/features/users/models"
	"projecttrack/internal/util/apperrors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// UnknownTeacherName is shown when a project's teacher id no longer
	// resolves in the directory. The view still renders; a dangling
	// reference must not sink the whole dashboard.
	UnknownTeacherName = "Unknown"

	aggregationTimeout         = 5 * time.Second
	maxConcurrentRosterFetches = 8
	transientRetryDelay        = 150 * time.Millisecond
)

// EnrichmentService builds the dashboard read model: projects joined with
// the institution directory and their roster snapshots. It never mutates
// anything and keeps no cache, every call reads fresh state.
type EnrichmentService struct {
	projectStore projects_interfaces.ProjectStore
	rosterStore  projects_interfaces.TeamRosterStore
	directory    projects_interfaces.DirectoryReader
	logger       *slog.Logger
}

// BuildEnrichedViews assembles the views the actor is allowed to see:
// coordinators get every project of their institution, teachers only their
// own, students none. Roster fetches run concurrently under a bounded limit
// and the whole aggregation is capped by a deadline.
func (s *EnrichmentService) BuildEnrichedViews(
	ctx context.Context,
	actor *users_models.User,
) ([]projects_dto.EnrichedProjectViewDTO, error) {
	if actor.Role == users_enums.UserRoleStudent {
		return []projects_dto.EnrichedProjectViewDTO{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, aggregationTimeout)
	defer cancel()

	teacherNames, err := s.loadTeacherNames(ctx, actor.Institution)
	if err != nil {
		return nil, err
	}

	var projects []*projects_models.Project
	err = s.withRetry(ctx, func() error {
		loaded, loadErr := s.projectStore.GetProjectsByInstitution(ctx, actor.Institution)
		if loadErr != nil {
			return apperrors.Persistence(apperrors.CodeStoreFailure, "failed to load projects", loadErr)
		}
		projects = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	if actor.Role == users_enums.UserRoleTeacher {
		own := make([]*projects_models.Project, 0, len(projects))
		for _, project := range projects {
			if project.TeacherID == actor.ID {
				own = append(own, project)
			}
		}
		projects = own
	}

	views := make([]projects_dto.EnrichedProjectViewDTO, len(projects))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentRosterFetches)

	for i, project := range projects {
		group.Go(func() error {
			var members []*projects_models.TeamMember
			err := s.withRetry(groupCtx, func() error {
				loaded, loadErr := s.rosterStore.GetTeamMembers(groupCtx, project.ID)
				if loadErr != nil {
					return apperrors.Persistence(apperrors.CodeStoreFailure, "failed to load roster", loadErr)
				}
				members = loaded
				return nil
			})
			if err != nil {
				return err
			}

			views[i] = s.buildView(project, members, teacherNames)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		s.logger.Error("enriched view aggregation failed",
			"institution", actor.Institution,
			"error", err,
		)
		return nil, err
	}

	return views, nil
}

func (s *EnrichmentService) loadTeacherNames(
	ctx context.Context,
	institution string,
) (map[uuid.UUID]string, error) {
	var teachers []*users_models.User
	err := s.withRetry(ctx, func() error {
		loaded, loadErr := s.directory.ListUsersByInstitution(institution, users_enums.UserRoleTeacher)
		if loadErr != nil {
			return loadErr
		}
		teachers = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(teachers))
	for _, teacher := range teachers {
		names[teacher.ID] = teacher.FullName()
	}

	return names, nil
}

func (s *EnrichmentService) buildView(
	project *projects_models.Project,
	members []*projects_models.TeamMember,
	teacherNames map[uuid.UUID]string,
) projects_dto.EnrichedProjectViewDTO {
	teacherName, found := teacherNames[project.TeacherID]
	if !found {
		teacherName = UnknownTeacherName
	}

	students := make([]string, len(members))
	for i, member := range members {
		students[i] = member.FullName()
	}

	return projects_dto.EnrichedProjectViewDTO{
		ID:                       project.ID,
		Title:                    project.Title,
		Area:                     project.Area,
		Objectives:               project.Objectives,
		Schedule:                 project.Schedule,
		Budget:                   project.Budget,
		AdditionalObservations:   project.AdditionalObservations,
		Institution:              project.Institution,
		TeacherID:                project.TeacherID,
		TeacherName:              teacherName,
		CurrentStatus:            project.CurrentStatus,
		CurrentStatusObservation: project.CurrentStatusObservation,
		Students:                 students,
		CreatedAt:                project.CreatedAt,
		UpdatedAt:                project.UpdatedAt,
	}
}

// withRetry runs the operation and retries it once after a short pause when
// the failure is transient. Deadline expiry is never retried.
func (s *EnrichmentService) withRetry(ctx context.Context, operation func() error) error {
	err := operation()
	if err == nil || !apperrors.IsRetryable(err) {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(transientRetryDelay):
	}

	return operation()
}
