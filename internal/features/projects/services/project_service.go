package projects_services

import (
	"fmt"
	"math"
	"strconv"
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

type ProjectService struct {
	projectStore   projects_interfaces.ProjectStore
	directory      projects_interfaces.DirectoryReader
	capabilities   projects_interfaces.CapabilityChecker
	auditLogWriter projects_interfaces.AuditLogWriter
}

func (s *ProjectService) SetAuditLogWriter(auditLogWriter projects_interfaces.AuditLogWriter) {
	s.auditLogWriter = auditLogWriter
}

// CreateProject validates the request, snapshots every listed student from
// the directory, and persists the project together with its roster in one
// transaction. Every student id must resolve before anything is written: one
// unknown id fails the whole request and no project exists afterwards.
func (s *ProjectService) CreateProject(
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_models.Project, error) {
	hasRole, err := s.capabilities.HasRole(creator.ID, users_enums.UserRoleTeacher)
	if err != nil {
		return nil, err
	}
	if !hasRole {
		return nil, apperrors.Authorization(
			apperrors.CodeInsufficientRole,
			"only teachers can create projects",
		)
	}

	title := strings.TrimSpace(request.Title)
	area := strings.TrimSpace(request.Area)
	objectives := strings.TrimSpace(request.Objectives)
	if title == "" || area == "" || objectives == "" {
		return nil, apperrors.Validation(
			apperrors.CodeMissingField,
			"title, area and objectives are required",
		)
	}

	budget, err := parseBudget(request.Budget)
	if err != nil {
		return nil, err
	}

	members, err := s.snapshotRoster(request.StudentIDs, creator.Institution)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := &projects_models.Project{
		ID:                       uuid.New(),
		Title:                    title,
		Area:                     area,
		Objectives:               objectives,
		Schedule:                 strings.TrimSpace(request.Schedule),
		Budget:                   budget,
		AdditionalObservations:   strings.TrimSpace(request.AdditionalObservations),
		Institution:              creator.Institution,
		TeacherID:                creator.ID,
		CurrentStatus:            projects_enums.ProjectStatusFormulation,
		CurrentStatusObservation: projects_models.DefaultCreationObservation,
		Version:                  1,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	for _, member := range members {
		member.ProjectID = project.ID
	}

	if err := s.projectStore.CreateProjectWithRoster(project, members); err != nil {
		return nil, apperrors.Persistence(apperrors.CodeStoreFailure, "failed to create project", err)
	}

	if s.auditLogWriter != nil {
		s.auditLogWriter.WriteAuditLog(
			fmt.Sprintf("Project created: %s", project.Title),
			project.Institution,
			&creator.ID,
			&project.ID,
		)
	}

	return project, nil
}

// GetProject loads a project and enforces the institution boundary against
// the actor.
func (s *ProjectService) GetProject(
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

func (s *ProjectService) snapshotRoster(
	studentIDs []uuid.UUID,
	institution string,
) ([]*projects_models.TeamMember, error) {
	members := make([]*projects_models.TeamMember, 0, len(studentIDs))

	for position, studentID := range studentIDs {
		student, err := s.directory.GetUserByID(studentID)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.KindNotFound {
				return nil, apperrors.Validation(
					apperrors.CodeStudentNotFound,
					fmt.Sprintf("student %s does not exist", studentID),
				)
			}
			return nil, err
		}
		if student.Role != users_enums.UserRoleStudent {
			return nil, apperrors.Validation(
				apperrors.CodeStudentNotFound,
				fmt.Sprintf("user %s is not a student", studentID),
			)
		}
		if student.Institution != institution {
			return nil, apperrors.Validation(
				apperrors.CodeStudentNotFound,
				fmt.Sprintf("student %s belongs to a different institution", studentID),
			)
		}
		if student.Status == users_enums.UserStatusInactive {
			return nil, apperrors.Validation(
				apperrors.CodeStudentNotFound,
				fmt.Sprintf("student %s is deactivated", studentID),
			)
		}

		members = append(members, &projects_models.TeamMember{
			ID:             uuid.New(),
			FirstName:      student.FirstName,
			LastName:       student.LastName,
			Identification: student.Identification,
			Grade:          student.Grade,
			SourceUserID:   student.ID,
			Position:       position,
		})
	}

	return members, nil
}

// parseBudget accepts only a string whose entire trimmed content is a finite
// non-negative number. Partial parses like "12abc" are rejected.
func parseBudget(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, apperrors.Validation(apperrors.CodeInvalidBudget, "budget is required")
	}

	budget, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(budget) || math.IsInf(budget, 0) {
		return 0, apperrors.Validation(
			apperrors.CodeInvalidBudget,
			fmt.Sprintf("budget %q is not a valid number", raw),
		)
	}
	if budget < 0 {
		return 0, apperrors.Validation(apperrors.CodeInvalidBudget, "budget cannot be negative")
	}

	return budget, nil
}
