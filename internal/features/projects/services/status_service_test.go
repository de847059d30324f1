package projects_services

import (
	"context"
	"testing"
	"time"

	projects_dto "projecttrack/internal/features/projects/dto"
	projects_enums "projecttrack/internal/features/projects/enums"
	projects_models "projecttrack/internal/features/projects/models"
	projects_testing "projecttrack/internal/features/projects/testing"
	users_enums "projecttrack/internal/features/users/enums"
	users_models "projecttrack/internal/features/users/models"
	"projecttrack/internal/util/apperrors"
	"projecttrack/internal/util/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusFixture struct {
	store       *projects_testing.FakeProjectStore
	service     *StatusService
	audit       *projects_testing.FakeAuditLogWriter
	coordinator *users_models.User
	teacher     *users_models.User
	project     *projects_models.Project
}

func newStatusFixture(t *testing.T) *statusFixture {
	t.Helper()

	coordinator := &users_models.User{
		ID:          uuid.New(),
		FirstName:   "Elena",
		LastName:    "Vargas",
		Institution: testInstitution,
		Role:        users_enums.UserRoleCoordinator,
		Status:      users_enums.UserStatusActive,
	}
	teacher := makeTeacher(testInstitution)

	store := projects_testing.NewFakeProjectStore()
	project := &projects_models.Project{
		ID:                       uuid.New(),
		Title:                    "Solar Water Heater",
		Institution:              testInstitution,
		TeacherID:                teacher.ID,
		CurrentStatus:            projects_enums.ProjectStatusFormulation,
		CurrentStatusObservation: projects_models.DefaultCreationObservation,
		Version:                  1,
		CreatedAt:                time.Now().UTC(),
	}
	require.NoError(t, store.CreateProjectWithRoster(project, nil))

	audit := &projects_testing.FakeAuditLogWriter{}
	service := &StatusService{
		projectStore: store,
		historyStore: store,
		capabilities: &projects_testing.FakeCapabilities{
			Roles: map[uuid.UUID]users_enums.UserRole{
				coordinator.ID: users_enums.UserRoleCoordinator,
				teacher.ID:     users_enums.UserRoleTeacher,
			},
		},
		logger: logger.GetLogger(),
	}
	service.SetAuditLogWriter(audit)

	return &statusFixture{
		store:       store,
		service:     service,
		audit:       audit,
		coordinator: coordinator,
		teacher:     teacher,
		project:     project,
	}
}

func TestCommitStatusChange_AppendsEntryAndAdvancesStatus(t *testing.T) {
	f := newStatusFixture(t)

	entry, err := f.service.CommitStatusChange(f.project.ID, &projects_dto.ChangeStatusRequestDTO{
		Status:      projects_enums.ProjectStatusEvaluation,
		Observation: "Submitted for review",
	}, f.coordinator)

	require.NoError(t, err)
	assert.Equal(t, projects_enums.ProjectStatusEvaluation, entry.Status)
	assert.Equal(t, f.coordinator.ID, entry.ChangedBy)
	assert.NotEmpty(t, entry.ChangeKey)

	stored, err := f.store.GetProjectByID(f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, projects_enums.ProjectStatusEvaluation, stored.CurrentStatus)
	assert.Equal(t, "Submitted for review", stored.CurrentStatusObservation)
	assert.Equal(t, int64(2), stored.Version)
	assert.Equal(t, 1, f.store.HistoryLength(f.project.ID))
	assert.Len(t, f.audit.Records, 1)
}

func TestCommitStatusChange_RequiresObservation(t *testing.T) {
	f := newStatusFixture(t)

	for _, observation := range []string{"", "   "} {
		_, err := f.service.CommitStatusChange(f.project.ID, &projects_dto.ChangeStatusRequestDTO{
			Status:      projects_enums.ProjectStatusActive,
			Observation: observation,
		}, f.coordinator)

		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	}

	stored, err := f.store.GetProjectByID(f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, projects_enums.ProjectStatusFormulation, stored.CurrentStatus)
	assert.Equal(t, 0, f.store.HistoryLength(f.project.ID))
}

func TestCommitStatusChange_RejectsUnknownStatus(t *testing.T) {
	f := newStatusFixture(t)

	_, err := f.service.CommitStatusChange(f.project.ID, &projects_dto.ChangeStatusRequestDTO{
		Status:      "Archived",
		Observation: "Closing out",
	}, f.coordinator)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, 0, f.store.HistoryLength(f.project.ID))
}

func TestCommitStatusChange_RequiresCoordinatorRole(t *testing.T) {
	f := newStatusFixture(t)

	_, err := f.service.CommitStatusChange(f.project.ID, &projects_dto.ChangeStatusRequestDTO{
		Status:      projects_enums.ProjectStatusActive,
		Observation: "Trying anyway",
	}, f.teacher)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))
	assert.Equal(t, 0, f.store.HistoryLength(f.project.ID))
}

func TestCommitStatusChange_RejectsForeignInstitution(t *testing.T) {
	f := newStatusFixture(t)
	outsider := &users_models.User{
		ID:          uuid.New(),
		Institution: "Northern Institute",
		Role:        users_enums.UserRoleCoordinator,
	}
	f.service.capabilities = &projects_testing.FakeCapabilities{
		Roles: map[uuid.UUID]users_enums.UserRole{outsider.ID: users_enums.UserRoleCoordinator},
	}

	_, err := f.service.CommitStatusChange(f.project.ID, &projects_dto.ChangeStatusRequestDTO{
		Status:      projects_enums.ProjectStatusActive,
		Observation: "Cross-tenant attempt",
	}, outsider)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))
}

func TestCommitStatusChange_UnknownProject(t *testing.T) {
	f := newStatusFixture(t)

	_, err := f.service.CommitStatusChange(uuid.New(), &projects_dto.ChangeStatusRequestDTO{
		Status:      projects_enums.ProjectStatusActive,
		Observation: "No such project",
	}, f.coordinator)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCommitStatusChange_RetriesVersionConflict(t *testing.T) {
	f := newStatusFixture(t)
	f.store.FailNextCommit(apperrors.Conflict(apperrors.CodeVersionConflict, "concurrent writer"))

	entry, err := f.service.CommitStatusChange(f.project.ID, &projects_dto.ChangeStatusRequestDTO{
		Status:      projects_enums.ProjectStatusActive,
		Observation: "Approved",
	}, f.coordinator)

	require.NoError(t, err)
	assert.Equal(t, projects_enums.ProjectStatusActive, entry.Status)
	assert.Equal(t, 1, f.store.HistoryLength(f.project.ID))
}

func TestCommitStatusChange_GivesUpAfterBoundedRetries(t *testing.T) {
	f := newStatusFixture(t)
	for range 3 {
		f.store.FailNextCommit(apperrors.Conflict(apperrors.CodeVersionConflict, "concurrent writer"))
	}

	_, err := f.service.CommitStatusChange(f.project.ID, &projects_dto.ChangeStatusRequestDTO{
		Status:      projects_enums.ProjectStatusActive,
		Observation: "Approved",
	}, f.coordinator)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, 0, f.store.HistoryLength(f.project.ID))
}

func TestCommitStatusChange_SameChangeKeyIsIdempotent(t *testing.T) {
	f := newStatusFixture(t)
	request := &projects_dto.ChangeStatusRequestDTO{
		Status:      projects_enums.ProjectStatusActive,
		Observation: "Approved",
		ChangeKey:   "retry-safe-key",
	}

	first, err := f.service.CommitStatusChange(f.project.ID, request, f.coordinator)
	require.NoError(t, err)

	second, err := f.service.CommitStatusChange(f.project.ID, request, f.coordinator)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, f.store.HistoryLength(f.project.ID))

	stored, err := f.store.GetProjectByID(f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Version)
}

func TestCommitStatusChange_ChangeKeyReuseWithDifferentPayloadFails(t *testing.T) {
	f := newStatusFixture(t)

	_, err := f.service.CommitStatusChange(f.project.ID, &projects_dto.ChangeStatusRequestDTO{
		Status:      projects_enums.ProjectStatusActive,
		Observation: "Approved",
		ChangeKey:   "reused-key",
	}, f.coordinator)
	require.NoError(t, err)

	_, err = f.service.CommitStatusChange(f.project.ID, &projects_dto.ChangeStatusRequestDTO{
		Status:      projects_enums.ProjectStatusInactive,
		Observation: "Different change",
		ChangeKey:   "reused-key",
	}, f.coordinator)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, 1, f.store.HistoryLength(f.project.ID))
}

func TestGetStatusHistory_NewestFirst(t *testing.T) {
	f := newStatusFixture(t)

	statuses := []projects_enums.ProjectStatus{
		projects_enums.ProjectStatusEvaluation,
		projects_enums.ProjectStatusActive,
		projects_enums.ProjectStatusCompleted,
	}
	for _, status := range statuses {
		_, err := f.service.CommitStatusChange(f.project.ID, &projects_dto.ChangeStatusRequestDTO{
			Status:      status,
			Observation: "Step " + string(status),
		}, f.coordinator)
		require.NoError(t, err)
	}

	entries, err := f.service.GetStatusHistory(context.Background(), f.project.ID, f.coordinator)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, projects_enums.ProjectStatusCompleted, entries[0].Status)
	assert.Equal(t, projects_enums.ProjectStatusEvaluation, entries[2].Status)
}

func TestGetStatusHistory_OnlyCoordinatorOrOwningTeacher(t *testing.T) {
	f := newStatusFixture(t)

	_, err := f.service.GetStatusHistory(context.Background(), f.project.ID, f.teacher)
	require.NoError(t, err)

	otherTeacher := makeTeacher(testInstitution)
	_, err = f.service.GetStatusHistory(context.Background(), f.project.ID, otherTeacher)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))
}
