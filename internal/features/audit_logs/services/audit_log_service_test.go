package audit_logs_services

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	audit_logs_models "projecttrack/internal/features/audit_logs/models"
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

type fakeAuditLogStore struct {
	mu   sync.Mutex
	logs []*audit_logs_models.AuditLog
}

func (s *fakeAuditLogStore) CreateAuditLog(log *audit_logs_models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *log
	s.logs = append(s.logs, &copied)
	return nil
}

func (s *fakeAuditLogStore) GetByInstitution(
	ctx context.Context,
	institution string,
	limit int,
) ([]*audit_logs_models.EnrichedAuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var enriched []*audit_logs_models.EnrichedAuditLog
	for _, log := range s.logs {
		if log.Institution == institution {
			enriched = append(enriched, &audit_logs_models.EnrichedAuditLog{AuditLog: *log})
		}
	}
	sortNewestFirst(enriched)
	if len(enriched) > limit {
		enriched = enriched[:limit]
	}

	return enriched, nil
}

func (s *fakeAuditLogStore) GetByProject(
	ctx context.Context,
	projectID uuid.UUID,
	limit int,
) ([]*audit_logs_models.EnrichedAuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var enriched []*audit_logs_models.EnrichedAuditLog
	for _, log := range s.logs {
		if log.ProjectID != nil && *log.ProjectID == projectID {
			enriched = append(enriched, &audit_logs_models.EnrichedAuditLog{AuditLog: *log})
		}
	}
	sortNewestFirst(enriched)
	if len(enriched) > limit {
		enriched = enriched[:limit]
	}

	return enriched, nil
}

func sortNewestFirst(logs []*audit_logs_models.EnrichedAuditLog) {
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})
}

func newAuditFixture(t *testing.T) (*AuditLogService, *fakeAuditLogStore, *projects_testing.FakeProjectStore) {
	t.Helper()

	store := &fakeAuditLogStore{}
	projects := projects_testing.NewFakeProjectStore()
	service := &AuditLogService{
		auditLogStore: store,
		projectStore:  projects,
		logger:        logger.GetLogger(),
	}

	return service, store, projects
}

func TestWriteAuditLog_RecordsEntryWithInstitution(t *testing.T) {
	service, store, _ := newAuditFixture(t)
	userID := uuid.New()

	service.WriteAuditLog("User signed in", "Central Technical School", &userID, nil)

	require.Len(t, store.logs, 1)
	assert.Equal(t, "User signed in", store.logs[0].Message)
	assert.Equal(t, "Central Technical School", store.logs[0].Institution)
	assert.Equal(t, userID, *store.logs[0].UserID)
	assert.Nil(t, store.logs[0].ProjectID)
}

func TestGetInstitutionAuditLogs_ScopedAndCoordinatorOnly(t *testing.T) {
	service, _, _ := newAuditFixture(t)
	service.WriteAuditLog("Local event", "Central Technical School", nil, nil)
	service.WriteAuditLog("Foreign event", "Northern Institute", nil, nil)

	coordinator := &users_models.User{
		ID:          uuid.New(),
		Institution: "Central Technical School",
		Role:        users_enums.UserRoleCoordinator,
	}
	logs, err := service.GetInstitutionAuditLogs(context.Background(), coordinator)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Local event", logs[0].Message)

	teacher := &users_models.User{
		ID:          uuid.New(),
		Institution: "Central Technical School",
		Role:        users_enums.UserRoleTeacher,
	}
	_, err = service.GetInstitutionAuditLogs(context.Background(), teacher)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))
}

func TestGetProjectAuditLogs_CoordinatorAndOwningTeacher(t *testing.T) {
	service, _, projects := newAuditFixture(t)

	teacher := &users_models.User{
		ID:          uuid.New(),
		Institution: "Central Technical School",
		Role:        users_enums.UserRoleTeacher,
	}
	project := &projects_models.Project{
		ID:            uuid.New(),
		Title:         "Solar Water Heater",
		Institution:   teacher.Institution,
		TeacherID:     teacher.ID,
		CurrentStatus: projects_enums.ProjectStatusActive,
		Version:       1,
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, projects.CreateProjectWithRoster(project, nil))

	service.WriteAuditLog("Project created", project.Institution, &teacher.ID, &project.ID)

	logs, err := service.GetProjectAuditLogs(context.Background(), project.ID, teacher)
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	otherTeacher := &users_models.User{
		ID:          uuid.New(),
		Institution: teacher.Institution,
		Role:        users_enums.UserRoleTeacher,
	}
	_, err = service.GetProjectAuditLogs(context.Background(), project.ID, otherTeacher)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))

	outsider := &users_models.User{
		ID:          uuid.New(),
		Institution: "Northern Institute",
		Role:        users_enums.UserRoleCoordinator,
	}
	_, err = service.GetProjectAuditLogs(context.Background(), project.ID, outsider)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))
}

func TestGetProjectAuditLogs_UnknownProject(t *testing.T) {
	service, _, _ := newAuditFixture(t)

	coordinator := &users_models.User{
		ID:          uuid.New(),
		Institution: "Central Technical School",
		Role:        users_enums.UserRoleCoordinator,
	}
	_, err := service.GetProjectAuditLogs(context.Background(), uuid.New(), coordinator)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
