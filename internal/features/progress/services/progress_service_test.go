package progress_services

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	progress_dto "projecttrack/internal/features/progress/dto"
	progress_models "projecttrack/internal/features/progress/models"
	projects_enums "projecttrack/internal/features/projects/enums"
	projects_models "projecttrack/internal/features/projects/models"
	projects_testing "projecttrack/internal/features/projects/testing"
	users_enums "projecttrack/internal/features/users/enums"
	users_models "projecttrack/internal/features/users/models"
	"projecttrack/internal/util/apperrors"
	"projecttrack/internal/util/logger"
	"projecttrack/internal/util/rate_limit"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProgressStore struct {
	mu      sync.Mutex
	updates []*progress_models.ProgressUpdate
}

func (s *fakeProgressStore) CreateProgressUpdate(update *progress_models.ProgressUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *update
	s.updates = append(s.updates, &copied)
	return nil
}

func (s *fakeProgressStore) GetProgressUpdates(
	ctx context.Context,
	projectID uuid.UUID,
) ([]*progress_models.ProgressUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updates []*progress_models.ProgressUpdate
	for _, update := range s.updates {
		if update.ProjectID == projectID {
			copied := *update
			updates = append(updates, &copied)
		}
	}
	sort.Slice(updates, func(i, j int) bool {
		return updates[i].Date.After(updates[j].Date)
	})

	return updates, nil
}

type fakeRateLimiter struct {
	allowed bool
}

func (l *fakeRateLimiter) CheckRateLimit(
	projectID uuid.UUID,
	rpsLimit, burstLimit int,
) (*rate_limit.RateLimitResult, error) {
	return &rate_limit.RateLimitResult{Allowed: l.allowed, RetryAfterSec: 1}, nil
}

type progressFixture struct {
	store    *fakeProgressStore
	projects *projects_testing.FakeProjectStore
	limiter  *fakeRateLimiter
	service  *ProgressService
	teacher  *users_models.User
	project  *projects_models.Project
}

func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()

	teacher := &users_models.User{
		ID:          uuid.New(),
		FirstName:   "Maria",
		LastName:    "Lopez",
		Institution: "Central Technical School",
		Role:        users_enums.UserRoleTeacher,
		Status:      users_enums.UserStatusActive,
	}

	projects := projects_testing.NewFakeProjectStore()
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

	store := &fakeProgressStore{}
	limiter := &fakeRateLimiter{allowed: true}
	service := &ProgressService{
		progressStore: store,
		projectStore:  projects,
		rateLimiter:   limiter,
		logger:        logger.GetLogger(),
	}

	return &progressFixture{
		store:    store,
		projects: projects,
		limiter:  limiter,
		service:  service,
		teacher:  teacher,
		project:  project,
	}
}

func TestAddProgressUpdate_StoresUpdateWithAttachmentRefs(t *testing.T) {
	f := newProgressFixture(t)

	update, err := f.service.AddProgressUpdate(f.project.ID, &progress_dto.AddProgressUpdateRequestDTO{
		Description: "Prototype assembled",
		Documents:   []string{"docs/assembly.pdf"},
		Photos:      []string{"photos/tank.jpg", "photos/frame.jpg"},
	}, f.teacher)

	require.NoError(t, err)
	assert.Equal(t, f.project.ID, update.ProjectID)
	assert.Equal(t, f.teacher.ID, update.CreatedBy)
	assert.Equal(t, []string{"docs/assembly.pdf"}, update.Documents)
	assert.Len(t, update.Photos, 2)

	stored, err := f.store.GetProgressUpdates(context.Background(), f.project.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestAddProgressUpdate_RequiresDescription(t *testing.T) {
	f := newProgressFixture(t)

	_, err := f.service.AddProgressUpdate(f.project.ID, &progress_dto.AddProgressUpdateRequestDTO{
		Description: "   ",
	}, f.teacher)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestAddProgressUpdate_OnlyOwningTeacherOrCoordinator(t *testing.T) {
	f := newProgressFixture(t)
	otherTeacher := &users_models.User{
		ID:          uuid.New(),
		Institution: f.teacher.Institution,
		Role:        users_enums.UserRoleTeacher,
	}

	_, err := f.service.AddProgressUpdate(f.project.ID, &progress_dto.AddProgressUpdateRequestDTO{
		Description: "Not my project",
	}, otherTeacher)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))

	coordinator := &users_models.User{
		ID:          uuid.New(),
		Institution: f.teacher.Institution,
		Role:        users_enums.UserRoleCoordinator,
	}
	_, err = f.service.AddProgressUpdate(f.project.ID, &progress_dto.AddProgressUpdateRequestDTO{
		Description: "Coordinator note",
	}, coordinator)
	require.NoError(t, err)
}

func TestAddProgressUpdate_RateLimited(t *testing.T) {
	f := newProgressFixture(t)
	f.limiter.allowed = false

	_, err := f.service.AddProgressUpdate(f.project.ID, &progress_dto.AddProgressUpdateRequestDTO{
		Description: "Too fast",
	}, f.teacher)

	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeRateLimitExceeded, appErr.Code)
}

func TestAddProgressUpdate_UnknownProject(t *testing.T) {
	f := newProgressFixture(t)

	_, err := f.service.AddProgressUpdate(uuid.New(), &progress_dto.AddProgressUpdateRequestDTO{
		Description: "Nowhere to go",
	}, f.teacher)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestGetProgressUpdates_NewestFirstAndInstitutionScoped(t *testing.T) {
	f := newProgressFixture(t)

	for _, description := range []string{"First", "Second", "Third"} {
		_, err := f.service.AddProgressUpdate(f.project.ID, &progress_dto.AddProgressUpdateRequestDTO{
			Description: description,
		}, f.teacher)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	updates, err := f.service.GetProgressUpdates(context.Background(), f.project.ID, f.teacher)
	require.NoError(t, err)
	require.Len(t, updates, 3)
	assert.Equal(t, "Third", updates[0].Description)
	assert.Equal(t, "First", updates[2].Description)

	outsider := &users_models.User{
		ID:          uuid.New(),
		Institution: "Northern Institute",
		Role:        users_enums.UserRoleCoordinator,
	}
	_, err = f.service.GetProgressUpdates(context.Background(), f.project.ID, outsider)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))
}
