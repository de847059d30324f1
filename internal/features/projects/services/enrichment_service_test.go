package projects_services

import (
	"context"
	"testing"
	"time"

	projects_enums "projecttrack/internal/features/projects/enums"
	projects_models "projecttrack/internal/features/projects/models"
	projects_testing "projecttrack/internal/features/projects/testing"
	users_enums "projecttrack/internal/features/users/enums"
	users_models "projecttrack/internal/features/users/models"
	"projecttrack/internal/util/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type enrichmentFixture struct {
	store     *projects_testing.FakeProjectStore
	directory *projects_testing.FakeDirectory
	service   *EnrichmentService
}

func newEnrichmentFixture(directory *projects_testing.FakeDirectory) *enrichmentFixture {
	store := projects_testing.NewFakeProjectStore()
	return &enrichmentFixture{
		store:     store,
		directory: directory,
		service: &EnrichmentService{
			projectStore: store,
			rosterStore:  store,
			directory:    directory,
			logger:       logger.GetLogger(),
		},
	}
}

func seedProject(
	t *testing.T,
	store *projects_testing.FakeProjectStore,
	institution string,
	teacherID uuid.UUID,
	title string,
	members ...*projects_models.TeamMember,
) *projects_models.Project {
	t.Helper()

	project := &projects_models.Project{
		ID:            uuid.New(),
		Title:         title,
		Institution:   institution,
		TeacherID:     teacherID,
		CurrentStatus: projects_enums.ProjectStatusFormulation,
		Version:       1,
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, store.CreateProjectWithRoster(project, members))

	return project
}

func TestBuildEnrichedViews_CoordinatorSeesWholeInstitution(t *testing.T) {
	teacher := makeTeacher(testInstitution)
	f := newEnrichmentFixture(projects_testing.NewFakeDirectory(teacher))
	seedProject(t, f.store, testInstitution, teacher.ID, "First")
	seedProject(t, f.store, testInstitution, teacher.ID, "Second")
	seedProject(t, f.store, "Northern Institute", uuid.New(), "Foreign")

	coordinator := &users_models.User{
		ID:          uuid.New(),
		Institution: testInstitution,
		Role:        users_enums.UserRoleCoordinator,
	}

	views, err := f.service.BuildEnrichedViews(context.Background(), coordinator)

	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, view := range views {
		assert.Equal(t, testInstitution, view.Institution)
		assert.Equal(t, teacher.FullName(), view.TeacherName)
	}
}

func TestBuildEnrichedViews_TeacherSeesOnlyOwnProjects(t *testing.T) {
	teacher := makeTeacher(testInstitution)
	colleague := makeTeacher(testInstitution)
	f := newEnrichmentFixture(projects_testing.NewFakeDirectory(teacher, colleague))
	seedProject(t, f.store, testInstitution, teacher.ID, "Mine")
	seedProject(t, f.store, testInstitution, colleague.ID, "Someone else's")

	views, err := f.service.BuildEnrichedViews(context.Background(), teacher)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Mine", views[0].Title)
}

func TestBuildEnrichedViews_StudentGetsEmptyResult(t *testing.T) {
	teacher := makeTeacher(testInstitution)
	f := newEnrichmentFixture(projects_testing.NewFakeDirectory(teacher))
	seedProject(t, f.store, testInstitution, teacher.ID, "Hidden")

	student := makeStudent(testInstitution, "Ana", "Diaz")
	views, err := f.service.BuildEnrichedViews(context.Background(), student)

	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestBuildEnrichedViews_DanglingTeacherRendersUnknown(t *testing.T) {
	f := newEnrichmentFixture(projects_testing.NewFakeDirectory())
	seedProject(t, f.store, testInstitution, uuid.New(), "Orphaned")

	coordinator := &users_models.User{
		ID:          uuid.New(),
		Institution: testInstitution,
		Role:        users_enums.UserRoleCoordinator,
	}

	views, err := f.service.BuildEnrichedViews(context.Background(), coordinator)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, UnknownTeacherName, views[0].TeacherName)
}

func TestBuildEnrichedViews_RosterNamesKeepEnrollmentOrder(t *testing.T) {
	teacher := makeTeacher(testInstitution)
	f := newEnrichmentFixture(projects_testing.NewFakeDirectory(teacher))
	seedProject(t, f.store, testInstitution, teacher.ID, "Ordered",
		&projects_models.TeamMember{ID: uuid.New(), FirstName: "Zoe", LastName: "Alba", Position: 0},
		&projects_models.TeamMember{ID: uuid.New(), FirstName: "Ana", LastName: "Diaz", Position: 1},
	)

	coordinator := &users_models.User{
		ID:          uuid.New(),
		Institution: testInstitution,
		Role:        users_enums.UserRoleCoordinator,
	}

	views, err := f.service.BuildEnrichedViews(context.Background(), coordinator)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, []string{"Zoe Alba", "Ana Diaz"}, views[0].Students)
}

func TestBuildEnrichedViews_RetriesTransientDirectoryFailureOnce(t *testing.T) {
	teacher := makeTeacher(testInstitution)
	directory := projects_testing.NewFakeDirectory(teacher)
	directory.Failures = 1
	f := newEnrichmentFixture(directory)
	seedProject(t, f.store, testInstitution, teacher.ID, "Resilient")

	coordinator := &users_models.User{
		ID:          uuid.New(),
		Institution: testInstitution,
		Role:        users_enums.UserRoleCoordinator,
	}

	views, err := f.service.BuildEnrichedViews(context.Background(), coordinator)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, teacher.FullName(), views[0].TeacherName)
}

func TestBuildEnrichedViews_SurfacesPersistentDirectoryFailure(t *testing.T) {
	teacher := makeTeacher(testInstitution)
	directory := projects_testing.NewFakeDirectory(teacher)
	directory.Failures = 2
	f := newEnrichmentFixture(directory)

	coordinator := &users_models.User{
		ID:          uuid.New(),
		Institution: testInstitution,
		Role:        users_enums.UserRoleCoordinator,
	}

	_, err := f.service.BuildEnrichedViews(context.Background(), coordinator)

	require.Error(t, err)
}

func TestBuildEnrichedViews_CanceledContextAborts(t *testing.T) {
	teacher := makeTeacher(testInstitution)
	f := newEnrichmentFixture(projects_testing.NewFakeDirectory(teacher))
	seedProject(t, f.store, testInstitution, teacher.ID, "Never built")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	coordinator := &users_models.User{
		ID:          uuid.New(),
		Institution: testInstitution,
		Role:        users_enums.UserRoleCoordinator,
	}

	_, err := f.service.BuildEnrichedViews(ctx, coordinator)

	require.Error(t, err)
}
