package projects_services

import (
	"testing"

	projects_dto "projecttrack/internal/features/projects/dto"
	projects_enums "projecttrack/internal/features/projects/enums"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func makeViews() []projects_dto.EnrichedProjectViewDTO {
	return []projects_dto.EnrichedProjectViewDTO{
		{
			ID:            uuid.New(),
			Title:         "Solar Water Heater",
			TeacherName:   "Maria Lopez",
			CurrentStatus: projects_enums.ProjectStatusActive,
			Students:      []string{"Ana Diaz", "Carlos Ruiz"},
		},
		{
			ID:            uuid.New(),
			Title:         "Community Garden",
			TeacherName:   "Jorge Mendez",
			CurrentStatus: projects_enums.ProjectStatusFormulation,
			Students:      []string{"Lucia Prado"},
		},
		{
			ID:            uuid.New(),
			Title:         "Recycling Drive",
			TeacherName:   "Maria Lopez",
			CurrentStatus: projects_enums.ProjectStatusCompleted,
			Students:      []string{},
		},
	}
}

func TestFilterProjects_EmptyCriteriaReturnsEverything(t *testing.T) {
	views := makeViews()

	filtered := FilterProjects(views, projects_dto.ProjectFilterDTO{})

	assert.Len(t, filtered, 3)
	assert.Equal(t, views[0].ID, filtered[0].ID)
	assert.Equal(t, views[2].ID, filtered[2].ID)
}

func TestFilterProjects_TitleMatchesSubstringCaseInsensitive(t *testing.T) {
	filtered := FilterProjects(makeViews(), projects_dto.ProjectFilterDTO{Title: "water"})

	assert.Len(t, filtered, 1)
	assert.Equal(t, "Solar Water Heater", filtered[0].Title)
}

func TestFilterProjects_StudentMatchesAnyRosterName(t *testing.T) {
	filtered := FilterProjects(makeViews(), projects_dto.ProjectFilterDTO{Student: "ruiz"})

	assert.Len(t, filtered, 1)
	assert.Equal(t, "Solar Water Heater", filtered[0].Title)
}

func TestFilterProjects_StudentCriterionExcludesEmptyRosters(t *testing.T) {
	filtered := FilterProjects(makeViews(), projects_dto.ProjectFilterDTO{Student: "a"})

	for _, view := range filtered {
		assert.NotEmpty(t, view.Students)
	}
}

func TestFilterProjects_StatusMatchesExactly(t *testing.T) {
	filtered := FilterProjects(makeViews(), projects_dto.ProjectFilterDTO{Status: "Active"})
	assert.Len(t, filtered, 1)
	assert.Equal(t, projects_enums.ProjectStatusActive, filtered[0].CurrentStatus)

	// substring of a status is not a match
	filtered = FilterProjects(makeViews(), projects_dto.ProjectFilterDTO{Status: "Act"})
	assert.Empty(t, filtered)
}

func TestFilterProjects_CriteriaCombineWithAnd(t *testing.T) {
	filtered := FilterProjects(makeViews(), projects_dto.ProjectFilterDTO{
		Teacher: "maria",
		Status:  "Completed",
	})

	assert.Len(t, filtered, 1)
	assert.Equal(t, "Recycling Drive", filtered[0].Title)
}

func TestFilterProjects_NoMatchReturnsEmptyNotNil(t *testing.T) {
	filtered := FilterProjects(makeViews(), projects_dto.ProjectFilterDTO{Title: "nonexistent"})

	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func TestFilterProjects_DoesNotModifyInput(t *testing.T) {
	views := makeViews()

	FilterProjects(views, projects_dto.ProjectFilterDTO{Teacher: "jorge"})

	assert.Len(t, views, 3)
	assert.Equal(t, "Solar Water Heater", views[0].Title)
}
