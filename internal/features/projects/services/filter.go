package projects_services

import (
	"strings"

	projects_dto "projecttrack/internal/features/projects/dto"
)

// FilterProjects narrows enriched views by the given criteria. All criteria
// combine with AND, empty criteria match everything, text matching is a
// case-insensitive substring check and status is compared exactly. The input
// slice is never modified and the result keeps its order.
func FilterProjects(
	views []projects_dto.EnrichedProjectViewDTO,
	criteria projects_dto.ProjectFilterDTO,
) []projects_dto.EnrichedProjectViewDTO {
	title := normalize(criteria.Title)
	student := normalize(criteria.Student)
	teacher := normalize(criteria.Teacher)
	status := strings.TrimSpace(criteria.Status)

	filtered := make([]projects_dto.EnrichedProjectViewDTO, 0, len(views))
	for _, view := range views {
		if title != "" && !strings.Contains(strings.ToLower(view.Title), title) {
			continue
		}
		if teacher != "" && !strings.Contains(strings.ToLower(view.TeacherName), teacher) {
			continue
		}
		if status != "" && string(view.CurrentStatus) != status {
			continue
		}
		if student != "" && !anyStudentMatches(view.Students, student) {
			continue
		}

		filtered = append(filtered, view)
	}

	return filtered
}

func anyStudentMatches(students []string, needle string) bool {
	for _, name := range students {
		if strings.Contains(strings.ToLower(name), needle) {
			return true
		}
	}
	return false
}

func normalize(criterion string) string {
	return strings.ToLower(strings.TrimSpace(criterion))
}
