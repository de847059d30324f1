package projects_enums

// ProjectStatus is the lifecycle state of a project. There is no restricted
// transition graph: any status is reachable from any other, provided the
// change carries an observation.
type ProjectStatus string

const (
	ProjectStatusFormulation ProjectStatus = "Formulation"
	ProjectStatusEvaluation  ProjectStatus = "Evaluation"
	ProjectStatusActive      ProjectStatus = "Active"
	ProjectStatusInactive    ProjectStatus = "Inactive"
	ProjectStatusCompleted   ProjectStatus = "Completed"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusFormulation, ProjectStatusEvaluation, ProjectStatusActive,
		ProjectStatusInactive, ProjectStatusCompleted:
		return true
	default:
		return false
	}
}
