package projects_interfaces

import (
	"context"

	projects_models "projecttrack/internal/features/projects/models"
	users_enums "projecttrack/internal/features/users/enums"
	users_models "projecttrack/internal/features/users/models"

	"github.com/google/uuid"
)

// ProjectStore persists projects and their status commits.
type ProjectStore interface {
	// CreateProjectWithRoster writes the project and its roster snapshot in
	// one transaction: either all rows land or none do.
	CreateProjectWithRoster(project *projects_models.Project, members []*projects_models.TeamMember) error
	GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error)
	GetProjectsByInstitution(ctx context.Context, institution string) ([]*projects_models.Project, error)
	GetAllProjects(ctx context.Context) ([]*projects_models.Project, error)
	// CommitStatusChange updates the project's current status and appends the
	// history entry atomically, conditioned on the project still being at
	// expectedVersion. A stale version yields a Conflict error and writes
	// nothing.
	CommitStatusChange(projectID uuid.UUID, expectedVersion int64, entry *projects_models.StatusHistoryEntry) error
}

// StatusHistoryStore reads the append-only status audit trail.
type StatusHistoryStore interface {
	GetHistory(ctx context.Context, projectID uuid.UUID) ([]*projects_models.StatusHistoryEntry, error)
	GetNewestEntry(projectID uuid.UUID) (*projects_models.StatusHistoryEntry, error)
	GetEntryByChangeKey(projectID uuid.UUID, changeKey string) (*projects_models.StatusHistoryEntry, error)
}

// TeamRosterStore reads roster snapshots in enrollment order.
type TeamRosterStore interface {
	GetTeamMembers(ctx context.Context, projectID uuid.UUID) ([]*projects_models.TeamMember, error)
}

// DirectoryReader is the slice of the users feature the projects feature
// needs: resolving students at creation time and loading the institution
// directory for enrichment.
type DirectoryReader interface {
	GetUserByID(userID uuid.UUID) (*users_models.User, error)
	ListUsersByInstitution(institution string, roles ...users_enums.UserRole) ([]*users_models.User, error)
}

// CapabilityChecker re-validates an actor's role against the user store
// before a mutating operation, so a stale session cannot outlive a
// revocation.
type CapabilityChecker interface {
	HasRole(actorID uuid.UUID, required users_enums.UserRole) (bool, error)
}

type AuditLogWriter interface {
	WriteAuditLog(message string, institution string, userID *uuid.UUID, projectID *uuid.UUID)
}
