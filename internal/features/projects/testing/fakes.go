package projects_testing

import (
	"context"
	"fmt"
	"sort"
	"sync"

	projects_enums "projecttrack/internal/features/projects/enums"
	projects_models "projecttrack/internal/features/projects/models"
	users_enums "projecttrack/internal/features/users/enums"
	users_models "projecttrack/internal/features/users/models"
	"projecttrack/internal/util/apperrors"

	"github.com/google/uuid"
)

// FakeProjectStore is an in-memory implementation of the projects stores.
// Commits take the same lock as reads, so the conditional version check
// behaves like the real transactional write. Errors queued via FailNextCommit
// are returned before anything is written, one per commit attempt.
type FakeProjectStore struct {
	mu           sync.Mutex
	projects     map[uuid.UUID]*projects_models.Project
	rosters      map[uuid.UUID][]*projects_models.TeamMember
	histories    map[uuid.UUID][]*projects_models.StatusHistoryEntry
	commitErrors []error
}

func NewFakeProjectStore() *FakeProjectStore {
	return &FakeProjectStore{
		projects:  make(map[uuid.UUID]*projects_models.Project),
		rosters:   make(map[uuid.UUID][]*projects_models.TeamMember),
		histories: make(map[uuid.UUID][]*projects_models.StatusHistoryEntry),
	}
}

// FailNextCommit queues an error for the next commit attempt.
func (s *FakeProjectStore) FailNextCommit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitErrors = append(s.commitErrors, err)
}

func (s *FakeProjectStore) CreateProjectWithRoster(
	project *projects_models.Project,
	members []*projects_models.TeamMember,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *project
	s.projects[project.ID] = &copied
	roster := make([]*projects_models.TeamMember, len(members))
	for i, member := range members {
		memberCopy := *member
		roster[i] = &memberCopy
	}
	s.rosters[project.ID] = roster

	return nil
}

func (s *FakeProjectStore) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, found := s.projects[projectID]
	if !found {
		return nil, nil
	}
	copied := *project

	return &copied, nil
}

func (s *FakeProjectStore) GetProjectsByInstitution(
	ctx context.Context,
	institution string,
) ([]*projects_models.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var projects []*projects_models.Project
	for _, project := range s.projects {
		if project.Institution == institution {
			copied := *project
			projects = append(projects, &copied)
		}
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})

	return projects, nil
}

func (s *FakeProjectStore) GetAllProjects(ctx context.Context) ([]*projects_models.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var projects []*projects_models.Project
	for _, project := range s.projects {
		copied := *project
		projects = append(projects, &copied)
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})

	return projects, nil
}

func (s *FakeProjectStore) CommitStatusChange(
	projectID uuid.UUID,
	expectedVersion int64,
	entry *projects_models.StatusHistoryEntry,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.commitErrors) > 0 {
		err := s.commitErrors[0]
		s.commitErrors = s.commitErrors[1:]
		return err
	}

	project, found := s.projects[projectID]
	if !found {
		return apperrors.Persistence(apperrors.CodeStoreFailure, "project does not exist", nil)
	}
	if project.Version != expectedVersion {
		return apperrors.Conflict(
			apperrors.CodeVersionConflict,
			fmt.Sprintf("expected version %d, found %d", expectedVersion, project.Version),
		)
	}

	project.CurrentStatus = entry.Status
	project.CurrentStatusObservation = entry.Observation
	project.Version++
	project.UpdatedAt = entry.Date

	entryCopy := *entry
	s.histories[projectID] = append(s.histories[projectID], &entryCopy)

	return nil
}

// SetProjectStatus overwrites the current status without touching the
// history, to set up divergence scenarios.
func (s *FakeProjectStore) SetProjectStatus(projectID uuid.UUID, status projects_enums.ProjectStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if project, found := s.projects[projectID]; found {
		project.CurrentStatus = status
	}
}

func (s *FakeProjectStore) GetHistory(
	ctx context.Context,
	projectID uuid.UUID,
) ([]*projects_models.StatusHistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.histories[projectID]
	entries := make([]*projects_models.StatusHistoryEntry, len(history))
	for i, entry := range history {
		copied := *entry
		entries[len(history)-1-i] = &copied
	}

	return entries, nil
}

func (s *FakeProjectStore) GetNewestEntry(
	projectID uuid.UUID,
) (*projects_models.StatusHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.histories[projectID]
	if len(history) == 0 {
		return nil, nil
	}

	newest := history[0]
	for _, entry := range history[1:] {
		if !entry.Date.Before(newest.Date) {
			newest = entry
		}
	}
	copied := *newest

	return &copied, nil
}

func (s *FakeProjectStore) GetEntryByChangeKey(
	projectID uuid.UUID,
	changeKey string,
) (*projects_models.StatusHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.histories[projectID] {
		if entry.ChangeKey == changeKey {
			copied := *entry
			return &copied, nil
		}
	}

	return nil, nil
}

func (s *FakeProjectStore) GetTeamMembers(
	ctx context.Context,
	projectID uuid.UUID,
) ([]*projects_models.TeamMember, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	roster := s.rosters[projectID]
	members := make([]*projects_models.TeamMember, len(roster))
	for i, member := range roster {
		copied := *member
		members[i] = &copied
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].Position < members[j].Position
	})

	return members, nil
}

func (s *FakeProjectStore) HistoryLength(projectID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.histories[projectID])
}

// FakeDirectory serves user lookups from a fixed set of users.
type FakeDirectory struct {
	mu    sync.Mutex
	users map[uuid.UUID]*users_models.User
	// Failures makes every call fail until it reaches zero.
	Failures int
}

func NewFakeDirectory(users ...*users_models.User) *FakeDirectory {
	directory := &FakeDirectory{users: make(map[uuid.UUID]*users_models.User)}
	for _, user := range users {
		directory.users[user.ID] = user
	}
	return directory
}

func (d *FakeDirectory) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.Failures > 0 {
		d.Failures--
		return nil, apperrors.Persistence(apperrors.CodeStoreFailure, "directory unavailable", nil)
	}

	user, found := d.users[userID]
	if !found {
		return nil, apperrors.NotFound(
			apperrors.CodeUserNotFound,
			fmt.Sprintf("user %s does not exist", userID),
		)
	}

	return user, nil
}

func (d *FakeDirectory) ListUsersByInstitution(
	institution string,
	roles ...users_enums.UserRole,
) ([]*users_models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.Failures > 0 {
		d.Failures--
		return nil, apperrors.Persistence(apperrors.CodeStoreFailure, "directory unavailable", nil)
	}

	var users []*users_models.User
	for _, user := range d.users {
		if user.Institution != institution {
			continue
		}
		if len(roles) > 0 && !roleMatches(user.Role, roles) {
			continue
		}
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].LastName != users[j].LastName {
			return users[i].LastName < users[j].LastName
		}
		return users[i].FirstName < users[j].FirstName
	})

	return users, nil
}

// FakeCapabilities answers role checks from a fixed actor-to-role map.
type FakeCapabilities struct {
	Roles map[uuid.UUID]users_enums.UserRole
	Err   error
}

func (c *FakeCapabilities) HasRole(actorID uuid.UUID, required users_enums.UserRole) (bool, error) {
	if c.Err != nil {
		return false, c.Err
	}
	role, found := c.Roles[actorID]

	return found && role == required, nil
}

type AuditRecord struct {
	Message     string
	Institution string
	UserID      *uuid.UUID
	ProjectID   *uuid.UUID
}

type FakeAuditLogWriter struct {
	mu      sync.Mutex
	Records []AuditRecord
}

func (w *FakeAuditLogWriter) WriteAuditLog(
	message string,
	institution string,
	userID *uuid.UUID,
	projectID *uuid.UUID,
) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Records = append(w.Records, AuditRecord{
		Message:     message,
		Institution: institution,
		UserID:      userID,
		ProjectID:   projectID,
	})
}

func roleMatches(role users_enums.UserRole, roles []users_enums.UserRole) bool {
	for _, candidate := range roles {
		if candidate == role {
			return true
		}
	}
	return false
}
