package users_repositories

import (
	"fmt"
	"sync"
	"testing"
	"time"

	users_enums "projecttrack/internal/features/users/enums"
	users_models "projecttrack/internal/features/users/models"
	"projecttrack/internal/storage"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var setupOnce sync.Once

func setupTestDb(t *testing.T) {
	t.Helper()

	setupOnce.Do(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
		})
		if err != nil {
			t.Fatalf("failed to open test database: %v", err)
		}

		if err := db.AutoMigrate(&users_models.User{}); err != nil {
			t.Fatalf("failed to migrate test database: %v", err)
		}

		storage.SetDatabaseForTests(db)
	})
}

func seedUser(
	t *testing.T,
	repo *UserRepository,
	institution string,
	role users_enums.UserRole,
	firstName string,
	lastName string,
) *users_models.User {
	t.Helper()

	user := &users_models.User{
		ID:                   uuid.New(),
		Email:                fmt.Sprintf("%s.%s.%s@example.edu", firstName, lastName, uuid.New().String()[:8]),
		FirstName:            firstName,
		LastName:             lastName,
		Institution:          institution,
		PasswordCreationTime: time.Now().UTC(),
		Role:                 role,
		Status:               users_enums.UserStatusActive,
		CreatedAt:            time.Now().UTC(),
		UpdatedAt:            time.Now().UTC(),
	}
	require.NoError(t, repo.CreateUser(user))

	return user
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	setupTestDb(t)
	repo := &UserRepository{}

	created := seedUser(t, repo, "Lookup Institution", users_enums.UserRoleTeacher, "Maria", "Lopez")

	found, err := repo.GetUserByEmail(created.Email)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	missing, err := repo.GetUserByEmail("nobody@example.edu")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_GetUsersByInstitutionFiltersAndOrders(t *testing.T) {
	setupTestDb(t)
	repo := &UserRepository{}

	institution := "Directory Institution"
	seedUser(t, repo, institution, users_enums.UserRoleStudent, "Carlos", "Ruiz")
	seedUser(t, repo, institution, users_enums.UserRoleStudent, "Ana", "Diaz")
	seedUser(t, repo, institution, users_enums.UserRoleTeacher, "Jorge", "Mendez")
	seedUser(t, repo, "Elsewhere", users_enums.UserRoleStudent, "Lucia", "Prado")

	students, err := repo.GetUsersByInstitution(institution, []users_enums.UserRole{users_enums.UserRoleStudent})
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Diaz", students[0].LastName)
	assert.Equal(t, "Ruiz", students[1].LastName)

	everyone, err := repo.GetUsersByInstitution(institution, nil)
	require.NoError(t, err)
	assert.Len(t, everyone, 3)
}

func TestUserRepository_UpdateUserStatus(t *testing.T) {
	setupTestDb(t)
	repo := &UserRepository{}

	user := seedUser(t, repo, "Status Institution", users_enums.UserRoleStudent, "Pedro", "Gomez")
	require.NoError(t, repo.UpdateUserStatus(user.ID, users_enums.UserStatusInactive))

	loaded, err := repo.GetUserByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, users_enums.UserStatusInactive, loaded.Status)
}
