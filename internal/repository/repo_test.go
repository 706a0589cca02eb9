package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Misscott/LocationAPI/internal/apierror"
	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/infra"
	"github.com/Misscott/LocationAPI/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))
	return db
}

func seedRole(t *testing.T, db *gorm.DB, name string, created time.Time) *model.Role {
	t.Helper()
	role := &model.Role{Tracked: model.Tracked{UUID: uuid.New(), Created: created}, Name: name}
	require.NoError(t, db.Create(role).Error)
	return role
}

func seedTestUser(t *testing.T, db *gorm.DB, username string, role *model.Role, created time.Time) *model.User {
	t.Helper()
	u := &model.User{
		Tracked:      model.Tracked{UUID: uuid.New(), Created: created},
		Username:     username,
		PasswordHash: "x",
		RoleID:       role.ID,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// ── Visibility window ─────────────────────────────────────────────────────────

func TestFindByUUIDRespectsVisibilityWindow(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	role := seedRole(t, db, "viewer", now.Add(-time.Hour))

	alive := seedTestUser(t, db, "alive", role, now.Add(-time.Hour))
	future := seedTestUser(t, db, "future", role, now.Add(time.Hour))

	deletedAt := now.Add(-time.Minute)
	gone := seedTestUser(t, db, "gone", role, now.Add(-time.Hour))
	require.NoError(t, db.Model(gone).Update("deleted", deletedAt).Error)

	// Scheduled delete: still visible today, gone tomorrow.
	later := now.Add(24 * time.Hour)
	scheduled := seedTestUser(t, db, "scheduled", role, now.Add(-time.Hour))
	require.NoError(t, db.Model(scheduled).Update("deleted", later).Error)

	_, err := repo.FindByUUID(context.Background(), alive.UUID, now)
	assert.NoError(t, err)

	_, err = repo.FindByUUID(context.Background(), future.UUID, now)
	assert.True(t, apierror.Is(err, apierror.NotFound), "not yet created rows are invisible")

	_, err = repo.FindByUUID(context.Background(), gone.UUID, now)
	assert.True(t, apierror.Is(err, apierror.NotFound))

	_, err = repo.FindByUUID(context.Background(), scheduled.UUID, now)
	assert.NoError(t, err, "future-dated delete keeps the row visible until then")

	_, err = repo.FindByUUID(context.Background(), scheduled.UUID, later.Add(time.Minute))
	assert.True(t, apierror.Is(err, apierror.NotFound))
}

func TestAsOfReadSeesDeletedRow(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	deleted := created.Add(48 * time.Hour)
	role := seedRole(t, db, "viewer", created)

	u := seedTestUser(t, db, "historic", role, created)
	require.NoError(t, db.Model(u).Update("deleted", deleted).Error)

	// A query pinned inside the row's lifetime still finds it.
	_, err := repo.FindByUUID(context.Background(), u.UUID, created.Add(time.Hour))
	assert.NoError(t, err)

	_, err = repo.FindByUUID(context.Background(), u.UUID, deleted.Add(time.Hour))
	assert.True(t, apierror.Is(err, apierror.NotFound))
}

// ── Guarded writes ────────────────────────────────────────────────────────────

func TestUpdateAfterDeleteIsNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()
	role := seedRole(t, db, "viewer", now.Add(-time.Hour))
	u := seedTestUser(t, db, "victim", role, now.Add(-time.Hour))

	require.NoError(t, repo.SoftDelete(context.Background(), u.UUID, nil, nil, now))

	_, err := repo.Update(context.Background(), u.UUID, map[string]any{"username": "renamed"}, now)
	assert.True(t, apierror.Is(err, apierror.NotFound), "updates never resurrect a deleted row")

	// And the stored row is untouched.
	var raw model.User
	require.NoError(t, db.Unscoped().Where("uuid = ?", u.UUID).First(&raw).Error)
	assert.Equal(t, "victim", raw.Username)
}

func TestSecondDeleteIsNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()
	role := seedRole(t, db, "viewer", now.Add(-time.Hour))
	u := seedTestUser(t, db, "once", role, now.Add(-time.Hour))

	first := now.Add(-time.Minute)
	require.NoError(t, repo.SoftDelete(context.Background(), u.UUID, nil, &first, now))

	err := repo.SoftDelete(context.Background(), u.UUID, nil, nil, now)
	assert.True(t, apierror.Is(err, apierror.NotFound))

	// The original deletion timestamp survives the failed second attempt.
	var raw model.User
	require.NoError(t, db.Where("uuid = ?", u.UUID).First(&raw).Error)
	require.NotNil(t, raw.Deleted)
	assert.WithinDuration(t, first, *raw.Deleted, time.Second)
}

func TestScheduledDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()
	role := seedRole(t, db, "viewer", now.Add(-time.Hour))
	u := seedTestUser(t, db, "leaving", role, now.Add(-time.Hour))

	at := now.Add(72 * time.Hour)
	require.NoError(t, repo.SoftDelete(context.Background(), u.UUID, nil, &at, now))

	_, err := repo.FindByUUID(context.Background(), u.UUID, now)
	assert.NoError(t, err)
	_, err = repo.FindByUUID(context.Background(), u.UUID, at.Add(time.Minute))
	assert.True(t, apierror.Is(err, apierror.NotFound))
}

func TestEmptyUpdateStillChecksExistence(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()
	role := seedRole(t, db, "viewer", now.Add(-time.Hour))
	u := seedTestUser(t, db, "noop", role, now.Add(-time.Hour))

	got, err := repo.Update(context.Background(), u.UUID, map[string]any{}, now)
	require.NoError(t, err)
	assert.Equal(t, "noop", got.Username)

	_, err = repo.Update(context.Background(), uuid.New(), map[string]any{}, now)
	assert.True(t, apierror.Is(err, apierror.NotFound))
}

// ── Uniqueness among visible rows ─────────────────────────────────────────────

func TestUsernameReusableAfterDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()
	role := seedRole(t, db, "viewer", now.Add(-time.Hour))

	first := &model.User{Username: "taken", PasswordHash: "x", RoleID: role.ID}
	require.NoError(t, repo.Create(context.Background(), first, now, nil))

	dup := &model.User{Username: "taken", PasswordHash: "x", RoleID: role.ID}
	err := repo.Create(context.Background(), dup, now, nil)
	assert.True(t, apierror.Is(err, apierror.Conflict))

	// Retiring the holder frees the name.
	require.NoError(t, repo.SoftDelete(context.Background(), first.UUID, nil, nil, now))
	again := &model.User{Username: "taken", PasswordHash: "x", RoleID: role.ID}
	assert.NoError(t, repo.Create(context.Background(), again, now.Add(time.Second), nil))
}

// ── List + pagination ─────────────────────────────────────────────────────────

func TestListCountSharesNow(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	role := seedRole(t, db, "viewer", now.Add(-time.Hour))

	for _, name := range []string{"a", "b", "c"} {
		seedTestUser(t, db, name, role, now.Add(-time.Hour))
	}
	// Created after the snapshot: neither listed nor counted.
	seedTestUser(t, db, "d", role, now.Add(time.Hour))

	users, total, err := repo.List(context.Background(), dto.UserFilter{
		ListQuery: dto.ListQuery{Limit: 2, Page: 1},
	}, now)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, int64(3), total)

	users, total, err = repo.List(context.Background(), dto.UserFilter{
		ListQuery: dto.ListQuery{Limit: 2, Page: 2},
	}, now)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, int64(3), total)
}

func TestListNegativePaginationRejected(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	_, _, err := repo.List(context.Background(), dto.UserFilter{
		ListQuery: dto.ListQuery{Limit: -1},
	}, time.Now().UTC())
	assert.True(t, apierror.Is(err, apierror.BadRequest))
}

func TestListFilterByRoleName(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()
	admin := seedRole(t, db, "admin", now.Add(-time.Hour))
	viewer := seedRole(t, db, "viewer", now.Add(-time.Hour))

	seedTestUser(t, db, "root", admin, now.Add(-time.Hour))
	seedTestUser(t, db, "guest", viewer, now.Add(-time.Hour))

	users, total, err := repo.List(context.Background(), dto.UserFilter{RoleName: "admin"}, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "root", users[0].Username)

	// A deleted role matches no users through the sub-select.
	require.NoError(t, db.Model(admin).Update("deleted", now.Add(-time.Minute)).Error)
	_, total, err = repo.List(context.Background(), dto.UserFilter{RoleName: "admin"}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
