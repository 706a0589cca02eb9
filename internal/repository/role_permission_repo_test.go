package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Misscott/LocationAPI/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type grantFixture struct {
	db       *gorm.DB
	role     *model.Role
	endpoint *model.Endpoint
	perm     *model.Permission
	link     *model.RolePermission
	now      time.Time
}

func seedGrant(t *testing.T, action, route string) *grantFixture {
	t.Helper()
	db := openTestDB(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	role := seedRole(t, db, "editor", past)
	endpoint := &model.Endpoint{Tracked: model.Tracked{UUID: uuid.New(), Created: past}, Route: route}
	require.NoError(t, db.Create(endpoint).Error)
	perm := &model.Permission{Tracked: model.Tracked{UUID: uuid.New(), Created: past}, Action: action, EndpointID: endpoint.ID}
	require.NoError(t, db.Create(perm).Error)
	link := &model.RolePermission{Tracked: model.Tracked{UUID: uuid.New(), Created: past}, RoleID: role.ID, PermissionID: perm.ID}
	require.NoError(t, db.Create(link).Error)

	return &grantFixture{db: db, role: role, endpoint: endpoint, perm: perm, link: link, now: now}
}

func TestEffectivePermissionsResolvesGrant(t *testing.T) {
	fx := seedGrant(t, "GET", "/places/:uuid")
	repo := NewRolePermissionRepository(fx.db)

	perms, err := repo.EffectivePermissions(context.Background(), "editor", fx.now)
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.Equal(t, "GET", perms[0].Action)
	assert.Equal(t, "/places/:uuid", perms[0].Route)
}

func TestEffectivePermissionsUnknownRole(t *testing.T) {
	fx := seedGrant(t, "GET", "/places")
	repo := NewRolePermissionRepository(fx.db)

	perms, err := repo.EffectivePermissions(context.Background(), "nobody", fx.now)
	require.NoError(t, err)
	assert.Empty(t, perms)
}

// A soft delete anywhere along the chain — link, permission, or endpoint —
// revokes the grant without touching the other rows.
func TestEffectivePermissionsRevocation(t *testing.T) {
	cases := []struct {
		name   string
		retire func(fx *grantFixture) any
	}{
		{"deleted link", func(fx *grantFixture) any { return fx.link }},
		{"deleted permission", func(fx *grantFixture) any { return fx.perm }},
		{"deleted endpoint", func(fx *grantFixture) any { return fx.endpoint }},
		{"deleted role", func(fx *grantFixture) any { return fx.role }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := seedGrant(t, "PUT", "/places/:uuid")
			repo := NewRolePermissionRepository(fx.db)

			require.NoError(t, fx.db.Model(tc.retire(fx)).Update("deleted", fx.now.Add(-time.Minute)).Error)

			perms, err := repo.EffectivePermissions(context.Background(), "editor", fx.now)
			require.NoError(t, err)
			assert.Empty(t, perms)
		})
	}
}

func TestEffectivePermissionsScheduledRevocation(t *testing.T) {
	fx := seedGrant(t, "DELETE", "/places/:uuid")
	repo := NewRolePermissionRepository(fx.db)

	// Revocation takes effect tomorrow; the grant still holds today.
	tomorrow := fx.now.Add(24 * time.Hour)
	require.NoError(t, fx.db.Model(fx.link).Update("deleted", tomorrow).Error)

	perms, err := repo.EffectivePermissions(context.Background(), "editor", fx.now)
	require.NoError(t, err)
	assert.Len(t, perms, 1)

	perms, err = repo.EffectivePermissions(context.Background(), "editor", tomorrow.Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, perms)
}

func TestEffectivePermissionsMonotonic(t *testing.T) {
	fx := seedGrant(t, "GET", "/reports")
	repo := NewRolePermissionRepository(fx.db)

	// Adding a second grant only widens the set.
	before, err := repo.EffectivePermissions(context.Background(), "editor", fx.now)
	require.NoError(t, err)

	perm2 := &model.Permission{
		Tracked:    model.Tracked{UUID: uuid.New(), Created: fx.now.Add(-time.Hour)},
		Action:     "POST",
		EndpointID: fx.endpoint.ID,
	}
	require.NoError(t, fx.db.Create(perm2).Error)
	link2 := &model.RolePermission{
		Tracked:      model.Tracked{UUID: uuid.New(), Created: fx.now.Add(-time.Hour)},
		RoleID:       fx.role.ID,
		PermissionID: perm2.ID,
	}
	require.NoError(t, fx.db.Create(link2).Error)

	after, err := repo.EffectivePermissions(context.Background(), "editor", fx.now)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)
}
