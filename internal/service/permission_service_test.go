package service

import (
	"context"
	"testing"
	"time"

	"github.com/Misscott/LocationAPI/internal/apierror"
	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/model"
	"github.com/Misscott/LocationAPI/internal/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLinkRepo answers EffectivePermissions from a fixed grant table keyed by
// role name. The CRUD half of the interface is unused by the permission
// service.
type stubLinkRepo struct {
	grants map[string][]model.EffectivePermission
	err    error
}

func (r *stubLinkRepo) EffectivePermissions(_ context.Context, roleName string, _ time.Time) ([]model.EffectivePermission, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.grants[roleName], nil
}

func (r *stubLinkRepo) List(context.Context, dto.RolePermissionFilter, time.Time) ([]model.RolePermission, int64, error) {
	return nil, 0, nil
}

func (r *stubLinkRepo) FindByUUID(context.Context, uuid.UUID, time.Time) (*model.RolePermission, error) {
	return nil, apierror.E(apierror.NotFound, "", nil)
}

func (r *stubLinkRepo) Create(context.Context, *model.RolePermission, time.Time, *uuid.UUID) error {
	return nil
}

func (r *stubLinkRepo) Update(context.Context, uuid.UUID, map[string]any, time.Time) (*model.RolePermission, error) {
	return nil, apierror.E(apierror.NotFound, "", nil)
}

func (r *stubLinkRepo) SoftDelete(context.Context, uuid.UUID, *uuid.UUID, *time.Time, time.Time) error {
	return nil
}

func viewerGrants() map[string][]model.EffectivePermission {
	return map[string][]model.EffectivePermission{
		"viewer": {
			{Action: "GET", Route: "/places"},
			{Action: "GET", Route: "/places/:uuid"},
			{Action: "POST", Route: "/reports"},
		},
	}
}

func TestAuthorizeGrantedAction(t *testing.T) {
	svc := NewPermissionService(&stubLinkRepo{grants: viewerGrants()}, testTokens())
	claims := &token.Claims{Role: "viewer", User: uuid.New()}

	id, err := svc.Authorize(context.Background(), claims, "GET", "/places/:uuid", time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, claims.User, id.User)
	assert.Equal(t, "viewer", id.Role)
}

func TestAuthorizeDenies(t *testing.T) {
	svc := NewPermissionService(&stubLinkRepo{grants: viewerGrants()}, testTokens())
	now := time.Now().UTC()
	claims := &token.Claims{Role: "viewer", User: uuid.New()}

	cases := []struct {
		name   string
		action string
		route  string
	}{
		{"action not granted on route", "DELETE", "/places/:uuid"},
		{"route never registered", "GET", "/secret"},
		{"grant on collection does not cover item", "POST", "/reports/:uuid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Authorize(context.Background(), claims, tc.action, tc.route, now)
			require.Error(t, err)
			assert.True(t, apierror.Is(err, apierror.Forbidden))
		})
	}
}

func TestAuthorizeUnknownRoleDenied(t *testing.T) {
	svc := NewPermissionService(&stubLinkRepo{grants: viewerGrants()}, testTokens())
	claims := &token.Claims{Role: "nobody", User: uuid.New()}

	_, err := svc.Authorize(context.Background(), claims, "GET", "/places", time.Now().UTC())
	assert.True(t, apierror.Is(err, apierror.Forbidden))
}

func TestAuthorizePropagatesLookupError(t *testing.T) {
	dbErr := apierror.E(apierror.ServerError, "", nil)
	svc := NewPermissionService(&stubLinkRepo{err: dbErr}, testTokens())
	claims := &token.Claims{Role: "viewer", User: uuid.New()}

	_, err := svc.Authorize(context.Background(), claims, "GET", "/places", time.Now().UTC())
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.ServerError))
}

func TestAuthenticateVerifiesAccessToken(t *testing.T) {
	tokens := testTokens()
	svc := NewPermissionService(&stubLinkRepo{grants: viewerGrants()}, tokens)

	user := uuid.New()
	pair, err := tokens.Issue("viewer", user)
	require.NoError(t, err)

	claims, err := svc.Authenticate(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user, claims.User)

	// Refresh tokens are not credentials for API calls.
	_, err = svc.Authenticate(pair.RefreshToken)
	assert.True(t, apierror.Is(err, apierror.Unauthorized))
}
