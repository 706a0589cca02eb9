package service

import (
	"context"
	"time"

	"github.com/Misscott/LocationAPI/internal/apierror"
	"github.com/Misscott/LocationAPI/internal/repository"
	"github.com/Misscott/LocationAPI/internal/token"

	"github.com/google/uuid"
)

// Identity is the authenticated, authorized caller attached to the request
// context after the middleware chain runs.
type Identity struct {
	User uuid.UUID
	Role string
}

// PermissionService resolves whether a caller may perform an HTTP action on a
// route template. Grants live entirely in the database, so changing a role's
// permissions needs no redeploy.
type PermissionService interface {
	Authenticate(tokenStr string) (*token.Claims, error)
	Authorize(ctx context.Context, claims *token.Claims, action, route string, now time.Time) (*Identity, error)
}

type permissionService struct {
	links  repository.RolePermissionRepository
	tokens *token.Service
}

func NewPermissionService(links repository.RolePermissionRepository, tokens *token.Service) PermissionService {
	return &permissionService{links: links, tokens: tokens}
}

func (s *permissionService) Authenticate(tokenStr string) (*token.Claims, error) {
	return s.tokens.Verify(tokenStr, token.TypeAccess)
}

// Authorize checks the caller's role against the effective permission set at
// now. The route is the registered template (e.g. "/places/:uuid"), matched as
// a stored string. An unregistered route denies like any other missing grant:
// the caller learns 403, not whether the endpoint row exists.
func (s *permissionService) Authorize(ctx context.Context, claims *token.Claims, action, route string, now time.Time) (*Identity, error) {
	perms, err := s.links.EffectivePermissions(ctx, claims.Role, now)
	if err != nil {
		return nil, err
	}
	for _, p := range perms {
		if p.Action == action && p.Route == route {
			return &Identity{User: claims.User, Role: claims.Role}, nil
		}
	}
	return nil, apierror.E(apierror.Forbidden, "", nil)
}
