package service

import (
	"context"
	"time"

	"github.com/Misscott/LocationAPI/internal/apierror"
	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/model"
	"github.com/Misscott/LocationAPI/internal/repository"

	"github.com/google/uuid"
)

// AccessService manages the tables the permission resolver reads: roles,
// endpoints, permissions, and the role-permission links.
type AccessService interface {
	ListRoles(ctx context.Context, f dto.RoleFilter, now time.Time) ([]dto.RoleResponse, dto.Page, error)
	GetRole(ctx context.Context, id uuid.UUID, now time.Time) (*dto.RoleResponse, error)
	CreateRole(ctx context.Context, req dto.CreateRoleRequest, now time.Time, actor *uuid.UUID) (*dto.RoleResponse, error)
	UpdateRole(ctx context.Context, id uuid.UUID, req dto.UpdateRoleRequest, now time.Time) (*dto.RoleResponse, error)
	DeleteRole(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error

	ListEndpoints(ctx context.Context, f dto.EndpointFilter, now time.Time) ([]dto.EndpointResponse, dto.Page, error)
	GetEndpoint(ctx context.Context, id uuid.UUID, now time.Time) (*dto.EndpointResponse, error)
	CreateEndpoint(ctx context.Context, req dto.CreateEndpointRequest, now time.Time, actor *uuid.UUID) (*dto.EndpointResponse, error)
	UpdateEndpoint(ctx context.Context, id uuid.UUID, req dto.UpdateEndpointRequest, now time.Time) (*dto.EndpointResponse, error)
	DeleteEndpoint(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error

	ListPermissions(ctx context.Context, f dto.PermissionFilter, now time.Time) ([]dto.PermissionResponse, dto.Page, error)
	GetPermission(ctx context.Context, id uuid.UUID, now time.Time) (*dto.PermissionResponse, error)
	CreatePermission(ctx context.Context, req dto.CreatePermissionRequest, now time.Time, actor *uuid.UUID) (*dto.PermissionResponse, error)
	UpdatePermission(ctx context.Context, id uuid.UUID, req dto.UpdatePermissionRequest, now time.Time) (*dto.PermissionResponse, error)
	DeletePermission(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error

	ListRolePermissions(ctx context.Context, f dto.RolePermissionFilter, now time.Time) ([]dto.RolePermissionResponse, dto.Page, error)
	GetRolePermission(ctx context.Context, id uuid.UUID, now time.Time) (*dto.RolePermissionResponse, error)
	CreateRolePermission(ctx context.Context, req dto.CreateRolePermissionRequest, now time.Time, actor *uuid.UUID) (*dto.RolePermissionResponse, error)
	UpdateRolePermission(ctx context.Context, id uuid.UUID, req dto.UpdateRolePermissionRequest, now time.Time) (*dto.RolePermissionResponse, error)
	DeleteRolePermission(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error
}

type accessService struct {
	roles       repository.RoleRepository
	endpoints   repository.EndpointRepository
	permissions repository.PermissionRepository
	links       repository.RolePermissionRepository
}

func NewAccessService(
	roles repository.RoleRepository,
	endpoints repository.EndpointRepository,
	permissions repository.PermissionRepository,
	links repository.RolePermissionRepository,
) AccessService {
	return &accessService{roles: roles, endpoints: endpoints, permissions: permissions, links: links}
}

// ── Roles ─────────────────────────────────────────────────────────────────────

func (s *accessService) ListRoles(ctx context.Context, f dto.RoleFilter, now time.Time) ([]dto.RoleResponse, dto.Page, error) {
	roles, total, err := s.roles.List(ctx, f, now)
	if err != nil {
		return nil, dto.Page{}, err
	}
	resp := make([]dto.RoleResponse, len(roles))
	for i := range roles {
		resp[i] = dto.NewRoleResponse(&roles[i])
	}
	return resp, pageOf(total, f.ListQuery), nil
}

func (s *accessService) GetRole(ctx context.Context, id uuid.UUID, now time.Time) (*dto.RoleResponse, error) {
	role, err := s.roles.FindByUUID(ctx, id, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewRoleResponse(role)
	return &resp, nil
}

func (s *accessService) CreateRole(ctx context.Context, req dto.CreateRoleRequest, now time.Time, actor *uuid.UUID) (*dto.RoleResponse, error) {
	role := &model.Role{Name: req.Name}
	if err := s.roles.Create(ctx, role, now, actor); err != nil {
		return nil, err
	}
	resp := dto.NewRoleResponse(role)
	return &resp, nil
}

func (s *accessService) UpdateRole(ctx context.Context, id uuid.UUID, req dto.UpdateRoleRequest, now time.Time) (*dto.RoleResponse, error) {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	role, err := s.roles.Update(ctx, id, fields, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewRoleResponse(role)
	return &resp, nil
}

func (s *accessService) DeleteRole(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error {
	return s.roles.SoftDelete(ctx, id, actor, nil, now)
}

// ── Endpoints ─────────────────────────────────────────────────────────────────

func (s *accessService) ListEndpoints(ctx context.Context, f dto.EndpointFilter, now time.Time) ([]dto.EndpointResponse, dto.Page, error) {
	endpoints, total, err := s.endpoints.List(ctx, f, now)
	if err != nil {
		return nil, dto.Page{}, err
	}
	resp := make([]dto.EndpointResponse, len(endpoints))
	for i := range endpoints {
		resp[i] = dto.NewEndpointResponse(&endpoints[i])
	}
	return resp, pageOf(total, f.ListQuery), nil
}

func (s *accessService) GetEndpoint(ctx context.Context, id uuid.UUID, now time.Time) (*dto.EndpointResponse, error) {
	e, err := s.endpoints.FindByUUID(ctx, id, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewEndpointResponse(e)
	return &resp, nil
}

func (s *accessService) CreateEndpoint(ctx context.Context, req dto.CreateEndpointRequest, now time.Time, actor *uuid.UUID) (*dto.EndpointResponse, error) {
	e := &model.Endpoint{Route: req.Route}
	if err := s.endpoints.Create(ctx, e, now, actor); err != nil {
		return nil, err
	}
	resp := dto.NewEndpointResponse(e)
	return &resp, nil
}

func (s *accessService) UpdateEndpoint(ctx context.Context, id uuid.UUID, req dto.UpdateEndpointRequest, now time.Time) (*dto.EndpointResponse, error) {
	fields := map[string]any{}
	if req.Route != nil {
		fields["route"] = *req.Route
	}
	e, err := s.endpoints.Update(ctx, id, fields, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewEndpointResponse(e)
	return &resp, nil
}

func (s *accessService) DeleteEndpoint(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error {
	return s.endpoints.SoftDelete(ctx, id, actor, nil, now)
}

// ── Permissions ───────────────────────────────────────────────────────────────

func (s *accessService) ListPermissions(ctx context.Context, f dto.PermissionFilter, now time.Time) ([]dto.PermissionResponse, dto.Page, error) {
	perms, total, err := s.permissions.List(ctx, f, now)
	if err != nil {
		return nil, dto.Page{}, err
	}
	resp := make([]dto.PermissionResponse, len(perms))
	for i := range perms {
		resp[i] = dto.NewPermissionResponse(&perms[i])
	}
	return resp, pageOf(total, f.ListQuery), nil
}

func (s *accessService) GetPermission(ctx context.Context, id uuid.UUID, now time.Time) (*dto.PermissionResponse, error) {
	p, err := s.permissions.FindByUUID(ctx, id, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewPermissionResponse(p)
	return &resp, nil
}

func (s *accessService) CreatePermission(ctx context.Context, req dto.CreatePermissionRequest, now time.Time, actor *uuid.UUID) (*dto.PermissionResponse, error) {
	endpoint, err := s.endpoints.FindByRoute(ctx, req.Route, now)
	if err != nil {
		return nil, apierror.E(apierror.UnprocessableEntity, "unknown endpoint", err)
	}
	p := &model.Permission{Action: req.Action, EndpointID: endpoint.ID, Endpoint: *endpoint}
	if err := s.permissions.Create(ctx, p, now, actor); err != nil {
		return nil, err
	}
	resp := dto.NewPermissionResponse(p)
	return &resp, nil
}

func (s *accessService) UpdatePermission(ctx context.Context, id uuid.UUID, req dto.UpdatePermissionRequest, now time.Time) (*dto.PermissionResponse, error) {
	fields := map[string]any{}
	if req.Action != nil {
		fields["action"] = *req.Action
	}
	if req.Route != nil {
		endpoint, err := s.endpoints.FindByRoute(ctx, *req.Route, now)
		if err != nil {
			return nil, apierror.E(apierror.UnprocessableEntity, "unknown endpoint", err)
		}
		fields["fk_endpoint"] = endpoint.ID
	}
	p, err := s.permissions.Update(ctx, id, fields, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewPermissionResponse(p)
	return &resp, nil
}

func (s *accessService) DeletePermission(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error {
	return s.permissions.SoftDelete(ctx, id, actor, nil, now)
}

// ── Role ↔ Permission links ──────────────────────────────────────────────────

func (s *accessService) ListRolePermissions(ctx context.Context, f dto.RolePermissionFilter, now time.Time) ([]dto.RolePermissionResponse, dto.Page, error) {
	links, total, err := s.links.List(ctx, f, now)
	if err != nil {
		return nil, dto.Page{}, err
	}
	resp := make([]dto.RolePermissionResponse, len(links))
	for i := range links {
		resp[i] = dto.NewRolePermissionResponse(&links[i])
	}
	return resp, pageOf(total, f.ListQuery), nil
}

func (s *accessService) GetRolePermission(ctx context.Context, id uuid.UUID, now time.Time) (*dto.RolePermissionResponse, error) {
	link, err := s.links.FindByUUID(ctx, id, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewRolePermissionResponse(link)
	return &resp, nil
}

func (s *accessService) CreateRolePermission(ctx context.Context, req dto.CreateRolePermissionRequest, now time.Time, actor *uuid.UUID) (*dto.RolePermissionResponse, error) {
	role, err := s.roles.FindByName(ctx, req.Role, now)
	if err != nil {
		return nil, apierror.E(apierror.UnprocessableEntity, "unknown role", err)
	}
	permUUID, err := uuid.Parse(req.Permission)
	if err != nil {
		return nil, apierror.E(apierror.BadRequest, "invalid permission uuid", err)
	}
	perm, err := s.permissions.FindByUUID(ctx, permUUID, now)
	if err != nil {
		return nil, apierror.E(apierror.UnprocessableEntity, "unknown permission", err)
	}

	link := &model.RolePermission{
		RoleID:       role.ID,
		PermissionID: perm.ID,
		Role:         *role,
		Permission:   *perm,
	}
	if err := s.links.Create(ctx, link, now, actor); err != nil {
		return nil, err
	}
	resp := dto.NewRolePermissionResponse(link)
	return &resp, nil
}

func (s *accessService) UpdateRolePermission(ctx context.Context, id uuid.UUID, req dto.UpdateRolePermissionRequest, now time.Time) (*dto.RolePermissionResponse, error) {
	fields := map[string]any{}
	if req.Role != nil {
		role, err := s.roles.FindByName(ctx, *req.Role, now)
		if err != nil {
			return nil, apierror.E(apierror.UnprocessableEntity, "unknown role", err)
		}
		fields["fk_role"] = role.ID
	}
	if req.Permission != nil {
		permUUID, err := uuid.Parse(*req.Permission)
		if err != nil {
			return nil, apierror.E(apierror.BadRequest, "invalid permission uuid", err)
		}
		perm, err := s.permissions.FindByUUID(ctx, permUUID, now)
		if err != nil {
			return nil, apierror.E(apierror.UnprocessableEntity, "unknown permission", err)
		}
		fields["fk_permission"] = perm.ID
	}
	link, err := s.links.Update(ctx, id, fields, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewRolePermissionResponse(link)
	return &resp, nil
}

func (s *accessService) DeleteRolePermission(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error {
	return s.links.SoftDelete(ctx, id, actor, nil, now)
}
