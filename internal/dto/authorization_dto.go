package dto

import (
	"github.com/Misscott/LocationAPI/internal/model"
	"github.com/google/uuid"
)

// ── Roles ─────────────────────────────────────────────────────────────────────

type RoleFilter struct {
	ListQuery
	UUID string `form:"uuid"`
	Name string `form:"name"`
}

type CreateRoleRequest struct {
	Name string `json:"name" validate:"required,min=2,max=45"`
}

type UpdateRoleRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=2,max=45"`
}

type RoleResponse struct {
	UUID uuid.UUID `json:"uuid"`
	Name string    `json:"name"`
}

func NewRoleResponse(r *model.Role) RoleResponse {
	return RoleResponse{UUID: r.UUID, Name: r.Name}
}

// ── Endpoints ─────────────────────────────────────────────────────────────────

type EndpointFilter struct {
	ListQuery
	UUID  string `form:"uuid"`
	Route string `form:"route"`
}

type CreateEndpointRequest struct {
	Route string `json:"route" validate:"required,startswith=/"`
}

type UpdateEndpointRequest struct {
	Route *string `json:"route,omitempty" validate:"omitempty,startswith=/"`
}

type EndpointResponse struct {
	UUID  uuid.UUID `json:"uuid"`
	Route string    `json:"route"`
}

func NewEndpointResponse(e *model.Endpoint) EndpointResponse {
	return EndpointResponse{UUID: e.UUID, Route: e.Route}
}

// ── Permissions ───────────────────────────────────────────────────────────────

type PermissionFilter struct {
	ListQuery
	UUID   string `form:"uuid"`
	Action string `form:"action"`
	Route  string `form:"endpoint"` // endpoint route, resolved via sub-select
}

type CreatePermissionRequest struct {
	Action string `json:"action" validate:"required,oneof=GET POST PUT PATCH DELETE"`
	Route  string `json:"endpoint" validate:"required,startswith=/"`
}

type UpdatePermissionRequest struct {
	Action *string `json:"action,omitempty" validate:"omitempty,oneof=GET POST PUT PATCH DELETE"`
	Route  *string `json:"endpoint,omitempty" validate:"omitempty,startswith=/"`
}

type PermissionResponse struct {
	UUID   uuid.UUID `json:"uuid"`
	Action string    `json:"action"`
	Route  string    `json:"endpoint"`
}

func NewPermissionResponse(p *model.Permission) PermissionResponse {
	return PermissionResponse{UUID: p.UUID, Action: p.Action, Route: p.Endpoint.Route}
}

// ── Role ↔ Permission links ──────────────────────────────────────────────────

type RolePermissionFilter struct {
	ListQuery
	UUID           string `form:"uuid"`
	RoleName       string `form:"role"`
	PermissionUUID string `form:"permission"`
}

type CreateRolePermissionRequest struct {
	Role       string `json:"role" validate:"required"`       // role name
	Permission string `json:"permission" validate:"required,uuid"` // permission uuid
}

type UpdateRolePermissionRequest struct {
	Role       *string `json:"role,omitempty"`
	Permission *string `json:"permission,omitempty" validate:"omitempty,uuid"`
}

type RolePermissionResponse struct {
	UUID       uuid.UUID `json:"uuid"`
	Role       string    `json:"role"`
	Action     string    `json:"action"`
	Route      string    `json:"endpoint"`
	Permission uuid.UUID `json:"permission"`
}

func NewRolePermissionResponse(rp *model.RolePermission) RolePermissionResponse {
	return RolePermissionResponse{
		UUID:       rp.UUID,
		Role:       rp.Role.Name,
		Action:     rp.Permission.Action,
		Route:      rp.Permission.Endpoint.Route,
		Permission: rp.Permission.UUID,
	}
}
