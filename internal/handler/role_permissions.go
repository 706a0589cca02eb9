package handler

import (
	"net/http"

	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/middleware"
	"github.com/Misscott/LocationAPI/internal/service"

	"github.com/gin-gonic/gin"
)

type RolePermissionsHandler struct{ svc service.AccessService }

func NewRolePermissionsHandler(svc service.AccessService) *RolePermissionsHandler {
	return &RolePermissionsHandler{svc: svc}
}

func (h *RolePermissionsHandler) List(c *gin.Context) {
	var filter dto.RolePermissionFilter
	if !bindQuery(c, &filter) {
		return
	}
	links, page, err := h.svc.ListRolePermissions(c.Request.Context(), filter, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope("rolePermissions", links, page))
}

func (h *RolePermissionsHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	link, err := h.svc.GetRolePermission(c.Request.Context(), id, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataEnvelope("rolePermission", link))
}

func (h *RolePermissionsHandler) Create(c *gin.Context) {
	var req dto.CreateRolePermissionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	link, err := h.svc.CreateRolePermission(c.Request.Context(), req, middleware.Now(c), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dataEnvelope("rolePermission", link))
}

func (h *RolePermissionsHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.UpdateRolePermissionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	link, err := h.svc.UpdateRolePermission(c.Request.Context(), id, req, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataEnvelope("rolePermission", link))
}

func (h *RolePermissionsHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteRolePermission(c.Request.Context(), id, middleware.Now(c), actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
