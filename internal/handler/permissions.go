package handler

import (
	"net/http"

	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/middleware"
	"github.com/Misscott/LocationAPI/internal/service"

	"github.com/gin-gonic/gin"
)

type PermissionsHandler struct{ svc service.AccessService }

func NewPermissionsHandler(svc service.AccessService) *PermissionsHandler {
	return &PermissionsHandler{svc: svc}
}

func (h *PermissionsHandler) List(c *gin.Context) {
	var filter dto.PermissionFilter
	if !bindQuery(c, &filter) {
		return
	}
	perms, page, err := h.svc.ListPermissions(c.Request.Context(), filter, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope("permissions", perms, page))
}

func (h *PermissionsHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	perm, err := h.svc.GetPermission(c.Request.Context(), id, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataEnvelope("permission", perm))
}

func (h *PermissionsHandler) Create(c *gin.Context) {
	var req dto.CreatePermissionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	perm, err := h.svc.CreatePermission(c.Request.Context(), req, middleware.Now(c), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dataEnvelope("permission", perm))
}

func (h *PermissionsHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.UpdatePermissionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	perm, err := h.svc.UpdatePermission(c.Request.Context(), id, req, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataEnvelope("permission", perm))
}

func (h *PermissionsHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.svc.DeletePermission(c.Request.Context(), id, middleware.Now(c), actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
