package handler

import (
	"net/http"

	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/middleware"
	"github.com/Misscott/LocationAPI/internal/service"

	"github.com/gin-gonic/gin"
)

type RolesHandler struct{ svc service.AccessService }

func NewRolesHandler(svc service.AccessService) *RolesHandler {
	return &RolesHandler{svc: svc}
}

func (h *RolesHandler) List(c *gin.Context) {
	var filter dto.RoleFilter
	if !bindQuery(c, &filter) {
		return
	}
	roles, page, err := h.svc.ListRoles(c.Request.Context(), filter, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope("roles", roles, page))
}

func (h *RolesHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	role, err := h.svc.GetRole(c.Request.Context(), id, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataEnvelope("role", role))
}

func (h *RolesHandler) Create(c *gin.Context) {
	var req dto.CreateRoleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	role, err := h.svc.CreateRole(c.Request.Context(), req, middleware.Now(c), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dataEnvelope("role", role))
}

func (h *RolesHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.UpdateRoleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	role, err := h.svc.UpdateRole(c.Request.Context(), id, req, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataEnvelope("role", role))
}

func (h *RolesHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteRole(c.Request.Context(), id, middleware.Now(c), actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
