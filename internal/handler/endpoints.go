package handler

import (
	"net/http"

	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/middleware"
	"github.com/Misscott/LocationAPI/internal/service"

	"github.com/gin-gonic/gin"
)

type EndpointsHandler struct{ svc service.AccessService }

func NewEndpointsHandler(svc service.AccessService) *EndpointsHandler {
	return &EndpointsHandler{svc: svc}
}

func (h *EndpointsHandler) List(c *gin.Context) {
	var filter dto.EndpointFilter
	if !bindQuery(c, &filter) {
		return
	}
	endpoints, page, err := h.svc.ListEndpoints(c.Request.Context(), filter, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope("endpoints", endpoints, page))
}

func (h *EndpointsHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	endpoint, err := h.svc.GetEndpoint(c.Request.Context(), id, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataEnvelope("endpoint", endpoint))
}

func (h *EndpointsHandler) Create(c *gin.Context) {
	var req dto.CreateEndpointRequest
	if !bindAndValidate(c, &req) {
		return
	}
	endpoint, err := h.svc.CreateEndpoint(c.Request.Context(), req, middleware.Now(c), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dataEnvelope("endpoint", endpoint))
}

func (h *EndpointsHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.UpdateEndpointRequest
	if !bindAndValidate(c, &req) {
		return
	}
	endpoint, err := h.svc.UpdateEndpoint(c.Request.Context(), id, req, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataEnvelope("endpoint", endpoint))
}

func (h *EndpointsHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteEndpoint(c.Request.Context(), id, middleware.Now(c), actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
