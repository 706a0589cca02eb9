package handler

import (
	"net/http"

	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/middleware"
	"github.com/Misscott/LocationAPI/internal/service"

	"github.com/gin-gonic/gin"
)

type CoordinatesHandler struct{ svc service.PlaceService }

func NewCoordinatesHandler(svc service.PlaceService) *CoordinatesHandler {
	return &CoordinatesHandler{svc: svc}
}

func (h *CoordinatesHandler) List(c *gin.Context) {
	var filter dto.CoordinateFilter
	if !bindQuery(c, &filter) {
		return
	}
	coords, page, err := h.svc.ListCoordinates(c.Request.Context(), filter, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope("coordinates", coords, page))
}

func (h *CoordinatesHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	coord, err := h.svc.GetCoordinate(c.Request.Context(), id, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataEnvelope("coordinate", coord))
}

func (h *CoordinatesHandler) Create(c *gin.Context) {
	var req dto.CreateCoordinateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	coord, err := h.svc.CreateCoordinate(c.Request.Context(), req, middleware.Now(c), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dataEnvelope("coordinate", coord))
}

func (h *CoordinatesHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.UpdateCoordinateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	coord, err := h.svc.UpdateCoordinate(c.Request.Context(), id, req, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataEnvelope("coordinate", coord))
}

func (h *CoordinatesHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteCoordinate(c.Request.Context(), id, middleware.Now(c), actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
