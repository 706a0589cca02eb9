package handler

import (
	"net/http"

	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/middleware"
	"github.com/Misscott/LocationAPI/internal/service"

	"github.com/gin-gonic/gin"
)

type PlacesHandler struct{ svc service.PlaceService }

func NewPlacesHandler(svc service.PlaceService) *PlacesHandler {
	return &PlacesHandler{svc: svc}
}

func (h *PlacesHandler) List(c *gin.Context) {
	var filter dto.PlaceFilter
	if !bindQuery(c, &filter) {
		return
	}
	places, page, err := h.svc.List(c.Request.Context(), filter, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope("places", places, page))
}

func (h *PlacesHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	place, err := h.svc.Get(c.Request.Context(), id, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataEnvelope("place", place))
}

func (h *PlacesHandler) Create(c *gin.Context) {
	var req dto.CreatePlaceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	place, err := h.svc.Create(c.Request.Context(), req, middleware.Now(c), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dataEnvelope("place", place))
}

func (h *PlacesHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.UpdatePlaceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	place, err := h.svc.Update(c.Request.Context(), id, req, middleware.Now(c), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataEnvelope("place", place))
}

func (h *PlacesHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, middleware.Now(c), actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
