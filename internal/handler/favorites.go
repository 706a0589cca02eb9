package handler

import (
	"net/http"

	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/middleware"
	"github.com/Misscott/LocationAPI/internal/service"

	"github.com/gin-gonic/gin"
)

type FavoritesHandler struct{ svc service.ReportService }

func NewFavoritesHandler(svc service.ReportService) *FavoritesHandler {
	return &FavoritesHandler{svc: svc}
}

func (h *FavoritesHandler) List(c *gin.Context) {
	var filter dto.FavoriteFilter
	if !bindQuery(c, &filter) {
		return
	}
	favs, page, err := h.svc.ListFavorites(c.Request.Context(), filter, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope("favorites", favs, page))
}

func (h *FavoritesHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	fav, err := h.svc.GetFavorite(c.Request.Context(), id, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataEnvelope("favorite", fav))
}

func (h *FavoritesHandler) Create(c *gin.Context) {
	var req dto.CreateFavoriteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	fav, err := h.svc.CreateFavorite(c.Request.Context(), req, middleware.Now(c), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dataEnvelope("favorite", fav))
}

func (h *FavoritesHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.UpdateFavoriteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	fav, err := h.svc.UpdateFavorite(c.Request.Context(), id, req, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataEnvelope("favorite", fav))
}

func (h *FavoritesHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteFavorite(c.Request.Context(), id, middleware.Now(c), actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
