package handler

import (
	"net/http"

	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/middleware"
	"github.com/Misscott/LocationAPI/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportTypesHandler struct{ svc service.ReportService }

func NewReportTypesHandler(svc service.ReportService) *ReportTypesHandler {
	return &ReportTypesHandler{svc: svc}
}

func (h *ReportTypesHandler) List(c *gin.Context) {
	var filter dto.ReportTypeFilter
	if !bindQuery(c, &filter) {
		return
	}
	types, page, err := h.svc.ListReportTypes(c.Request.Context(), filter, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope("reportTypes", types, page))
}

func (h *ReportTypesHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	rt, err := h.svc.GetReportType(c.Request.Context(), id, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataEnvelope("reportType", rt))
}

func (h *ReportTypesHandler) Create(c *gin.Context) {
	var req dto.CreateReportTypeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	rt, err := h.svc.CreateReportType(c.Request.Context(), req, middleware.Now(c), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dataEnvelope("reportType", rt))
}

func (h *ReportTypesHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.UpdateReportTypeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	rt, err := h.svc.UpdateReportType(c.Request.Context(), id, req, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataEnvelope("reportType", rt))
}

func (h *ReportTypesHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteReportType(c.Request.Context(), id, middleware.Now(c), actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
