package handlers

import (
	"PalmCare/middlewares"
	"PalmCare/models"
	"PalmCare/services"

	"github.com/gin-gonic/gin"
)

type LabHandler struct {
	service *services.LabService
}

func NewLabHandler(service *services.LabService) *LabHandler {
	return &LabHandler{service: service}
}

func (h *LabHandler) GetCatalog(c *gin.Context) {
	ok(c, services.LabCatalog())
}

func (h *LabHandler) GetAllLabOrders(c *gin.Context) {
	ok(c, h.service.List(c.Request.Context(), services.LabFilter{
		Status: models.Status(c.Query("status")),
		Search: c.Query("search"),
	}))
}

func (h *LabHandler) GetLabOrderByID(c *gin.Context) {
	order, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, order)
}

func (h *LabHandler) RecordResults(c *gin.Context) {
	var req services.RecordResultsRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.service.RecordResults(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, order)
}

func (h *LabHandler) CompleteLabOrder(c *gin.Context) {
	order, err := h.service.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, order)
}
