package handlers

import (
	"PalmCare/middlewares"
	"PalmCare/services"

	"github.com/gin-gonic/gin"
)

type TriageHandler struct {
	service *services.TriageService
}

func NewTriageHandler(service *services.TriageService) *TriageHandler {
	return &TriageHandler{service: service}
}

func (h *TriageHandler) GetQueue(c *gin.Context) {
	ok(c, h.service.List(c.Request.Context(), c.Query("search")))
}

func (h *TriageHandler) GetAssessment(c *gin.Context) {
	assessment, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, assessment)
}

func (h *TriageHandler) Assess(c *gin.Context) {
	var req services.AssessRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.service.Assess(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	created(c, result)
}
