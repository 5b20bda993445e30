package handlers

import (
	"PalmCare/middlewares"
	"PalmCare/models"
	"PalmCare/services"
	"PalmCare/utils"

	"github.com/gin-gonic/gin"
)

type QueueHandler struct {
	service *services.QueueService
}

func NewQueueHandler(service *services.QueueService) *QueueHandler {
	return &QueueHandler{service: service}
}

func (h *QueueHandler) GetQueue(c *gin.Context) {
	stage := models.Stage(c.Query("stage"))
	if stage != "" && !stage.Valid() {
		middlewares.RespondError(c, utils.FieldError("stage", "unknown stage"))
		return
	}
	ok(c, h.service.List(c.Request.Context(), services.QueueFilter{
		Stage:  stage,
		Status: models.Status(c.Query("status")),
		Search: c.Query("search"),
	}))
}

func (h *QueueHandler) GetStats(c *gin.Context) {
	ok(c, h.service.Stats(c.Request.Context()))
}

func (h *QueueHandler) GetCase(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, record)
}

// CallNext serves the stage named by the path segment shared with the case
// routes.
func (h *QueueHandler) CallNext(c *gin.Context) {
	stage := models.Stage(c.Param("id"))
	if !stage.Valid() {
		middlewares.RespondError(c, utils.FieldError("stage", "unknown stage"))
		return
	}
	record, err := h.service.CallNext(c.Request.Context(), stage)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, record)
}

func (h *QueueHandler) SetPriority(c *gin.Context) {
	var req services.SetPriorityRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.service.SetPriority(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, record)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *QueueHandler) Cancel(c *gin.Context) {
	var req cancelRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	record, err := h.service.Cancel(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, record)
}
