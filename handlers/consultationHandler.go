package handlers

import (
	"PalmCare/middlewares"
	"PalmCare/services"

	"github.com/gin-gonic/gin"
)

type ConsultationHandler struct {
	service *services.ConsultationService
}

func NewConsultationHandler(service *services.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{service: service}
}

func (h *ConsultationHandler) GetQueue(c *gin.Context) {
	ok(c, h.service.List(c.Request.Context(), c.Query("search")))
}

func (h *ConsultationHandler) GetConsultation(c *gin.Context) {
	consultation, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, consultation)
}

type startConsultationRequest struct {
	Physician string `json:"physician"`
}

// StartConsultation takes the physician from the body, falling back to the
// signed in display name.
func (h *ConsultationHandler) StartConsultation(c *gin.Context) {
	var req startConsultationRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	if req.Physician == "" {
		if session, found := middlewares.SessionFromContext(c); found {
			req.Physician = session.DisplayName
		}
	}
	consultation, err := h.service.Start(c.Request.Context(), c.Param("id"), req.Physician)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, consultation)
}

func (h *ConsultationHandler) CompleteConsultation(c *gin.Context) {
	var req services.CompleteConsultationRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Physician == "" {
		if session, found := middlewares.SessionFromContext(c); found {
			req.Physician = session.DisplayName
		}
	}
	result, err := h.service.Complete(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, result)
}
