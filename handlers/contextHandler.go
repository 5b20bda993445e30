package handlers

import (
	"PalmCare/middlewares"
	"PalmCare/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
)

type ContextHandler struct {
	activity *services.ActivityTracker
	patients *services.PatientService
}

func NewContextHandler(activity *services.ActivityTracker, patients *services.PatientService) *ContextHandler {
	return &ContextHandler{activity: activity, patients: patients}
}

func (h *ContextHandler) GetContext(c *gin.Context) {
	ok(c, h.activity.Snapshot(c.Request.Context()))
}

type activePatientRequest struct {
	PatientID string `json:"patient_id"`
}

// SetActivePatient points the shared context at a patient. An empty ID clears
// the selection.
func (h *ContextHandler) SetActivePatient(c *gin.Context) {
	var req activePatientRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.PatientID != "" {
		if _, err := h.patients.Get(c.Request.Context(), req.PatientID); err != nil {
			middlewares.RespondError(c, err)
			return
		}
	}
	h.activity.SetActivePatient(req.PatientID)
	ok(c, h.activity.Snapshot(c.Request.Context()))
}

// RunAction holds the loading flag up for ?duration_ms=, or the configured
// default.
func (h *ContextHandler) RunAction(c *gin.Context) {
	name := c.Param("name")
	if err := validation.Validate(name, validation.Required, validation.Length(1, 64)); err != nil {
		middlewares.RespondError(c, validation.Errors{"name": err})
		return
	}
	d, valid := queryDuration(c, "duration_ms")
	if !valid {
		return
	}
	result, err := h.activity.Simulate(c.Request.Context(), name, d)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, result)
}
