package handlers

import (
	"PalmCare/middlewares"
	"PalmCare/models"
	"PalmCare/services"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

type registrationResponse struct {
	Patient *models.Patient    `json:"patient"`
	Case    *models.CaseRecord `json:"case"`
}

func (h *PatientHandler) RegisterPatient(c *gin.Context) {
	var req services.RegisterPatientRequest
	if !bindJSON(c, &req) {
		return
	}
	patient, record, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	created(c, registrationResponse{Patient: patient, Case: record})
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patient, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, patient)
}

func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	ok(c, h.service.List(c.Request.Context(), c.Query("search")))
}

func (h *PatientHandler) ScanPalm(c *gin.Context) {
	result, err := h.service.ScanPalm(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, result)
}

func (h *PatientHandler) Identify(c *gin.Context) {
	var req services.IdentifyRequest
	if !bindJSON(c, &req) {
		return
	}
	patient, err := h.service.Identify(c.Request.Context(), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, patient)
}
