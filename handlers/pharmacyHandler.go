package handlers

import (
	"PalmCare/middlewares"
	"PalmCare/models"
	"PalmCare/services"

	"github.com/gin-gonic/gin"
)

type PharmacyHandler struct {
	prescriptions *services.PrescriptionService
	inventory     *services.InventoryService
}

func NewPharmacyHandler(prescriptions *services.PrescriptionService, inventory *services.InventoryService) *PharmacyHandler {
	return &PharmacyHandler{prescriptions: prescriptions, inventory: inventory}
}

func (h *PharmacyHandler) GetAllPrescriptions(c *gin.Context) {
	ok(c, h.prescriptions.List(c.Request.Context(), services.PrescriptionFilter{
		Status: models.Status(c.Query("status")),
		Search: c.Query("search"),
	}))
}

func (h *PharmacyHandler) GetPrescriptionByID(c *gin.Context) {
	prescription, err := h.prescriptions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, prescription)
}

func (h *PharmacyHandler) Prepare(c *gin.Context) {
	prescription, err := h.prescriptions.Prepare(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, prescription)
}

func (h *PharmacyHandler) Dispense(c *gin.Context) {
	prescription, err := h.prescriptions.Dispense(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, prescription)
}

func (h *PharmacyHandler) GetInventory(c *gin.Context) {
	ok(c, h.inventory.List(c.Request.Context(), services.InventoryFilter{
		Search: c.Query("search"),
		Status: models.StockStatus(c.Query("status")),
	}))
}

func (h *PharmacyHandler) GetInventoryItem(c *gin.Context) {
	item, err := h.inventory.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, item)
}

func (h *PharmacyHandler) Restock(c *gin.Context) {
	var req services.RestockRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.inventory.Restock(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, item)
}
