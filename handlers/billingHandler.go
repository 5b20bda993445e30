package handlers

import (
	"PalmCare/middlewares"
	"PalmCare/models"
	"PalmCare/services"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	service *services.BillingService
}

func NewBillingHandler(service *services.BillingService) *BillingHandler {
	return &BillingHandler{service: service}
}

func (h *BillingHandler) GetAllInvoices(c *gin.Context) {
	ok(c, h.service.ListInvoices(c.Request.Context(), services.InvoiceFilter{
		Status: models.Status(c.Query("status")),
		Search: c.Query("search"),
	}))
}

func (h *BillingHandler) GetInvoiceByID(c *gin.Context) {
	invoice, err := h.service.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, invoice)
}

func (h *BillingHandler) PayInvoice(c *gin.Context) {
	var req services.PayRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.service.Pay(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, result)
}

func (h *BillingHandler) RefreshOverdue(c *gin.Context) {
	ok(c, gin.H{"marked_overdue": h.service.RefreshOverdue(c.Request.Context())})
}

func (h *BillingHandler) GetAllPayments(c *gin.Context) {
	ok(c, h.service.ListPayments(c.Request.Context(), c.Query("search")))
}
