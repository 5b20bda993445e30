package controllers

import (
	"PalmCare/handlers"
	"PalmCare/services"

	"github.com/gin-gonic/gin"
)

// ClinicHandlers groups the page handlers of the clinic workflow.
type ClinicHandlers struct {
	Context       *handlers.ContextHandler
	Patients      *handlers.PatientHandler
	Triage        *handlers.TriageHandler
	Consultations *handlers.ConsultationHandler
	Labs          *handlers.LabHandler
	Pharmacy      *handlers.PharmacyHandler
	Billing       *handlers.BillingHandler
	Queue         *handlers.QueueHandler
	Dashboard     *handlers.DashboardHandler
	Notifications *handlers.NotificationHandler
}

func NewClinicHandlers(svc *services.Services) *ClinicHandlers {
	return &ClinicHandlers{
		Context:       handlers.NewContextHandler(svc.Activity, svc.Patients),
		Patients:      handlers.NewPatientHandler(svc.Patients),
		Triage:        handlers.NewTriageHandler(svc.Triage),
		Consultations: handlers.NewConsultationHandler(svc.Consultations),
		Labs:          handlers.NewLabHandler(svc.Labs),
		Pharmacy:      handlers.NewPharmacyHandler(svc.Prescriptions, svc.Inventory),
		Billing:       handlers.NewBillingHandler(svc.Billing),
		Queue:         handlers.NewQueueHandler(svc.Queue),
		Dashboard:     handlers.NewDashboardHandler(svc.Dashboard, svc.Queue),
		Notifications: handlers.NewNotificationHandler(svc.Notifications),
	}
}

// SetupClinicRoutes registers every page of the clinic on api.
func SetupClinicRoutes(api *gin.RouterGroup, h *ClinicHandlers) {
	api.GET("/context", h.Context.GetContext)
	api.PUT("/context/active-patient", h.Context.SetActivePatient)
	api.POST("/context/actions/:name", h.Context.RunAction)

	api.GET("/dashboard", h.Dashboard.GetSummary)
	api.GET("/navigation", h.Dashboard.GetNavigation)

	api.POST("/patients", h.Patients.RegisterPatient)
	api.GET("/patients", h.Patients.GetAllPatients)
	api.POST("/patients/identify", h.Patients.Identify)
	api.GET("/patients/:id", h.Patients.GetPatientByID)
	api.POST("/patients/:id/palm-scan", h.Patients.ScanPalm)

	api.GET("/triage", h.Triage.GetQueue)
	api.GET("/triage/assessments/:id", h.Triage.GetAssessment)
	api.POST("/triage/:id/assess", h.Triage.Assess)

	api.GET("/consultations", h.Consultations.GetQueue)
	api.GET("/consultations/records/:id", h.Consultations.GetConsultation)
	api.POST("/consultations/:id/start", h.Consultations.StartConsultation)
	api.POST("/consultations/:id/complete", h.Consultations.CompleteConsultation)

	api.GET("/lab-catalog", h.Labs.GetCatalog)
	api.GET("/lab-orders", h.Labs.GetAllLabOrders)
	api.GET("/lab-orders/:id", h.Labs.GetLabOrderByID)
	api.PUT("/lab-orders/:id/results", h.Labs.RecordResults)
	api.POST("/lab-orders/:id/complete", h.Labs.CompleteLabOrder)

	api.GET("/prescriptions", h.Pharmacy.GetAllPrescriptions)
	api.GET("/prescriptions/:id", h.Pharmacy.GetPrescriptionByID)
	api.POST("/prescriptions/:id/prepare", h.Pharmacy.Prepare)
	api.POST("/prescriptions/:id/dispense", h.Pharmacy.Dispense)

	api.GET("/inventory", h.Pharmacy.GetInventory)
	api.GET("/inventory/:id", h.Pharmacy.GetInventoryItem)
	api.POST("/inventory/:id/restock", h.Pharmacy.Restock)

	api.GET("/invoices", h.Billing.GetAllInvoices)
	api.POST("/invoices/refresh-overdue", h.Billing.RefreshOverdue)
	api.GET("/invoices/:id", h.Billing.GetInvoiceByID)
	api.POST("/invoices/:id/pay", h.Billing.PayInvoice)
	api.GET("/payments", h.Billing.GetAllPayments)

	api.GET("/queue", h.Queue.GetQueue)
	api.GET("/queue/stats", h.Queue.GetStats)
	api.GET("/queue/:id", h.Queue.GetCase)
	api.POST("/queue/:id/call-next", h.Queue.CallNext)
	api.PUT("/queue/:id/priority", h.Queue.SetPriority)
	api.POST("/queue/:id/cancel", h.Queue.Cancel)

	api.GET("/notifications", h.Notifications.GetAllNotifications)
	api.POST("/notifications/read-all", h.Notifications.MarkAllRead)
	api.POST("/notifications/:id/read", h.Notifications.MarkRead)
	api.POST("/notifications/:id/unread", h.Notifications.MarkUnread)
}
