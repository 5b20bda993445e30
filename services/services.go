package services

import (
	"PalmCare/cache"
	"PalmCare/config"
	"PalmCare/database"
	"PalmCare/repositories"
	"PalmCare/utils"

	"github.com/rs/zerolog"
)

// Services wires every page workflow over one store.
type Services struct {
	Activity      *ActivityTracker
	Notifications *NotificationService
	Queue         *QueueService
	Patients      *PatientService
	Triage        *TriageService
	Consultations *ConsultationService
	Labs          *LabService
	Inventory     *InventoryService
	Prescriptions *PrescriptionService
	Billing       *BillingService
	Dashboard     *DashboardService
	Sessions      *SessionService
	Seed          *SeedService
}

// NewServices builds the service graph. mailer may be nil, in which case no
// receipts are sent.
func NewServices(db *database.DB, cache *cache.Cache, cfg *config.AppConfig, log zerolog.Logger, mailer ReceiptSender) *Services {
	repos := repositories.NewRepositories(db, cache, log)
	s := &Services{}

	s.Notifications = NewNotificationService(repos.Notifications, log.With().Str("component", "notifications").Logger())
	s.Activity = NewActivityTracker(cfg.SimulatedDelay, repos.Notifications, log.With().Str("component", "activity").Logger())
	s.Queue = NewQueueService(repos.Cases, cache, cfg.CacheTTL, log.With().Str("component", "queue").Logger())
	s.Patients = NewPatientService(repos.Patients, s.Queue, s.Activity, cfg.PalmScanDelay, log.With().Str("component", "patients").Logger())
	s.Triage = NewTriageService(repos.Triages, s.Queue, s.Notifications, log.With().Str("component", "triage").Logger())
	s.Labs = NewLabService(repos.LabOrders, s.Queue, s.Notifications, log.With().Str("component", "laboratory").Logger())
	s.Inventory = NewInventoryService(repos.Inventory, s.Notifications, log.With().Str("component", "inventory").Logger())
	s.Prescriptions = NewPrescriptionService(repos.Prescriptions, s.Inventory, s.Queue, log.With().Str("component", "pharmacy").Logger())
	s.Consultations = NewConsultationService(repos.Consultations, s.Queue, s.Labs, s.Prescriptions, s.Activity, log.With().Str("component", "consultation").Logger())
	s.Billing = NewBillingService(repos, s.Queue, s.Activity, s.Notifications, mailer, BillingOptions{
		ConsultationFee: cfg.ConsultationFee,
		DueDays:         cfg.InvoiceDueDays,
		PaymentDelay:    cfg.PaymentDelay,
	}, log.With().Str("component", "billing").Logger())
	s.Dashboard = NewDashboardService(repos, s.Queue, cache, cfg.CacheTTL, log.With().Str("component", "dashboard").Logger())
	s.Sessions = NewSessionService(utils.NewSessionTokens(cfg.GetSessionKey(), cfg.SessionTTL), log.With().Str("component", "session").Logger())
	s.Seed = NewSeedService(repos, s, log.With().Str("component", "seed").Logger())
	return s
}

// NewMailer returns the SMTP receipt sender, or nil when SMTP is not
// configured.
func NewMailer(cfg *config.AppConfig) ReceiptSender {
	if !cfg.SMTPEnabled() {
		return nil
	}
	return utils.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
}
