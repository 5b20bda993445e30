package services

import (
	"context"

	"PalmCare/models"
	"PalmCare/repositories"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// SeedSummary counts what the seed created.
type SeedSummary struct {
	Patients       int                  `json:"patients"`
	Cases          int                  `json:"cases"`
	InventoryItems int                  `json:"inventory_items"`
	Invoices       int                  `json:"invoices"`
	Payments       int                  `json:"payments"`
	Notifications  int                  `json:"notifications"`
	Stages         map[models.Stage]int `json:"stages"`
}

var seedInventory = []models.InventoryItem{
	{Name: "Paracetamol 500mg", Category: "Analgesic", Unit: "tablets", Stock: 200, ReorderLevel: 50, UnitPrice: 0.10},
	{Name: "Amoxicillin 500mg", Category: "Antibiotic", Unit: "capsules", Stock: 120, ReorderLevel: 40, UnitPrice: 0.35},
	{Name: "Ibuprofen 400mg", Category: "Analgesic", Unit: "tablets", Stock: 45, ReorderLevel: 50, UnitPrice: 0.15},
	{Name: "Metformin 500mg", Category: "Antidiabetic", Unit: "tablets", Stock: 20, ReorderLevel: 60, UnitPrice: 0.20},
	{Name: "Omeprazole 20mg", Category: "Antacid", Unit: "capsules", Stock: 12, ReorderLevel: 30, UnitPrice: 0.30},
	{Name: "Ciprofloxacin 500mg", Category: "Antibiotic", Unit: "tablets", Stock: 80, ReorderLevel: 30, UnitPrice: 0.45},
	{Name: "Artemether-Lumefantrine", Category: "Antimalarial", Unit: "packs", Stock: 60, ReorderLevel: 25, UnitPrice: 3.50},
	{Name: "Salbutamol Inhaler", Category: "Bronchodilator", Unit: "inhalers", Stock: 35, ReorderLevel: 10, UnitPrice: 4.75},
	{Name: "ORS Sachets", Category: "Rehydration", Unit: "sachets", Stock: 150, ReorderLevel: 50, UnitPrice: 0.25},
	{Name: "Cetirizine 10mg", Category: "Antihistamine", Unit: "tablets", Stock: 90, ReorderLevel: 30, UnitPrice: 0.12},
}

var seedNotifications = []models.Notification{
	{Kind: models.NotificationInfo, Title: "Welcome to PalmCare", Message: "Palm scanners at reception are online."},
	{Kind: models.NotificationInfo, Title: "Scheduled maintenance", Message: "The system will be updated tonight at 22:00."},
	{Kind: models.NotificationWarning, Title: "Reorder reminder", Message: "Metformin and Omeprazole are below their reorder levels."},
}

var normalVitals = models.VitalSigns{BloodPressure: "120/80", HeartRate: 76, Temperature: 36.8, RespiratoryRate: 16, OxygenSaturation: 98}

// seedVisit drives one patient through the workflow up to where the mock
// data shows them.
type seedVisit struct {
	patient      RegisterPatientRequest
	palm         bool
	triage       *AssessRequest
	start        bool
	consultation *CompleteConsultationRequest
	labResults   []LabResult
	completeLab  bool
	dispense     bool
	payment      *PayRequest
}

const seedPhysician = "Dr. Achieng"

var seedVisits = []seedVisit{
	{
		patient: RegisterPatientRequest{Name: "Amina Okafor", Age: 34, Gender: "Female", Phone: "+254 700 111 201", Priority: models.PriorityHigh, ChiefComplaint: "Severe chest pain"},
		palm:    true,
	},
	{
		patient: RegisterPatientRequest{Name: "John Kamau", Age: 52, Gender: "Male", Phone: "+254 700 111 202", ChiefComplaint: "Persistent cough"},
	},
	{
		patient: RegisterPatientRequest{Name: "Grace Wanjiru", Age: 28, Gender: "Female", Email: "grace.wanjiru@example.com", InsuranceProvider: "NHIF", InsuranceCoveragePercent: 80},
		palm:    true,
		triage:  &AssessRequest{VitalSigns: normalVitals, ChiefComplaint: "Migraine for three days", Priority: models.PriorityMedium, AssessedBy: "Nurse Mary"},
	},
	{
		patient: RegisterPatientRequest{Name: "Peter Otieno", Age: 45, Gender: "Male", Phone: "+254 700 111 204"},
		triage: &AssessRequest{
			VitalSigns:     models.VitalSigns{BloodPressure: "165/100", HeartRate: 104, Temperature: 37.1, RespiratoryRate: 18, OxygenSaturation: 96},
			ChiefComplaint: "Headache and blurred vision",
			Priority:       models.PriorityHigh,
			AssessedBy:     "Nurse Mary",
		},
		start: true,
	},
	{
		patient: RegisterPatientRequest{Name: "Fatuma Hassan", Age: 61, Gender: "Female", InsuranceProvider: "AAR", InsuranceCoveragePercent: 60},
		triage:  &AssessRequest{VitalSigns: normalVitals, ChiefComplaint: "Excessive thirst and fatigue", Priority: models.PriorityMedium},
		consultation: &CompleteConsultationRequest{
			Diagnosis:   "Suspected type 2 diabetes",
			LabTests:    []string{"CBC", "Blood Glucose"},
			Medications: []models.MedicationOrder{{MedicationID: "MED-004", Dosage: "500mg", Frequency: "twice daily", Duration: "30 days", Quantity: 60}},
			Physician:   seedPhysician,
		},
		labResults: []LabResult{{Test: "Blood Glucose", Field: "Fasting Glucose", Value: "105"}},
	},
	{
		patient: RegisterPatientRequest{Name: "David Mwangi", Age: 23, Gender: "Male", Phone: "+254 700 111 206"},
		triage: &AssessRequest{
			VitalSigns:     models.VitalSigns{BloodPressure: "118/76", HeartRate: 98, Temperature: 38.6, RespiratoryRate: 20, OxygenSaturation: 97},
			ChiefComplaint: "Fever and chills",
			Priority:       models.PriorityMedium,
		},
		consultation: &CompleteConsultationRequest{
			Diagnosis: "Uncomplicated malaria",
			Medications: []models.MedicationOrder{
				{MedicationID: "MED-007", Dosage: "4 tablets", Frequency: "twice daily", Duration: "3 days", Quantity: 1},
				{MedicationID: "MED-001", Dosage: "1g", Frequency: "three times daily", Duration: "3 days", Quantity: 18},
			},
			Physician: seedPhysician,
		},
	},
	{
		patient:      RegisterPatientRequest{Name: "Sarah Njeri", Age: 39, Gender: "Female", InsuranceProvider: "NHIF", InsuranceCoveragePercent: 80},
		triage:       &AssessRequest{VitalSigns: normalVitals, ChiefComplaint: "Sore throat", Priority: models.PriorityLow},
		consultation: &CompleteConsultationRequest{Diagnosis: "Viral pharyngitis", Notes: "Rest and fluids", Physician: seedPhysician},
	},
	{
		patient:      RegisterPatientRequest{Name: "Michael Ochieng", Age: 47, Gender: "Male", InsuranceProvider: "Jubilee", InsuranceCoveragePercent: 50},
		triage:       &AssessRequest{VitalSigns: normalVitals, ChiefComplaint: "Lower back pain", Priority: models.PriorityLow},
		consultation: &CompleteConsultationRequest{Diagnosis: "Lumbar strain", LabTests: []string{"Urinalysis"}, Physician: seedPhysician},
		labResults: []LabResult{
			{Test: "Urinalysis", Field: "pH", Value: "6.0"},
			{Test: "Urinalysis", Field: "Protein", Value: "Negative"},
			{Test: "Urinalysis", Field: "Glucose", Value: "Negative"},
		},
		completeLab: true,
		payment: &PayRequest{Amount: 10, Method: models.PaymentCash},
	},
	{
		patient: RegisterPatientRequest{Name: "Lucy Akinyi", Age: 31, Gender: "Female", Phone: "+254 700 111 209"},
		palm:    true,
		triage:  &AssessRequest{VitalSigns: normalVitals, ChiefComplaint: "Sneezing and itchy eyes", Priority: models.PriorityLow},
		consultation: &CompleteConsultationRequest{
			Diagnosis:   "Allergic rhinitis",
			Medications: []models.MedicationOrder{{MedicationID: "MED-010", Dosage: "10mg", Frequency: "once daily", Duration: "10 days", Quantity: 10}},
			Physician:   seedPhysician,
		},
		dispense: true,
		payment:  &PayRequest{Amount: 60, Method: models.PaymentCard},
	},
}

// SeedService recreates the mock data by running it through the same
// workflows the pages use, without the simulated delays.
type SeedService struct {
	repos    *repositories.Repositories
	services *Services
	log      zerolog.Logger
}

func NewSeedService(repos *repositories.Repositories, services *Services, log zerolog.Logger) *SeedService {
	return &SeedService{repos: repos, services: services, log: log}
}

// Seed fills an empty store. It refuses to run twice.
func (s *SeedService) Seed(ctx context.Context) (*SeedSummary, error) {
	if s.repos.Patients.Count(ctx) > 0 || len(s.repos.Inventory.List(ctx)) > 0 {
		return nil, errors.Wrap(models.ErrDuplicateKey, "store already seeded")
	}

	for _, item := range seedInventory {
		item := item
		if err := s.services.Inventory.Create(ctx, &item); err != nil {
			return nil, err
		}
	}
	for _, n := range seedNotifications {
		s.services.Notifications.Notify(ctx, n.Kind, n.Title, n.Message)
	}
	for _, visit := range seedVisits {
		if err := s.seedVisit(ctx, visit); err != nil {
			return nil, errors.Wrapf(err, "failed to seed %s", visit.patient.Name)
		}
	}

	summary := s.Summarize(ctx)
	s.log.Info().Int("patients", summary.Patients).Int("inventory_items", summary.InventoryItems).Msg("Mock data seeded")
	return summary, nil
}

func (s *SeedService) seedVisit(ctx context.Context, visit seedVisit) error {
	svc := s.services
	patient, record, err := svc.Patients.Register(ctx, visit.patient)
	if err != nil {
		return err
	}
	if visit.palm {
		if _, err := svc.Patients.enrollPalm(ctx, patient.ID, patient.ID+"-seed-palm"); err != nil {
			return err
		}
	}
	if visit.triage == nil {
		return nil
	}
	if _, err := svc.Triage.Assess(ctx, record.ID, *visit.triage); err != nil {
		return err
	}
	if visit.start {
		_, err := svc.Consultations.Start(ctx, record.ID, seedPhysician)
		return err
	}
	if visit.consultation == nil {
		return nil
	}
	result, err := svc.Consultations.Complete(ctx, record.ID, *visit.consultation)
	if err != nil {
		return err
	}

	if order := result.LabOrder; order != nil && len(visit.labResults) > 0 {
		if _, err := svc.Labs.RecordResults(ctx, order.ID, RecordResultsRequest{Results: visit.labResults}); err != nil {
			return err
		}
		if visit.completeLab {
			if _, err := svc.Labs.Complete(ctx, order.ID); err != nil {
				return err
			}
		}
	}
	if rx := result.Prescription; rx != nil && visit.dispense {
		if _, err := svc.Prescriptions.Prepare(ctx, rx.ID); err != nil {
			return err
		}
		if _, err := svc.Prescriptions.Dispense(ctx, rx.ID); err != nil {
			return err
		}
	}
	if visit.payment == nil {
		return nil
	}
	current, err := svc.Queue.Get(ctx, record.ID)
	if err != nil {
		return err
	}
	_, err = svc.Billing.settle(ctx, current.InvoiceID, *visit.payment)
	return err
}

// Summarize counts the current contents of the store.
func (s *SeedService) Summarize(ctx context.Context) *SeedSummary {
	summary := &SeedSummary{
		Patients:       s.repos.Patients.Count(ctx),
		InventoryItems: len(s.repos.Inventory.List(ctx)),
		Invoices:       len(s.repos.Billing.ListInvoices(ctx)),
		Payments:       len(s.repos.Billing.ListPayments(ctx)),
		Notifications:  len(s.repos.Notifications.List(ctx)),
		Stages:         make(map[models.Stage]int),
	}
	for _, c := range s.repos.Cases.List(ctx) {
		summary.Cases++
		summary.Stages[c.Stage]++
	}
	return summary
}
