package services

import (
	"context"
	"testing"
	"time"

	"PalmCare/cache"
	"PalmCare/config"
	"PalmCare/database"
	"PalmCare/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testVitals = models.VitalSigns{BloodPressure: "120/80", HeartRate: 76, Temperature: 36.8, RespiratoryRate: 16, OxygenSaturation: 98}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		SimulatedDelay:  10 * time.Millisecond,
		PalmScanDelay:   time.Millisecond,
		InvoiceDueDays:  14,
		ConsultationFee: 50,
		SessionKey:      "0123456789abcdef0123456789abcdef",
		SessionTTL:      time.Hour,
		CacheTTL:        time.Minute,
	}
}

func newTestServicesWith(t *testing.T, c *cache.Cache, mailer ReceiptSender) *Services {
	t.Helper()
	db, err := database.InitDB(context.Background(), zerolog.Nop())
	require.NoError(t, err)
	return NewServices(db, c, testConfig(), zerolog.Nop(), mailer)
}

func newTestServices(t *testing.T) *Services {
	return newTestServicesWith(t, cache.NewCache(nil), nil)
}

func registerPatient(t *testing.T, s *Services, name string, coverage float64) (*models.Patient, *models.CaseRecord) {
	t.Helper()
	patient, record, err := s.Patients.Register(context.Background(), RegisterPatientRequest{
		Name:                     name,
		Age:                      40,
		Gender:                   "Female",
		InsuranceCoveragePercent: coverage,
	})
	require.NoError(t, err)
	return patient, record
}

func assessCase(t *testing.T, s *Services, caseID string, priority models.Priority) *models.CaseRecord {
	t.Helper()
	result, err := s.Triage.Assess(context.Background(), caseID, AssessRequest{
		VitalSigns:     testVitals,
		ChiefComplaint: "Headache",
		Priority:       priority,
	})
	require.NoError(t, err)
	return result.Case
}

func addItem(t *testing.T, s *Services, name string, stock, reorder int, price float64) *models.InventoryItem {
	t.Helper()
	item := &models.InventoryItem{Name: name, Category: "General", Unit: "tablets", Stock: stock, ReorderLevel: reorder, UnitPrice: price}
	require.NoError(t, s.Inventory.Create(context.Background(), item))
	return item
}

// caseAtBilling walks a new patient through triage and a consultation that
// orders nothing, leaving an invoice for the consultation fee.
func caseAtBilling(t *testing.T, s *Services, name string, coverage float64) *models.CaseRecord {
	t.Helper()
	_, record := registerPatient(t, s, name, coverage)
	assessCase(t, s, record.ID, models.PriorityMedium)
	result, err := s.Consultations.Complete(context.Background(), record.ID, CompleteConsultationRequest{Diagnosis: "Tension headache"})
	require.NoError(t, err)
	require.Equal(t, models.StageBilling, result.Case.Stage)
	require.NotEmpty(t, result.Case.InvoiceID)
	return result.Case
}
