package services

import (
	"context"
	"testing"

	"PalmCare/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsultationService_EmptyDiagnosisFails(t *testing.T) {
	s := newTestServices(t)
	_, record := registerPatient(t, s, "John Kamau", 0)
	assessCase(t, s, record.ID, models.PriorityMedium)

	for _, diagnosis := range []string{"", "   "} {
		_, err := s.Consultations.Complete(context.Background(), record.ID, CompleteConsultationRequest{Diagnosis: diagnosis})
		var errs validation.Errors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs, "diagnosis")
	}

	current, err := s.Queue.Get(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageConsultation, current.Stage, "a failed completion leaves the case in place")
}

func TestConsultationService_StartSetsActivePatient(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	patient, record := registerPatient(t, s, "Peter Otieno", 0)
	assessCase(t, s, record.ID, models.PriorityHigh)

	consultation, err := s.Consultations.Start(ctx, record.ID, "Dr. Achieng")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, consultation.Status)
	assert.Equal(t, patient.ID, s.Activity.ActivePatient())

	_, err = s.Consultations.Start(ctx, record.ID, "Dr. Achieng")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	result, err := s.Consultations.Complete(ctx, record.ID, CompleteConsultationRequest{Diagnosis: "Hypertension"})
	require.NoError(t, err)
	assert.Equal(t, consultation.ID, result.Consultation.ID)
	assert.Equal(t, models.StatusCompleted, result.Consultation.Status)
	assert.Empty(t, s.Activity.ActivePatient())
}

func TestConsultationService_CompleteRoutesByOrders(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	item := addItem(t, s, "Paracetamol", 100, 20, 0.5)

	tests := []struct {
		name  string
		req   CompleteConsultationRequest
		stage models.Stage
	}{
		{"labs and medication", CompleteConsultationRequest{
			Diagnosis:   "Malaria",
			LabTests:    []string{"malaria test"},
			Medications: []models.MedicationOrder{{MedicationID: item.ID, Dosage: "1g", Quantity: 6}},
		}, models.StageLaboratory},
		{"medication only", CompleteConsultationRequest{
			Diagnosis:   "Fever",
			Medications: []models.MedicationOrder{{MedicationID: item.ID, Dosage: "1g", Quantity: 6}},
		}, models.StagePharmacy},
		{"nothing ordered", CompleteConsultationRequest{Diagnosis: "Common cold"}, models.StageBilling},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, record := registerPatient(t, s, tt.name, 0)
			assessCase(t, s, record.ID, models.PriorityMedium)

			result, err := s.Consultations.Complete(ctx, record.ID, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.stage, result.Case.Stage)
			assert.Equal(t, models.StatusPending, result.Case.Status)
			assert.Equal(t, len(tt.req.LabTests) > 0, result.LabOrder != nil)
			assert.Equal(t, len(tt.req.Medications) > 0, result.Prescription != nil)
			if result.Prescription != nil {
				assert.Equal(t, "Paracetamol", result.Prescription.Lines[0].Name)
				assert.Equal(t, 3.0, result.Prescription.Total())
			}
		})
	}
}

func TestConsultationService_RejectsUnknownOrders(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	_, record := registerPatient(t, s, "Fatuma Hassan", 0)
	assessCase(t, s, record.ID, models.PriorityMedium)

	_, err := s.Consultations.Complete(ctx, record.ID, CompleteConsultationRequest{Diagnosis: "x", LabTests: []string{"X-Ray"}})
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "lab_tests")

	_, err = s.Consultations.Complete(ctx, record.ID, CompleteConsultationRequest{
		Diagnosis:   "x",
		Medications: []models.MedicationOrder{{MedicationID: "MED-999", Dosage: "1", Quantity: 1}},
	})
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "medications")
}
