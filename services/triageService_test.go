package services

import (
	"context"
	"testing"

	"PalmCare/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessRequest_Validate(t *testing.T) {
	valid := AssessRequest{VitalSigns: testVitals, ChiefComplaint: "Cough", Priority: models.PriorityLow}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(r *AssessRequest)
		field  string
	}{
		{"diastolic above systolic", func(r *AssessRequest) { r.VitalSigns.BloodPressure = "80/120" }, "vital_signs"},
		{"malformed blood pressure", func(r *AssessRequest) { r.VitalSigns.BloodPressure = "high" }, "vital_signs"},
		{"heart rate out of range", func(r *AssessRequest) { r.VitalSigns.HeartRate = 300 }, "vital_signs"},
		{"temperature out of range", func(r *AssessRequest) { r.VitalSigns.Temperature = 50 }, "vital_signs"},
		{"missing oxygen saturation", func(r *AssessRequest) { r.VitalSigns.OxygenSaturation = 0 }, "vital_signs"},
		{"blank complaint", func(r *AssessRequest) { r.ChiefComplaint = "  " }, "chief_complaint"},
		{"unknown priority", func(r *AssessRequest) { r.Priority = "urgent" }, "priority"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			var errs validation.Errors
			require.ErrorAs(t, req.Validate(), &errs)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestVitalFlags(t *testing.T) {
	assert.Empty(t, VitalFlags(testVitals))

	flags := VitalFlags(models.VitalSigns{BloodPressure: "150/95", HeartRate: 110, Temperature: 38.5, RespiratoryRate: 24, OxygenSaturation: 91})
	assert.ElementsMatch(t, []string{"hypertension", "tachycardia", "fever", "abnormal respiratory rate", "low oxygen saturation"}, flags)
}

func TestTriageService_Assess(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	_, record := registerPatient(t, s, "Amina Okafor", 0)

	result, err := s.Triage.Assess(ctx, record.ID, AssessRequest{
		VitalSigns:     models.VitalSigns{BloodPressure: "150/95", HeartRate: 88, Temperature: 37, RespiratoryRate: 16, OxygenSaturation: 97},
		ChiefComplaint: "Chest pain",
		Priority:       models.PriorityHigh,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusAssessed, result.Assessment.Status)
	assert.Equal(t, []string{"hypertension"}, result.Assessment.Flags)
	assert.Equal(t, models.StageConsultation, result.Case.Stage)
	assert.Equal(t, models.StatusWaiting, result.Case.Status)
	assert.Equal(t, models.PriorityHigh, result.Case.Priority)
	assert.Equal(t, result.Assessment.ID, result.Case.TriageID)

	notifications := s.Notifications.List(ctx, true)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationAlert, notifications[0].Kind)

	_, err = s.Triage.Assess(ctx, record.ID, AssessRequest{VitalSigns: testVitals, ChiefComplaint: "Again", Priority: models.PriorityLow})
	assert.ErrorIs(t, err, models.ErrInvalidTransition, "already past triage")
}

func TestTriageService_ListWaitingFirst(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	_, first := registerPatient(t, s, "First", 0)
	_, second := registerPatient(t, s, "Second", 0)
	_, err := s.Queue.Start(ctx, first.ID, models.StageTriage, "called")
	require.NoError(t, err)

	list := s.Triage.List(ctx, "")
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}
