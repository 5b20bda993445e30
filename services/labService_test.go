package services

import (
	"context"
	"testing"

	"PalmCare/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabCatalog(t *testing.T) {
	catalog := LabCatalog()
	names := make([]string, 0, len(catalog))
	for _, test := range catalog {
		names = append(names, test.Name)
	}
	assert.Subset(t, names, []string{"CBC", "Blood Glucose", "Lipid Panel", "Urinalysis", "Liver Function", "Malaria Test"})

	test, ok := LookupLabTest("blood glucose")
	require.True(t, ok)
	test.Fields[0].Value = "mutated"
	again, _ := LookupLabTest("Blood Glucose")
	assert.Empty(t, again.Fields[0].Value, "lookups return copies")
}

func TestLabService_ResultsAndCompletion(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	_, record := registerPatient(t, s, "Fatuma Hassan", 0)
	assessCase(t, s, record.ID, models.PriorityMedium)
	result, err := s.Consultations.Complete(ctx, record.ID, CompleteConsultationRequest{
		Diagnosis: "Suspected diabetes",
		LabTests:  []string{"Blood Glucose", "Malaria Test"},
	})
	require.NoError(t, err)
	order := result.LabOrder
	require.NotNil(t, order)
	assert.Equal(t, models.StatusPending, order.Status)

	updated, err := s.Labs.RecordResults(ctx, order.ID, RecordResultsRequest{Results: []LabResult{
		{Test: "Blood Glucose", Field: "Fasting Glucose", Value: "105"},
	}})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.True(t, updated.Tests[0].Fields[0].Flagged)
	assert.Equal(t, 1, updated.FlaggedCount)

	_, err = s.Labs.Complete(ctx, order.ID)
	var errs validation.Errors
	require.ErrorAs(t, err, &errs, "malaria result still missing")

	_, err = s.Labs.RecordResults(ctx, order.ID, RecordResultsRequest{Results: []LabResult{
		{Test: "Blood Glucose", Field: "Fasting Glucose", Value: "85"},
		{Test: "Malaria Test", Field: "Parasites", Value: "Negative"},
	}})
	require.NoError(t, err)

	completed, err := s.Labs.Complete(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)
	assert.Equal(t, 0, completed.FlaggedCount)

	current, err := s.Queue.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageBilling, current.Stage)

	_, err = s.Labs.RecordResults(ctx, order.ID, RecordResultsRequest{Results: []LabResult{
		{Test: "Blood Glucose", Field: "Fasting Glucose", Value: "90"},
	}})
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestLabService_UnknownField(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	_, record := registerPatient(t, s, "Michael Ochieng", 0)
	order, err := s.Labs.Order(ctx, record, []string{"CBC"})
	require.NoError(t, err)

	_, err = s.Labs.RecordResults(ctx, order.ID, RecordResultsRequest{Results: []LabResult{{Test: "CBC", Field: "Sodium", Value: "140"}}})
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)

	assert.Len(t, s.Labs.List(ctx, LabFilter{Status: models.StatusPending}), 1)
	assert.Len(t, s.Labs.List(ctx, LabFilter{Search: "ochieng"}), 1)
	assert.Empty(t, s.Labs.List(ctx, LabFilter{Status: models.StatusCompleted}))
}

func TestLabService_FlaggedCompletionNotifies(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	_, record := registerPatient(t, s, "Grace Wanjiru", 0)
	order, err := s.Labs.Order(ctx, record, []string{"Blood Glucose"})
	require.NoError(t, err)

	_, err = s.Labs.RecordResults(ctx, order.ID, RecordResultsRequest{Results: []LabResult{{Test: "Blood Glucose", Field: "Fasting Glucose", Value: "140"}}})
	require.NoError(t, err)
	_, err = s.Labs.Complete(ctx, order.ID)
	require.NoError(t, err)

	notifications := s.Notifications.List(ctx, true)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationWarning, notifications[0].Kind)

	current, err := s.Queue.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageTriage, current.Stage, "a case outside the laboratory is not moved")
}
