package services

import (
	"context"
	"time"

	"PalmCare/models"
	"PalmCare/repositories"
	"PalmCare/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type CompleteConsultationRequest struct {
	Diagnosis   string                   `json:"diagnosis"`
	Notes       string                   `json:"notes"`
	LabTests    []string                 `json:"lab_tests"`
	Medications []models.MedicationOrder `json:"medications"`
	Physician   string                   `json:"physician"`
}

func (r CompleteConsultationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Diagnosis, validation.Required, utils.NotBlank),
		validation.Field(&r.LabTests, validation.By(func(interface{}) error { return ValidateTests(r.LabTests) })),
		validation.Field(&r.Medications, validation.Each(validation.By(validateMedication))),
	)
}

// ConsultationResult is a completed consultation with whatever it ordered.
type ConsultationResult struct {
	Consultation *models.Consultation `json:"consultation"`
	Case         *models.CaseRecord   `json:"case"`
	LabOrder     *models.LabOrder     `json:"lab_order,omitempty"`
	Prescription *models.Prescription `json:"prescription,omitempty"`
}

type ConsultationService struct {
	repository    *repositories.ConsultationRepository
	queue         *QueueService
	labs          *LabService
	prescriptions *PrescriptionService
	activity      *ActivityTracker
	log           zerolog.Logger
	now           func() time.Time
}

func NewConsultationService(
	repository *repositories.ConsultationRepository,
	queue *QueueService,
	labs *LabService,
	prescriptions *PrescriptionService,
	activity *ActivityTracker,
	log zerolog.Logger,
) *ConsultationService {
	return &ConsultationService{
		repository:    repository,
		queue:         queue,
		labs:          labs,
		prescriptions: prescriptions,
		activity:      activity,
		log:           log,
		now:           time.Now,
	}
}

// List returns the consultation queue, high priority first.
func (s *ConsultationService) List(ctx context.Context, search string) []models.CaseRecord {
	return s.queue.List(ctx, QueueFilter{Stage: models.StageConsultation, Search: search})
}

func (s *ConsultationService) Get(ctx context.Context, id string) (*models.Consultation, error) {
	return s.repository.GetByID(ctx, id)
}

// Start opens the consultation and makes the patient the active one.
func (s *ConsultationService) Start(ctx context.Context, caseID, physician string) (*models.Consultation, error) {
	record, err := s.queue.Start(ctx, caseID, models.StageConsultation, "consultation started")
	if err != nil {
		return nil, err
	}

	consultation := &models.Consultation{
		CaseID:    record.ID,
		PatientID: record.PatientID,
		Physician: physician,
		Status:    models.StatusInProgress,
		StartedAt: s.now(),
	}
	if err := s.repository.Create(ctx, consultation); err != nil {
		return nil, err
	}
	if _, err := s.queue.Update(ctx, caseID, func(c *models.CaseRecord) { c.ConsultationID = consultation.ID }); err != nil {
		return nil, err
	}
	s.activity.SetActivePatient(record.PatientID)
	s.log.Info().Str("case_id", caseID).Str("consultation_id", consultation.ID).Msg("Consultation started")
	return consultation, nil
}

// Complete records the diagnosis, places the lab order and prescription it
// calls for and sends the case to its next stage.
func (s *ConsultationService) Complete(ctx context.Context, caseID string, req CompleteConsultationRequest) (*ConsultationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	record, err := s.queue.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if err := checkAt(record, models.StageConsultation); err != nil {
		return nil, err
	}
	lines, err := s.prescriptions.ResolveLines(ctx, req.Medications)
	if err != nil {
		return nil, err
	}

	consultation, err := s.finishConsultation(ctx, record, req)
	if err != nil {
		return nil, err
	}
	result := &ConsultationResult{Consultation: consultation}

	if len(req.LabTests) > 0 {
		if result.LabOrder, err = s.labs.Order(ctx, record, req.LabTests); err != nil {
			return nil, err
		}
	}
	if len(lines) > 0 {
		if result.Prescription, err = s.prescriptions.Create(ctx, record, lines, req.Physician); err != nil {
			return nil, err
		}
	}

	result.Case, err = s.queue.Advance(ctx, caseID, models.StageConsultation, "consultation completed", func(c *models.CaseRecord) {
		c.ConsultationID = consultation.ID
		if result.LabOrder != nil {
			c.LabOrderIDs = append(c.LabOrderIDs, result.LabOrder.ID)
		}
		if result.Prescription != nil {
			c.PrescriptionID = result.Prescription.ID
		}
	})
	if err != nil {
		return nil, err
	}
	s.activity.ClearActivePatient(record.PatientID)
	s.log.Info().Str("case_id", caseID).Str("next_stage", string(result.Case.Stage)).Msg("Consultation completed")
	return result, nil
}

// finishConsultation completes the case's consultation, creating it when the
// physician never started one.
func (s *ConsultationService) finishConsultation(ctx context.Context, record *models.CaseRecord, req CompleteConsultationRequest) (*models.Consultation, error) {
	complete := func(c *models.Consultation) error {
		if c.Status == models.StatusCompleted {
			return errors.Wrapf(models.ErrInvalidTransition, "consultation %s is already completed", c.ID)
		}
		c.Diagnosis = req.Diagnosis
		c.Notes = req.Notes
		c.LabTests = req.LabTests
		c.Medications = req.Medications
		if req.Physician != "" {
			c.Physician = req.Physician
		}
		c.Status = models.StatusCompleted
		c.CompletedAt = s.now()
		return nil
	}

	if record.ConsultationID != "" {
		return s.repository.Update(ctx, record.ConsultationID, complete)
	}
	consultation := &models.Consultation{
		CaseID:    record.ID,
		PatientID: record.PatientID,
		StartedAt: s.now(),
	}
	if err := complete(consultation); err != nil {
		return nil, err
	}
	if err := s.repository.Create(ctx, consultation); err != nil {
		return nil, err
	}
	return consultation, nil
}
