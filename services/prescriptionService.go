package services

import (
	"context"
	"fmt"
	"time"

	"PalmCare/models"
	"PalmCare/repositories"
	"PalmCare/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type PrescriptionFilter struct {
	Status models.Status
	Search string
}

func validateMedication(value interface{}) error {
	m, _ := value.(models.MedicationOrder)
	return validation.ValidateStruct(&m,
		validation.Field(&m.MedicationID, validation.Required),
		validation.Field(&m.Dosage, validation.Required, utils.NotBlank),
		validation.Field(&m.Quantity, validation.Required, validation.Min(1)),
	)
}

type PrescriptionService struct {
	repository *repositories.PrescriptionRepository
	inventory  *InventoryService
	queue      *QueueService
	log        zerolog.Logger
	now        func() time.Time
}

func NewPrescriptionService(repository *repositories.PrescriptionRepository, inventory *InventoryService, queue *QueueService, log zerolog.Logger) *PrescriptionService {
	return &PrescriptionService{repository: repository, inventory: inventory, queue: queue, log: log, now: time.Now}
}

// ResolveLines turns medication orders into priced prescription lines. Every
// medication must exist in the inventory.
func (s *PrescriptionService) ResolveLines(ctx context.Context, medications []models.MedicationOrder) ([]models.PrescriptionLine, error) {
	lines := make([]models.PrescriptionLine, 0, len(medications))
	for i, m := range medications {
		item, err := s.inventory.Get(ctx, m.MedicationID)
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, utils.FieldError("medications", fmt.Sprintf("item %d: unknown medication %s", i, m.MedicationID))
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, models.PrescriptionLine{
			MedicationID: item.ID,
			Name:         item.Name,
			Dosage:       m.Dosage,
			Frequency:    m.Frequency,
			Duration:     m.Duration,
			Quantity:     m.Quantity,
			UnitPrice:    item.UnitPrice,
		})
	}
	return lines, nil
}

// Create stores a pending prescription for the case.
func (s *PrescriptionService) Create(ctx context.Context, record *models.CaseRecord, lines []models.PrescriptionLine, prescriber string) (*models.Prescription, error) {
	prescription := &models.Prescription{
		CaseID:      record.ID,
		PatientID:   record.PatientID,
		PatientName: record.PatientName,
		Prescriber:  prescriber,
		Lines:       lines,
		Status:      models.StatusPending,
		CreatedAt:   s.now(),
	}
	if err := s.repository.Create(ctx, prescription); err != nil {
		return nil, err
	}
	s.log.Info().Str("prescription_id", prescription.ID).Str("case_id", record.ID).Msg("Prescription created")
	return prescription, nil
}

func (s *PrescriptionService) Get(ctx context.Context, id string) (*models.Prescription, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *PrescriptionService) List(ctx context.Context, filter PrescriptionFilter) []models.Prescription {
	prescriptions := s.repository.List(ctx)
	if filter.Status != "" {
		matching := prescriptions[:0]
		for _, p := range prescriptions {
			if p.Status == filter.Status {
				matching = append(matching, p)
			}
		}
		prescriptions = matching
	}
	return utils.FilterBySearch(prescriptions, filter.Search, func(p models.Prescription) []string {
		return []string{p.ID, p.CaseID, p.PatientID, p.PatientName}
	})
}

// Prepare marks a pending prescription ready once stock covers every line.
func (s *PrescriptionService) Prepare(ctx context.Context, id string) (*models.Prescription, error) {
	current, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.inventory.CheckStock(ctx, current.Lines); err != nil {
		return nil, err
	}
	prescription, err := s.repository.Update(ctx, id, func(p *models.Prescription) error {
		if p.Status != models.StatusPending {
			return errors.Wrapf(models.ErrInvalidTransition, "prescription %s is %s", p.ID, p.Status)
		}
		p.Status = models.StatusReady
		return nil
	})
	if err != nil {
		return nil, err
	}

	if record, err := s.queue.Get(ctx, prescription.CaseID); err == nil && record.Stage == models.StagePharmacy && record.Queued() {
		if _, err := s.queue.Start(ctx, record.ID, models.StagePharmacy, "prescription prepared"); err != nil {
			s.log.Warn().Err(err).Str("case_id", record.ID).Msg("Failed to start pharmacy service")
		}
	}
	return prescription, nil
}

// Dispense takes the lines out of stock and sends the case to billing.
func (s *PrescriptionService) Dispense(ctx context.Context, id string) (*models.Prescription, error) {
	current, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != models.StatusReady {
		return nil, errors.Wrapf(models.ErrInvalidTransition, "prescription %s is %s, not ready", current.ID, current.Status)
	}
	if err := s.inventory.CheckStock(ctx, current.Lines); err != nil {
		return nil, err
	}

	// Claim the prescription first so a concurrent dispense of it fails
	// before touching stock.
	prescription, err := s.repository.Update(ctx, id, func(p *models.Prescription) error {
		if p.Status != models.StatusReady {
			return errors.Wrapf(models.ErrInvalidTransition, "prescription %s is %s, not ready", p.ID, p.Status)
		}
		p.Status = models.StatusDispensed
		p.DispensedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.inventory.ConsumeLines(ctx, prescription.Lines); err != nil {
		if _, rerr := s.repository.Update(ctx, id, func(p *models.Prescription) error {
			p.Status = models.StatusReady
			p.DispensedAt = time.Time{}
			return nil
		}); rerr != nil {
			s.log.Error().Err(rerr).Str("prescription_id", id).Msg("Failed to reopen prescription")
		}
		return nil, err
	}
	s.log.Info().Str("prescription_id", id).Msg("Prescription dispensed")

	record, err := s.queue.Get(ctx, prescription.CaseID)
	if err != nil {
		return nil, err
	}
	if !record.Closed() && record.Stage == models.StagePharmacy {
		if _, err := s.queue.Advance(ctx, record.ID, models.StagePharmacy, "prescription dispensed"); err != nil {
			return nil, err
		}
	}
	return prescription, nil
}
