package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"PalmCare/models"
	"PalmCare/repositories"
	"PalmCare/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
)

type AssessRequest struct {
	VitalSigns     models.VitalSigns `json:"vital_signs"`
	ChiefComplaint string            `json:"chief_complaint"`
	Priority       models.Priority   `json:"priority"`
	Notes          string            `json:"notes"`
	AssessedBy     string            `json:"assessed_by"`
}

func (r AssessRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.VitalSigns, validation.By(validateVitals)),
		validation.Field(&r.ChiefComplaint, validation.Required, utils.NotBlank),
		validation.Field(&r.Priority, validation.Required, validation.In(models.PriorityHigh, models.PriorityMedium, models.PriorityLow)),
	)
}

func validateVitals(value interface{}) error {
	v, _ := value.(models.VitalSigns)
	return validation.ValidateStruct(&v,
		validation.Field(&v.BloodPressure, validation.Required, utils.BloodPressure),
		validation.Field(&v.HeartRate, validation.Required, validation.Min(20), validation.Max(250)),
		validation.Field(&v.Temperature, validation.Required, validation.Min(30.0), validation.Max(45.0)),
		validation.Field(&v.RespiratoryRate, validation.Required, validation.Min(5), validation.Max(60)),
		validation.Field(&v.OxygenSaturation, validation.Required, validation.Min(50), validation.Max(100)),
	)
}

// VitalFlags lists the abnormal readings of v.
func VitalFlags(v models.VitalSigns) []string {
	flags := []string{}
	if systolic, diastolic, err := utils.ParseBloodPressure(v.BloodPressure); err == nil {
		switch {
		case systolic >= 140 || diastolic >= 90:
			flags = append(flags, "hypertension")
		case systolic < 90:
			flags = append(flags, "hypotension")
		}
	}
	switch {
	case v.HeartRate > 100:
		flags = append(flags, "tachycardia")
	case v.HeartRate < 60:
		flags = append(flags, "bradycardia")
	}
	if v.Temperature >= 38 {
		flags = append(flags, "fever")
	}
	if v.RespiratoryRate > 20 || v.RespiratoryRate < 12 {
		flags = append(flags, "abnormal respiratory rate")
	}
	if v.OxygenSaturation < 95 {
		flags = append(flags, "low oxygen saturation")
	}
	return flags
}

// TriageResult is an assessment and the case it moved on.
type TriageResult struct {
	Assessment *models.TriageAssessment `json:"assessment"`
	Case       *models.CaseRecord       `json:"case"`
}

type TriageService struct {
	repository    *repositories.TriageRepository
	queue         *QueueService
	notifications *NotificationService
	log           zerolog.Logger
	now           func() time.Time
}

func NewTriageService(repository *repositories.TriageRepository, queue *QueueService, notifications *NotificationService, log zerolog.Logger) *TriageService {
	return &TriageService{repository: repository, queue: queue, notifications: notifications, log: log, now: time.Now}
}

// List returns the triage queue: waiting cases first, then by arrival.
func (s *TriageService) List(ctx context.Context, search string) []models.CaseRecord {
	cases := s.queue.List(ctx, QueueFilter{Stage: models.StageTriage, Search: search})
	sort.SliceStable(cases, func(i, j int) bool {
		wi, wj := cases[i].Status == models.StatusWaiting, cases[j].Status == models.StatusWaiting
		if wi != wj {
			return wi
		}
		return cases[i].ArrivedAt.Before(cases[j].ArrivedAt)
	})
	return cases
}

func (s *TriageService) Get(ctx context.Context, id string) (*models.TriageAssessment, error) {
	return s.repository.GetByID(ctx, id)
}

// Assess records the vitals and sends the case on to consultation with the
// assessed priority.
func (s *TriageService) Assess(ctx context.Context, caseID string, req AssessRequest) (*TriageResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	record, err := s.queue.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if err := checkAt(record, models.StageTriage); err != nil {
		return nil, err
	}

	assessment := &models.TriageAssessment{
		CaseID:         record.ID,
		PatientID:      record.PatientID,
		VitalSigns:     req.VitalSigns,
		ChiefComplaint: req.ChiefComplaint,
		Priority:       req.Priority,
		Notes:          req.Notes,
		AssessedBy:     req.AssessedBy,
		Flags:          VitalFlags(req.VitalSigns),
		Status:         models.StatusAssessed,
		AssessedAt:     s.now(),
	}
	if err := s.repository.Create(ctx, assessment); err != nil {
		return nil, err
	}

	record, err = s.queue.Advance(ctx, caseID, models.StageTriage, "triage assessed", func(c *models.CaseRecord) {
		c.TriageID = assessment.ID
		c.Priority = req.Priority
		c.ChiefComplaint = req.ChiefComplaint
	})
	if err != nil {
		return nil, err
	}

	if req.Priority == models.PriorityHigh {
		s.notifications.Notify(ctx, models.NotificationAlert, "High priority patient",
			fmt.Sprintf("%s (%s) was triaged as high priority: %s", record.PatientName, record.ID, req.ChiefComplaint))
	}
	s.log.Info().Str("case_id", caseID).Str("priority", string(req.Priority)).Strs("flags", assessment.Flags).Msg("Triage assessed")
	return &TriageResult{Assessment: assessment, Case: record}, nil
}
