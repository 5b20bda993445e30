package services

import (
	"context"
	"time"

	"PalmCare/models"
	"PalmCare/repositories"
	"PalmCare/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/rs/zerolog"
)

var genders = []interface{}{"Male", "Female", "Other"}

type RegisterPatientRequest struct {
	Name                     string          `json:"name"`
	Age                      int             `json:"age"`
	Gender                   string          `json:"gender"`
	Phone                    string          `json:"phone"`
	Email                    string          `json:"email"`
	Address                  string          `json:"address"`
	InsuranceProvider        string          `json:"insurance_provider"`
	InsuranceCoveragePercent float64         `json:"insurance_coverage_percent"`
	Priority                 models.Priority `json:"priority"`
	ChiefComplaint           string          `json:"chief_complaint"`
}

func (r RegisterPatientRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, utils.NotBlank, validation.Length(2, 100)),
		validation.Field(&r.Age, validation.Min(0), validation.Max(130)),
		validation.Field(&r.Gender, validation.Required, validation.In(genders...)),
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.InsuranceCoveragePercent, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&r.Priority, validation.In(models.PriorityHigh, models.PriorityMedium, models.PriorityLow)),
	)
}

// PalmScanResult is returned by a simulated scan. Sample is what the scanner
// would read again at identification.
type PalmScanResult struct {
	PatientID  string    `json:"patient_id"`
	Sample     string    `json:"sample"`
	Replaced   bool      `json:"replaced"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type IdentifyRequest struct {
	Sample string `json:"sample"`
}

func (r IdentifyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Sample, validation.Required, utils.NotBlank),
	)
}

type PatientService struct {
	repository *repositories.PatientRepository
	queue      *QueueService
	activity   *ActivityTracker
	scanDelay  time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

func NewPatientService(repository *repositories.PatientRepository, queue *QueueService, activity *ActivityTracker, scanDelay time.Duration, log zerolog.Logger) *PatientService {
	return &PatientService{
		repository: repository,
		queue:      queue,
		activity:   activity,
		scanDelay:  scanDelay,
		log:        log,
		now:        time.Now,
	}
}

// Register stores the patient and opens a case waiting for triage.
func (s *PatientService) Register(ctx context.Context, req RegisterPatientRequest) (*models.Patient, *models.CaseRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	patient := &models.Patient{
		Name:                     req.Name,
		Age:                      req.Age,
		Gender:                   req.Gender,
		Phone:                    req.Phone,
		Email:                    req.Email,
		Address:                  req.Address,
		InsuranceProvider:        req.InsuranceProvider,
		InsuranceCoveragePercent: req.InsuranceCoveragePercent,
		RegisteredAt:             s.now(),
	}
	if err := s.repository.Create(ctx, patient); err != nil {
		return nil, nil, err
	}

	record, err := s.queue.Open(ctx, patient, req.Priority, req.ChiefComplaint)
	if err != nil {
		return nil, nil, err
	}
	s.log.Info().Str("patient_id", patient.ID).Msg("Patient registered")
	return patient, record, nil
}

func (s *PatientService) Get(ctx context.Context, id string) (*models.Patient, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *PatientService) List(ctx context.Context, search string) []models.Patient {
	return utils.FilterBySearch(s.repository.List(ctx), search, func(p models.Patient) []string {
		return []string{p.ID, p.Name}
	})
}

// ScanPalm simulates the scanner and enrolls a fresh template, replacing any
// earlier one.
func (s *PatientService) ScanPalm(ctx context.Context, id string) (*PalmScanResult, error) {
	if _, err := s.repository.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.activity.Simulate(ctx, "palm-scan", s.scanDelay); err != nil {
		return nil, err
	}
	return s.enrollPalm(ctx, id, utils.NewPalmSample())
}

func (s *PatientService) enrollPalm(ctx context.Context, id, sample string) (*PalmScanResult, error) {
	result := &PalmScanResult{PatientID: id, Sample: sample, EnrolledAt: s.now()}
	_, err := s.repository.Update(ctx, id, func(p *models.Patient) error {
		result.Replaced = p.PalmEnrolled
		p.PalmEnrolled = true
		p.PalmDigest = utils.PalmDigest(sample)
		p.PalmEnrolledAt = result.EnrolledAt
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("patient_id", id).Bool("replaced", result.Replaced).Msg("Palm template enrolled")
	return result, nil
}

// Identify finds the patient enrolled with sample.
func (s *PatientService) Identify(ctx context.Context, req IdentifyRequest) (*models.Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repository.FindByPalmDigest(ctx, utils.PalmDigest(req.Sample))
}
