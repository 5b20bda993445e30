package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"PalmCare/models"
	"PalmCare/repositories"
	"PalmCare/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type LabFilter struct {
	Status models.Status
	Search string
}

// LabResult is one measured value.
type LabResult struct {
	Test  string `json:"test"`
	Field string `json:"field"`
	Value string `json:"value"`
}

type RecordResultsRequest struct {
	Results []LabResult `json:"results"`
}

func (r RecordResultsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Results, validation.Required, validation.Each(validation.By(func(value interface{}) error {
			result, _ := value.(LabResult)
			return validation.ValidateStruct(&result,
				validation.Field(&result.Test, validation.Required),
				validation.Field(&result.Field, validation.Required),
			)
		}))),
	)
}

type LabService struct {
	repository    *repositories.LabOrderRepository
	queue         *QueueService
	notifications *NotificationService
	log           zerolog.Logger
	now           func() time.Time
}

func NewLabService(repository *repositories.LabOrderRepository, queue *QueueService, notifications *NotificationService, log zerolog.Logger) *LabService {
	return &LabService{repository: repository, queue: queue, notifications: notifications, log: log, now: time.Now}
}

// ValidateTests checks that every name is in the catalog.
func ValidateTests(names []string) error {
	return validation.Validate(names, validation.Each(validation.By(func(value interface{}) error {
		name, _ := value.(string)
		if _, ok := LookupLabTest(name); !ok {
			return errors.Errorf("unknown lab test %q", name)
		}
		return nil
	})))
}

// Order creates a pending lab order for the case's patient.
func (s *LabService) Order(ctx context.Context, record *models.CaseRecord, tests []string) (*models.LabOrder, error) {
	order := &models.LabOrder{
		CaseID:      record.ID,
		PatientID:   record.PatientID,
		PatientName: record.PatientName,
		Priority:    record.Priority,
		Status:      models.StatusPending,
		OrderedAt:   s.now(),
	}
	for _, name := range tests {
		test, ok := LookupLabTest(name)
		if !ok {
			return nil, utils.FieldError("lab_tests", fmt.Sprintf("unknown lab test %q", name))
		}
		order.Tests = append(order.Tests, test)
	}
	if err := s.repository.Create(ctx, order); err != nil {
		return nil, err
	}
	s.log.Info().Str("order_id", order.ID).Str("case_id", record.ID).Int("tests", len(order.Tests)).Msg("Lab order created")
	return order, nil
}

func (s *LabService) Get(ctx context.Context, id string) (*models.LabOrder, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *LabService) List(ctx context.Context, filter LabFilter) []models.LabOrder {
	orders := s.repository.List(ctx)
	if filter.Status != "" {
		matching := orders[:0]
		for _, o := range orders {
			if o.Status == filter.Status {
				matching = append(matching, o)
			}
		}
		orders = matching
	}
	return utils.FilterBySearch(orders, filter.Search, func(o models.LabOrder) []string {
		return []string{o.ID, o.CaseID, o.PatientID, o.PatientName}
	})
}

// RecordResults stores values and flags those outside their reference.
func (s *LabService) RecordResults(ctx context.Context, id string, req RecordResultsRequest) (*models.LabOrder, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	order, err := s.repository.Update(ctx, id, func(o *models.LabOrder) error {
		if o.Status == models.StatusCompleted {
			return errors.Wrapf(models.ErrInvalidTransition, "lab order %s is completed", o.ID)
		}
		for _, result := range req.Results {
			field := findLabField(o, result.Test, result.Field)
			if field == nil {
				return utils.FieldError("results", fmt.Sprintf("%s has no field %s", result.Test, result.Field))
			}
			field.Value = strings.TrimSpace(result.Value)
			field.Flagged = utils.IsOutOfRange(field.Value, field.Reference)
		}
		o.FlaggedCount = countFlagged(o)
		o.Status = models.StatusInProgress
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Complete closes the order once every field has a value. The case moves on
// when it has no other open order.
func (s *LabService) Complete(ctx context.Context, id string) (*models.LabOrder, error) {
	order, err := s.repository.Update(ctx, id, func(o *models.LabOrder) error {
		if o.Status == models.StatusCompleted {
			return errors.Wrapf(models.ErrInvalidTransition, "lab order %s is already completed", o.ID)
		}
		missing := validation.Errors{}
		for _, test := range o.Tests {
			for _, field := range test.Fields {
				if field.Value == "" {
					missing[test.Name+"."+field.Name] = errors.New("result is required")
				}
			}
		}
		if len(missing) > 0 {
			return missing
		}
		o.Status = models.StatusCompleted
		o.CompletedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if order.FlaggedCount > 0 {
		s.notifications.Notify(ctx, models.NotificationWarning, "Abnormal lab results",
			fmt.Sprintf("%s has %d result(s) outside the reference range (%s)", order.PatientName, order.FlaggedCount, order.ID))
	}
	s.log.Info().Str("order_id", order.ID).Int("flagged", order.FlaggedCount).Msg("Lab order completed")

	if err := s.advanceCase(ctx, order.CaseID); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *LabService) advanceCase(ctx context.Context, caseID string) error {
	record, err := s.queue.Get(ctx, caseID)
	if err != nil {
		return err
	}
	if record.Closed() || record.Stage != models.StageLaboratory {
		return nil
	}
	for _, o := range s.repository.FindByCase(ctx, caseID) {
		if o.Status != models.StatusCompleted {
			return nil
		}
	}
	_, err = s.queue.Advance(ctx, caseID, models.StageLaboratory, "lab results completed")
	return err
}

func findLabField(o *models.LabOrder, test, field string) *models.LabField {
	for i := range o.Tests {
		if !strings.EqualFold(o.Tests[i].Name, test) {
			continue
		}
		for j := range o.Tests[i].Fields {
			if strings.EqualFold(o.Tests[i].Fields[j].Name, field) {
				return &o.Tests[i].Fields[j]
			}
		}
	}
	return nil
}

func countFlagged(o *models.LabOrder) int {
	n := 0
	for _, test := range o.Tests {
		for _, field := range test.Fields {
			if field.Flagged {
				n++
			}
		}
	}
	return n
}
