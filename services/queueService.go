package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"PalmCare/cache"
	"PalmCare/models"
	"PalmCare/repositories"
	"PalmCare/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// StageHook runs after a case entered a stage.
type StageHook func(ctx context.Context, record *models.CaseRecord) error

// QueueFilter narrows the queue listing. Closed cases are only listed when
// Status asks for them.
type QueueFilter struct {
	Stage  models.Stage
	Status models.Status
	Search string
}

// QueueService owns the case lifecycle: opening cases, moving them forward
// through the stages and serving the per-stage queues.
type QueueService struct {
	cases    *repositories.CaseRepository
	cache    *cache.Cache
	cacheTTL time.Duration
	log      zerolog.Logger
	now      func() time.Time

	hooksMu sync.RWMutex
	hooks   map[models.Stage][]StageHook
}

func NewQueueService(cases *repositories.CaseRepository, cache *cache.Cache, cacheTTL time.Duration, log zerolog.Logger) *QueueService {
	return &QueueService{
		cases:    cases,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
		now:      time.Now,
		hooks:    make(map[models.Stage][]StageHook),
	}
}

// OnEnter registers hook to run whenever a case enters stage.
func (s *QueueService) OnEnter(stage models.Stage, hook StageHook) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.hooks[stage] = append(s.hooks[stage], hook)
}

// Open starts a new case for patient at triage.
func (s *QueueService) Open(ctx context.Context, patient *models.Patient, priority models.Priority, complaint string) (*models.CaseRecord, error) {
	if priority == "" {
		priority = models.PriorityMedium
	}
	now := s.now()
	record := &models.CaseRecord{
		PatientID:      patient.ID,
		PatientName:    patient.Name,
		Stage:          models.StageTriage,
		Status:         models.StageTriage.EntryStatus(),
		Priority:       priority,
		ChiefComplaint: complaint,
		ArrivedAt:      now,
		StageEnteredAt: now,
	}
	record.Record("registered", now)
	if err := s.cases.Create(ctx, record); err != nil {
		return nil, err
	}
	s.log.Info().Str("case_id", record.ID).Str("patient_id", patient.ID).Msg("Case opened")
	return record, nil
}

func (s *QueueService) Get(ctx context.Context, caseID string) (*models.CaseRecord, error) {
	return s.cases.GetByID(ctx, caseID)
}

// NextStage is the stage a case moves to when it leaves from. Laboratory is
// skipped without lab orders and pharmacy without a prescription.
func NextStage(record models.CaseRecord, from models.Stage) (models.Stage, error) {
	switch from {
	case models.StageTriage:
		return models.StageConsultation, nil
	case models.StageConsultation:
		if len(record.LabOrderIDs) > 0 {
			return models.StageLaboratory, nil
		}
		fallthrough
	case models.StageLaboratory:
		if record.PrescriptionID != "" {
			return models.StagePharmacy, nil
		}
		return models.StageBilling, nil
	case models.StagePharmacy:
		return models.StageBilling, nil
	case models.StageBilling:
		return models.StageDischarged, nil
	}
	return "", errors.Wrapf(models.ErrInvalidTransition, "no stage follows %s", from)
}

// Advance moves the case out of from into the stage that follows it. mutate
// runs first, under the same update, so it can attach the sub-records that
// decide the next stage.
func (s *QueueService) Advance(ctx context.Context, caseID string, from models.Stage, note string, mutate ...func(*models.CaseRecord)) (*models.CaseRecord, error) {
	now := s.now()
	record, err := s.cases.Update(ctx, caseID, func(c *models.CaseRecord) error {
		if err := checkAt(c, from); err != nil {
			return err
		}
		for _, fn := range mutate {
			fn(c)
		}
		next, err := NextStage(*c, from)
		if err != nil {
			return err
		}
		enter(c, next, note, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("case_id", caseID).Str("from", string(from)).Str("to", string(record.Stage)).Msg("Case advanced")
	return s.runHooks(ctx, record)
}

// MoveTo moves a case forward to an explicit stage. Moving backwards or
// moving a closed case is an invalid transition.
func (s *QueueService) MoveTo(ctx context.Context, caseID string, to models.Stage, note string) (*models.CaseRecord, error) {
	if !to.Valid() {
		return nil, utils.FieldError("stage", "must be a valid stage")
	}
	now := s.now()
	record, err := s.cases.Update(ctx, caseID, func(c *models.CaseRecord) error {
		if c.Closed() {
			return errors.Wrapf(models.ErrInvalidTransition, "case %s is closed", c.ID)
		}
		if to.Order() <= c.Stage.Order() {
			return errors.Wrapf(models.ErrInvalidTransition, "case %s cannot move from %s to %s", c.ID, c.Stage, to)
		}
		enter(c, to, note, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("case_id", caseID).Str("to", string(to)).Msg("Case moved")
	return s.runHooks(ctx, record)
}

// Start marks a queued case of stage as being served.
func (s *QueueService) Start(ctx context.Context, caseID string, stage models.Stage, note string) (*models.CaseRecord, error) {
	now := s.now()
	return s.cases.Update(ctx, caseID, func(c *models.CaseRecord) error {
		if err := checkAt(c, stage); err != nil {
			return err
		}
		if !c.Queued() {
			return errors.Wrapf(models.ErrInvalidTransition, "case %s is already %s", c.ID, c.Status)
		}
		c.Status = models.StatusInProgress
		c.Record(note, now)
		return nil
	})
}

// Update applies fn to an open case without moving it.
func (s *QueueService) Update(ctx context.Context, caseID string, fn func(*models.CaseRecord)) (*models.CaseRecord, error) {
	return s.cases.Update(ctx, caseID, func(c *models.CaseRecord) error {
		if c.Closed() {
			return errors.Wrapf(models.ErrInvalidTransition, "case %s is closed", c.ID)
		}
		fn(c)
		c.UpdatedAt = s.now()
		return nil
	})
}

// CallNext starts serving the highest priority, longest waiting case of stage.
func (s *QueueService) CallNext(ctx context.Context, stage models.Stage) (*models.CaseRecord, error) {
	if !stage.Valid() || stage == models.StageDischarged {
		return nil, utils.FieldError("stage", "must be a queue stage")
	}
	queued := s.cases.Find(ctx, func(c models.CaseRecord) bool {
		return c.Stage == stage && c.Queued()
	})
	SortQueue(queued)

	for _, candidate := range queued {
		record, err := s.Start(ctx, candidate.ID, stage, "called")
		if errors.Is(err, models.ErrInvalidTransition) {
			// Picked up by someone else in the meantime.
			continue
		}
		if err != nil {
			return nil, err
		}
		s.log.Info().Str("case_id", record.ID).Str("stage", string(stage)).Msg("Next case called")
		return record, nil
	}
	return nil, errors.Wrapf(models.ErrNothingQueued, "no case waiting for %s", stage)
}

type SetPriorityRequest struct {
	Priority models.Priority `json:"priority"`
}

func (r SetPriorityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Priority, validation.Required, validation.In(models.PriorityHigh, models.PriorityMedium, models.PriorityLow)),
	)
}

func (s *QueueService) SetPriority(ctx context.Context, caseID string, req SetPriorityRequest) (*models.CaseRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	return s.cases.Update(ctx, caseID, func(c *models.CaseRecord) error {
		if c.Closed() {
			return errors.Wrapf(models.ErrInvalidTransition, "case %s is closed", c.ID)
		}
		c.Priority = req.Priority
		c.Record("priority set to "+string(req.Priority), now)
		return nil
	})
}

// Cancel closes an open case. The stage is kept so the record shows where
// the visit ended.
func (s *QueueService) Cancel(ctx context.Context, caseID, reason string) (*models.CaseRecord, error) {
	now := s.now()
	record, err := s.cases.Update(ctx, caseID, func(c *models.CaseRecord) error {
		if c.Closed() {
			return errors.Wrapf(models.ErrInvalidTransition, "case %s is already closed", c.ID)
		}
		c.Status = models.StatusCancelled
		note := "cancelled"
		if reason = strings.TrimSpace(reason); reason != "" {
			note += ": " + reason
		}
		c.Record(note, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("case_id", caseID).Msg("Case cancelled")
	return record, nil
}

// List returns the matching cases ordered by priority then arrival.
func (s *QueueService) List(ctx context.Context, filter QueueFilter) []models.CaseRecord {
	cases := s.cases.Find(ctx, func(c models.CaseRecord) bool {
		if filter.Status == "" && c.Closed() {
			return false
		}
		if filter.Status != "" && c.Status != filter.Status {
			return false
		}
		return filter.Stage == "" || c.Stage == filter.Stage
	})
	cases = utils.FilterBySearch(cases, filter.Search, caseSearchFields)
	SortQueue(cases)
	return cases
}

// Stats summarizes the open queues. The result is cached until the next
// write or the cache TTL.
func (s *QueueService) Stats(ctx context.Context) models.QueueStats {
	var stats models.QueueStats
	found, err := s.cache.GetJSON(ctx, cache.QueueStatsKey, &stats)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to read queue stats cache")
	}
	if found {
		return stats
	}

	stats = s.computeStats(ctx)
	if ctx.Err() != nil {
		return stats
	}
	if err := s.cache.SetJSON(ctx, cache.QueueStatsKey, stats, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("Failed to cache queue stats")
	}
	return stats
}

func (s *QueueService) computeStats(ctx context.Context) models.QueueStats {
	now := s.now()
	byStage := make(map[models.Stage]*models.StageCount)
	waited := make(map[models.Stage]time.Duration)
	stats := models.QueueStats{Stages: make([]models.StageCount, 0, len(models.Stages))}
	for _, stage := range models.Stages {
		if stage == models.StageDischarged {
			continue
		}
		stats.Stages = append(stats.Stages, models.StageCount{Stage: stage})
		byStage[stage] = &stats.Stages[len(stats.Stages)-1]
	}

	for _, c := range s.cases.Find(ctx, func(c models.CaseRecord) bool { return !c.Closed() }) {
		stats.Active++
		count := byStage[c.Stage]
		if count == nil {
			continue
		}
		switch {
		case c.Queued():
			count.Waiting++
			waited[c.Stage] += now.Sub(c.StageEnteredAt)
			if c.Priority == models.PriorityHigh {
				stats.HighPriority++
			}
		case c.Status == models.StatusInProgress:
			count.InProgress++
		}
	}

	for stage, count := range byStage {
		if count.Waiting > 0 {
			minutes := waited[stage].Minutes() / float64(count.Waiting)
			count.AvgWaitMinutes = utils.RoundCurrency(minutes)
		}
	}
	return stats
}

func (s *QueueService) runHooks(ctx context.Context, record *models.CaseRecord) (*models.CaseRecord, error) {
	s.hooksMu.RLock()
	hooks := append([]StageHook(nil), s.hooks[record.Stage]...)
	s.hooksMu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, record); err != nil {
			return nil, errors.Wrapf(err, "failed to enter %s", record.Stage)
		}
	}
	if len(hooks) == 0 {
		return record, nil
	}
	// Hooks may attach sub-records.
	return s.cases.GetByID(ctx, record.ID)
}

// SortQueue orders cases by priority, then by arrival.
func SortQueue(cases []models.CaseRecord) {
	sort.SliceStable(cases, func(i, j int) bool {
		if ri, rj := cases[i].Priority.Rank(), cases[j].Priority.Rank(); ri != rj {
			return ri < rj
		}
		return cases[i].ArrivedAt.Before(cases[j].ArrivedAt)
	})
}

func caseSearchFields(c models.CaseRecord) []string {
	return []string{c.ID, c.PatientID, c.PatientName}
}

func checkAt(c *models.CaseRecord, stage models.Stage) error {
	if c.Closed() {
		return errors.Wrapf(models.ErrInvalidTransition, "case %s is closed", c.ID)
	}
	if c.Stage != stage {
		return errors.Wrapf(models.ErrInvalidTransition, "case %s is at %s, not %s", c.ID, c.Stage, stage)
	}
	return nil
}

func enter(c *models.CaseRecord, stage models.Stage, note string, at time.Time) {
	c.Stage = stage
	c.Status = stage.EntryStatus()
	c.StageEnteredAt = at
	c.Record(note, at)
}
