package services

import (
	"context"
	"sync"
	"time"

	"PalmCare/repositories"

	"github.com/rs/zerolog"
)

// DefaultSimulatedDelay applies when neither the caller nor the configuration
// picks a duration.
const DefaultSimulatedDelay = time.Second

// ActivityResult describes one finished simulated action.
type ActivityResult struct {
	Name       string        `json:"name"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Elapsed    time.Duration `json:"elapsed"`
}

// ActivitySnapshot is the shared UI context.
type ActivitySnapshot struct {
	Notifications int    `json:"notifications"`
	ActivePatient string `json:"active_patient,omitempty"`
	Loading       bool   `json:"loading"`
}

// ActivityTracker holds the state every page shares: the loading flag, the
// active patient and the unread notification count.
type ActivityTracker struct {
	mu            sync.Mutex
	inFlight      int
	activePatient string
	onChange      func(loading bool)

	defaultDelay  time.Duration
	notifications *repositories.NotificationRepository
	log           zerolog.Logger
}

func NewActivityTracker(defaultDelay time.Duration, notifications *repositories.NotificationRepository, log zerolog.Logger) *ActivityTracker {
	if defaultDelay <= 0 {
		defaultDelay = DefaultSimulatedDelay
	}
	return &ActivityTracker{defaultDelay: defaultDelay, notifications: notifications, log: log}
}

// OnLoadingChange registers fn to observe loading transitions. fn runs with
// the tracker locked and must not call back into it.
func (t *ActivityTracker) OnLoadingChange(fn func(loading bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

func (t *ActivityTracker) IsLoading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inFlight > 0
}

func (t *ActivityTracker) ActivePatient() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.activePatient
}

// SetActivePatient points the shared context at a patient; "" clears it.
func (t *ActivityTracker) SetActivePatient(patientID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activePatient = patientID
}

// ClearActivePatient clears the pointer only when it still names patientID.
func (t *ActivityTracker) ClearActivePatient(patientID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.activePatient == patientID {
		t.activePatient = ""
	}
}

// Notifications returns the unread notification count.
func (t *ActivityTracker) Notifications(ctx context.Context) int {
	if t.notifications == nil {
		return 0
	}
	return t.notifications.CountUnread(ctx)
}

func (t *ActivityTracker) Snapshot(ctx context.Context) ActivitySnapshot {
	return ActivitySnapshot{
		Notifications: t.Notifications(ctx),
		ActivePatient: t.ActivePatient(),
		Loading:       t.IsLoading(),
	}
}

// Simulate keeps the loading flag raised for d (the configured default when
// d <= 0). Cancelling ctx ends the wait early with ctx's error.
func (t *ActivityTracker) Simulate(ctx context.Context, name string, d time.Duration) (ActivityResult, error) {
	if d <= 0 {
		d = t.defaultDelay
	}
	started := time.Now()
	t.begin()
	defer t.end()

	if err := wait(ctx, d); err != nil {
		t.log.Debug().Str("activity", name).Err(err).Msg("Activity abandoned")
		return ActivityResult{}, err
	}
	finished := time.Now()
	return ActivityResult{Name: name, StartedAt: started, FinishedAt: finished, Elapsed: finished.Sub(started)}, nil
}

// Run raises the loading flag, waits d when positive and then runs fn.
func (t *ActivityTracker) Run(ctx context.Context, name string, d time.Duration, fn func(ctx context.Context) error) error {
	t.begin()
	defer t.end()

	if d > 0 {
		if err := wait(ctx, d); err != nil {
			t.log.Debug().Str("activity", name).Err(err).Msg("Activity abandoned")
			return err
		}
	}
	return fn(ctx)
}

func (t *ActivityTracker) begin() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inFlight++
	if t.inFlight == 1 && t.onChange != nil {
		t.onChange(true)
	}
}

func (t *ActivityTracker) end() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inFlight--
	if t.inFlight == 0 && t.onChange != nil {
		t.onChange(false)
	}
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
