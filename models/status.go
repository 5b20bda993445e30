package models

// Priority is the urgency assigned to a case at registration or triage.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank orders priorities for queue sorting; lower ranks are served first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// Color is the badge color the UI renders for the priority.
func (p Priority) Color() string {
	switch p {
	case PriorityHigh:
		return "red"
	case PriorityMedium:
		return "amber"
	case PriorityLow:
		return "green"
	}
	return "gray"
}

// Status is shared by every record kind. Each kind accepts a subset, see the
// *Statuses sets below.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in-progress"
	StatusPending    Status = "pending"
	StatusReady      Status = "ready"
	StatusDispensed  Status = "dispensed"
	StatusCompleted  Status = "completed"
	StatusAssessed   Status = "assessed"
	StatusPaid       Status = "paid"
	StatusOverdue    Status = "overdue"
	StatusPartial    Status = "partial"
	StatusCancelled  Status = "cancelled"
)

// Color is the badge color the UI renders for the status.
func (s Status) Color() string {
	switch s {
	case StatusWaiting, StatusPending:
		return "amber"
	case StatusInProgress, StatusReady:
		return "blue"
	case StatusCompleted, StatusAssessed, StatusDispensed, StatusPaid:
		return "green"
	case StatusOverdue:
		return "red"
	case StatusPartial:
		return "orange"
	}
	return "gray"
}

// StatusSet is the set of statuses a record kind accepts.
type StatusSet map[Status]bool

func newStatusSet(statuses ...Status) StatusSet {
	set := make(StatusSet, len(statuses))
	for _, s := range statuses {
		set[s] = true
	}
	return set
}

// Contains reports whether s belongs to the set.
func (set StatusSet) Contains(s Status) bool {
	return set[s]
}

var (
	CaseStatuses         = newStatusSet(StatusWaiting, StatusInProgress, StatusPending, StatusCompleted, StatusCancelled)
	ConsultationStatuses = newStatusSet(StatusWaiting, StatusInProgress, StatusCompleted)
	LabOrderStatuses     = newStatusSet(StatusPending, StatusInProgress, StatusCompleted)
	PrescriptionStatuses = newStatusSet(StatusPending, StatusReady, StatusDispensed)
	InvoiceStatuses      = newStatusSet(StatusPending, StatusPartial, StatusOverdue, StatusPaid)
)

// Stage is the service step a case is currently queued for.
type Stage string

const (
	StageTriage       Stage = "triage"
	StageConsultation Stage = "consultation"
	StageLaboratory   Stage = "laboratory"
	StagePharmacy     Stage = "pharmacy"
	StageBilling      Stage = "billing"
	StageDischarged   Stage = "discharged"
)

// Stages lists the stages in workflow order.
var Stages = []Stage{StageTriage, StageConsultation, StageLaboratory, StagePharmacy, StageBilling, StageDischarged}

// Valid reports whether s is one of the known stages.
func (s Stage) Valid() bool {
	return s.Order() >= 0
}

// Order is the position of the stage in the workflow, or -1 when unknown.
func (s Stage) Order() int {
	for i, stage := range Stages {
		if stage == s {
			return i
		}
	}
	return -1
}

// EntryStatus is the status a case takes when it enters the stage.
func (s Stage) EntryStatus() Status {
	switch s {
	case StageTriage, StageConsultation:
		return StatusWaiting
	case StageDischarged:
		return StatusCompleted
	}
	return StatusPending
}
