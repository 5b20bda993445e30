package models

import (
	"time"
)

// CaseRecord is one patient visit flowing through the clinic stages. Page
// specific data lives in sub-records referenced by ID.
type CaseRecord struct {
	ID             string      `json:"id"`
	PatientID      string      `json:"patient_id"`
	PatientName    string      `json:"patient_name"`
	Stage          Stage       `json:"stage"`
	Status         Status      `json:"status"`
	Priority       Priority    `json:"priority"`
	ChiefComplaint string      `json:"chief_complaint,omitempty"`
	TriageID       string      `json:"triage_id,omitempty"`
	ConsultationID string      `json:"consultation_id,omitempty"`
	LabOrderIDs    []string    `json:"lab_order_ids"`
	PrescriptionID string      `json:"prescription_id,omitempty"`
	InvoiceID      string      `json:"invoice_id,omitempty"`
	ArrivedAt      time.Time   `json:"arrived_at"`
	StageEnteredAt time.Time   `json:"stage_entered_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	History        []CaseEvent `json:"history"`
}

// CaseEvent records one stage/status transition.
type CaseEvent struct {
	Stage  Stage     `json:"stage"`
	Status Status    `json:"status"`
	Note   string    `json:"note,omitempty"`
	At     time.Time `json:"at"`
}

func (c CaseRecord) Clone() CaseRecord {
	c.LabOrderIDs = append([]string(nil), c.LabOrderIDs...)
	c.History = append([]CaseEvent(nil), c.History...)
	return c
}

// Closed reports whether the case can no longer move.
func (c CaseRecord) Closed() bool {
	return c.Status == StatusCancelled || c.Stage == StageDischarged
}

// Queued reports whether the case is waiting to be served in its stage.
func (c CaseRecord) Queued() bool {
	return c.Status == StatusWaiting || c.Status == StatusPending
}

// Record appends a history event and stamps the update time.
func (c *CaseRecord) Record(note string, at time.Time) {
	c.History = append(c.History, CaseEvent{Stage: c.Stage, Status: c.Status, Note: note, At: at})
	c.UpdatedAt = at
}
