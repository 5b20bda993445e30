package models

import (
	"time"
)

// MedicationOrder is a medication prescribed during a consultation.
type MedicationOrder struct {
	MedicationID string `json:"medication_id"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Quantity     int    `json:"quantity"`
}

// Consultation model
type Consultation struct {
	ID          string            `json:"id"`
	CaseID      string            `json:"case_id"`
	PatientID   string            `json:"patient_id"`
	Diagnosis   string            `json:"diagnosis"`
	Notes       string            `json:"notes,omitempty"`
	LabTests    []string          `json:"lab_tests"`
	Medications []MedicationOrder `json:"medications"`
	Physician   string            `json:"physician,omitempty"`
	Status      Status            `json:"status"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt time.Time         `json:"completed_at,omitempty"`
}

func (c Consultation) Clone() Consultation {
	c.LabTests = append([]string(nil), c.LabTests...)
	c.Medications = append([]MedicationOrder(nil), c.Medications...)
	return c
}

// LabField is one measured value of a lab test.
type LabField struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Unit      string `json:"unit,omitempty"`
	Reference string `json:"reference"`
	Flagged   bool   `json:"flagged"`
}

// LabTest groups the fields of one ordered test.
type LabTest struct {
	Name   string     `json:"name"`
	Price  float64    `json:"price"`
	Fields []LabField `json:"fields"`
}

// LabOrder model
type LabOrder struct {
	ID           string    `json:"id"`
	CaseID       string    `json:"case_id"`
	PatientID    string    `json:"patient_id"`
	PatientName  string    `json:"patient_name"`
	Priority     Priority  `json:"priority"`
	Tests        []LabTest `json:"tests"`
	Status       Status    `json:"status"`
	FlaggedCount int       `json:"flagged_count"`
	OrderedAt    time.Time `json:"ordered_at"`
	CompletedAt  time.Time `json:"completed_at,omitempty"`
}

func (o LabOrder) Clone() LabOrder {
	tests := make([]LabTest, len(o.Tests))
	for i, test := range o.Tests {
		test.Fields = append([]LabField(nil), test.Fields...)
		tests[i] = test
	}
	o.Tests = tests
	return o
}

// PrescriptionLine is one dispensable medication of a prescription.
type PrescriptionLine struct {
	MedicationID string  `json:"medication_id"`
	Name         string  `json:"name"`
	Dosage       string  `json:"dosage"`
	Frequency    string  `json:"frequency"`
	Duration     string  `json:"duration"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
}

// Prescription model
type Prescription struct {
	ID          string             `json:"id"`
	CaseID      string             `json:"case_id"`
	PatientID   string             `json:"patient_id"`
	PatientName string             `json:"patient_name"`
	Prescriber  string             `json:"prescriber,omitempty"`
	Lines       []PrescriptionLine `json:"lines"`
	Status      Status             `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	DispensedAt time.Time          `json:"dispensed_at,omitempty"`
}

func (p Prescription) Clone() Prescription {
	p.Lines = append([]PrescriptionLine(nil), p.Lines...)
	return p
}

// Total is the sum of the line prices.
func (p Prescription) Total() float64 {
	var total float64
	for _, line := range p.Lines {
		total += float64(line.Quantity) * line.UnitPrice
	}
	return total
}
