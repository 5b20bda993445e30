package models

import (
	"time"
)

// Patient model
type Patient struct {
	ID                       string    `json:"id"`
	Name                     string    `json:"name"`
	Age                      int       `json:"age"`
	Gender                   string    `json:"gender"`
	Phone                    string    `json:"phone,omitempty"`
	Email                    string    `json:"email,omitempty"`
	Address                  string    `json:"address,omitempty"`
	InsuranceProvider        string    `json:"insurance_provider,omitempty"`
	InsuranceCoveragePercent float64   `json:"insurance_coverage_percent"`
	PalmEnrolled             bool      `json:"palm_enrolled"`
	PalmDigest               string    `json:"-"`
	PalmEnrolledAt           time.Time `json:"palm_enrolled_at,omitempty"`
	RegisteredAt             time.Time `json:"registered_at"`
}

// VitalSigns recorded at triage
type VitalSigns struct {
	BloodPressure    string  `json:"blood_pressure"`
	HeartRate        int     `json:"heart_rate"`
	Temperature      float64 `json:"temperature"`
	RespiratoryRate  int     `json:"respiratory_rate"`
	OxygenSaturation int     `json:"oxygen_saturation"`
}

// TriageAssessment model
type TriageAssessment struct {
	ID             string     `json:"id"`
	CaseID         string     `json:"case_id"`
	PatientID      string     `json:"patient_id"`
	VitalSigns     VitalSigns `json:"vital_signs"`
	ChiefComplaint string     `json:"chief_complaint"`
	Priority       Priority   `json:"priority"`
	Notes          string     `json:"notes,omitempty"`
	AssessedBy     string     `json:"assessed_by,omitempty"`
	Flags          []string   `json:"flags"`
	Status         Status     `json:"status"`
	AssessedAt     time.Time  `json:"assessed_at"`
}

func (t TriageAssessment) Clone() TriageAssessment {
	t.Flags = append([]string(nil), t.Flags...)
	return t
}
