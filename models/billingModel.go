package models

import (
	"time"
)

// InvoiceItem is one billed service.
type InvoiceItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Invoice model. PatientResponsibility is TotalAmount minus InsuranceCoverage
// minus every partial payment received.
type Invoice struct {
	ID                    string        `json:"id"`
	CaseID                string        `json:"case_id"`
	PatientID             string        `json:"patient_id"`
	PatientName           string        `json:"patient_name"`
	Items                 []InvoiceItem `json:"items"`
	TotalAmount           float64       `json:"total_amount"`
	InsuranceCoverage     float64       `json:"insurance_coverage"`
	PatientResponsibility float64       `json:"patient_responsibility"`
	AmountPaid            float64       `json:"amount_paid"`
	Status                Status        `json:"status"`
	IssuedAt              time.Time     `json:"issued_at"`
	DueAt                 time.Time     `json:"due_at"`
	PaidAt                time.Time     `json:"paid_at,omitempty"`
}

func (i Invoice) Clone() Invoice {
	i.Items = append([]InvoiceItem(nil), i.Items...)
	return i
}

// Outstanding reports whether the invoice still belongs to the pending list.
func (i Invoice) Outstanding() bool {
	return i.Status != StatusPaid
}

// Payment model
type Payment struct {
	TransactionID string    `json:"transaction_id"`
	InvoiceID     string    `json:"invoice_id"`
	PatientID     string    `json:"patient_id"`
	PatientName   string    `json:"patient_name"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	Status        Status    `json:"status"`
	PaidAt        time.Time `json:"paid_at"`
}

// Payment methods accepted at the cashier.
const (
	PaymentCash      = "cash"
	PaymentCard      = "card"
	PaymentMobile    = "mobile"
	PaymentInsurance = "insurance"
)

// PaymentMethods lists the accepted payment methods.
var PaymentMethods = []interface{}{PaymentCash, PaymentCard, PaymentMobile, PaymentInsurance}
