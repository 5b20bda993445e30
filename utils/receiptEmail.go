package utils

import (
	"fmt"
	"html"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

// Receipt is what a patient gets mailed after settling an invoice.
type Receipt struct {
	To            string
	PatientName   string
	InvoiceID     string
	TransactionID string
	Amount        float64
	Change        float64
	Method        string
	PaidAt        time.Time
}

// SMTPMailer sends receipts through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	if from == "" {
		from = user
	}
	return &SMTPMailer{dialer: gomail.NewDialer(host, port, user, pass), from: from}
}

// SendReceipt mails the receipt.
func (m *SMTPMailer) SendReceipt(receipt Receipt) error {
	if err := m.dialer.DialAndSend(BuildReceiptMessage(m.from, receipt)); err != nil {
		return errors.Wrapf(err, "failed to send receipt for %s", receipt.InvoiceID)
	}
	return nil
}

// BuildReceiptMessage renders the receipt as a plain text message with an
// HTML alternative.
func BuildReceiptMessage(from string, r Receipt) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", r.To)
	m.SetHeader("Subject", "Payment receipt "+r.InvoiceID)

	paidAt := r.PaidAt.Format("02 Jan 2006 15:04")
	m.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n\nWe received %.2f by %s for invoice %s on %s.\nTransaction: %s\nChange: %.2f\n\nThank you.",
		r.PatientName, r.Amount, r.Method, r.InvoiceID, paidAt, r.TransactionID, r.Change,
	))

	htmlBody := `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Payment receipt</title>
		<style>
			body { font-family: Arial, sans-serif; background-color: #f4f4f4; }
			.container { background-color: #ffffff; margin: 20px auto; padding: 20px; border-radius: 8px; max-width: 600px; }
			.amount { font-weight: bold; color: #0f766e; }
		</style>
	</head>
	<body>
		<div class="container">
			<h1>Payment receipt</h1>
			<p>Dear ` + html.EscapeString(r.PatientName) + `,</p>
			<p>We received <span class="amount">` + fmt.Sprintf("%.2f", r.Amount) + `</span> by ` + html.EscapeString(r.Method) + ` for invoice ` + html.EscapeString(r.InvoiceID) + ` on ` + paidAt + `.</p>
			<p>Transaction: ` + html.EscapeString(r.TransactionID) + `</p>
		</div>
	</body>
	</html>
	`
	m.AddAlternative("text/html", htmlBody)
	return m
}
