package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"PalmCare/models"
	"PalmCare/repositories"
	"PalmCare/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ReceiptSender delivers payment receipts.
type ReceiptSender interface {
	SendReceipt(receipt utils.Receipt) error
}

// BillingOptions are the billing knobs taken from configuration.
type BillingOptions struct {
	ConsultationFee float64
	DueDays         int
	PaymentDelay    time.Duration
}

type InvoiceFilter struct {
	Status models.Status
	Search string
}

type PayRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}

func (r PayRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Amount, validation.Min(0.0)),
		validation.Field(&r.Method, validation.Required, validation.In(models.PaymentMethods...)),
	)
}

// PaymentResult tells the cashier what happened. Payment is set only when
// the invoice was settled.
type PaymentResult struct {
	Invoice *models.Invoice `json:"invoice"`
	Payment *models.Payment `json:"payment,omitempty"`
	Full    bool            `json:"full"`
	Change  float64         `json:"change"`
}

type BillingService struct {
	repository    *repositories.BillingRepository
	patients      *repositories.PatientRepository
	labs          *repositories.LabOrderRepository
	prescriptions *repositories.PrescriptionRepository
	queue         *QueueService
	activity      *ActivityTracker
	notifications *NotificationService
	mailer        ReceiptSender
	options       BillingOptions
	log           zerolog.Logger
	now           func() time.Time
}

func NewBillingService(
	repos *repositories.Repositories,
	queue *QueueService,
	activity *ActivityTracker,
	notifications *NotificationService,
	mailer ReceiptSender,
	options BillingOptions,
	log zerolog.Logger,
) *BillingService {
	s := &BillingService{
		repository:    repos.Billing,
		patients:      repos.Patients,
		labs:          repos.LabOrders,
		prescriptions: repos.Prescriptions,
		queue:         queue,
		activity:      activity,
		notifications: notifications,
		mailer:        mailer,
		options:       options,
		log:           log,
		now:           time.Now,
	}
	queue.OnEnter(models.StageBilling, s.GenerateInvoice)
	return s
}

// GenerateInvoice bills a case entering billing from the fee schedule. It
// does nothing when the case already has an invoice.
func (s *BillingService) GenerateInvoice(ctx context.Context, record *models.CaseRecord) error {
	if record.InvoiceID != "" {
		return nil
	}
	patient, err := s.patients.GetByID(ctx, record.PatientID)
	if err != nil {
		return err
	}

	items := []models.InvoiceItem{{Description: "Consultation fee", Amount: s.options.ConsultationFee}}
	for _, orderID := range record.LabOrderIDs {
		order, err := s.labs.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		for _, test := range order.Tests {
			items = append(items, models.InvoiceItem{Description: "Lab: " + test.Name, Amount: test.Price})
		}
	}
	if record.PrescriptionID != "" {
		prescription, err := s.prescriptions.GetByID(ctx, record.PrescriptionID)
		if err != nil {
			return err
		}
		for _, line := range prescription.Lines {
			items = append(items, models.InvoiceItem{
				Description: fmt.Sprintf("Pharmacy: %s x%d", line.Name, line.Quantity),
				Amount:      utils.RoundCurrency(float64(line.Quantity) * line.UnitPrice),
			})
		}
	}

	var total float64
	for _, item := range items {
		total += item.Amount
	}
	total = utils.RoundCurrency(total)
	coverage := utils.RoundCurrency(math.Min(math.Max(total*patient.InsuranceCoveragePercent/100, 0), total))

	issued := s.now()
	invoice := &models.Invoice{
		CaseID:                record.ID,
		PatientID:             record.PatientID,
		PatientName:           record.PatientName,
		Items:                 items,
		TotalAmount:           total,
		InsuranceCoverage:     coverage,
		PatientResponsibility: utils.RoundCurrency(total - coverage),
		Status:                models.StatusPending,
		IssuedAt:              issued,
		DueAt:                 issued.AddDate(0, 0, s.options.DueDays),
	}
	if err := s.repository.CreateInvoice(ctx, invoice); err != nil {
		return err
	}
	if _, err := s.queue.Update(ctx, record.ID, func(c *models.CaseRecord) { c.InvoiceID = invoice.ID }); err != nil {
		return err
	}
	s.log.Info().Str("invoice_id", invoice.ID).Str("case_id", record.ID).Float64("total", total).Msg("Invoice generated")
	return nil
}

func (s *BillingService) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	return s.repository.GetInvoice(ctx, id)
}

// ListInvoices returns the pending list (every unpaid invoice) unless a
// status is asked for. Overdue invoices are refreshed first.
func (s *BillingService) ListInvoices(ctx context.Context, filter InvoiceFilter) []models.Invoice {
	s.RefreshOverdue(ctx)
	invoices := s.repository.ListInvoices(ctx)
	matching := invoices[:0]
	for _, inv := range invoices {
		if (filter.Status == "" && inv.Outstanding()) || (filter.Status != "" && inv.Status == filter.Status) {
			matching = append(matching, inv)
		}
	}
	return utils.FilterBySearch(matching, filter.Search, func(inv models.Invoice) []string {
		return []string{inv.ID, inv.PatientID, inv.PatientName}
	})
}

// ListPayments returns completed payments, newest first.
func (s *BillingService) ListPayments(ctx context.Context, search string) []models.Payment {
	return utils.FilterBySearch(s.repository.ListPayments(ctx), search, func(p models.Payment) []string {
		return []string{p.TransactionID, p.InvoiceID, p.PatientName}
	})
}

// RefreshOverdue marks unpaid invoices past their due date as overdue.
func (s *BillingService) RefreshOverdue(ctx context.Context) int {
	changed := s.repository.MarkOverdue(ctx, s.now())
	if changed > 0 {
		s.log.Info().Int("invoices", changed).Msg("Invoices marked overdue")
	}
	return changed
}

// Pay processes a payment after the simulated processing delay.
func (s *BillingService) Pay(ctx context.Context, invoiceID string, req PayRequest) (*PaymentResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	invoice, err := s.repository.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.Outstanding() {
		return nil, errors.Wrapf(models.ErrInvalidTransition, "invoice %s is already paid", invoice.ID)
	}
	// A zero tender only settles an invoice insurance covers in full.
	if req.Amount <= 0 && invoice.PatientResponsibility > 0 {
		return nil, utils.FieldError("amount", "must be greater than zero")
	}

	var result *PaymentResult
	err = s.activity.Run(ctx, "payment", s.options.PaymentDelay, func(ctx context.Context) error {
		var err error
		result, err = s.settle(ctx, invoiceID, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// settle applies the payment to the invoice. A full payment closes the
// invoice and discharges the case; a partial one only reduces what the
// patient owes.
func (s *BillingService) settle(ctx context.Context, invoiceID string, req PayRequest) (*PaymentResult, error) {
	amount := utils.RoundCurrency(req.Amount)
	now := s.now()
	result := &PaymentResult{}

	invoice, err := s.repository.UpdateInvoice(ctx, invoiceID, func(inv *models.Invoice) error {
		if !inv.Outstanding() {
			return errors.Wrapf(models.ErrInvalidTransition, "invoice %s is already paid", inv.ID)
		}
		owed := inv.PatientResponsibility
		if amount >= owed {
			result.Full = true
			result.Change = utils.RoundCurrency(amount - owed)
			inv.AmountPaid = utils.RoundCurrency(inv.AmountPaid + owed)
			inv.PatientResponsibility = 0
			inv.Status = models.StatusPaid
			inv.PaidAt = now
			return nil
		}
		inv.AmountPaid = utils.RoundCurrency(inv.AmountPaid + amount)
		inv.PatientResponsibility = utils.RoundCurrency(owed - amount)
		inv.Status = models.StatusPartial
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Invoice = invoice

	if !result.Full {
		s.log.Info().Str("invoice_id", invoiceID).Float64("amount", amount).Float64("remaining", invoice.PatientResponsibility).Msg("Partial payment received")
		return result, nil
	}

	payment := &models.Payment{
		InvoiceID:   invoice.ID,
		PatientID:   invoice.PatientID,
		PatientName: invoice.PatientName,
		Amount:      utils.RoundCurrency(amount - result.Change),
		Method:      req.Method,
		Status:      models.StatusPaid,
		PaidAt:      now,
	}
	if err := s.repository.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}
	result.Payment = payment

	if _, err := s.queue.MoveTo(ctx, invoice.CaseID, models.StageDischarged, "invoice paid"); err != nil {
		s.log.Warn().Err(err).Str("case_id", invoice.CaseID).Msg("Failed to discharge case")
	}
	s.notifications.Notify(ctx, models.NotificationSuccess, "Payment received",
		fmt.Sprintf("%s settled %s (%s)", invoice.PatientName, invoice.ID, payment.TransactionID))
	s.sendReceipt(ctx, invoice, payment, result.Change)

	s.log.Info().Str("invoice_id", invoice.ID).Str("transaction_id", payment.TransactionID).Msg("Invoice paid")
	return result, nil
}

func (s *BillingService) sendReceipt(ctx context.Context, invoice *models.Invoice, payment *models.Payment, change float64) {
	if s.mailer == nil {
		return
	}
	patient, err := s.patients.GetByID(ctx, invoice.PatientID)
	if err != nil || patient.Email == "" {
		return
	}
	err = s.mailer.SendReceipt(utils.Receipt{
		To:            patient.Email,
		PatientName:   patient.Name,
		InvoiceID:     invoice.ID,
		TransactionID: payment.TransactionID,
		Amount:        payment.Amount,
		Change:        change,
		Method:        payment.Method,
		PaidAt:        payment.PaidAt,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("invoice_id", invoice.ID).Msg("Failed to send receipt")
	}
}
