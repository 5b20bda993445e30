package repositories

import (
	"context"
	"fmt"
	"time"

	"PalmCare/models"
	"PalmCare/utils"

	"github.com/pkg/errors"
)

type BillingRepository struct {
	baseRepository
}

// CreateInvoice assigns the next INV-YYYY-### ID for the issue year.
func (r *BillingRepository) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	year := invoice.IssuedAt.Year()
	invoice.ID = utils.FormatInvoiceID(year, r.db.NextSequence(utils.InvoiceSequence(year)))
	if err := r.db.Invoices.Insert(invoice.ID, *invoice); err != nil {
		return errors.Wrap(err, "failed to create invoice")
	}
	r.invalidate(ctx)
	return nil
}

func (r *BillingRepository) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	invoice, err := r.db.Invoices.Get(id)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *BillingRepository) UpdateInvoice(ctx context.Context, id string, fn func(*models.Invoice) error) (*models.Invoice, error) {
	invoice, err := r.db.Invoices.Update(id, fn)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return &invoice, nil
}

func (r *BillingRepository) ListInvoices(ctx context.Context) []models.Invoice {
	return r.db.Invoices.List()
}

// MarkOverdue flags every unpaid invoice whose due date passed before now.
func (r *BillingRepository) MarkOverdue(ctx context.Context, now time.Time) int {
	changed := r.db.Invoices.UpdateWhere(func(inv models.Invoice) bool {
		return inv.Status != models.StatusPaid && inv.Status != models.StatusOverdue && now.After(inv.DueAt)
	}, func(inv *models.Invoice) {
		inv.Status = models.StatusOverdue
	})
	if changed > 0 {
		r.invalidate(ctx)
	}
	return changed
}

// CreatePayment stores a payment under a TXN-<unix ms> ID. Payments landing
// in the same millisecond get a -n suffix.
func (r *BillingRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	base := utils.FormatTransactionID(payment.PaidAt)
	id := base
	for n := 1; ; n++ {
		payment.TransactionID = id
		err := r.db.Payments.Insert(id, *payment)
		if err == nil {
			break
		}
		if !errors.Is(err, models.ErrDuplicateKey) {
			return errors.Wrap(err, "failed to record payment")
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
	r.invalidate(ctx)
	return nil
}

// ListPayments returns completed payments, newest first.
func (r *BillingRepository) ListPayments(ctx context.Context) []models.Payment {
	payments := r.db.Payments.List()
	for i, j := 0, len(payments)-1; i < j; i, j = i+1, j-1 {
		payments[i], payments[j] = payments[j], payments[i]
	}
	return payments
}
