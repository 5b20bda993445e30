package utils

import (
	"fmt"
	"time"
)

// InvoiceSequence names the per-year invoice sequence.
func InvoiceSequence(year int) string {
	return fmt.Sprintf("INV-%d", year)
}

// FormatInvoiceID renders INV-YYYY-###.
func FormatInvoiceID(year, seq int) string {
	return fmt.Sprintf("INV-%d-%03d", year, seq)
}

// FormatTransactionID renders the timestamp based payment transaction ID.
func FormatTransactionID(at time.Time) string {
	return fmt.Sprintf("TXN-%d", at.UnixMilli())
}
