package repository

import (
	"fmt"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/model"
)

// nextInvoice advances the per-day counter. now must already be in the store
// timezone.
func nextInvoice(seq model.InvoiceSequence, now time.Time) (model.InvoiceSequence, string) {
	day := now.Format("20060102")
	if seq.Date != day {
		seq = model.InvoiceSequence{Date: day}
	}
	seq.Seq++
	return seq, fmt.Sprintf("INV-%s-%03d", day, seq.Seq)
}
