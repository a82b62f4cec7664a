package repository

import (
	"testing"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestNextInvoice(t *testing.T) {
	day1 := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	seq, inv := nextInvoice(model.InvoiceSequence{}, day1)
	assert.Equal(t, "INV-20260501-001", inv)

	seq, inv = nextInvoice(seq, day1.Add(time.Hour))
	assert.Equal(t, "INV-20260501-002", inv)
	assert.Equal(t, 2, seq.Seq)

	seq, inv = nextInvoice(seq, day1.AddDate(0, 0, 1))
	assert.Equal(t, "INV-20260502-001", inv)
	assert.Equal(t, "20260502", seq.Date)

	_, inv = nextInvoice(model.InvoiceSequence{Date: "20260502", Seq: 999}, day1.AddDate(0, 0, 1))
	assert.Equal(t, "INV-20260502-1000", inv, "the counter widens past three digits")
}
