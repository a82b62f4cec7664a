package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestPublish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}
	txn := &model.Transaction{ID: "t1", InvoiceNumber: "INV-20260101-001", GrandTotal: decimal.NewFromInt(67280)}

	require.NoError(t, p.Publish(context.Background(), txn))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "INV-20260101-001", string(w.msgs[0].Key))

	var ev TransactionEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, EventTransactionCompleted, ev.EventType)
	assert.Equal(t, "t1", ev.Payload.ID)
	assert.True(t, ev.Payload.GrandTotal.Equal(decimal.NewFromInt(67280)))
	assert.NotEmpty(t, ev.EventID)

	w.err = errors.New("broker down")
	assert.Error(t, p.Publish(context.Background(), txn))
}

func TestNewMessage_Headers(t *testing.T) {
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	msg, err := NewMessage(&model.Transaction{InvoiceNumber: "INV-20260101-002"}, now)
	require.NoError(t, err)
	assert.Equal(t, now, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
}
