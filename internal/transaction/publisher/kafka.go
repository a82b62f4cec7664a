package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const EventTransactionCompleted = "TransactionCompleted"

type Config struct {
	Brokers []string
	Topic   string
}

// TransactionEvent is the message value written for every completed sale.
type TransactionEvent struct {
	EventID   string             `json:"event_id"`
	EventType string             `json:"event_type"`
	Payload   *model.Transaction `json:"payload"`
	Timestamp time.Time          `json:"timestamp"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(cfg *Config) *KafkaPublisher {
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}}
}

// NewMessage encodes txn keyed by invoice number so one register's sales stay
// ordered within a partition.
func NewMessage(txn *model.Transaction, now time.Time) (kafka.Message, error) {
	value, err := json.Marshal(TransactionEvent{
		EventID:   uuid.New().String(),
		EventType: EventTransactionCompleted,
		Payload:   txn,
		Timestamp: now,
	})
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(txn.InvoiceNumber),
		Value: value,
		Time:  now,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventTransactionCompleted)},
		},
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, txn *model.Transaction) error {
	msg, err := NewMessage(txn, time.Now())
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Noop drops every event. Used when Kafka is disabled.
type Noop struct{}

func (Noop) Publish(context.Context, *model.Transaction) error { return nil }
func (Noop) Close() error                                      { return nil }
