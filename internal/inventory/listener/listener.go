package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/inventory"
	"github.com/fekuna/omnipos-register-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	EventStockReceived = "StockReceived"
	EventStockOpname   = "StockOpname"
)

type Config struct {
	Brokers []string
	Topic   string
	GroupID string
}

// MessageReader is the consuming half of a kafka.Reader.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

func NewReader(cfg *Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
	})
}

// InventoryListener applies stock events published by back-office systems,
// e.g. goods received from a supplier or a stock count correction.
type InventoryListener struct {
	consumer MessageReader
	uc       inventory.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewInventoryListener(consumer MessageReader, uc inventory.UseCase, logger logger.ZapLogger) *InventoryListener {
	return &InventoryListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
		backoff:  time.Second,
	}
}

func (l *InventoryListener) Start(ctx context.Context) {
	l.logger.Info("Starting Inventory Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Inventory Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.backoff):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type StockEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   StockPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type StockPayload struct {
	ReferenceID string             `json:"reference_id"`
	Notes       string             `json:"notes"`
	Items       []StockItemPayload `json:"items"`
}

// StockItemPayload carries a positive quantity for receipts and a signed
// difference for stock counts.
type StockItemPayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (l *InventoryListener) processMessage(ctx context.Context, value []byte) {
	var event StockEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	var refType string
	switch event.EventType {
	case EventStockReceived:
		refType = "stock_received"
	case EventStockOpname:
		refType = "stock_opname"
	default:
		return
	}

	l.logger.Info("Processing stock event",
		zap.String("event_type", event.EventType),
		zap.String("reference_id", event.Payload.ReferenceID),
	)

	for _, item := range event.Payload.Items {
		if event.EventType == EventStockReceived && item.Quantity <= 0 {
			l.logger.Warn("Skipping non-positive receipt line", zap.String("product_id", item.ProductID), zap.Int("quantity", item.Quantity))
			continue
		}
		input := &dto.AdjustInventoryInput{
			ProductID:      item.ProductID,
			QuantityChange: item.Quantity,
			Reason:         event.Payload.Notes,
			ReferenceID:    event.Payload.ReferenceID,
			ReferenceType:  refType,
			UserID:         "system",
		}

		if _, err := l.uc.AdjustInventory(ctx, input); err != nil {
			l.logger.Error("Failed to adjust inventory for stock event",
				zap.String("reference_id", event.Payload.ReferenceID),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
		}
	}
}
