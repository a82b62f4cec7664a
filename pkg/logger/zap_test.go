package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWrap_WithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := Wrap(zap.New(core)).With(zap.String("component", "cart"))

	log.Debug("dropped")
	log.Info("item added", zap.String("product_id", "p1"))

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "item added", entries[0].Message)
	assert.Equal(t, "cart", entries[0].ContextMap()["component"])
	assert.Equal(t, "p1", entries[0].ContextMap()["product_id"])
}

func TestNewZapLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	log := NewZapLogger(&ZapLoggerConfig{Level: "loud", Encoding: "json"})
	assert.NotNil(t, log)
}
