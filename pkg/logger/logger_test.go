package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{Logger: zap.New(core)}, logs
}

func TestWithAttachesFields(t *testing.T) {
	// Arrange
	log, logs := newObserved()

	// Act
	log.With(zap.String("worker", "index")).Info("started")

	// Assert
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "index", entries[0].ContextMap()["worker"])
}

func TestErrorAttachesErr(t *testing.T) {
	// Arrange
	log, logs := newObserved()

	// Act
	log.Error("send failed", errors.New("boom"), zap.String("tenant", "c1:l1"))
	log.Error("no cause", nil)

	// Assert
	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "boom", entries[0].ContextMap()["error"])
	assert.Equal(t, "c1:l1", entries[0].ContextMap()["tenant"])
	_, hasErr := entries[1].ContextMap()["error"]
	assert.False(t, hasErr)
}

func TestNewLoggerHonorsLevel(t *testing.T) {
	// Arrange
	t.Setenv("LOG_LEVEL", "error")

	// Act
	log := NewLogger("production")

	// Assert
	assert.False(t, log.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, log.Core().Enabled(zapcore.ErrorLevel))
}
