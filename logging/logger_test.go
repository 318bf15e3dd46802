package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedactMasksSecretKeys(t *testing.T) {
	out := redact([]interface{}{"api_key", "sk-123", "model", "gpt-4o", "AuthToken", "abc"})
	assert.Equal(t, []interface{}{"api_key", "[REDACTED]", "model", "gpt-4o", "AuthToken", "[REDACTED]"}, out)
}

func TestRedactLeavesOddTail(t *testing.T) {
	out := redact([]interface{}{"session", "s1", "dangling"})
	assert.Equal(t, []interface{}{"session", "s1", "dangling"}, out)
}

func TestLoggerWritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "test").Info("generation finished", "language", "English", "api_key", "secret")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "generation finished", entries[0].Message)
		assert.Equal(t, "test", ctx["component"])
		assert.Equal(t, "English", ctx["language"])
		assert.Equal(t, "[REDACTED]", ctx["api_key"])
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", ""} {
		l, err := New(mode)
		assert.NoError(t, err, mode)
		assert.NotNil(t, l)
	}
}
