package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/dom/vidtube/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	t.Run("falls back to default", func(t *testing.T) {
		assert.Same(t, slog.Default(), logging.FromContext(context.Background()))
	})

	t.Run("returns stored logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		ctx := logging.WithLogger(context.Background(), logger)

		logging.FromContext(ctx).Info("hello", "k", "v")
		assert.Contains(t, buf.String(), "k=v")
	})

	t.Run("nil logger is ignored", func(t *testing.T) {
		ctx := logging.WithLogger(context.Background(), nil)
		assert.Same(t, slog.Default(), logging.FromContext(ctx))
	})
}

func TestRequestID(t *testing.T) {
	ctx := logging.WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", logging.RequestIDFromContext(ctx))
	assert.Empty(t, logging.RequestIDFromContext(context.Background()))
}
