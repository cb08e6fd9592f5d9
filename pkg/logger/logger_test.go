package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))
}

func TestWithCtxReturnsInjected(t *testing.T) {
	var buf bytes.Buffer
	reqLog := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "abc123")

	ctx := InjectLogger(context.Background(), reqLog)
	WithCtx(ctx).Info("order placed", "order_id", 7)

	assert.Contains(t, buf.String(), "request_id=abc123")
	assert.Contains(t, buf.String(), "order_id=7")
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(h).With("service", "storefront")

	log.Info("hello")
	log.Error("boom")

	assert.Contains(t, a.String(), "hello")
	assert.Contains(t, a.String(), "boom")
	assert.NotContains(t, b.String(), "hello")
	assert.Contains(t, b.String(), "service=storefront")
}

func TestMongoHandlerBuildsDocuments(t *testing.T) {
	h := newMongoHandler(nil, nil)
	log := slog.New(h).With("request_id", "rid-1").WithGroup("order")

	log.Info("placed", "id", 42)
	log.Debug("ignored below info")

	require.Len(t, h.queue, 1)
	doc := <-h.queue
	assert.Equal(t, "placed", doc.Msg)
	assert.Equal(t, "INFO", doc.Level)
	assert.Equal(t, "rid-1", doc.RequestID)
	assert.EqualValues(t, 42, doc.Attrs["order.id"])
	assert.WithinDuration(t, time.Now(), doc.Time, time.Minute)
}
