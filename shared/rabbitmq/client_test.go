package rabbitmq

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBackoff_Defaults(t *testing.T) {
	b := newBackoff(0, 0, 0)

	assert.Equal(t, 3, b.retries)
	assert.Equal(t, 100*time.Millisecond, b.base)
	assert.Equal(t, 2.0, b.mult)
}

func TestBackoff_Delay(t *testing.T) {
	b := newBackoff(5, 50*time.Millisecond, 3)

	assert.Equal(t, 50*time.Millisecond, b.delay(0))
	assert.Equal(t, 150*time.Millisecond, b.delay(1))
	assert.Equal(t, 450*time.Millisecond, b.delay(2))
}

func TestPublishWithRetry_NotConnected(t *testing.T) {
	c := &Client{
		config: &Config{ExchangeName: "board_events"},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	err := c.PublishWithRetry(context.Background(), "job.created", []byte(`{}`), "application/json")
	require.ErrorIs(t, err, ErrNotConnected)

	_, err = c.Consume("worker-1", 10)
	require.ErrorIs(t, err, ErrNotConnected)
	assert.False(t, c.IsConnected())
}
