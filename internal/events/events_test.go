package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBroker struct {
	routingKey  string
	body        []byte
	contentType string
	err         error
}

func (b *fakeBroker) PublishWithRetry(ctx context.Context, routingKey string, body []byte, contentType string) error {
	b.routingKey = routingKey
	b.body = body
	b.contentType = contentType
	return b.err
}

func TestNewAndDecode(t *testing.T) {
	now := time.Date(2025, 5, 5, 8, 0, 0, 0, time.FixedZone("LYT", 2*3600))

	evt, err := New(CompanyDeleted, "company-1", map[string]any{"deactivatedJobIds": []string{"job-1", "job-8"}}, now)
	require.NoError(t, err)
	assert.Equal(t, CompanyDeleted, evt.Type)
	assert.Equal(t, time.UTC, evt.OccurredAt.Location())
	assert.JSONEq(t, `{"deactivatedJobIds":["job-1","job-8"]}`, string(evt.Data))

	body, err := json.Marshal(evt)
	require.NoError(t, err)

	decoded, err := Decode(body)
	require.NoError(t, err)
	assert.Equal(t, evt.ID, decoded.ID)
	assert.Equal(t, evt.EntityID, decoded.EntityID)
	assert.True(t, evt.OccurredAt.Equal(decoded.OccurredAt))
}

func TestNew_WithoutData(t *testing.T) {
	evt, err := New(JobDeactivated, "job-3", nil, time.Now())
	require.NoError(t, err)
	assert.Nil(t, evt.Data)
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `not-json`},
		{name: "bad id", body: `{"id":"123","type":"job.created","entityId":"job-1"}`},
		{name: "unknown type", body: `{"id":"6f1c2a8e-4a4e-4f43-9a43-9b1c0f1b2a11","type":"job.exploded","entityId":"job-1"}`},
		{name: "missing entity", body: `{"id":"6f1c2a8e-4a4e-4f43-9a43-9b1c0f1b2a11","type":"job.created"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.body))
			assert.ErrorIs(t, err, ErrMalformedEvent)
		})
	}
}

func TestBrokerPublisher(t *testing.T) {
	broker := &fakeBroker{}
	publisher := NewBrokerPublisher(broker, slog.New(slog.NewTextHandler(io.Discard, nil)))

	evt, err := New(JobCreated, "job-10", nil, time.Now())
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), evt))
	assert.Equal(t, JobCreated, broker.routingKey)
	assert.Equal(t, "application/json", broker.contentType)

	decoded, err := Decode(broker.body)
	require.NoError(t, err)
	assert.Equal(t, evt.ID, decoded.ID)

	broker.err = errors.New("channel closed")
	err = publisher.Publish(context.Background(), evt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish job.created")
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), BoardEvent{}))
}
