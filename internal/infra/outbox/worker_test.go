package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appoutbox "stayhub/internal/app/outbox"
)

type published struct {
	topic   string
	key     string
	payload []byte
	headers map[string]string
}

type fakeProducer struct {
	sent []published
	fail bool
}

func (p *fakeProducer) Publish(_ context.Context, topic, key string, payload []byte, headers map[string]string) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.sent = append(p.sent, published{topic: topic, key: key, payload: payload, headers: headers})
	return nil
}

func record(name, aggregate string) appoutbox.EventRecord {
	return appoutbox.EventRecord{
		ID:         name + "/" + aggregate,
		Name:       name,
		Aggregate:  aggregate,
		Payload:    []byte(`{"ReservationID":"res-1"}`),
		OccurredAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Add(ctx, record("reservation.reserved", "res-1")))
	assert.Equal(t, 1, store.Pending())

	doc, err := store.Claim(ctx, "w1")
	require.NoError(t, err)
	require.NotNil(t, doc)

	// claimed documents are not handed out twice
	second, err := store.Claim(ctx, "w2")
	require.NoError(t, err)
	assert.Nil(t, second)

	require.NoError(t, store.MarkSent(ctx, doc.ID))
	assert.Equal(t, 0, store.Pending())
}

func TestStoreRetryBackoff(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Add(ctx, record("reservation.reserved", "res-1")))

	doc, err := store.Claim(ctx, "w1")
	require.NoError(t, err)
	require.NoError(t, store.MarkFailed(ctx, doc.ID, time.Now().Add(time.Hour), "broker down"))

	// not deliverable until the retry time passes
	doc, err = store.Claim(ctx, "w1")
	require.NoError(t, err)
	assert.Nil(t, doc)

	require.NoError(t, store.MarkFailed(ctx, "missing", time.Now(), "ignored"))
}

func TestWorkerPublishesCloudEvent(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	producer := &fakeProducer{}
	w := &Worker{Store: store, Producer: producer, TopicPrefix: "dev.", ID: "w1"}

	require.NoError(t, store.Add(ctx, record("reservation.confirmed", "res-1")))
	require.NoError(t, w.processOnce(ctx))

	require.Len(t, producer.sent, 1)
	msg := producer.sent[0]
	assert.Equal(t, "dev.reservation.events.v1", msg.topic)
	assert.Equal(t, "res-1", msg.key)
	assert.Equal(t, "application/cloudevents+json", msg.headers["content-type"])

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(msg.payload, &envelope))
	assert.Equal(t, "1.0", envelope["specversion"])
	assert.Equal(t, "reservation.confirmed.v1", envelope["type"])
	assert.Equal(t, "app://stayhub", envelope["source"])
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "res-1", data["ReservationID"])

	assert.Equal(t, 0, store.Pending())
}

func TestWorkerRequeuesOnPublishFailure(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	producer := &fakeProducer{fail: true}
	w := &Worker{Store: store, Producer: producer, Backoff: []time.Duration{time.Hour}}

	require.NoError(t, store.Add(ctx, record("reservation.reserved", "res-1")))
	require.NoError(t, w.processOnce(ctx))

	assert.Equal(t, 1, store.Pending(), "failed publish keeps the document queued")
}

func TestWorkerRequiresDependencies(t *testing.T) {
	w := &Worker{}
	assert.ErrorIs(t, w.Run(context.Background()), ErrWorkerNotConfigured)
}
