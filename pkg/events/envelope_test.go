package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hec-S/Supplement-Guard-sub003/pkg/events"
)

type scored struct {
	ID    uuid.UUID `json:"id"`
	Score int       `json:"score"`
}

func (s scored) EventType() string      { return "risk.assessment.completed" }
func (s scored) AggregateID() uuid.UUID { return s.ID }

func TestWrap(t *testing.T) {
	id := uuid.New()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	env, err := events.Wrap(scored{ID: id, Score: 42}, at)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, env.EventID)
	assert.Equal(t, "risk.assessment.completed", env.EventType)
	assert.Equal(t, id, env.AggregateID)
	assert.Equal(t, time.UTC, env.OccurredAt.Location())
	assert.JSONEq(t, `{"id":"`+id.String()+`","score":42}`, string(env.Payload))

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded events.Envelope
	require.NoError(t, json.Unmarshal(raw, &decoded))

	var got scored
	require.NoError(t, decoded.Decode("risk.assessment.completed", &got))
	assert.Equal(t, 42, got.Score)

	assert.ErrorContains(t, decoded.Decode("risk.high_risk.detected", &got), "unexpected event type")
}

func TestWrap_UniqueIDs(t *testing.T) {
	evt := scored{ID: uuid.New()}

	a, err := events.Wrap(evt, time.Now())
	require.NoError(t, err)
	b, err := events.Wrap(evt, time.Now())
	require.NoError(t, err)

	assert.NotEqual(t, a.EventID, b.EventID)
}
