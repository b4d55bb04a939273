package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	ctx := context.Background()

	require.NoError(t, r.Publish(ctx, SubjectListingCreated, map[string]int{"id": 1}))
	require.NoError(t, r.Publish(ctx, SubjectMatchSuggested, map[string]int{"id": 2}))

	assert.Equal(t, []string{SubjectListingCreated, SubjectMatchSuggested}, r.Subjects())
	events := r.Events()
	require.Len(t, events, 2)
	assert.NotEmpty(t, events[0].ID)
	assert.NotEqual(t, events[0].ID, events[1].ID)
}

func TestEnvelope_JSON(t *testing.T) {
	env := newEnvelope(SubjectFounderJoined, map[string]string{"email": "a@example.org"})

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, SubjectFounderJoined, decoded["subject"])
	assert.Equal(t, "a@example.org", decoded["data"].(map[string]interface{})["email"])
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), SubjectMatchSuggested, nil))
	assert.NoError(t, p.Close())
}
