package hub

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesSubscribers(t *testing.T) {
	h := NewHub()
	a, b, other := NewClient(), NewClient(), NewClient()
	h.Subscribe("act-1", a)
	h.Subscribe("act-1", b)
	h.Subscribe("act-2", other)

	h.Publish("act-1", "response.created", map[string]string{"user_id": "u1"})

	for _, c := range []Client{a, b} {
		require.Len(t, c, 1)
		var ev Event
		require.NoError(t, json.Unmarshal(<-c, &ev))
		assert.Equal(t, "response.created", ev.Type)
		assert.Equal(t, map[string]interface{}{"user_id": "u1"}, ev.Payload)
	}
	assert.Empty(t, other)
}

func TestHub_UnsubscribeClosesAndCleansUp(t *testing.T) {
	h := NewHub()
	c := NewClient()
	h.Subscribe("act-1", c)
	assert.Equal(t, 1, h.Listeners("act-1"))

	h.Unsubscribe("act-1", c)
	_, open := <-c
	assert.False(t, open)
	assert.Zero(t, h.Listeners("act-1"))

	// unknown clients and activities are ignored
	h.Unsubscribe("act-1", c)
	h.Unsubscribe("missing", NewClient())
}

func TestHub_SlowClientDoesNotBlock(t *testing.T) {
	h := NewHub()
	c := make(Client)
	h.Subscribe("act-1", c)

	h.Publish("act-1", "activity.updated", nil)
	assert.Empty(t, c)
}

func TestHub_PublishWithoutListeners(t *testing.T) {
	h := NewHub()
	assert.NotPanics(t, func() { h.Publish("nobody", "activity.deleted", nil) })
}
