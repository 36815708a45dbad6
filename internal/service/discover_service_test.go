package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hangout/backend/internal/models"
	"hangout/backend/internal/visibility"
)

func TestDiscoverable(t *testing.T) {
	connections := visibility.NewIDSet("d", "a", "b", "c")
	friends := visibility.NewIDSet("a", "z")
	excluded := visibility.NewIDSet("c")

	assert.Equal(t, []string{"b", "d"}, Discoverable(connections, friends, excluded))
	assert.Empty(t, Discoverable(visibility.NewIDSet(), friends, excluded))
	assert.Equal(t, []string{"a"}, Discoverable(visibility.NewIDSet("a"), nil, nil))
}

func TestMutualCounts(t *testing.T) {
	friends := visibility.NewIDSet("f1", "f2", "f3")
	edges := []models.Friendship{
		{SenderID: "b", ReceiverID: "f1"},
		{SenderID: "f2", ReceiverID: "b"},
		{SenderID: "d", ReceiverID: "f3"},
		{SenderID: "f1", ReceiverID: "f2"},
	}

	counts := MutualCounts(edges, friends)
	assert.Equal(t, 2, counts["b"])
	assert.Equal(t, 1, counts["d"])
	assert.Zero(t, counts["nobody"])
	assert.NotContains(t, counts, "f1")
}
