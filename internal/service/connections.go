package service

import (
	"sort"

	"hangout/backend/internal/models"
)

// ConnectionsFor lists the previous connections created when newUser goes
// "in" on an activity: one per distinct other participant, counting the
// creator, with each pair normalized. The result is sorted so concurrent
// writers lock rows in the same order.
func ConnectionsFor(activityID, newUser, creatorID string, existingIn []string) []models.PreviousConnection {
	seen := map[string]bool{newUser: true}
	var out []models.PreviousConnection

	add := func(other string) {
		if other == "" || seen[other] {
			return
		}
		seen[other] = true
		ref := activityID
		out = append(out, models.NewPreviousConnection(newUser, other, &ref))
	}

	add(creatorID)
	for _, id := range existingIn {
		add(id)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].User1ID != out[j].User1ID {
			return out[i].User1ID < out[j].User1ID
		}
		return out[i].User2ID < out[j].User2ID
	})
	return out
}
