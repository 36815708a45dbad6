// Package visibility decides which activities a viewer may see.
//
// Everything here works on data the caller already loaded: the candidate
// activities with their responses, and the viewer's friend and previous
// connection ids. Nothing touches storage.
package visibility

import (
	"sort"

	"hangout/backend/internal/models"
)

// Request is one feed resolution.
type Request struct {
	ViewerID      string
	Candidates    []models.Activity
	FriendIDs     IDSet
	ConnectionIDs IDSet
	Filters       Filters
}

// CanView applies the base rule: the viewer created it, it is open, the
// creator is a friend and shares with friends, or the creator is a previous
// connection and shares with previous connections.
func CanView(viewerID string, a *models.Activity, friends, connections IDSet) bool {
	return a.CreatorID == viewerID ||
		a.Visibility == models.VisibilityOpen ||
		sharedWithFriend(a, friends) ||
		sharedWithConnection(a, connections)
}

func sharedWithFriend(a *models.Activity, friends IDSet) bool {
	return friends.Has(a.CreatorID) &&
		(a.Visibility == models.VisibilityFriends || a.Visibility == models.VisibilityOpen)
}

func sharedWithConnection(a *models.Activity, connections IDSet) bool {
	return connections.Has(a.CreatorID) &&
		(a.Visibility == models.VisibilityPrevious || a.Visibility == models.VisibilityOpen)
}

// authorized is CanView, unless a creator type is requested, in which case
// only that one clause applies.
func authorized(req *Request, a *models.Activity) bool {
	switch req.Filters.CreatorType {
	case CreatorMe:
		return a.CreatorID == req.ViewerID
	case CreatorFriends:
		return sharedWithFriend(a, req.FriendIDs)
	case CreatorConnections:
		return sharedWithConnection(a, req.ConnectionIDs)
	}
	return CanView(req.ViewerID, a, req.FriendIDs, req.ConnectionIDs)
}

// IsParticipating reports whether viewerID created a or responded "in" to it.
func IsParticipating(viewerID string, a *models.Activity) bool {
	if a.CreatorID == viewerID {
		return true
	}
	for _, r := range a.Responses {
		if r.UserID == viewerID && r.Response == models.ResponseIn {
			return true
		}
	}
	return false
}

// Resolve returns the candidates the viewer may see after filtering, most
// recently created first. It never returns nil.
func Resolve(req Request) []models.Activity {
	f := req.Filters
	out := make([]models.Activity, 0, len(req.Candidates))

	for i := range req.Candidates {
		a := &req.Candidates[i]
		if !authorized(&req, a) {
			continue
		}
		if f.Category != "" && a.Category != f.Category {
			continue
		}
		if f.Visibility != "" && a.Visibility != f.Visibility {
			continue
		}
		switch f.Participation {
		case Participating:
			if !IsParticipating(req.ViewerID, a) {
				continue
			}
		case NotParticipating:
			if IsParticipating(req.ViewerID, a) {
				continue
			}
		}
		out = append(out, *a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
