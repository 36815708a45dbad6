package visibility

import (
	"strings"

	"hangout/backend/internal/models"
)

// CreatorType narrows the feed to one relationship to the creator.
type CreatorType string

const (
	CreatorMe          CreatorType = "me"
	CreatorFriends     CreatorType = "friends"
	CreatorConnections CreatorType = "connections"
)

// Participation filters on whether the viewer is in.
type Participation string

const (
	Participating    Participation = "participating"
	NotParticipating Participation = "not_participating"
)

// Filters are optional constraints on the feed. The zero value of each field
// means no constraint.
type Filters struct {
	Category      models.Category
	Visibility    models.Visibility
	CreatorType   CreatorType
	Participation Participation
}

// ParseFilters reads raw query values. Values outside their enum are dropped
// rather than rejected, so any input yields a usable Filters.
func ParseFilters(category, visibility, creatorType, participation string) Filters {
	var f Filters

	if c := models.Category(clean(category)); c.Valid() {
		f.Category = c
	}
	if v := models.Visibility(clean(visibility)); v.Valid() {
		f.Visibility = v
	}
	switch ct := CreatorType(clean(creatorType)); ct {
	case CreatorMe, CreatorFriends, CreatorConnections:
		f.CreatorType = ct
	}
	switch p := Participation(clean(participation)); p {
	case Participating, NotParticipating:
		f.Participation = p
	}
	return f
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
