package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hangout/backend/internal/models"
)

func TestParseFilters(t *testing.T) {
	f := ParseFilters(" Spontaneous", "open", "friends", "participating")

	assert.Equal(t, Filters{
		Category:      models.CategorySpontaneous,
		Visibility:    models.VisibilityOpen,
		CreatorType:   CreatorFriends,
		Participation: Participating,
	}, f)
}

func TestParseFiltersDropsUnknownValues(t *testing.T) {
	assert.Equal(t, Filters{}, ParseFilters("sometimes", "secret", "enemies", "lurking"))
	assert.Equal(t, Filters{}, ParseFilters("", "", "", ""))

	f := ParseFilters("planned", "everyone", "", "not_participating")
	assert.Equal(t, models.CategoryPlanned, f.Category)
	assert.Empty(t, f.Visibility)
	assert.Equal(t, NotParticipating, f.Participation)
}

func TestIDSet(t *testing.T) {
	var empty IDSet
	assert.False(t, empty.Has("x"))

	s := NewIDSet("b", "a", "b")
	assert.True(t, s.Has("a"))
	assert.Equal(t, []string{"a", "b"}, s.Slice())
}
