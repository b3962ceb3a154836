package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupedResults_PresenceAndOrder(t *testing.T) {
	r := NewGroupedResults([]string{"Tech", "Finance", "Empty"})

	require.NoError(t, r.Append("Finance", MatchedEntry{Channel: "fin1", MessageID: 1}))
	require.NoError(t, r.Append("Tech", MatchedEntry{Channel: "chX", MessageID: 2}))
	require.NoError(t, r.Append("Tech", MatchedEntry{Channel: "chY", MessageID: 3}))

	// Group order follows configuration, not append order.
	assert.Equal(t, []string{"Tech", "Finance", "Empty"}, r.Groups())

	// Entry order within a group follows append (scan) order.
	tech := r.Entries("Tech")
	require.Len(t, tech, 2)
	assert.Equal(t, "chX", tech[0].Channel)
	assert.Equal(t, "chY", tech[1].Channel)

	// A configured group without matches still exists, with an empty bucket.
	assert.Empty(t, r.Entries("Empty"))
	assert.Equal(t, 3, r.Len())
}

func TestGroupedResults_UnknownGroup(t *testing.T) {
	r := NewGroupedResults([]string{"Tech"})

	err := r.Append("Sports", MatchedEntry{})
	assert.ErrorIs(t, err, ErrUnknownGroup)
	assert.Equal(t, 0, r.Len())
}

func TestGroupedResults_DuplicateGroupNamesCollapse(t *testing.T) {
	r := NewGroupedResults([]string{"Tech", "Tech"})

	assert.Equal(t, []string{"Tech"}, r.Groups())
	require.NoError(t, r.Append("Tech", MatchedEntry{MessageID: 1}))
	assert.Len(t, r.Entries("Tech"), 1)
}
