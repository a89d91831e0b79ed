package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuggestion(t *testing.T) {
	s := ParseSuggestion("Brass table lamp | Furniture | 40 | Some tarnish on the base")
	require.NotNil(t, s)
	assert.Equal(t, "Brass table lamp", s.Name)
	assert.Equal(t, "Furniture", s.Category)
	assert.Equal(t, 40.0, s.Value)
	assert.Equal(t, "Some tarnish on the base", s.Note)
}

func TestParseSuggestionSkipsPreamble(t *testing.T) {
	raw := "Here is the item I can see:\n\nOak bookshelf | Furniture | 120 | Solid condition"
	s := ParseSuggestion(raw)
	require.NotNil(t, s)
	assert.Equal(t, "Oak bookshelf", s.Name)
	assert.Equal(t, raw, s.RawResponse)
}

func TestParseSuggestionPartialLine(t *testing.T) {
	s := ParseSuggestion("Old radio | Electronics")
	require.NotNil(t, s)
	assert.Equal(t, "Old radio", s.Name)
	assert.Equal(t, "Electronics", s.Category)
	assert.Zero(t, s.Value)
	assert.Empty(t, s.Note)
}

func TestParseSuggestionNoUsableLine(t *testing.T) {
	assert.Nil(t, ParseSuggestion(""))
	assert.Nil(t, ParseSuggestion("I cannot identify this item."))
	assert.Nil(t, ParseSuggestion(" | Furniture | 10 | empty name"))
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"40", 40},
		{"$40", 40},
		{"40.50", 40.5},
		{"about 75 dollars", 75},
		{"unknown", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseValue(tt.in), "input %q", tt.in)
	}
}
