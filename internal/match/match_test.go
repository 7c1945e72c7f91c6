package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollyoak/arcanum/internal/tarot"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "identical strings", a: "the fool", b: "the fool", want: 0},
		{name: "empty against non-empty", a: "", b: "moon", want: 4},
		{name: "single substitution", a: "star", b: "scar", want: 1},
		{name: "insertion and deletion", a: "kitten", b: "sitting", want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LevenshteinDistance(tt.a, tt.b))
			assert.Equal(t, tt.want, LevenshteinDistance(tt.b, tt.a))
		})
	}
}

func TestFindBestMatch(t *testing.T) {
	names := make([]string, 0, 78)
	for _, c := range tarot.Deck() {
		names = append(names, c.Name)
	}

	t.Run("exact name matches with similarity 1.0", func(t *testing.T) {
		got, ok := FindBestMatch("The Fool", names, DefaultThreshold)
		require.True(t, ok)
		assert.Equal(t, "The Fool", got)
		assert.Equal(t, 1.0, Similarity("The Fool", got))
	})

	t.Run("close speech transcript resolves", func(t *testing.T) {
		got, ok := FindBestMatch("ten of wand", names, DefaultThreshold)
		require.True(t, ok)
		assert.Equal(t, "Ten of Wands", got)
	})

	t.Run("gibberish finds no match", func(t *testing.T) {
		_, ok := FindBestMatch("Xyzzy", names, DefaultThreshold)
		assert.False(t, ok)
	})

	t.Run("vision threshold is stricter", func(t *testing.T) {
		_, ok := FindBestMatch("emp", names, VisionThreshold)
		assert.False(t, ok)
	})

	t.Run("empty query finds no match", func(t *testing.T) {
		_, ok := FindBestMatch("", names, DefaultThreshold)
		assert.False(t, ok)
	})

	t.Run("deterministic for repeated calls", func(t *testing.T) {
		first, ok1 := FindBestMatch("nine of cup", names, DefaultThreshold)
		second, ok2 := FindBestMatch("nine of cup", names, DefaultThreshold)
		assert.Equal(t, ok1, ok2)
		assert.Equal(t, first, second)
	})
}
