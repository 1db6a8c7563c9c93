package sample

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawReturnsRequestedSize(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	got := Draw(r, items, 4)
	require.Len(t, got, 4)
}

func TestDrawWithoutReplacement(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}

	for i := 0; i < 100; i++ {
		got := Draw(r, items, 5)
		seen := make(map[int]bool, len(got))
		for _, v := range got {
			assert.False(t, seen[v], "value %d drawn twice", v)
			seen[v] = true
			assert.Contains(t, items, v)
		}
	}
}

func TestDrawShortSample(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	items := []string{"a", "b", "c"}

	got := Draw(r, items, 10)
	require.Len(t, got, 3)
	assert.ElementsMatch(t, items, got)
}

func TestDrawEmptyAndZero(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	assert.Empty(t, Draw(r, []int{}, 3))
	assert.Empty(t, Draw(r, []int{1, 2}, 0))
	assert.Empty(t, Draw(r, []int{1, 2}, -1))
}

func TestDrawDeterministicWithSeededSource(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	first := Draw(rand.New(rand.NewSource(99)), items, 5)
	second := Draw(rand.New(rand.NewSource(99)), items, 5)
	assert.Equal(t, first, second)
}

func TestDrawDoesNotModifyInput(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	items := []int{1, 2, 3, 4, 5}
	original := []int{1, 2, 3, 4, 5}

	Draw(r, items, 3)
	assert.Equal(t, original, items)
}

func TestDrawIsRoughlyUniform(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	items := []int{0, 1, 2, 3, 4}
	counts := make([]int, len(items))

	const draws = 10000
	for i := 0; i < draws; i++ {
		for _, v := range Draw(r, items, 2) {
			counts[v]++
		}
	}

	// Each element should appear in roughly 2/5 of the draws.
	expected := draws * 2 / len(items)
	for v, count := range counts {
		assert.InDelta(t, expected, count, float64(expected)/5, "element %d drawn %d times", v, count)
	}
}
