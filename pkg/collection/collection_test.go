package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kantor012/Product-Catalog/pkg/collection"
)

func TestMap(t *testing.T) {
	got := collection.Map([]int{1, 2, 3}, func(n int) int { return n * 2 })
	assert.Equal(t, []int{2, 4, 6}, got)
}

func TestFilterAndReject(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5}
	even := func(n int) bool { return n%2 == 0 }

	assert.Equal(t, []int{2, 4}, collection.Filter(nums, even))
	assert.Equal(t, []int{1, 3, 5}, collection.Reject(nums, even))
}

func TestFirstAndContains(t *testing.T) {
	nums := []int{1, 2, 3}

	got, ok := collection.First(nums, func(n int) bool { return n > 1 })
	assert.True(t, ok)
	assert.Equal(t, 2, got)

	_, ok = collection.First(nums, func(n int) bool { return n > 9 })
	assert.False(t, ok)

	assert.True(t, collection.Contains(nums, func(n int) bool { return n == 3 }))
	assert.False(t, collection.Contains(nums, func(n int) bool { return n == 9 }))
}

func TestAverage(t *testing.T) {
	ratings := []float64{5, 4, 3}
	got := collection.Average(ratings, func(f float64) float64 { return f })
	assert.InDelta(t, 4.0, got, 1e-9)

	// Empty slice averages to 0, not NaN.
	assert.Equal(t, 0.0, collection.Average(nil, func(f float64) float64 { return f }))
}
