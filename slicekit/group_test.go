package slicekit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupedWindowsBatches(t *testing.T) {
	p := mustPlan(t, ShapeOf(100, 5, 5),
		Pattern{Core: []int{1, 2}, Slice: []int{0}},
		FullPreview([]int{100, 5, 5}),
		WithBatchSize(10))

	batches, err := p.GroupedWindows()
	require.NoError(t, err)
	require.Len(t, batches, 10)
	for i, b := range batches {
		assert.Equal(t, Range(10*i, 10*i+10, 1), b[0])
		assert.Equal(t, Range(0, 5, 1), b[1])
		assert.Equal(t, Range(0, 5, 1), b[2])
	}
}

func TestGroupedWindowsKeepStep(t *testing.T) {
	pv := FullPreview([]int{10, 4})
	pv[0] = AxisPreview{Start: 0, Stop: 10, Step: 2, Chunk: 1}
	p := mustPlan(t, ShapeOf(10, 4), Pattern{Core: []int{1}, Slice: []int{0}}, pv,
		WithBatchSize(2))

	batches, err := p.GroupedWindows()
	require.NoError(t, err)
	require.Len(t, batches, 3)
	assert.Equal(t, Range(0, 3, 2), batches[0][0])
	assert.Equal(t, Range(4, 7, 2), batches[1][0])
	assert.Equal(t, Range(8, 9, 2), batches[2][0])
}

func TestGroupedWindowsBanking(t *testing.T) {
	// two slice axes: banks of the primary sequence length, each split by
	// the batch size, with the secondary selector invariant per bank
	p := mustPlan(t, ShapeOf(3, 4), Pattern{Slice: []int{0, 1}}, FullPreview([]int{3, 4}),
		WithBatchSize(2))

	batches, err := p.GroupedWindows()
	require.NoError(t, err)
	require.Len(t, batches, 8)
	for bank := 0; bank < 4; bank++ {
		first, second := batches[2*bank], batches[2*bank+1]
		assert.Equal(t, Range(0, 2, 1), first[0])
		assert.Equal(t, Range(2, 3, 1), second[0])
		assert.Equal(t, Range(bank, bank+1, 1), first[1])
		assert.Equal(t, Range(bank, bank+1, 1), second[1])
	}
}

func TestGroupedWindowsCoverage(t *testing.T) {
	p := mustPlan(t, ShapeOf(100, 5, 5),
		Pattern{Core: []int{1, 2}, Slice: []int{0}},
		FullPreview([]int{100, 5, 5}),
		WithBatchSize(7))

	batches, err := p.GroupedWindows()
	require.NoError(t, err)

	// consecutive batch spans tile [0, 100) with no gaps or overlaps
	next := 0
	for _, b := range batches {
		assert.Equal(t, next, b[0].Start)
		next = b[0].Stop
	}
	assert.Equal(t, 100, next)
}

func TestGroupedWindowsNoSliceAxes(t *testing.T) {
	p := mustPlan(t, ShapeOf(5, 4),
		Pattern{Core: []int{1}, Fixed: []FixedAxis{{Axis: 0, Value: 2}}},
		FullPreview([]int{5, 4}))

	_, err := p.GroupedWindows()
	assert.ErrorIs(t, err, ErrUnsupportedPattern)
}
