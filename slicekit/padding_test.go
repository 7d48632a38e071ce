package slicekit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-slicekit/internal/block"
)

// gridReader serves windows from an in-memory dataset whose element at flat
// position i has the byte value i.
type gridReader struct {
	dims     []int
	data     []byte
	lastRead Window
}

func newGridReader(dims ...int) *gridReader {
	n := 1
	for _, d := range dims {
		n *= d
	}
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return &gridReader{dims: dims, data: data}
}

func (g *gridReader) axisIndices(s Selector, extent int) []int {
	switch s.Kind {
	case KindAll:
		out := make([]int, extent)
		for i := range out {
			out[i] = i
		}
		return out
	case KindIndex:
		return []int{s.Index}
	default:
		out := []int{}
		for v := s.Start; v < s.Stop; v += s.Step {
			out = append(out, v)
		}
		return out
	}
}

func (g *gridReader) ReadWindow(w Window) (*block.Block, error) {
	g.lastRead = w.Clone()

	idx := make([][]int, len(w))
	dims := make([]int, len(w))
	for d, s := range w {
		idx[d] = g.axisIndices(s, g.dims[d])
		dims[d] = len(idx[d])
	}

	srcStrides := make([]int, len(g.dims))
	st := 1
	for d := len(g.dims) - 1; d >= 0; d-- {
		srcStrides[d] = st
		st *= g.dims[d]
	}

	out := block.New(dims, 1)
	for n := 0; n < out.NumElements(); n++ {
		src := 0
		rem := n
		for d := len(w) - 1; d >= 0; d-- {
			src += idx[d][rem%dims[d]] * srcStrides[d]
			rem /= dims[d]
		}
		out.Data[n] = g.data[src]
	}
	return out, nil
}

func TestClipAxisPadding(t *testing.T) {
	// interior window: the whole pad is read, nothing replicated
	sel, repl, err := clipAxisPadding(Range(4, 6, 1), AxisPad{Before: 2, After: 3}, 20)
	require.NoError(t, err)
	assert.Equal(t, Range(2, 9, 1), sel)
	assert.Equal(t, AxisPad{}, repl)

	// clamped at the leading boundary: the clipped amount is replicated
	sel, repl, err = clipAxisPadding(Range(0, 2, 1), AxisPad{Before: 3}, 6)
	require.NoError(t, err)
	assert.Equal(t, Range(0, 2, 1), sel)
	assert.Equal(t, AxisPad{Before: 3}, repl)

	// index selectors are promoted to unit ranges
	sel, repl, err = clipAxisPadding(Index(5), AxisPad{Before: 1, After: 1}, 10)
	require.NoError(t, err)
	assert.Equal(t, Range(4, 7, 1), sel)
	assert.Equal(t, AxisPad{}, repl)

	// unbounded selectors stay unbounded and receive no pad
	sel, repl, err = clipAxisPadding(All(), AxisPad{Before: 2, After: 2}, 10)
	require.NoError(t, err)
	assert.Equal(t, All(), sel)
	assert.Equal(t, AxisPad{}, repl)

	// both sides overflowing a small axis clamp independently
	sel, repl, err = clipAxisPadding(Range(1, 2, 1), AxisPad{Before: 5, After: 5}, 3)
	require.NoError(t, err)
	assert.Equal(t, Range(0, 3, 1), sel)
	assert.Equal(t, AxisPad{Before: 4, After: 4}, repl)

	// a window beyond the axis extent clips to a reversed range
	_, _, err = clipAxisPadding(Range(5, 6, 1), AxisPad{After: 1}, 3)
	assert.ErrorIs(t, err, ErrInvalidSlice)
}

func TestPaddedReadRoundTrip(t *testing.T) {
	r := newGridReader(8, 6)
	p := mustPlan(t, ShapeOf(8, 6), Pattern{Core: []int{1}, Slice: []int{0}},
		FullPreview([]int{8, 6}),
		WithBatchSize(2), WithPadding(PadSpec{0: {Before: 1, After: 1}}))
	pd := p.Padder(r)

	w := Window{Range(2, 4, 1), Range(0, 6, 1)}
	padded, amounts, err := pd.ReadPadded(w)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 6}, padded.Dims)
	assert.Equal(t, AxisPad{Before: 1, After: 1}, amounts[0])

	un, err := pd.Unpad(padded, amounts)
	require.NoError(t, err)

	plain, err := r.ReadWindow(w)
	require.NoError(t, err)
	assert.Equal(t, plain.Dims, un.Dims)
	assert.Equal(t, plain.Data, un.Data)
}

func TestPaddedReadBoundaryClamp(t *testing.T) {
	r := newGridReader(8, 6)
	p := mustPlan(t, ShapeOf(8, 6), Pattern{Core: []int{1}, Slice: []int{0}},
		FullPreview([]int{8, 6}),
		WithPadding(PadSpec{0: {Before: 3}}))
	pd := p.Padder(r)

	w := Window{Range(0, 2, 1), Range(0, 6, 1)}
	padded, amounts, err := pd.ReadPadded(w)
	require.NoError(t, err)

	// the read never leaves the dataset
	assert.Equal(t, Range(0, 2, 1), r.lastRead[0])

	// the clipped amount is recovered by replicating row 0
	require.Equal(t, []int{5, 6}, padded.Dims)
	row0 := []byte{0, 1, 2, 3, 4, 5}
	assert.Equal(t, row0, padded.Data[0:6])
	assert.Equal(t, row0, padded.Data[6:12])
	assert.Equal(t, row0, padded.Data[12:18])
	assert.Equal(t, row0, padded.Data[18:24])
	assert.Equal(t, []byte{6, 7, 8, 9, 10, 11}, padded.Data[24:30])

	// the inverse crop still recovers the original window
	un, err := pd.Unpad(padded, amounts)
	require.NoError(t, err)
	plain, err := r.ReadWindow(w)
	require.NoError(t, err)
	assert.Equal(t, plain.Data, un.Data)
}

func TestPaddedReadBothSidesOverflow(t *testing.T) {
	r := newGridReader(3, 4)
	p := mustPlan(t, ShapeOf(3, 4), Pattern{Core: []int{1}, Slice: []int{0}},
		FullPreview([]int{3, 4}),
		WithPadding(PadSpec{0: {Before: 5, After: 5}}))
	pd := p.Padder(r)

	w := Window{Range(1, 2, 1), Range(0, 4, 1)}
	padded, amounts, err := pd.ReadPadded(w)
	require.NoError(t, err)
	assert.Equal(t, []int{11, 4}, padded.Dims)
	assert.Equal(t, AxisPad{Before: 5, After: 5}, amounts[0])

	un, err := pd.Unpad(padded, amounts)
	require.NoError(t, err)
	plain, err := r.ReadWindow(w)
	require.NoError(t, err)
	assert.Equal(t, plain.Data, un.Data)
}

func TestPaddedReadReversedWindow(t *testing.T) {
	r := newGridReader(3, 4)
	p := mustPlan(t, ShapeOf(3, 4), Pattern{Core: []int{1}, Slice: []int{0}},
		FullPreview([]int{3, 4}),
		WithPadding(PadSpec{0: {After: 1}}))
	pd := p.Padder(r)

	_, _, err := pd.ReadPadded(Window{Range(5, 6, 1), Range(0, 4, 1)})
	assert.ErrorIs(t, err, ErrInvalidSlice)
}

func TestTailMatching(t *testing.T) {
	r := newGridReader(10, 4)
	p := mustPlan(t, ShapeOf(10, 4), Pattern{Core: []int{1}, Slice: []int{0}},
		FullPreview([]int{10, 4}),
		WithBatchSize(4), WithUniformBatches())
	pd := p.Padder(r)

	batches, err := p.GroupedWindows()
	require.NoError(t, err)
	require.Len(t, batches, 3)

	// the short final batch is padded after its end up to the batch size
	padded, amounts, err := pd.ReadPadded(batches[2])
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4}, padded.Dims)
	assert.Equal(t, AxisPad{After: 2}, amounts[0])

	lastRow := []byte{36, 37, 38, 39}
	assert.Equal(t, lastRow, padded.Data[8:12])
	assert.Equal(t, lastRow, padded.Data[12:16])

	un, err := pd.Unpad(padded, amounts)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, un.Dims)

	// a later full batch is unaffected by the tail adjustment
	full, amounts2, err := pd.ReadPadded(batches[0])
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4}, full.Dims)
	assert.Equal(t, AxisPad{}, amounts2[0])
	plain, err := r.ReadWindow(batches[0])
	require.NoError(t, err)
	assert.Equal(t, plain.Data, full.Data)
}

func TestEffectivePadding(t *testing.T) {
	base := PadSpec{0: {Before: 1, After: 1}}

	eff := effectivePadding(base, 0, 2)
	assert.Equal(t, AxisPad{Before: 1, After: 3}, eff[0])

	// the base spec is never mutated
	assert.Equal(t, AxisPad{Before: 1, After: 1}, base[0])

	// no shortfall returns the base spec untouched
	assert.Equal(t, base, effectivePadding(base, 0, 0))
}

func TestTailShortfall(t *testing.T) {
	w := Window{Range(8, 10, 1), Range(0, 4, 1)}
	assert.Equal(t, 2, tailShortfall(w, 0, 4))
	assert.Equal(t, 0, tailShortfall(w, 1, 4))
	assert.Equal(t, 0, tailShortfall(Window{Range(0, 4, 1)}, 0, 4))
	assert.Equal(t, 0, tailShortfall(w, 5, 4))
}
