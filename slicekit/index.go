package slicekit

import "fmt"

// chunkLengthRepeat describes, for each slice axis with the given raw
// sequence lengths, how that axis's sequence must be tiled so that walking
// all axes in lockstep enumerates their Cartesian product exactly once.
//
//	chunk[i]:  repeats of the same value before an increment
//	           (product of the sequence lengths before axis i)
//	length[i]: the axis's raw sequence length
//	repeat[i]: how many times the expanded sequence is tiled
//	           (product of the sequence lengths after axis i)
func chunkLengthRepeat(lengths []int) (chunk, length, repeat []int) {
	if len(lengths) == 0 {
		return []int{1}, []int{1}, []int{1}
	}
	n := len(lengths)
	chunk = make([]int, n)
	length = make([]int, n)
	repeat = make([]int, n)
	for i := 0; i < n; i++ {
		c := 1
		for _, l := range lengths[:i] {
			c *= l
		}
		r := 1
		for _, l := range lengths[i+1:] {
			r *= l
		}
		chunk[i], length[i], repeat[i] = c, lengths[i], r
	}
	return chunk, length, repeat
}

// tileSequence repeats each value repeatEach times and tiles the whole block
// tile times. This is the Kronecker product of the raw sequence with a
// repeatEach-by-tile block of ones, flattened row-major.
func tileSequence(values []int, repeatEach, tile int) []int {
	out := make([]int, 0, len(values)*repeatEach*tile)
	for t := 0; t < tile; t++ {
		for _, v := range values {
			for r := 0; r < repeatEach; r++ {
				out = append(out, v)
			}
		}
	}
	return out
}

// sliceAxisSequence returns the ordered index sequence a slice axis takes.
// A pinned axis collapses to its pin value; a chunked axis expands each step
// point into a centered run of chunk consecutive positions.
func (p *Plan) sliceAxisSequence(axis int) ([]int, error) {
	pv := p.preview[axis]
	if pv.Chunk > 1 {
		return chunkedAxisSequence(axis, pv)
	}
	if v, ok := p.pattern.pinnedValue(axis); ok {
		return []int{v}, nil
	}
	seq := make([]int, 0, pv.Count())
	for v := pv.Start; v < pv.Stop; v += pv.Step {
		seq = append(seq, v)
	}
	return seq, nil
}

// chunkedAxisSequence builds the centered window matrix for a chunked axis
// and flattens it column-major: all chunk offsets for the first step point,
// then the second, and so on.
func chunkedAxisSequence(axis int, pv AxisPreview) ([]int, error) {
	half := pv.Chunk / 2
	seq := make([]int, 0, pv.Count()*pv.Chunk)
	for v := pv.Start; v < pv.Stop; v += pv.Step {
		for o := 0; o < pv.Chunk; o++ {
			idx := v + o - half
			if idx < 0 {
				return nil, fmt.Errorf("%w: chunk %d around step point %d on axis %d reaches negative index %d",
					ErrInvalidSlice, pv.Chunk, v, axis, idx)
			}
			seq = append(seq, idx)
		}
	}
	return seq, nil
}

// sliceIndexTable holds the tiled per-axis index arrays for all slice axes.
// Entry i of every array together form the i-th axis-index combination; the
// primary slice axis varies fastest, so consecutive combinations differ only
// on the primary axis within each bank of length bank.
type sliceIndexTable struct {
	axes [][]int
	n    int
	bank int
}

func (p *Plan) sliceIndexTable() (*sliceIndexTable, error) {
	axes := p.pattern.Slice
	seqs := make([][]int, len(axes))
	lengths := make([]int, len(axes))
	for i, axis := range axes {
		seq, err := p.sliceAxisSequence(axis)
		if err != nil {
			return nil, err
		}
		seqs[i] = seq
		lengths[i] = len(seq)
	}

	chunk, length, repeat := chunkLengthRepeat(lengths)
	tbl := &sliceIndexTable{bank: length[0]}
	if len(axes) == 0 {
		return tbl, nil
	}

	tbl.n = 1
	for _, l := range lengths {
		tbl.n *= l
	}
	tbl.axes = make([][]int, len(axes))
	for i := range axes {
		tbl.axes[i] = tileSequence(seqs[i], chunk[i], repeat[i])
	}
	return tbl, nil
}
