package slicekit

import "fmt"

// Windows enumerates one ND window per logical step of the plan, in the
// canonical order: the primary slice axis varies fastest, later slice axes
// progressively slower, so consecutive windows share every selector except
// the primary axis within each bank.
func (p *Plan) Windows() ([]Window, error) {
	windows, _, err := p.windows()
	return windows, err
}

func (p *Plan) windows() ([]Window, *sliceIndexTable, error) {
	tbl, err := p.sliceIndexTable()
	if err != nil {
		return nil, nil, err
	}
	core, err := p.coreSelectors()
	if err != nil {
		return nil, nil, err
	}

	n := tbl.n
	if len(p.pattern.Slice) == 0 {
		n = len(p.pattern.Fixed)
	}

	ndims := len(p.resolved)
	out := make([]Window, 0, n)
	for i := 0; i < n; i++ {
		w := make(Window, ndims)
		for d := range w {
			w[d] = All()
		}
		for j, axis := range p.pattern.Core {
			w[axis] = core[j]
		}
		for _, f := range p.pattern.Fixed {
			w[f.Axis] = Index(f.Value)
		}
		for j, axis := range p.pattern.Slice {
			idx := tbl.axes[j][i]
			w[axis] = Range(idx, idx+1, 1)
		}
		out = append(out, p.dropVarAxis(w))
	}
	return out, tbl, nil
}

// coreSelectors builds the per-axis window for every core axis. A chunked
// core axis must cover exactly one step point; its window is the centered
// run of chunk positions around that point.
func (p *Plan) coreSelectors() ([]Selector, error) {
	sel := make([]Selector, len(p.pattern.Core))
	for i, axis := range p.pattern.Core {
		pv := p.preview[axis]
		if pv.Chunk > 1 {
			if pv.Stop-pv.Start != 1 {
				return nil, fmt.Errorf("%w: core axis %d does not support multiple step points with chunk %d",
					ErrUnsupportedPattern, axis, pv.Chunk)
			}
			half := pv.Chunk / 2
			start := pv.Start - half
			if start < 0 {
				return nil, fmt.Errorf("%w: chunk %d around step point %d on axis %d reaches negative index %d",
					ErrInvalidSlice, pv.Chunk, pv.Start, axis, start)
			}
			sel[i] = Range(start, pv.Start+pv.Chunk-half, 1)
			continue
		}
		sel[i] = Range(pv.Start, pv.Stop, pv.Step)
	}
	return sel, nil
}

// dropVarAxis removes the variable axis's selector from a window; variable
// axes are never independently addressed.
func (p *Plan) dropVarAxis(w Window) Window {
	v, ok := p.shape.VarAxis()
	if !ok {
		return w
	}
	out := make(Window, 0, len(w)-1)
	out = append(out, w[:v]...)
	return append(out, w[v+1:]...)
}
