package slicekit

import (
	"fmt"

	"github.com/robert-malhotra/go-slicekit/internal/block"
)

// WindowReader reads the data selected by a window. Implementations return a
// block with one dimension per window selector; an index selector contributes
// a dimension of length 1. The storage layer behind this interface is an
// external collaborator and is never re-implemented here.
type WindowReader interface {
	ReadWindow(w Window) (*block.Block, error)
}

// Padder performs padded reads and their inverse crops for a plan's windows.
// Each call is pure with respect to the padder's state: tail matching for a
// short final batch is computed per call and never leaks into later calls.
type Padder struct {
	reader  WindowReader
	extents []int
	base    PadSpec
	primary int
	frames  int
}

// Padder returns a padding engine that reads through r using the plan's
// padding spec. When the plan enforces uniform batches, a short final batch
// is padded after its end on the primary axis up to the batch size.
func (p *Plan) Padder(r WindowReader) *Padder {
	pd := &Padder{
		reader:  r,
		extents: p.windowExtents(),
		base:    p.windowPadSpec(),
		primary: -1,
	}
	if primary, ok := p.pattern.PrimaryAxis(); ok {
		pd.primary = p.windowAxis(primary)
	}
	if p.uniform {
		pd.frames = p.batch
	}
	return pd
}

// ReadPadded reads the window extended by the effective padding and returns
// the padded block together with the per-axis amounts needed to invert the
// padding later. The read is clipped at the dataset boundaries; whatever the
// clipping removed is recovered by replicating the boundary values, so the
// padded block always has the full requested extent.
func (pd *Padder) ReadPadded(w Window) (*block.Block, PadAmounts, error) {
	spec := pd.base
	if pd.frames > 0 && pd.primary >= 0 {
		if d := tailShortfall(w, pd.primary, pd.frames); d > 0 {
			spec = effectivePadding(spec, pd.primary, d)
		}
	}

	amounts := make(PadAmounts, len(w))
	if len(spec) == 0 {
		blk, err := pd.reader.ReadWindow(w)
		return blk, amounts, err
	}
	if len(w) != len(pd.extents) {
		return nil, nil, fmt.Errorf("%w: window has %d axes, plan expects %d", ErrConfiguration, len(w), len(pd.extents))
	}

	read := w.Clone()
	before := make([]int, len(w))
	after := make([]int, len(w))
	for axis, pad := range spec {
		sel, repl, err := clipAxisPadding(w[axis], pad, pd.extents[axis])
		if err != nil {
			return nil, nil, err
		}
		read[axis] = sel
		before[axis], after[axis] = repl.Before, repl.After
		if w[axis].Kind != KindAll {
			amounts[axis] = pad
		}
	}

	blk, err := pd.reader.ReadWindow(read)
	if err != nil {
		return nil, nil, err
	}
	padded, err := blk.Pad(before, after)
	if err != nil {
		return nil, nil, err
	}
	return padded, amounts, nil
}

// Unpad crops the per-axis pad amounts back off a padded block. It is the
// exact inverse of the padding applied by ReadPadded with the same amounts.
func (pd *Padder) Unpad(b *block.Block, amounts PadAmounts) (*block.Block, error) {
	before := make([]int, len(amounts))
	after := make([]int, len(amounts))
	for i, a := range amounts {
		before[i], after[i] = a.Before, a.After
	}
	return b.Crop(before, after)
}
