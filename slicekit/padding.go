package slicekit

import "fmt"

// AxisPad is the requested (before, after) pad on one axis.
type AxisPad struct {
	Before int
	After  int
}

// PadSpec maps axis index to its requested replicate-pad amounts. A nil or
// empty spec means no padding.
type PadSpec map[int]AxisPad

// Validate checks that every padded axis exists and the amounts are
// non-negative.
func (s PadSpec) Validate(ndims int) error {
	for axis, p := range s {
		if axis < 0 || axis >= ndims {
			return fmt.Errorf("%w: padding axis %d out of range for %d dimensions", ErrConfiguration, axis, ndims)
		}
		if p.Before < 0 || p.After < 0 {
			return fmt.Errorf("%w: padding axis %d has negative amounts (%d,%d)", ErrConfiguration, axis, p.Before, p.After)
		}
	}
	return nil
}

// PadAmounts holds per-window-axis pad totals, as returned by a padded read
// and consumed by the inverse crop.
type PadAmounts []AxisPad

// effectivePadding returns the spec to apply for one batch: the base spec,
// plus an extra after-pad on the primary axis when the batch falls short of
// the uniform frame count. The base spec is never modified, so later batches
// always start from the pristine spec.
func effectivePadding(base PadSpec, primary, tailAfter int) PadSpec {
	if tailAfter <= 0 {
		return base
	}
	out := make(PadSpec, len(base)+1)
	for axis, p := range base {
		out[axis] = p
	}
	p := out[primary]
	p.After += tailAfter
	out[primary] = p
	return out
}

// tailShortfall reports how many frames the window's primary-axis selector
// falls short of the uniform batch length.
func tailShortfall(w Window, primary, frames int) int {
	if primary < 0 || primary >= len(w) {
		return 0
	}
	sel := w[primary]
	if sel.Kind != KindRange {
		return 0
	}
	if d := frames - sel.Len(0); d > 0 {
		return d
	}
	return 0
}

// clipAxisPadding widens a selector by the requested pad, clamps the widened
// bounds to [0, extent) and reports how much of the widening was lost to
// clamping and must be recovered by edge replication after the read. An
// unbounded selector stays unbounded and receives no pad; an index selector
// is promoted to a unit range before widening.
func clipAxisPadding(sel Selector, pad AxisPad, extent int) (Selector, AxisPad, error) {
	if pad.Before == 0 && pad.After == 0 {
		return sel, AxisPad{}, nil
	}
	switch sel.Kind {
	case KindAll:
		return sel, AxisPad{}, nil
	case KindIndex:
		sel = Range(sel.Index, sel.Index+1, 1)
	}

	lo := sel.Start - pad.Before
	hi := sel.Stop + pad.After
	var repl AxisPad
	if lo < 0 {
		repl.Before = -lo
		lo = 0
	}
	if hi > extent {
		repl.After = hi - extent
		hi = extent
	}
	if lo > hi {
		return Selector{}, AxisPad{}, fmt.Errorf("%w: padded bounds clip to reversed range [%d, %d) on an axis of extent %d",
			ErrInvalidSlice, lo, hi, extent)
	}
	return Range(lo, hi, sel.Step), repl, nil
}
