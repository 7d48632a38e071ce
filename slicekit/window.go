package slicekit

import (
	"fmt"
	"strconv"
	"strings"
)

// SelectorKind discriminates the selector variants.
type SelectorKind uint8

const (
	// KindAll selects every position on the axis.
	KindAll SelectorKind = iota
	// KindRange selects the half-open range [Start, Stop) with Step.
	KindRange
	// KindIndex selects the single position Index.
	KindIndex
)

// Selector describes the positions one window takes on a single axis.
type Selector struct {
	Kind  SelectorKind
	Start int
	Stop  int
	Step  int
	Index int
}

// All returns a selector covering an entire axis.
func All() Selector { return Selector{Kind: KindAll} }

// Range returns a selector for the half-open range [start, stop) with step.
func Range(start, stop, step int) Selector {
	return Selector{Kind: KindRange, Start: start, Stop: stop, Step: step}
}

// Index returns a selector pinning an axis to a single position.
func Index(i int) Selector { return Selector{Kind: KindIndex, Index: i} }

// Len reports how many positions the selector covers on an axis of the given
// extent.
func (s Selector) Len(extent int) int {
	switch s.Kind {
	case KindAll:
		return extent
	case KindIndex:
		return 1
	default:
		if s.Stop <= s.Start {
			return 0
		}
		step := s.Step
		if step < 1 {
			step = 1
		}
		return (s.Stop - s.Start + step - 1) / step
	}
}

func (s Selector) String() string {
	switch s.Kind {
	case KindAll:
		return ":"
	case KindIndex:
		return strconv.Itoa(s.Index)
	default:
		return fmt.Sprintf("%d:%d:%d", s.Start, s.Stop, s.Step)
	}
}

// Window is one full ND selector tuple, one Selector per axis. Windows are
// treated as immutable once built; Clone before modifying.
type Window []Selector

// Clone returns an independent copy of the window.
func (w Window) Clone() Window {
	out := make(Window, len(w))
	copy(out, w)
	return out
}

func (w Window) String() string {
	parts := make([]string, len(w))
	for i, s := range w {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
