package slicekit

import "fmt"

// AxisPreview restricts one axis to the half-open range [Start, Stop) walked
// with the given step. Chunk > 1 materializes the axis as centered groups of
// Chunk consecutive positions around each step point instead of single
// positions.
type AxisPreview struct {
	Start int
	Stop  int
	Step  int
	Chunk int
}

// FullAxis previews an entire axis of the given extent.
func FullAxis(extent int) AxisPreview {
	return AxisPreview{Stop: extent, Step: 1, Chunk: 1}
}

// Count returns the number of step points in the preview range.
func (a AxisPreview) Count() int {
	if a.Stop <= a.Start {
		return 0
	}
	return (a.Stop - a.Start + a.Step - 1) / a.Step
}

// Preview holds one AxisPreview per dataset axis.
type Preview []AxisPreview

// FullPreview previews an entire dataset of the given resolved shape.
func FullPreview(shape []int) Preview {
	p := make(Preview, len(shape))
	for i, n := range shape {
		p[i] = FullAxis(n)
	}
	return p
}

// Validate checks the per-axis range invariants.
func (p Preview) Validate() error {
	for axis, a := range p {
		if a.Start < 0 || a.Stop < a.Start {
			return fmt.Errorf("%w: preview axis %d has range [%d, %d)", ErrConfiguration, axis, a.Start, a.Stop)
		}
		if a.Step < 1 {
			return fmt.Errorf("%w: preview axis %d has step %d", ErrConfiguration, axis, a.Step)
		}
		if a.Chunk < 1 {
			return fmt.Errorf("%w: preview axis %d has chunk %d", ErrConfiguration, axis, a.Chunk)
		}
	}
	return nil
}
