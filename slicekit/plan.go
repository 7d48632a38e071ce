package slicekit

import "fmt"

// Plan ties a resolved shape, an access pattern and a preview window together
// and derives the ordered window, batch and per-rank sequences. A plan is
// validated once on construction; everything derived from it afterwards is
// deterministic, so independent worker processes built from identical inputs
// always agree.
type Plan struct {
	shape    Shape
	pattern  Pattern
	preview  Preview
	resolved []int
	batch    int
	padding  PadSpec
	uniform  bool
}

// PlanOption configures plan construction.
type PlanOption func(*planOptions)

type planOptions struct {
	batchSize    int
	labelLengths map[int]int
	padding      PadSpec
	uniform      bool
}

func defaultPlanOptions() *planOptions {
	return &planOptions{batchSize: 1}
}

// WithBatchSize sets the maximum number of windows merged into one batch.
func WithBatchSize(n int) PlanOption {
	return func(o *planOptions) {
		o.batchSize = n
	}
}

// WithLabelLengths supplies the per-axis label counts used to resolve a
// variable axis.
func WithLabelLengths(lengths map[int]int) PlanOption {
	return func(o *planOptions) {
		o.labelLengths = lengths
	}
}

// WithPadding sets the per-axis replicate-pad amounts applied around every
// window read.
func WithPadding(spec PadSpec) PlanOption {
	return func(o *planOptions) {
		o.padding = spec
	}
}

// WithUniformBatches pads a short final batch after its end on the primary
// slice axis so every batch has the full batch-size length.
func WithUniformBatches() PlanOption {
	return func(o *planOptions) {
		o.uniform = true
	}
}

// NewPlan validates the shape, pattern and preview and returns a plan.
func NewPlan(shape Shape, pattern Pattern, preview Preview, opts ...PlanOption) (*Plan, error) {
	o := defaultPlanOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.batchSize < 1 {
		return nil, fmt.Errorf("%w: batch size %d must be at least 1", ErrConfiguration, o.batchSize)
	}

	resolved, err := shape.Resolve(o.labelLengths)
	if err != nil {
		return nil, err
	}
	roles, err := pattern.roles(len(resolved))
	if err != nil {
		return nil, err
	}
	if len(preview) != len(resolved) {
		return nil, fmt.Errorf("%w: preview has %d axes, shape has %d", ErrConfiguration, len(preview), len(resolved))
	}
	if err := preview.Validate(); err != nil {
		return nil, err
	}
	if v, ok := shape.VarAxis(); ok {
		if roles[v] != roleCore {
			return nil, fmt.Errorf("%w: variable axis %d must be a core axis", ErrConfiguration, v)
		}
		if _, padded := o.padding[v]; padded {
			return nil, fmt.Errorf("%w: variable axis %d cannot be padded", ErrConfiguration, v)
		}
	}
	if err := o.padding.Validate(len(resolved)); err != nil {
		return nil, err
	}

	return &Plan{
		shape:    shape,
		pattern:  pattern,
		preview:  preview,
		resolved: resolved,
		batch:    o.batchSize,
		padding:  o.padding,
		uniform:  o.uniform,
	}, nil
}

// ResolvedShape returns the concrete per-axis lengths.
func (p *Plan) ResolvedShape() []int {
	out := make([]int, len(p.resolved))
	copy(out, p.resolved)
	return out
}

// BatchSize returns the maximum windows per batch.
func (p *Plan) BatchSize() int { return p.batch }

// PrimaryAxis returns the first slice axis, if the pattern declares one.
func (p *Plan) PrimaryAxis() (int, bool) { return p.pattern.PrimaryAxis() }

// AxisMask reports which positions of a slice axis are touched by the
// preview, as a dense membership vector over the axis extent.
func (p *Plan) AxisMask(axis int) ([]bool, error) {
	isSlice := false
	for _, a := range p.pattern.Slice {
		if a == axis {
			isSlice = true
			break
		}
	}
	if !isSlice {
		return nil, fmt.Errorf("%w: axis %d is not a slice axis", ErrConfiguration, axis)
	}

	seq, err := p.sliceAxisSequence(axis)
	if err != nil {
		return nil, err
	}
	mask := make([]bool, p.resolved[axis])
	for _, i := range seq {
		if i >= len(mask) {
			return nil, fmt.Errorf("%w: index %d outside axis %d extent %d", ErrInvalidSlice, i, axis, len(mask))
		}
		mask[i] = true
	}
	return mask, nil
}

// windowAxis maps a dataset axis index to its position within a window,
// accounting for the dropped variable axis.
func (p *Plan) windowAxis(axis int) int {
	if v, ok := p.shape.VarAxis(); ok && axis > v {
		return axis - 1
	}
	return axis
}

// windowExtents returns the axis extents aligned with window selectors, with
// the variable axis removed.
func (p *Plan) windowExtents() []int {
	v, ok := p.shape.VarAxis()
	if !ok {
		return p.ResolvedShape()
	}
	out := make([]int, 0, len(p.resolved)-1)
	out = append(out, p.resolved[:v]...)
	return append(out, p.resolved[v+1:]...)
}

// windowPadSpec remaps the padding spec from dataset axes to window axes.
func (p *Plan) windowPadSpec() PadSpec {
	if len(p.padding) == 0 {
		return nil
	}
	out := make(PadSpec, len(p.padding))
	for axis, pad := range p.padding {
		out[p.windowAxis(axis)] = pad
	}
	return out
}
