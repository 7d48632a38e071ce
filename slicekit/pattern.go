package slicekit

import "fmt"

// FixedAxis pins one axis to a single index.
type FixedAxis struct {
	Axis  int
	Value int
}

// Pattern declares how a computation consumes the axes of a dataset: core
// axes are consumed jointly by one call, slice axes are iterated across
// calls (Slice[0] is the primary axis), and fixed axes are pinned to a given
// index. A pin may also target a slice axis, collapsing its iteration to the
// pinned value.
type Pattern struct {
	Core  []int
	Slice []int
	Fixed []FixedAxis
}

type axisRole uint8

const (
	roleNone axisRole = iota
	roleCore
	roleSlice
	roleFixed
)

// roles assigns a role to every axis and rejects patterns that leave an axis
// unassigned or give it conflicting roles.
func (p Pattern) roles(ndims int) ([]axisRole, error) {
	roles := make([]axisRole, ndims)
	assign := func(axis int, r axisRole) error {
		if axis < 0 || axis >= ndims {
			return fmt.Errorf("%w: axis %d out of range for %d dimensions", ErrConfiguration, axis, ndims)
		}
		switch {
		case roles[axis] == roleNone:
			roles[axis] = r
		case roles[axis] == roleSlice && r == roleFixed:
			// pinning an iterated axis is allowed; iteration collapses
		default:
			return fmt.Errorf("%w: axis %d assigned more than one role", ErrConfiguration, axis)
		}
		return nil
	}
	for _, a := range p.Core {
		if err := assign(a, roleCore); err != nil {
			return nil, err
		}
	}
	for _, a := range p.Slice {
		if err := assign(a, roleSlice); err != nil {
			return nil, err
		}
	}
	for _, f := range p.Fixed {
		if err := assign(f.Axis, roleFixed); err != nil {
			return nil, err
		}
	}
	for axis, r := range roles {
		if r == roleNone {
			return nil, fmt.Errorf("%w: axis %d has no role in the pattern", ErrConfiguration, axis)
		}
	}
	return roles, nil
}

// Validate checks that the pattern covers every axis exactly once.
func (p Pattern) Validate(ndims int) error {
	_, err := p.roles(ndims)
	return err
}

// pinnedValue returns the pin for an axis, if one is declared.
func (p Pattern) pinnedValue(axis int) (int, bool) {
	for _, f := range p.Fixed {
		if f.Axis == axis {
			return f.Value, true
		}
	}
	return 0, false
}

// PrimaryAxis returns the first slice axis, the one along which windows are
// grouped into batches.
func (p Pattern) PrimaryAxis() (int, bool) {
	if len(p.Slice) == 0 {
		return 0, false
	}
	return p.Slice[0], true
}
