package slicekit

import "fmt"

// Extent is one axis length in a dataset shape. An axis either has a fixed
// length known up front or is variable, resolved later from the length of
// that axis's label sequence in the dataset metadata.
type Extent struct {
	n        int
	variable bool
}

// Fixed returns an extent with a concrete length.
func Fixed(n int) Extent { return Extent{n: n} }

// Var marks a variable-length axis.
var Var = Extent{variable: true}

// IsVar reports whether the extent is the variable marker.
func (e Extent) IsVar() bool { return e.variable }

// Len returns the fixed length, or 0 for a variable extent.
func (e Extent) Len() int { return e.n }

// Shape is the ordered per-axis extent of a dataset. At most one axis is
// expected to be variable.
type Shape []Extent

// ShapeOf builds a Shape from concrete axis lengths.
func ShapeOf(dims ...int) Shape {
	s := make(Shape, len(dims))
	for i, d := range dims {
		s[i] = Fixed(d)
	}
	return s
}

// VarAxis returns the index of the first variable axis, if any.
func (s Shape) VarAxis() (int, bool) {
	for i, e := range s {
		if e.variable {
			return i, true
		}
	}
	return 0, false
}

// Resolve replaces every variable axis with the length of that axis's label
// sequence and returns the concrete per-axis lengths. A variable axis with no
// label-length entry is a configuration error.
func (s Shape) Resolve(labelLengths map[int]int) ([]int, error) {
	out := make([]int, len(s))
	for i, e := range s {
		if e.variable {
			n, ok := labelLengths[i]
			if !ok {
				return nil, fmt.Errorf("%w: axis %d is variable but has no label lengths", ErrConfiguration, i)
			}
			out[i] = n
		} else {
			out[i] = e.n
		}
		if out[i] <= 0 {
			return nil, fmt.Errorf("%w: axis %d resolves to non-positive length %d", ErrConfiguration, i, out[i])
		}
	}
	return out, nil
}
