package block

import "fmt"

// Block is an N-dimensional array of fixed-size elements stored contiguously
// in row-major order.
type Block struct {
	Dims     []int
	ElemSize int
	Data     []byte
}

// New allocates a zeroed block with the given dimensions and element size.
func New(dims []int, elemSize int) *Block {
	d := make([]int, len(dims))
	copy(d, dims)
	b := &Block{Dims: d, ElemSize: elemSize}
	b.Data = make([]byte, b.NumElements()*elemSize)
	return b
}

// FromData wraps existing row-major data in a block.
func FromData(dims []int, elemSize int, data []byte) (*Block, error) {
	b := &Block{Dims: dims, ElemSize: elemSize, Data: data}
	if want := b.NumElements() * elemSize; len(data) != want {
		return nil, fmt.Errorf("data length %d does not match dims %v with element size %d (want %d)",
			len(data), dims, elemSize, want)
	}
	return b, nil
}

// NumElements returns the total number of elements.
func (b *Block) NumElements() int {
	n := 1
	for _, d := range b.Dims {
		n *= d
	}
	return n
}

// strides returns the byte stride of each dimension in row-major order.
func strides(dims []int, elemSize int) []int {
	st := make([]int, len(dims))
	s := elemSize
	for d := len(dims) - 1; d >= 0; d-- {
		st[d] = s
		s *= dims[d]
	}
	return st
}

// Pad extends the block by replicating its boundary values before[d] times at
// the leading edge and after[d] times at the trailing edge of each dimension.
func (b *Block) Pad(before, after []int) (*Block, error) {
	nd := len(b.Dims)
	if len(before) != nd || len(after) != nd {
		return nil, fmt.Errorf("pad amounts have %d and %d dimensions, block has %d", len(before), len(after), nd)
	}

	outDims := make([]int, nd)
	padded := false
	for d := 0; d < nd; d++ {
		if before[d] < 0 || after[d] < 0 {
			return nil, fmt.Errorf("negative pad (%d,%d) on dimension %d", before[d], after[d], d)
		}
		if b.Dims[d] == 0 && (before[d] > 0 || after[d] > 0) {
			return nil, fmt.Errorf("cannot replicate the edge of empty dimension %d", d)
		}
		outDims[d] = before[d] + b.Dims[d] + after[d]
		if before[d] > 0 || after[d] > 0 {
			padded = true
		}
	}
	if !padded {
		out := New(b.Dims, b.ElemSize)
		copy(out.Data, b.Data)
		return out, nil
	}

	out := New(outDims, b.ElemSize)
	if out.NumElements() == 0 {
		return out, nil
	}
	padRecursive(out.Data, b.Data, outDims, b.Dims, before,
		strides(outDims, b.ElemSize), strides(b.Dims, b.ElemSize), b.ElemSize, 0, 0, 0)
	return out, nil
}

// padRecursive fills one dimension of the padded output. Outer dimensions
// clamp out-of-range positions to the nearest source edge; the innermost
// dimension copies the interior as one contiguous run and replicates the two
// edge elements into the pad regions.
func padRecursive(
	dst, src []byte,
	outDims, dims, before []int,
	dstStrides, srcStrides []int,
	elemSize int,
	dstOff, srcOff, dim int,
) {
	if dim == len(dims)-1 {
		first := src[srcOff : srcOff+elemSize]
		for i := 0; i < before[dim]; i++ {
			copy(dst[dstOff+i*elemSize:], first)
		}
		copy(dst[dstOff+before[dim]*elemSize:], src[srcOff:srcOff+dims[dim]*elemSize])
		last := src[srcOff+(dims[dim]-1)*elemSize : srcOff+dims[dim]*elemSize]
		for i := before[dim] + dims[dim]; i < outDims[dim]; i++ {
			copy(dst[dstOff+i*elemSize:], last)
		}
		return
	}

	for i := 0; i < outDims[dim]; i++ {
		j := i - before[dim]
		if j < 0 {
			j = 0
		}
		if j > dims[dim]-1 {
			j = dims[dim] - 1
		}
		padRecursive(dst, src, outDims, dims, before, dstStrides, srcStrides, elemSize,
			dstOff+i*dstStrides[dim], srcOff+j*srcStrides[dim], dim+1)
	}
}

// Slice extracts the rectangular region starting at start with count elements
// per dimension.
func (b *Block) Slice(start, count []int) (*Block, error) {
	nd := len(b.Dims)
	if len(start) != nd || len(count) != nd {
		return nil, fmt.Errorf("start and count must have %d dimensions, got %d and %d", nd, len(start), len(count))
	}
	for d := 0; d < nd; d++ {
		if start[d] < 0 || count[d] < 0 || start[d]+count[d] > b.Dims[d] {
			return nil, fmt.Errorf("slice out of bounds: dimension %d, start=%d, count=%d, size=%d",
				d, start[d], count[d], b.Dims[d])
		}
	}

	out := New(count, b.ElemSize)
	if out.NumElements() == 0 || nd == 0 {
		copy(out.Data, b.Data)
		return out, nil
	}
	sliceRecursive(out.Data, b.Data, start, count,
		strides(count, b.ElemSize), strides(b.Dims, b.ElemSize), 0, 0, 0)
	return out, nil
}

// sliceRecursive copies the selected region dimension by dimension, copying
// the innermost dimension as one contiguous run.
func sliceRecursive(
	dst, src []byte,
	start, count []int,
	dstStrides, srcStrides []int,
	dstOff, srcOff, dim int,
) {
	if dim == len(count)-1 {
		n := count[dim] * srcStrides[dim]
		s := srcOff + start[dim]*srcStrides[dim]
		copy(dst[dstOff:dstOff+n], src[s:s+n])
		return
	}
	for i := 0; i < count[dim]; i++ {
		sliceRecursive(dst, src, start, count, dstStrides, srcStrides,
			dstOff+i*dstStrides[dim], srcOff+(start[dim]+i)*srcStrides[dim], dim+1)
	}
}

// Crop removes before[d] leading and after[d] trailing positions from each
// dimension. It is the exact inverse of Pad with the same amounts.
func (b *Block) Crop(before, after []int) (*Block, error) {
	nd := len(b.Dims)
	if len(before) != nd || len(after) != nd {
		return nil, fmt.Errorf("crop amounts have %d and %d dimensions, block has %d", len(before), len(after), nd)
	}
	count := make([]int, nd)
	for d := 0; d < nd; d++ {
		count[d] = b.Dims[d] - before[d] - after[d]
		if before[d] < 0 || after[d] < 0 || count[d] < 0 {
			return nil, fmt.Errorf("crop amounts (%d,%d) exceed dimension %d extent %d",
				before[d], after[d], d, b.Dims[d])
		}
	}
	return b.Slice(before, count)
}
