package slicekit

import "fmt"

// FrameRange is the half-open range of absolute batch (frame) indices one
// rank owns.
type FrameRange struct {
	Start int
	Stop  int
}

// Count returns the number of frames in the range.
func (r FrameRange) Count() int { return r.Stop - r.Start }

// WindowsForRank returns the ordered batch list owned by the given rank plus
// the absolute frame indices of those batches. Every rank derives its
// partition independently from identical inputs: the batch sequence is split
// into ranks contiguous parts whose sizes differ by at most one, larger
// parts first. A rank beyond the number of non-empty parts gets an empty
// list; that is not an error.
func (p *Plan) WindowsForRank(rank, ranks int) ([]Window, FrameRange, error) {
	if ranks < 1 || rank < 0 || rank >= ranks {
		return nil, FrameRange{}, fmt.Errorf("%w: rank %d out of range for %d ranks", ErrConfiguration, rank, ranks)
	}

	grouped, err := p.GroupedWindows()
	if err != nil {
		return nil, FrameRange{}, err
	}

	counts := splitCounts(len(grouped), ranks)
	start := 0
	for r := 0; r < rank; r++ {
		start += counts[r]
	}
	frames := FrameRange{Start: start, Stop: start + counts[rank]}
	if frames.Count() == 0 {
		return nil, frames, nil
	}
	return grouped[frames.Start:frames.Stop], frames, nil
}

// splitCounts splits n items into parts contiguous groups, sizes differing
// by at most one with the extra items assigned to the earliest groups.
func splitCounts(n, parts int) []int {
	counts := make([]int, parts)
	base, extra := n/parts, n%parts
	for i := range counts {
		counts[i] = base
		if i < extra {
			counts[i]++
		}
	}
	return counts
}
