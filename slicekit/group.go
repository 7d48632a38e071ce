package slicekit

import "fmt"

// GroupedWindows banks the flat window sequence into consecutive runs along
// the primary slice axis and sub-splits each bank into batches of at most the
// plan's batch size. Each batch is one window whose primary-axis selector
// spans its members' combined range with the preview step preserved; every
// other selector is invariant within a bank and copied from the first member.
func (p *Plan) GroupedWindows() ([]Window, error) {
	primary, ok := p.pattern.PrimaryAxis()
	if !ok {
		return nil, fmt.Errorf("%w: pattern does not support slicing in the requested directions", ErrUnsupportedPattern)
	}

	windows, tbl, err := p.windows()
	if err != nil {
		return nil, err
	}

	g := p.windowAxis(primary)
	step := p.preview[primary].Step

	grouped := make([]Window, 0, (len(windows)+p.batch-1)/p.batch)
	for _, bank := range splitWindows(windows, tbl.bank) {
		for _, sub := range splitWindows(bank, p.batch) {
			first, last := sub[0], sub[len(sub)-1]
			w := first.Clone()
			w[g] = Range(first[g].Start, last[g].Stop, step)
			grouped = append(grouped, w)
		}
	}
	return grouped, nil
}

// splitWindows partitions a window list into consecutive chunks of at most
// size entries.
func splitWindows(list []Window, size int) [][]Window {
	out := make([][]Window, 0, (len(list)+size-1)/size)
	for i := 0; i < len(list); i += size {
		end := i + size
		if end > len(list) {
			end = len(list)
		}
		out = append(out, list[i:end])
	}
	return out
}
