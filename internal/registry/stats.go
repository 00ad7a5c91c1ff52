package registry

import "sort"

// CallSignCount pairs a call sign with the number of plates registered
// under it.
type CallSignCount struct {
	CallSign string
	Count    int
}

// Stats summarizes a snapshot for the statistics view.
type Stats struct {
	TotalVehicles   int
	UniqueCallSigns int
	TopCallSigns    []CallSignCount
}

// Summarize computes summary statistics over rows. TopCallSigns holds at
// most topN entries ordered by count descending, ties broken by call sign
// so the output is deterministic.
func Summarize(rows []Row, topN int) Stats {
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.CallSign]++
	}

	top := make([]CallSignCount, 0, len(counts))
	for sign, n := range counts {
		top = append(top, CallSignCount{CallSign: sign, Count: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].CallSign < top[j].CallSign
	})
	if topN > 0 && len(top) > topN {
		top = top[:topN]
	}

	return Stats{
		TotalVehicles:   len(rows),
		UniqueCallSigns: len(counts),
		TopCallSigns:    top,
	}
}
