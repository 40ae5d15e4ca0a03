package heuristics

import (
	"sort"
	"strings"
)

type Frequency struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// RankFrequencies counts items and orders them by descending count, ties in
// first-seen order. Blank items are skipped; limit <= 0 means no limit.
func RankFrequencies(items []string, limit int) []Frequency {
	counts := map[string]int{}
	var order []string
	for _, raw := range items {
		item := strings.TrimSpace(raw)
		if item == "" {
			continue
		}
		if _, seen := counts[item]; !seen {
			order = append(order, item)
		}
		counts[item]++
	}
	out := make([]Frequency, 0, len(order))
	for _, item := range order {
		out = append(out, Frequency{Item: item, Count: counts[item]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Top returns the most frequent item, or "" when there is none.
func Top(freqs []Frequency) string {
	if len(freqs) == 0 {
		return ""
	}
	return freqs[0].Item
}
