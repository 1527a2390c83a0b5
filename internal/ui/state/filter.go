package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterItems returns items matching the supplied query, keeping their
// original order. Fuzzy matches win; a plain substring match is the fallback.
func FilterItems(items []string, query string) []string {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return append([]string(nil), items...)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, items)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]string, 0, len(matches))
		for idx, item := range items {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, item)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]string, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), lower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// BestMatchIndex returns the best index for the query among items, or -1 when
// items is empty.
func BestMatchIndex(items []string, query string) int {
	if len(items) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if strings.EqualFold(item, trimmed) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item), lower) {
			return i
		}
	}
	for i, item := range items {
		if strings.Contains(strings.ToLower(item), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, items)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	return best.OriginalIndex
}
