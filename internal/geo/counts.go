package geo

import "sort"

// Tally counts exact names, most frequent first; ties keep first-seen order
func Tally(names []string) []MentionCount {
	counts := []MentionCount{}
	index := make(map[string]int)

	for _, name := range names {
		if i, ok := index[name]; ok {
			counts[i].Count++
			continue
		}
		index[name] = len(counts)
		counts = append(counts, MentionCount{Name: name, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	return counts
}
