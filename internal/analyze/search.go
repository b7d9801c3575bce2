package analyze

import (
	"sort"
	"strings"
)

// SearchResult pairs a matched entry with its tree for navigation.
type SearchResult struct {
	Entry *DirEntry
}

// SearchTreeBounded finds entries whose name contains query
// (case-insensitive), largest first, capped at limit.
func SearchTreeBounded(root *DirEntry, query string, limit int) []SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if root == nil || query == "" || limit <= 0 {
		return nil
	}

	var matches []SearchResult
	var walk func(e *DirEntry)
	walk = func(e *DirEntry) {
		if e != root && strings.Contains(strings.ToLower(e.Name), query) {
			matches = append(matches, SearchResult{Entry: e})
		}
		for _, c := range e.Children {
			walk(c)
		}
	}
	walk(root)

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Entry.Size > matches[j].Entry.Size
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
