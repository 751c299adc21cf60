package query

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/chronicle/internal/domain"
)

// Suggestion is a title that loosely matches a search that found nothing
type Suggestion struct {
	Item     domain.MediaItem
	Distance int // lower is closer
}

// Suggest ranks titles that fuzzily resemble query, for "did you mean"
// hints. Titles containing the query's letters in order rank first; titles
// within a small edit distance follow.
func Suggest(query string, items []domain.MediaItem, limit int) []Suggestion {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(items) == 0 || limit <= 0 {
		return nil
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = strings.ToLower(item.Title)
	}

	best := make(map[int]int) // item index -> distance
	for _, rank := range fuzzy.RankFindFold(query, titles) {
		best[rank.OriginalIndex] = rank.Distance
	}

	maxTypos := allowedTypos(len([]rune(query)))
	for i, title := range titles {
		if _, ok := best[i]; ok {
			continue
		}
		// Typos are scored behind any in-order match
		if d := fuzzy.LevenshteinDistance(query, title); d <= maxTypos {
			best[i] = 100 + d
		}
	}

	suggestions := make([]Suggestion, 0, len(best))
	for idx, dist := range best {
		suggestions = append(suggestions, Suggestion{Item: items[idx], Distance: dist})
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Distance != suggestions[j].Distance {
			return suggestions[i].Distance < suggestions[j].Distance
		}
		return suggestions[i].Item.Title < suggestions[j].Item.Title
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// allowedTypos returns the edit distance tolerated for a query length
func allowedTypos(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}
