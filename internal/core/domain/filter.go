package domain

import (
	"math"
	"sort"
	"strings"
)

// FilterAll is the sentinel dropdown value meaning "no constraint".
const FilterAll = "all"

// MatchesSearch reports whether the query is a case-insensitive substring
// of any of the given fields. An empty query matches everything.
func MatchesSearch(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// MatchesFilter reports whether value passes an exact-match dropdown filter.
// Empty filters and the "all" sentinel pass everything.
func MatchesFilter(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}

// SortOrder is the transaction-history sort mode.
type SortOrder string

const (
	SortNewest  SortOrder = "newest"
	SortOldest  SortOrder = "oldest"
	SortHighest SortOrder = "highest" // by absolute amount
	SortLowest  SortOrder = "lowest"
)

// SortTransactions orders txns in place. The sort is stable, so repeated
// application yields the same result.
func SortTransactions(txns []Transaction, order SortOrder) {
	sort.SliceStable(txns, func(i, j int) bool {
		a, b := &txns[i], &txns[j]
		switch order {
		case SortOldest:
			return a.CreatedAt.Before(b.CreatedAt)
		case SortHighest:
			return math.Abs(a.AmountGrams) > math.Abs(b.AmountGrams)
		case SortLowest:
			return math.Abs(a.AmountGrams) < math.Abs(b.AmountGrams)
		default: // newest
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
}
