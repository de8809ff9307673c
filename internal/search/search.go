// Package search provides fuzzy helpers for picker filtering and title suggestions.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"
)

// Match is one picker option that survived a query
type Match struct {
	Value          string
	Index          int   // Index in the option slice
	MatchedIndexes []int // Byte offsets that matched (for highlighting)
}

// optionIndex implements sahilm/fuzzy.Source over picker options
type optionIndex []string

func (idx optionIndex) String(i int) string { return idx[i] }
func (idx optionIndex) Len() int            { return len(idx) }

// FilterOptions narrows picker options to those fuzzily matching query,
// best match first. Matching ignores case, and MatchedIndexes are byte
// offsets into Value. An empty query keeps every option in its original order.
func FilterOptions(query string, options []string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		matches := make([]Match, len(options))
		for i, opt := range options {
			matches[i] = Match{Value: opt, Index: i}
		}
		return matches
	}

	found := sfuzzy.FindFrom(query, optionIndex(options))
	matches := make([]Match, len(found))
	for i, f := range found {
		matches[i] = Match{Value: f.Str, Index: f.Index, MatchedIndexes: f.MatchedIndexes}
	}
	return matches
}

// Suggest proposes up to limit titles close to query, for the "no results"
// view. Titles containing the query's letters in order rank first, then
// titles within a small edit distance.
func Suggest(query string, titles []string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	add := func(title string) bool {
		if seen[title] {
			return len(out) < limit
		}
		seen[title] = true
		out = append(out, title)
		return len(out) < limit
	}

	ranks := fuzzy.RankFindFold(query, titles)
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Distance < ranks[j].Distance
	})
	for _, r := range ranks {
		if !add(r.Target) {
			return out
		}
	}

	// Typos do not survive subsequence matching, fall back to edit distance
	lq := strings.ToLower(query)
	maxDist := len([]rune(lq)) / 3
	if maxDist < 2 {
		maxDist = 2
	}

	type near struct {
		title string
		dist  int
	}
	var close []near
	for _, title := range titles {
		if seen[title] {
			continue
		}
		if d := fuzzy.LevenshteinDistance(lq, strings.ToLower(title)); d <= maxDist {
			close = append(close, near{title, d})
		}
	}
	sort.SliceStable(close, func(i, j int) bool { return close[i].dist < close[j].dist })
	for _, n := range close {
		if !add(n.title) {
			break
		}
	}
	return out
}
