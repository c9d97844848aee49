package idea

import "sort"

// Rank orders ideas for the prioritized backlog view: RICE score descending
// with unscored ideas ranked last, ties broken by votes descending, then by
// creation time descending. The sort is stable so equal ideas keep their
// incoming order.
//
// A zero-effort idea cannot produce a score (ComputeRICE fails fast); for
// ranking purposes it is treated the same as an unscored idea.
func Rank(ideas []Idea) []Idea {
	type rankedIdea struct {
		idea  Idea
		score *float64
	}

	entries := make([]rankedIdea, len(ideas))
	for i, id := range ideas {
		entries[i] = rankedIdea{idea: id}
		if s, err := id.Score(); err == nil {
			entries[i].score = s
		}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		sa, sb := entries[a].score, entries[b].score
		switch {
		case sa != nil && sb == nil:
			return true
		case sa == nil && sb != nil:
			return false
		case sa != nil && sb != nil && *sa != *sb:
			return *sa > *sb
		}
		if entries[a].idea.Votes != entries[b].idea.Votes {
			return entries[a].idea.Votes > entries[b].idea.Votes
		}
		return entries[a].idea.CreatedAt.After(entries[b].idea.CreatedAt)
	})

	ranked := make([]Idea, len(entries))
	for i, e := range entries {
		ranked[i] = e.idea
	}
	return ranked
}
