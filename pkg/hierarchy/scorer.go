package hierarchy

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Scorer rates how well label fits under category. Zero means no fit.
type Scorer func(category, label string) int

// LongestOverlap scores case-insensitive containment in either direction by
// the length of the contained string, so "Backend" beats "End" for
// "Backend Services".
func LongestOverlap(category, label string) int {
	c := strings.ToLower(strings.TrimSpace(category))
	l := strings.ToLower(strings.TrimSpace(label))
	if c == "" || l == "" {
		return 0
	}
	switch {
	case strings.Contains(l, c):
		return utf8.RuneCountInString(c)
	case strings.Contains(c, l):
		return utf8.RuneCountInString(l)
	}
	return 0
}

// FirstContainment scores any case-insensitive containment as 1, so the
// first containing category in order wins.
func FirstContainment(category, label string) int {
	if LongestOverlap(category, label) > 0 {
		return 1
	}
	return 0
}

// Exact scores case-insensitive equality only.
func Exact(category, label string) int {
	if strings.EqualFold(strings.TrimSpace(category), strings.TrimSpace(label)) {
		return 1
	}
	return 0
}

// Scorers maps scorer names to implementations.
var Scorers = map[string]Scorer{
	"overlap": LongestOverlap,
	"first":   FirstContainment,
	"exact":   Exact,
}

// ScorerNames returns the registered scorer names, sorted.
func ScorerNames() []string {
	names := make([]string, 0, len(Scorers))
	for name := range Scorers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ScorerByName looks up a scorer. An empty name selects [LongestOverlap].
func ScorerByName(name string) (Scorer, error) {
	if name == "" {
		return LongestOverlap, nil
	}
	s, ok := Scorers[name]
	if !ok {
		return nil, fmt.Errorf("unknown scorer %q (must be one of: %s)", name, strings.Join(ScorerNames(), ", "))
	}
	return s, nil
}

// bestCategory returns the highest-scoring category for label; ties go to
// the earlier category. Falls back to the first category, or to root when
// there are none.
func bestCategory(categories []string, label, root string, score Scorer) string {
	if len(categories) == 0 {
		return root
	}
	best, bestScore := categories[0], 0
	for _, c := range categories {
		if s := score(c, label); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}
