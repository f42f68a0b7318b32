package match

import (
	"sort"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// unitCost makes substitution as cheap as insertion so that the distance
// is bounded by the longer name.
var unitCost = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 1,
	Matches: levenshtein.IdenticalRunes,
}

// Similarity scores two names between 0 (nothing shared) and 1 (equal
// after normalization).
func Similarity(a, b string) float64 {
	na, nb := []rune(NormalizeName(a)), []rune(NormalizeName(b))
	if len(na) == 0 && len(nb) == 0 {
		return 1.0
	}

	maxLen := max(len(na), len(nb))
	distance := levenshtein.DistanceForStrings(na, nb, unitCost)

	return 1.0 - float64(distance)/float64(maxLen)
}

// DefaultSuggestThreshold is the minimum similarity for a name to be
// offered as a "did you mean" hint.
const DefaultSuggestThreshold = 0.5

// Closest returns up to n names whose similarity to name is at least
// threshold, best first. Names equal to name are skipped.
func Closest(name string, names []string, n int, threshold float64) []string {
	type scored struct {
		name  string
		score float64
	}

	var hits []scored

	for _, candidate := range names {
		if candidate == name {
			continue
		}

		if s := Similarity(name, candidate); s >= threshold {
			hits = append(hits, scored{candidate, s})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}

		return hits[i].name < hits[j].name
	})

	out := make([]string, 0, min(n, len(hits)))
	for i := 0; i < len(hits) && i < n; i++ {
		out = append(out, hits[i].name)
	}

	return out
}
