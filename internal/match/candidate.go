package match

import (
	"sort"

	"metric-mapper/internal/compat"
	"metric-mapper/internal/model"
)

// Candidate is a metric that can be bound to an attribute slot.
type Candidate struct {
	Property model.Property
	Strategy compat.Strategy

	// NameScore is the name similarity of property and attribute (0-1).
	NameScore float64
	// Score combines NameScore and the conversion cost (higher is better).
	Score float64
}

// CandidateList is a ranked list of candidates.
type CandidateList []Candidate

// RankCandidates scores every property that the resolver allows onto slot
// and returns them best first. Properties resolving to CannotAssign are
// left out.
func RankCandidates(slot model.AttributeSlot, props []model.Property, resolver *compat.Resolver) CandidateList {
	var candidates CandidateList

	for _, p := range props {
		strategy := resolver.Resolve(slot.Type, p.Type)
		if !strategy.CanAssign() {
			continue
		}

		nameScore := Similarity(slot.Name, p.Name)

		candidates = append(candidates, Candidate{
			Property:  p,
			Strategy:  strategy,
			NameScore: nameScore,
			Score:     combinedScore(nameScore, strategy),
		})
	}

	sort.Sort(candidates)

	return candidates
}

// combinedScore weighs name similarity at 60% and conversion fidelity at
// 40%: an exact kind match beats any lossy conversion.
func combinedScore(nameScore float64, s compat.Strategy) float64 {
	const (
		nameWeight       = 0.6
		conversionWeight = 0.4
	)

	var conversionScore float64

	switch s {
	case compat.NoConversion:
		conversionScore = 1.0
	case compat.ToInt:
		conversionScore = 0.8
	case compat.Normalize:
		conversionScore = 0.6
	case compat.Quantize:
		conversionScore = 0.5
	case compat.CannotAssign:
		conversionScore = 0
	}

	return nameScore*nameWeight + conversionScore*conversionWeight
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less sorts by score descending, then by property name.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Property.Name < c[j].Property.Name
}

// Top returns the top n candidates; a negative n returns them all.
func (c CandidateList) Top(n int) CandidateList {
	if n < 0 || n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if there is none.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}
