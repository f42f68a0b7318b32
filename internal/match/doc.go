// Package match ranks metrics as candidates for a building attribute and
// finds near-miss names for "did you mean" hints.
//
// Key functions:
//   - NormalizeName: folds a metric or attribute name for fuzzy comparison
//   - Similarity: edit-distance similarity of two normalized names
//   - RankCandidates: orders assignable metrics for one attribute slot
//   - Closest: picks the names most similar to a misspelled one
package match
