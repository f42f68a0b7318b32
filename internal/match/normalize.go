package match

import (
	"strings"
	"unicode"
)

// NormalizeName folds a name for fuzzy matching: CamelCase boundaries and
// separators are dropped and everything is lowercased, so "linesOfCode",
// "lines_of_code" and "Lines-Of-Code" all become "linesofcode".
func NormalizeName(s string) string {
	return strings.Join(TokenizeName(s), "")
}

// TokenizeName splits a name into lowercase tokens.
// Examples:
//   - "linesOfCode" -> ["lines", "of", "code"]
//   - "tree-ratio" -> ["tree", "ratio"]
//   - "LLOC" -> ["lloc"]
//   - "NOAttributes" -> ["no", "attributes"]
func TokenizeName(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsToken reports a lower->upper transition ("ofCode") or the last
// capital of an acronym followed by lowercase ("NOAttributes").
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
