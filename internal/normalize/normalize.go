// Package normalize produces the canonical pattern form of a bank-statement
// description. Two descriptions are equivalent iff their normalized forms
// are equal, so every rule and industry lookup keys on this output.
package normalize

import (
	"regexp"
	"strings"
)

var (
	// Currency-prefixed or decimal amounts: "R1 250.00", "$43.50", "zar 100".
	amountRe = regexp.MustCompile(`(?:\b(?:r|zar|usd|gbp|eur)|[$])\s?\d+(?:[.,\s]\d{3})*(?:[.,]\d+)?\b|\b\d+(?:[,\s]\d{3})*[.,]\d{2}\b`)
	// Date-shaped digit groups: 2024-05-01, 01/05/2024, 1/5/24.
	dateRe = regexp.MustCompile(`\b\d{4}[-/.]\d{1,2}[-/.]\d{1,2}\b|\b\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}\b`)
	// Reference and account numbers.
	longDigitsRe = regexp.MustCompile(`\d{6,}`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9 ]+`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// stopWords are tokens too generic to carry signal for fuzzy matching.
var stopWords = map[string]struct{}{
	"the":       {},
	"and":       {},
	"for":       {},
	"from":      {},
	"with":      {},
	"ref":       {},
	"reference": {},
	"payment":   {},
	"debit":     {},
	"order":     {},
}

// Normalize lower-cases the input and strips amounts, dates, long digit
// runs and punctuation, collapsing whitespace. Any input, including the
// empty string, yields a (possibly empty) string. The result is a fixpoint:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	out := normalizeOnce(text)
	// Stripping punctuation can expose new amount-shaped tokens
	// ("r-123" becomes "r 123"), so iterate until stable.
	for {
		next := normalizeOnce(out)
		if next == out {
			return out
		}
		out = next
	}
}

func normalizeOnce(text string) string {
	s := strings.ToLower(text)
	s = amountRe.ReplaceAllString(s, " ")
	s = dateRe.ReplaceAllString(s, " ")
	s = longDigitsRe.ReplaceAllString(s, " ")
	s = nonAlnumRe.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ExtractKeywords tokenizes the normalized form of text, discarding tokens
// of length <= 2 and stop words. Used only for fuzzy overlap scoring, never
// for exact matching.
func ExtractKeywords(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}

	var keywords []string
	for _, token := range strings.Fields(normalized) {
		if len(token) <= 2 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		keywords = append(keywords, token)
	}
	return keywords
}
