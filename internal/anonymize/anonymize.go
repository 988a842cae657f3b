// Package anonymize redacts identifying detail from a description before it
// may cross a tenant boundary. Every industry contribution must pass
// through Anonymize and be re-normalized before it touches shared storage.
package anonymize

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	// "ref"/"account"-prefixed identifiers, e.g. "Acc 1234567890", "REF: INV-2231".
	refTokenRe = regexp.MustCompile(`(?i)\b(?:reference|ref|account|acct|acc)\s*[:#]?\s*[A-Za-z0-9-]+`)
	amountRe   = regexp.MustCompile(`(?i)(?:\b(?:r|zar|usd)|[$])\s?\d+(?:[.,\s]\d{3})*(?:[.,]\d+)?\b|\b\d+(?:[,\s]\d{3})*[.,]\d{2}\b`)
	dateRe     = regexp.MustCompile(`\b\d{4}[-/.]\d{1,2}[-/.]\d{1,2}\b|\b\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}\b`)
	// SA phone numbers: +27 82 123 4567, 082-123-4567, 0821234567.
	phoneRe      = regexp.MustCompile(`(?:\+27|\b27|\b0)\s?\d{2}[\s-]?\d{3}[\s-]?\d{4}\b`)
	acctDigitsRe = regexp.MustCompile(`\d{10,}`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// Anonymize strips account numbers, referenced identifiers, dates, currency
// amounts, phone numbers and email addresses from text, collapsing the
// remaining whitespace. Case is otherwise preserved.
func Anonymize(text string) string {
	s := emailRe.ReplaceAllString(text, " ")
	s = refTokenRe.ReplaceAllString(s, " ")
	s = amountRe.ReplaceAllString(s, " ")
	s = dateRe.ReplaceAllString(s, " ")
	s = phoneRe.ReplaceAllString(s, " ")
	s = acctDigitsRe.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
