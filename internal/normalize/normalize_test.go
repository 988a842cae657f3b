package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "plain merchant name",
			input: "Engen Fuel Station",
			want:  "engen fuel station",
		},
		{
			name:  "strips currency amount",
			input: "Checkers Sixty60 R1 250.00",
			want:  "checkers sixty60",
		},
		{
			name:  "strips iso date",
			input: "ESKOM PREPAID 2024-05-01",
			want:  "eskom prepaid",
		},
		{
			name:  "strips slash date",
			input: "Telkom account 01/05/2024",
			want:  "telkom account",
		},
		{
			name:  "strips long reference numbers",
			input: "EFT PAYMENT 9034871265 VODACOM",
			want:  "eft payment vodacom",
		},
		{
			name:  "keeps short digit runs",
			input: "Sixty60 order 123",
			want:  "sixty60 order 123",
		},
		{
			name:  "strips punctuation and collapses whitespace",
			input: "  PnP *CRP   Claremont,   WC  ",
			want:  "pnp crp claremont wc",
		},
		{
			name:  "mixed identifiers",
			input: "POS Purchase SHELL V&A 4551*9921 R430.50 05/03/2024",
			want:  "pos purchase shell v a 4551 9921",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Engen Fuel Station",
		"Payment to John re Acc 1234567890 on 2024-05-01 R1 250.00",
		"R-123 weird-dash amount",
		"ZAR 99,000.00 transfer ref 77812345678",
		"!!!@@@###",
		"uber 123",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "input %q", input)
	}
}

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "drops stop words and short tokens",
			input: "Payment to Engen for fuel ref 12",
			want:  []string{"engen", "fuel"},
		},
		{
			name:  "empty after filtering",
			input: "to of a",
			want:  nil,
		},
		{
			name:  "normalizes before tokenizing",
			input: "VODACOM Airtime R29.00",
			want:  []string{"vodacom", "airtime"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKeywords(tt.input))
		})
	}
}
