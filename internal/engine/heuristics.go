package engine

import "strings"

// AmountHeuristic disambiguates high-frequency merchants whose descriptions
// carry no category signal on their own, using the transaction amount. A
// forecourt stop at R600 is a fuel fill; the same merchant at R45 is a pie
// and a cooldrink.
type AmountHeuristic struct {
	LargeCategory string
	SmallCategory string
	Merchants     []string
	Threshold     float64
}

func (h AmountHeuristic) matches(lowerDescription string) bool {
	for _, merchant := range h.Merchants {
		if strings.Contains(lowerDescription, merchant) {
			return true
		}
	}
	return false
}

// defaultHeuristics covers forecourt and convenience merchants. The tokens
// here deliberately do not appear as catalog keywords, so the keyword step
// passes them through.
func defaultHeuristics() []AmountHeuristic {
	return []AmountHeuristic{
		{
			Merchants: []string{
				"ultra city", "quickshop", "quick shop", "1 stop", "one stop",
				"truck stop", "convenience centre",
			},
			Threshold:     300,
			LargeCategory: "FUEL",
			SmallCategory: "STAFF_REFRESHMENTS",
		},
	}
}
