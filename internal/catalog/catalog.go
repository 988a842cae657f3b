// Package catalog holds the shared accounting-category keyword catalog and
// the fallback keyword classifier that runs when no learned or industry
// rule matches.
//
// Scoring unit: the rank score for a category is the summed character
// length of every keyword phrase found in the raw text, so a long specific
// phrase ("prepaid electricity") always outranks a short generic brand
// ("total"). The confidence formula uses the distinct hit count instead,
// keeping keyword confidence strictly below the learned-rule ceiling.
package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/veldworks/veldbooks/internal/model"
)

// Confidence bounds for keyword matches.
const (
	baseConfidence    = 0.60
	perMatchStep      = 0.08
	confidenceCeiling = 0.92
)

// MaxAlternatives bounds the ranked alternatives returned with a keyword
// classification.
const MaxAlternatives = 3

// Catalog is an immutable category-to-keywords table, loaded once at
// startup.
type Catalog struct {
	byCode     map[string]model.Category
	categories []model.Category
}

// New builds a catalog from the given categories. Keyword phrases are
// lower-cased and trimmed on load; matching always runs against lowered
// text, so a mixed-case phrase from a YAML override would otherwise never
// hit.
func New(categories []model.Category) *Catalog {
	c := &Catalog{
		categories: make([]model.Category, 0, len(categories)),
		byCode:     make(map[string]model.Category, len(categories)),
	}
	for _, cat := range categories {
		keywords := make([]string, 0, len(cat.Keywords))
		for _, phrase := range cat.Keywords {
			if phrase = strings.ToLower(strings.TrimSpace(phrase)); phrase != "" {
				keywords = append(keywords, phrase)
			}
		}
		cat.Keywords = keywords
		c.categories = append(c.categories, cat)
		c.byCode[cat.Code] = cat
	}
	return c
}

// Default returns the built-in South African business catalog.
func Default() *Catalog {
	return New(defaultCategories())
}

// LoadFile reads a category catalog from a YAML file. Categories in the
// file replace the built-in set entirely.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var doc struct {
		Categories []model.Category `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("catalog file %s defines no categories", path)
	}

	return New(doc.Categories), nil
}

// Categories returns all catalog categories.
func (c *Catalog) Categories() []model.Category {
	return c.categories
}

// ByCode looks up a category by its code.
func (c *Catalog) ByCode(code string) (model.Category, bool) {
	cat, ok := c.byCode[code]
	return cat, ok
}

// Label returns the display label for a category code, falling back to the
// code itself for tenant-private or unknown categories.
func (c *Catalog) Label(code string) string {
	if cat, ok := c.byCode[code]; ok {
		return cat.Label
	}
	return code
}

// ScoreCategories matches every catalog keyword against the raw (not
// normalized) text and returns the scored categories in descending rank
// order. Categories with no keyword hits are omitted; categories with an
// empty keyword list never match here.
func (c *Catalog) ScoreCategories(rawText string) []model.CategoryScore {
	lower := strings.ToLower(rawText)
	if strings.TrimSpace(lower) == "" {
		return nil
	}

	var scores []model.CategoryScore
	for _, cat := range c.categories {
		score := 0
		matches := 0
		for _, phrase := range cat.Keywords {
			if strings.Contains(lower, phrase) {
				score += len(phrase)
				matches++
			}
		}
		if matches > 0 {
			scores = append(scores, model.CategoryScore{
				Category:   cat,
				Score:      score,
				MatchCount: matches,
			})
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Category.Code < scores[j].Category.Code
	})

	return scores
}

// Confidence converts a distinct keyword hit count into a classification
// confidence: min(0.60 + 0.08*matchCount, 0.92).
func Confidence(matchCount int) float64 {
	conf := baseConfidence + perMatchStep*float64(matchCount)
	if conf > confidenceCeiling {
		return confidenceCeiling
	}
	return conf
}
