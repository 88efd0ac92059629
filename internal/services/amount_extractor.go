package services

import (
	"regexp"
	"sort"

	"github.com/PavanShelat/ExpenseFlow/internal/models"

	"github.com/shopspring/decimal"
)

// amountExtractor finds monetary amounts in free text. It applies each
// surface-form pattern independently over the whole input; pattern order is
// fixed because offset collisions are resolved in favor of the earlier
// pattern.
type amountExtractor struct {
	patterns []*regexp.Regexp
}

// Surface forms, in scan order: "$15" / "$15.50", "15 dollars", "15 USD".
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$(\d+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d{2})?)\s*dollars?\b`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d{2})?)\s*usd\b`),
}

func newAmountExtractor() *amountExtractor {
	return &amountExtractor{patterns: amountPatterns}
}

// extract returns every plausible amount in the text, sorted by start offset
// ascending. No two candidates share an offset, and every value v satisfies
// 0 < v < 100000. Absence of matches yields an empty slice, never an error.
func (ae *amountExtractor) extract(text string) []models.AmountCandidate {
	seen := make(map[int]bool)
	candidates := make([]models.AmountCandidate, 0)

	for _, pattern := range ae.patterns {
		matches := pattern.FindAllStringSubmatchIndex(text, -1)
		for _, match := range matches {
			start, end := match[0], match[1]
			if seen[start] {
				continue
			}

			value, err := decimal.NewFromString(text[match[2]:match[3]])
			if err != nil || !models.WithinSanityBounds(value) {
				continue
			}

			seen[start] = true
			candidates = append(candidates, models.AmountCandidate{
				Value:   value,
				Offset:  start,
				Matched: text[start:end],
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Offset < candidates[j].Offset
	})

	return candidates
}
