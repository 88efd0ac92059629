package services

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PavanShelat/ExpenseFlow/internal/models"
)

// Placeholder label when nothing usable survives extraction.
const placeholderDescription = "Expense"

// descriptionExtractor isolates a human-readable label for one detected
// amount. Describing an amount's purpose is inherently ambiguous in free
// text, so extraction is a priority chain: the segment after the amount
// ("$15 lunch", "$15 for lunch"), then the segment before it ("lunch cost
// $15"), then a token salvage over the whole input.
type descriptionExtractor struct{}

var (
	// Delimiters that end an expense segment: comma, semicolon, plus, the
	// word "and".
	segmentDelimiter = regexp.MustCompile(`(?i)\s*(?:,|;|\+|\band\b)\s*`)

	// Optional filler between an amount and its label.
	leadingFiller = regexp.MustCompile(`(?i)^(?:spent|paid|for|on|at)\s+`)

	// Currency-symbol amounts stripped during token salvage. Intentionally
	// narrower than the extractor's pattern set: textual "dollars"/"USD"
	// mentions are left in place.
	dollarAmount = regexp.MustCompile(`\$\d+(?:\.\d{2})?`)

	collapseSpaces = regexp.MustCompile(`\s+`)
)

func newDescriptionExtractor() *descriptionExtractor {
	return &descriptionExtractor{}
}

// describe returns a non-empty label for the given candidate. nextOffset is
// the start offset of the following amount candidate, or -1 if none; it
// bounds the forward scan so one expense's label never swallows the next.
func (de *descriptionExtractor) describe(text string, cand models.AmountCandidate, nextOffset int) string {
	segment := de.segmentAfter(text, cand, nextOffset)
	if segment == "" {
		segment = de.segmentBefore(text, cand)
	}

	segment = de.clean(segment)
	if len(segment) < 2 {
		segment = de.salvageTokens(text)
	}
	if segment == "" {
		segment = placeholderDescription
	}

	return capitalizeFirst(segment)
}

// segmentAfter takes the text immediately following the amount's matched
// span, up to the next delimiter, the next amount, or end of input.
func (de *descriptionExtractor) segmentAfter(text string, cand models.AmountCandidate, nextOffset int) string {
	start := cand.Offset + len(cand.Matched)
	end := len(text)
	if nextOffset >= 0 && nextOffset < end {
		end = nextOffset
	}
	if start >= end {
		return ""
	}

	after := text[start:end]
	if loc := segmentDelimiter.FindStringIndex(after); loc != nil {
		after = after[:loc[0]]
	}

	return after
}

// segmentBefore splits the text preceding the amount on the delimiter set
// and takes the last segment.
func (de *descriptionExtractor) segmentBefore(text string, cand models.AmountCandidate) string {
	before := text[:cand.Offset]
	parts := segmentDelimiter.Split(before, -1)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// clean strips a leading filler verb and collapses internal whitespace.
func (de *descriptionExtractor) clean(segment string) string {
	segment = strings.TrimSpace(segment)
	segment = leadingFiller.ReplaceAllString(segment, "")
	segment = collapseSpaces.ReplaceAllString(segment, " ")
	return strings.TrimSpace(segment)
}

// salvageTokens guarantees a label on pathological input: drop the
// currency-symbol amounts, keep words longer than two characters, join the
// first three.
func (de *descriptionExtractor) salvageTokens(text string) string {
	stripped := dollarAmount.ReplaceAllString(text, "")

	kept := make([]string, 0, 3)
	for _, token := range strings.Fields(stripped) {
		if len(token) > 2 {
			kept = append(kept, token)
			if len(kept) == 3 {
				break
			}
		}
	}

	return strings.Join(kept, " ")
}

// capitalizeFirst upper-cases only the first rune, leaving the rest as typed.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
