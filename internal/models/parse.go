package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ReviewConfidenceThreshold is the confidence below which a parsed expense
// must be confirmed by the user before it is trusted.
const ReviewConfidenceThreshold = 0.7

// Amount sanity bounds applied to every value derived from raw text pattern
// matches. Values outside (0, 100000) are treated as pattern false positives.
var (
	AmountUpperBound = decimal.NewFromInt(100000)
	AmountLowerBound = decimal.Zero
)

// AmountCandidate is a single detected monetary value plus its location in
// the source text. Candidates are transient: produced and consumed within one
// parse call.
type AmountCandidate struct {
	Value   decimal.Decimal `json:"value"`
	Offset  int             `json:"offset"`
	Matched string          `json:"matched"`
}

// WithinSanityBounds reports whether a pattern-derived amount is plausible.
func WithinSanityBounds(v decimal.Decimal) bool {
	return v.GreaterThan(AmountLowerBound) && v.LessThan(AmountUpperBound)
}

// ParsedExpense is one structured expense extracted from free-form text or
// receipt OCR output. It is never mutated by the extraction pipeline.
type ParsedExpense struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Confidence  float64         `json:"confidence"`
	NeedsReview bool            `json:"needs_review"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// ParseResult is the outcome of a single free-text parse invocation.
// Succeeded is false and Expenses empty when the input is blank or contains
// no amount-shaped token.
type ParseResult struct {
	Succeeded bool             `json:"succeeded"`
	Expenses  []*ParsedExpense `json:"expenses"`
	RawInput  string           `json:"raw_input"`
	Elapsed   time.Duration    `json:"elapsed"`
}

// ReceiptResult is the outcome of interpreting receipt OCR text. The expense
// is always flagged for review: OCR output is never trusted automatically.
type ReceiptResult struct {
	Expense *ParsedExpense `json:"expense"`
	RawText string         `json:"raw_text"`
}

// GenerateExpenseID returns an opaque id unique within a session: time-based
// seed plus a random suffix. Cryptographic guarantees are not required.
func GenerateExpenseID() string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return fmt.Sprintf("exp_%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("exp_%d_%s", time.Now().UnixNano(), hex.EncodeToString(suffix))
}
