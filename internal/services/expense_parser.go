package services

import (
	"strings"
	"time"

	"github.com/PavanShelat/ExpenseFlow/internal/models"
)

// expenseParserService orchestrates amount extraction, description
// extraction and category detection into structured expense records. All
// methods are pure computations over the input string and safe for
// concurrent use.
type expenseParserService struct {
	amounts      *amountExtractor
	descriptions *descriptionExtractor
	categories   CategoryServiceInterface
	metrics      MetricsRecorderInterface
}

// NewExpenseParserService creates a new ExpenseParserServiceInterface instance
func NewExpenseParserService(categories CategoryServiceInterface, metrics MetricsRecorderInterface) ExpenseParserServiceInterface {
	return &expenseParserService{
		amounts:      newAmountExtractor(),
		descriptions: newDescriptionExtractor(),
		categories:   categories,
		metrics:      metrics,
	}
}

// ParseExpenses extracts structured expenses from one free-form sentence.
// Empty input or input with no amount-shaped token is a defined failure
// outcome, not an error: Succeeded is false and Expenses is empty. Every
// other ambiguity resolves to a best-effort result gated by NeedsReview.
func (s *expenseParserService) ParseExpenses(text string) *models.ParseResult {
	start := time.Now()

	result := &models.ParseResult{
		Expenses: []*models.ParsedExpense{},
		RawInput: text,
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		result.Elapsed = time.Since(start)
		s.recordParse("empty", 0, result.Elapsed)
		return result
	}

	candidates := s.amounts.extract(text)
	if len(candidates) == 0 {
		result.Elapsed = time.Since(start)
		s.recordParse("no_amount", 0, result.Elapsed)
		return result
	}

	now := time.Now()
	for i, cand := range candidates {
		nextOffset := -1
		if i+1 < len(candidates) {
			nextOffset = candidates[i+1].Offset
		}

		description := s.descriptions.describe(text, cand, nextOffset)
		category, confidence := s.categories.DetectCategory(description)

		result.Expenses = append(result.Expenses, &models.ParsedExpense{
			ID:          models.GenerateExpenseID(),
			Amount:      cand.Value,
			Description: description,
			Category:    category,
			Confidence:  confidence,
			NeedsReview: confidence < models.ReviewConfidenceThreshold,
			OccurredAt:  now,
		})
	}

	result.Succeeded = true
	result.Elapsed = time.Since(start)
	s.recordParse("ok", len(result.Expenses), result.Elapsed)

	return result
}

// ExtractAmounts exposes the amount extractor for callers that only need
// candidates, such as the receipt interpreter's assembly step.
func (s *expenseParserService) ExtractAmounts(text string) []models.AmountCandidate {
	return s.amounts.extract(text)
}

func (s *expenseParserService) recordParse(outcome string, expenses int, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementCounter("parse_requests", map[string]string{
		"source":  "text",
		"outcome": outcome,
	})
	s.metrics.RecordGauge("expenses_extracted", float64(expenses), map[string]string{"source": "text"})
	s.metrics.RecordProcessingTime("parse_duration", elapsed)
}
