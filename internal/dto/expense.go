package dto

import (
	"time"

	"github.com/PavanShelat/ExpenseFlow/internal/models"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest persists an expense, typically one accepted from a
// parse result
type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description" validate:"required,max=255"`
	Category    string          `json:"category" validate:"required"`
	Confidence  float64         `json:"confidence" validate:"gte=0,lte=1"`
	NeedsReview bool            `json:"needs_review"`
	Source      string          `json:"source" validate:"omitempty,oneof=text receipt manual"`
	ParseID     string          `json:"parse_id" validate:"max=64"`
	RawText     string          `json:"raw_text" validate:"max=20000"`
	OccurredAt  *time.Time      `json:"occurred_at"`
}

// OverrideCategoryRequest manually corrects an expense category
type OverrideCategoryRequest struct {
	Category string `json:"category" validate:"required"`
}

// ExpenseResponse is the API view of a stored expense
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Confidence  float64         `json:"confidence"`
	NeedsReview bool            `json:"needs_review"`
	Source      string          `json:"source"`
	OccurredAt  time.Time       `json:"occurred_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ListExpensesResponse is a paginated expense listing
type ListExpensesResponse struct {
	Expenses []*ExpenseResponse `json:"expenses"`
	Total    int64              `json:"total"`
	Offset   int                `json:"offset"`
	Limit    int                `json:"limit"`
}

// CategorySummaryResponse aggregates spending per category
type CategorySummaryResponse struct {
	Summaries []models.CategorySummary `json:"summaries"`
	StartDate *time.Time               `json:"start_date,omitempty"`
	EndDate   *time.Time               `json:"end_date,omitempty"`
}

// NewExpenseResponse converts a stored expense into its API shape
func NewExpenseResponse(expense *models.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          expense.ID.String(),
		Amount:      expense.Amount,
		Description: expense.Description,
		Category:    expense.Category,
		Confidence:  expense.Confidence,
		NeedsReview: expense.NeedsReview,
		Source:      expense.Source,
		OccurredAt:  expense.OccurredAt,
		CreatedAt:   expense.CreatedAt,
	}
}
