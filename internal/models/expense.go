package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// How an expense entered the system
const (
	ExpenseSourceText    = "text"
	ExpenseSourceReceipt = "receipt"
	ExpenseSourceManual  = "manual"
)

var (
	ErrInvalidExpenseAmount = errors.New("expense amount must be positive")
	ErrInvalidSource        = errors.New("invalid expense source")
	ErrInvalidCategory      = errors.New("invalid category")
)

// Expense is a persisted expense record, created from a ParsedExpense once
// the user accepts it (or immediately, pending review).
type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	ParseID     string          `gorm:"type:varchar(64)" json:"parse_id,omitempty"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description string          `gorm:"type:varchar(255);not null" json:"description"`
	Category    string          `gorm:"type:varchar(30);not null" json:"category"`
	Confidence  float64         `gorm:"not null" json:"confidence"`
	NeedsReview bool            `gorm:"not null;default:false" json:"needs_review"`
	Source      string          `gorm:"type:varchar(20);not null" json:"source"`
	RawText     string          `gorm:"type:text" json:"raw_text,omitempty"`
	OccurredAt  time.Time       `gorm:"not null;index" json:"occurred_at"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate hook for Expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Source == "" {
		e.Source = ExpenseSourceManual
	}
	if e.Category == "" {
		e.Category = CategoryOther
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	return e.Validate()
}

// Validate checks the invariants a stored expense must satisfy.
func (e *Expense) Validate() error {
	if !e.Amount.GreaterThan(decimal.Zero) {
		return ErrInvalidExpenseAmount
	}
	if !IsValidCategory(e.Category) {
		return ErrInvalidCategory
	}
	switch e.Source {
	case ExpenseSourceText, ExpenseSourceReceipt, ExpenseSourceManual:
	default:
		return ErrInvalidSource
	}
	return nil
}

// ExpenseFromParsed converts a parser result into a persistable record.
func ExpenseFromParsed(parsed *ParsedExpense, userID uuid.UUID, source, rawText string) *Expense {
	return &Expense{
		UserID:      userID,
		ParseID:     parsed.ID,
		Amount:      parsed.Amount,
		Description: parsed.Description,
		Category:    parsed.Category,
		Confidence:  parsed.Confidence,
		NeedsReview: parsed.NeedsReview,
		Source:      source,
		RawText:     rawText,
		OccurredAt:  parsed.OccurredAt,
	}
}

// ExpenseFilters narrows expense listings
type ExpenseFilters struct {
	Category    string
	Source      string
	NeedsReview *bool
	StartDate   *time.Time
	EndDate     *time.Time
}

// CategorySummary aggregates spending per category over a period
type CategorySummary struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}
