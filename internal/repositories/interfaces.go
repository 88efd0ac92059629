package repositories

import (
	"github.com/PavanShelat/ExpenseFlow/internal/models"

	"github.com/google/uuid"
)

// ExpenseRepositoryInterface defines expense persistence operations
type ExpenseRepositoryInterface interface {
	Create(expense *models.Expense) error
	GetByID(id, userID uuid.UUID) (*models.Expense, error)
	List(userID uuid.UUID, filters models.ExpenseFilters, offset, limit int) ([]models.Expense, int64, error)
	UpdateCategory(id, userID uuid.UUID, category string) (*models.Expense, error)
	MarkReviewed(id, userID uuid.UUID) (*models.Expense, error)
	Delete(id, userID uuid.UUID) error
	SummaryByCategory(userID uuid.UUID, filters models.ExpenseFilters) ([]models.CategorySummary, error)
}

// UserRepositoryInterface defines user persistence operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}
