package repositories

import (
	"errors"

	"github.com/PavanShelat/ExpenseFlow/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new ExpenseRepositoryInterface instance
func NewExpenseRepository(db *gorm.DB) ExpenseRepositoryInterface {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(expense *models.Expense) error {
	return r.db.Create(expense).Error
}

func (r *expenseRepository) GetByID(id, userID uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) List(userID uuid.UUID, filters models.ExpenseFilters, offset, limit int) ([]models.Expense, int64, error) {
	query := r.applyFilters(r.db.Model(&models.Expense{}).Where("user_id = ?", userID), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var expenses []models.Expense
	err := query.
		Order("occurred_at DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&expenses).Error
	if err != nil {
		return nil, 0, err
	}

	return expenses, total, nil
}

// UpdateCategory applies a manual category correction and clears the review
// flag: a human decision supersedes the classifier's confidence.
func (r *expenseRepository) UpdateCategory(id, userID uuid.UUID, category string) (*models.Expense, error) {
	if !models.IsValidCategory(category) {
		return nil, models.ErrInvalidCategory
	}

	expense, err := r.GetByID(id, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"category":     category,
		"needs_review": false,
		"confidence":   1.0,
	}
	if err := r.db.Model(expense).Updates(updates).Error; err != nil {
		return nil, err
	}

	return expense, nil
}

func (r *expenseRepository) MarkReviewed(id, userID uuid.UUID) (*models.Expense, error) {
	expense, err := r.GetByID(id, userID)
	if err != nil {
		return nil, err
	}

	if err := r.db.Model(expense).Update("needs_review", false).Error; err != nil {
		return nil, err
	}

	return expense, nil
}

func (r *expenseRepository) Delete(id, userID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (r *expenseRepository) SummaryByCategory(userID uuid.UUID, filters models.ExpenseFilters) ([]models.CategorySummary, error) {
	query := r.applyFilters(r.db.Model(&models.Expense{}).Where("user_id = ?", userID), filters)

	var summaries []models.CategorySummary
	err := query.
		Select("category, SUM(amount) AS total, COUNT(*) AS count").
		Group("category").
		Order("total DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}

	return summaries, nil
}

func (r *expenseRepository) applyFilters(query *gorm.DB, filters models.ExpenseFilters) *gorm.DB {
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Source != "" {
		query = query.Where("source = ?", filters.Source)
	}
	if filters.NeedsReview != nil {
		query = query.Where("needs_review = ?", *filters.NeedsReview)
	}
	if filters.StartDate != nil {
		query = query.Where("occurred_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("occurred_at <= ?", *filters.EndDate)
	}
	return query
}
