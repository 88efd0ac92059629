package models

// Expense categories assignable by the classifier
const (
	CategoryFood          = "food"
	CategoryTransport     = "transport"
	CategoryShopping      = "shopping"
	CategoryEntertainment = "entertainment"
	CategoryUtilities     = "utilities"
	CategoryHealth        = "health"
	CategoryTravel        = "travel"
	CategoryOther         = "other"
)

// AllCategories returns all valid category constants in classifier order.
// The order matters: keyword scoring ties are broken by the first category
// reaching the maximum score.
func AllCategories() []string {
	return []string{
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryEntertainment,
		CategoryUtilities,
		CategoryHealth,
		CategoryTravel,
		CategoryOther,
	}
}

// IsValidCategory checks if a category string is valid
func IsValidCategory(category string) bool {
	for _, validCategory := range AllCategories() {
		if category == validCategory {
			return true
		}
	}
	return false
}
