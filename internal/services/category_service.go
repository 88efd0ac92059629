package services

import (
	"strings"

	"github.com/PavanShelat/ExpenseFlow/internal/models"
)

const (
	// Confidence assigned when no keyword matches at all.
	fallbackConfidence = 0.4

	// Keyword confidence ramp: base plus a per-score increment, capped.
	keywordBaseConfidence = 0.6
	keywordScoreStep      = 0.05
	keywordMaxConfidence  = 0.95

	// Confidence for a merchant name matched against the retailer table.
	merchantMatchConfidence = 0.9
)

type categoryService struct {
	keywordTable     []categoryKeywords
	merchantPatterns []merchantPattern
}

// categoryKeywords maps one category to its trigger words. The table is an
// ordered slice, not a map: scoring ties are broken by the first category
// reaching the maximum score, which must stay deterministic.
type categoryKeywords struct {
	category string
	keywords []string
}

// merchantPattern maps a retailer or venue name fragment to a category.
type merchantPattern struct {
	keyword  string
	category string
}

// NewCategoryService creates a new CategoryServiceInterface instance
func NewCategoryService() CategoryServiceInterface {
	return &categoryService{
		keywordTable:     initCategoryKeywords(),
		merchantPatterns: initMerchantPatterns(),
	}
}

// DetectCategory scores the text against every category's keyword set. The
// score of a category is the summed character length of its keywords that
// appear as substrings of the lowercased text, each keyword counted once.
// Longer, more specific keywords therefore dominate shorter ones even when
// fewer of them match. The strictly best score wins; a zero score falls back
// to CategoryOther with a fixed low confidence.
func (s *categoryService) DetectCategory(text string) (string, float64) {
	normalized := strings.ToLower(text)

	bestCategory := models.CategoryOther
	bestScore := 0

	for _, entry := range s.keywordTable {
		score := 0
		for _, keyword := range entry.keywords {
			if strings.Contains(normalized, keyword) {
				score += len(keyword)
			}
		}
		if score > bestScore {
			bestScore = score
			bestCategory = entry.category
		}
	}

	if bestScore == 0 {
		return models.CategoryOther, fallbackConfidence
	}

	confidence := keywordBaseConfidence + float64(bestScore)*keywordScoreStep
	if confidence > keywordMaxConfidence {
		confidence = keywordMaxConfidence
	}

	return bestCategory, confidence
}

// CategorizeMerchant matches a merchant name against known retailer and venue
// names. Unlike DetectCategory this is a first-match lookup: merchant names
// are specific enough that the first known fragment decides the category.
func (s *categoryService) CategorizeMerchant(merchantName string) (string, float64) {
	if merchantName == "" {
		return models.CategoryOther, 0.0
	}

	normalized := strings.ToLower(merchantName)

	for _, pattern := range s.merchantPatterns {
		if strings.Contains(normalized, pattern.keyword) {
			return pattern.category, merchantMatchConfidence
		}
	}

	return models.CategoryOther, 0.0
}

// initCategoryKeywords initializes the activity keyword table. Keywords are
// lowercase; matching is by substring containment.
func initCategoryKeywords() []categoryKeywords {
	return []categoryKeywords{
		{
			category: models.CategoryFood,
			keywords: []string{
				"lunch", "dinner", "breakfast", "brunch", "coffee", "pizza",
				"burger", "sandwich", "restaurant", "groceries", "grocery",
				"snack", "meal", "takeout", "cafe", "food",
			},
		},
		{
			category: models.CategoryTransport,
			keywords: []string{
				"uber", "lyft", "taxi", "fuel", "gas station", "petrol",
				"bus", "train ticket", "metro", "parking", "toll",
				"car wash", "gasoline",
			},
		},
		{
			category: models.CategoryShopping,
			keywords: []string{
				"amazon", "clothes", "clothing", "shoes", "mall", "shopping",
				"electronics", "furniture", "jacket", "jeans", "shirt",
			},
		},
		{
			category: models.CategoryEntertainment,
			keywords: []string{
				"movie", "cinema", "netflix", "spotify", "concert",
				"video game", "gaming", "theater", "theatre", "bowling",
				"streaming",
			},
		},
		{
			category: models.CategoryUtilities,
			keywords: []string{
				"electricity", "electric bill", "water bill", "internet",
				"wifi", "phone bill", "mobile recharge", "utility", "rent",
				"broadband",
			},
		},
		{
			category: models.CategoryHealth,
			keywords: []string{
				"doctor", "medicine", "pharmacy", "hospital", "gym",
				"dentist", "dental", "clinic", "vitamins", "therapy",
			},
		},
		{
			category: models.CategoryTravel,
			keywords: []string{
				"flight", "hotel", "airbnb", "vacation", "trip", "booking",
				"airline", "luggage", "resort", "hostel",
			},
		},
	}
}

// initMerchantPatterns initializes the retailer/venue name table used for
// receipt merchant classification. Ordered: the first fragment found in the
// merchant name wins.
func initMerchantPatterns() []merchantPattern {
	return []merchantPattern{
		// Shopping
		{"walmart", models.CategoryShopping},
		{"target", models.CategoryShopping},
		{"costco", models.CategoryShopping},
		{"amazon", models.CategoryShopping},
		{"best buy", models.CategoryShopping},
		{"ikea", models.CategoryShopping},
		{"home depot", models.CategoryShopping},
		{"dollar tree", models.CategoryShopping},

		// Food: restaurants and grocers
		{"mcdonald", models.CategoryFood},
		{"starbucks", models.CategoryFood},
		{"subway", models.CategoryFood},
		{"chipotle", models.CategoryFood},
		{"kfc", models.CategoryFood},
		{"pizza hut", models.CategoryFood},
		{"domino", models.CategoryFood},
		{"dunkin", models.CategoryFood},
		{"taco bell", models.CategoryFood},
		{"burger king", models.CategoryFood},
		{"kroger", models.CategoryFood},
		{"whole foods", models.CategoryFood},
		{"trader joe", models.CategoryFood},
		{"safeway", models.CategoryFood},
		{"aldi", models.CategoryFood},

		// Transport
		{"uber", models.CategoryTransport},
		{"lyft", models.CategoryTransport},
		{"shell", models.CategoryTransport},
		{"chevron", models.CategoryTransport},
		{"exxon", models.CategoryTransport},
		{"mobil", models.CategoryTransport},

		// Entertainment
		{"netflix", models.CategoryEntertainment},
		{"spotify", models.CategoryEntertainment},
		{"cinema", models.CategoryEntertainment},
		{"hulu", models.CategoryEntertainment},
		{"amc", models.CategoryEntertainment},

		// Health
		{"cvs", models.CategoryHealth},
		{"walgreens", models.CategoryHealth},
		{"rite aid", models.CategoryHealth},
		{"pharmacy", models.CategoryHealth},

		// Utilities
		{"at&t", models.CategoryUtilities},
		{"verizon", models.CategoryUtilities},
		{"comcast", models.CategoryUtilities},
		{"t-mobile", models.CategoryUtilities},

		// Travel
		{"hilton", models.CategoryTravel},
		{"marriott", models.CategoryTravel},
		{"hyatt", models.CategoryTravel},
		{"delta", models.CategoryTravel},
		{"airlines", models.CategoryTravel},
		{"hotel", models.CategoryTravel},
		{"motel", models.CategoryTravel},
	}
}
