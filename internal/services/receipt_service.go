package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PavanShelat/ExpenseFlow/internal/models"

	"github.com/shopspring/decimal"
)

// Total locator confidence tiers, highest to lowest: keyword line hit,
// bottom-of-document fallback, document-wide maximum, nothing found.
const (
	totalKeywordConfidence = 0.85
	totalBottomConfidence  = 0.6
	totalMaxConfidence     = 0.55
	totalAbsentConfidence  = 0.4
)

// How far up from the bottom of the document the fallback total scan looks.
const bottomScanLines = 10

// How many header lines the merchant locator considers.
const merchantHeaderLines = 8

// receiptService interprets noisy multi-line OCR output. Every locator
// degrades to a lower-confidence estimate or an absent value; the service
// never fails a call outright.
type receiptService struct {
	parser     ExpenseParserServiceInterface
	categories CategoryServiceInterface
	metrics    MetricsRecorderInterface
}

// receiptExtraction is the intermediate result of the individual locators,
// consumed only by the final assembly step.
type receiptExtraction struct {
	totalAmount     *decimal.Decimal
	totalConfidence float64
	merchantName    string
	receiptDate     *time.Time
}

// NewReceiptService creates a new ReceiptServiceInterface instance
func NewReceiptService(parser ExpenseParserServiceInterface, categories CategoryServiceInterface, metrics MetricsRecorderInterface) ReceiptServiceInterface {
	return &receiptService{
		parser:     parser,
		categories: categories,
		metrics:    metrics,
	}
}

// Lines containing these indicate the receipt total. "subtotal" and
// "taxable" lines are excluded even though they contain "total"/"amount".
var totalKeywords = []string{
	"total", "grand total", "amount due", "balance due", "total due",
	"amount received", "card payment", "net amount", "payable",
	"bill amount", "amount",
}

var totalExclusions = []string{"subtotal", "taxable"}

// Header lines containing these are receipt/payment jargon, never a
// merchant name.
var merchantNoiseKeywords = []string{
	"thank you", "thanks", "welcome", "receipt", "invoice", "cashier",
	"subtotal", "total", "visa", "mastercard", "amex", "debit", "credit",
	"change", "cash", "tip", "balance", "approved", "transaction",
	"terminal", "tel:", "phone", "fax", "www", ".com", "gst", "vat",
}

var (
	// Money-shaped token: digit groups with optional thousands separators
	// and an optional two-decimal suffix. Decimal alternatives come first so
	// "23.50" is not claimed as "23".
	moneyToken = regexp.MustCompile(`\d{1,3}(?:,\d{3})+(?:\.\d{2})?|\d+\.\d{2}|\d+`)

	// Stripped from merchant lines before scoring.
	merchantScoreNoise = regexp.MustCompile(`[0-9#*\-_=+.,:;!?@$%&/\\()\[\]{}'"]`)

	hasLetter = regexp.MustCompile(`[a-zA-Z]`)

	// Numeric dates, year-first and month-first.
	yearFirstDate  = regexp.MustCompile(`(\d{4})[/\-.](\d{1,2})[/\-.](\d{1,2})`)
	monthFirstDate = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})`)

	// Written month-name dates: "Mar 5, 2024", "March 5 2024".
	writtenDate = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})`)
)

// ParseReceiptText produces exactly one expense from raw OCR text. The
// expense is always flagged for review: OCR output is never trusted
// automatically. Locator failures degrade confidence instead of erroring;
// the caller decides whether to reject a zero-amount result.
func (s *receiptService) ParseReceiptText(ocrText string) *models.ReceiptResult {
	start := time.Now()

	extraction := receiptExtraction{
		merchantName: s.locateMerchant(ocrText),
		receiptDate:  s.locateDate(ocrText),
	}
	extraction.totalAmount, extraction.totalConfidence = s.locateTotal(ocrText)

	expense := s.assemble(ocrText, extraction)

	if s.metrics != nil {
		s.metrics.IncrementCounter("parse_requests", map[string]string{
			"source":  "receipt",
			"outcome": "ok",
		})
		s.metrics.RecordProcessingTime("parse_duration", time.Since(start))
	}

	return &models.ReceiptResult{
		Expense: expense,
		RawText: ocrText,
	}
}

// locateTotal finds the receipt total. Keyword-bearing lines are scanned
// from the bottom of the document upward, because totals sit below item
// lines and a later "TOTAL" supersedes an earlier one. Each tier of the
// fallback chain carries a lower confidence.
func (s *receiptService) locateTotal(text string) (*decimal.Decimal, float64) {
	lines := nonEmptyLines(text)

	keywordLines := make([]string, 0)
	for _, line := range lines {
		lower := strings.ToLower(line)
		if containsAny(lower, totalExclusions) {
			continue
		}
		if containsAny(lower, totalKeywords) {
			keywordLines = append(keywordLines, line)
		}
	}

	for i := len(keywordLines) - 1; i >= 0; i-- {
		if v := lastMoneyValue(keywordLines[i]); v != nil {
			return v, totalKeywordConfidence
		}
	}

	bottom := lines
	if len(bottom) > bottomScanLines {
		bottom = bottom[len(bottom)-bottomScanLines:]
	}
	for i := len(bottom) - 1; i >= 0; i-- {
		if v := lastMoneyValue(bottom[i]); v != nil {
			return v, totalBottomConfidence
		}
	}

	if v := maxMoneyValue(text); v != nil {
		return v, totalMaxConfidence
	}

	return nil, totalAbsentConfidence
}

// locateMerchant picks the most plausible merchant name from the receipt
// header. Survivors are scored by cleaned length plus bonuses for retail
// words, so "WALMART SUPERCENTER" beats a short street line.
func (s *receiptService) locateMerchant(text string) string {
	lines := nonEmptyLines(text)
	if len(lines) > merchantHeaderLines {
		lines = lines[:merchantHeaderLines]
	}

	bestScore := 0
	bestName := ""

	for _, line := range lines {
		if len(line) < 3 || !hasLetter.MatchString(line) {
			continue
		}
		if containsAny(strings.ToLower(line), merchantNoiseKeywords) {
			continue
		}

		cleaned := merchantScoreNoise.ReplaceAllString(line, "")
		cleaned = collapseSpaces.ReplaceAllString(cleaned, " ")
		cleaned = strings.TrimSpace(cleaned)
		if cleaned == "" {
			continue
		}

		score := len(cleaned)
		lower := strings.ToLower(cleaned)
		if strings.Contains(lower, "mart") {
			score += 10
		}
		if strings.Contains(lower, "super") {
			score += 8
		}
		if strings.Contains(lower, "store") {
			score += 8
		}
		if strings.Contains(lower, "market") {
			score += 6
		}

		if score > bestScore {
			bestScore = score
			bestName = cleaned
		}
	}

	return bestName
}

// locateDate tries year-first numeric dates, then month-first numeric dates,
// then written month names. First valid pattern wins.
//
// The month-first pattern swaps day and month when the first component
// exceeds 12 and the second does not. Genuinely ambiguous DD/MM inputs under
// 13 keep the month-first reading; that is a known limitation of the
// heuristic, kept as is.
func (s *receiptService) locateDate(text string) *time.Time {
	if m := yearFirstDate.FindStringSubmatch(text); m != nil {
		if d := validDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); d != nil {
			return d
		}
	}

	if m := monthFirstDate.FindStringSubmatch(text); m != nil {
		month, day, year := atoi(m[1]), atoi(m[2]), atoi(m[3])
		if month > 12 && day <= 12 {
			month, day = day, month
		}
		if year < 100 {
			year += 2000
		}
		if d := validDate(year, month, day); d != nil {
			return d
		}
	}

	if m := writtenDate.FindStringSubmatch(text); m != nil {
		if month, ok := monthFromPrefix(m[1]); ok {
			if d := validDate(atoi(m[3]), month, atoi(m[2])); d != nil {
				return d
			}
		}
	}

	return nil
}

// assemble combines locator outputs into one expense, falling back to the
// free-text pipeline for every field the receipt locators failed to find.
func (s *receiptService) assemble(ocrText string, extraction receiptExtraction) *models.ParsedExpense {
	var textParse *models.ParseResult

	amount := decimal.Zero
	if extraction.totalAmount != nil {
		amount = *extraction.totalAmount
	} else {
		if candidates := s.parser.ExtractAmounts(ocrText); len(candidates) > 0 {
			amount = candidates[0].Value
		}
	}

	description := "Receipt"
	if extraction.merchantName != "" {
		description = capitalizeFirst(extraction.merchantName)
	} else {
		textParse = s.parser.ParseExpenses(ocrText)
		if textParse.Succeeded {
			description = textParse.Expenses[0].Description
		}
	}

	category := models.CategoryOther
	confidence := extraction.totalConfidence
	if extraction.merchantName != "" {
		mc, mconf := s.categories.CategorizeMerchant(extraction.merchantName)
		if mc == models.CategoryOther {
			mc, mconf = s.categories.DetectCategory(extraction.merchantName)
		}
		if mc != models.CategoryOther {
			category, confidence = mc, mconf
		}
	}
	if category == models.CategoryOther && textParse != nil && textParse.Succeeded {
		category, confidence = s.categories.DetectCategory(textParse.Expenses[0].Description)
	}

	occurredAt := time.Now()
	if extraction.receiptDate != nil {
		occurredAt = *extraction.receiptDate
	}

	return &models.ParsedExpense{
		ID:          models.GenerateExpenseID(),
		Amount:      amount,
		Description: description,
		Category:    category,
		Confidence:  confidence,
		NeedsReview: true,
		OccurredAt:  occurredAt,
	}
}

func nonEmptyLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// lastMoneyValue extracts the last plausible money token on a line. Totals
// put the figure at the end, after the label.
func lastMoneyValue(line string) *decimal.Decimal {
	tokens := moneyToken.FindAllString(line, -1)
	for i := len(tokens) - 1; i >= 0; i-- {
		if v := parseMoney(tokens[i]); v != nil {
			return v
		}
	}
	return nil
}

// maxMoneyValue scans the whole document and takes the largest plausible
// money token. The grand total tends to be the largest figure printed.
func maxMoneyValue(text string) *decimal.Decimal {
	var best *decimal.Decimal
	for _, token := range moneyToken.FindAllString(text, -1) {
		v := parseMoney(token)
		if v == nil {
			continue
		}
		if best == nil || v.GreaterThan(*best) {
			best = v
		}
	}
	return best
}

func parseMoney(token string) *decimal.Decimal {
	v, err := decimal.NewFromString(strings.ReplaceAll(token, ",", ""))
	if err != nil || !models.WithinSanityBounds(v) {
		return nil
	}
	return &v
}

func validDate(year, month, day int) *time.Time {
	if year < 1900 || year > 2100 || month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return nil
	}
	return &d
}

func monthFromPrefix(prefix string) (int, bool) {
	months := []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}
	prefix = strings.ToLower(prefix)
	for i, m := range months {
		if m == prefix {
			return i + 1, true
		}
	}
	return 0, false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
