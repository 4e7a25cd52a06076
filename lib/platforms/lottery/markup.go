package lottery

import (
	"regexp"
	"strings"
)

const (
	markupCurrent = "current"
	markupLegacy  = "legacy"
)

// Markup holds the selectors the scrapers depend on, one value per known
// revision of the portal's pages.
type Markup struct {
	// Legacy pages are read with the statically compiled fieldPatterns
	// instead of the bootstrap selectors.
	Legacy bool

	SubmissionForm string
	TokenInput     string
	ChallengeText  string

	ReceiptNumber string
	ReceiptLinks  string

	DetailPointOfSale     string
	DetailPointOfSaleCell string
	DetailPointOfSaleLen  int
	DetailTaxCell         string
	DetailTaxLen          int
	DetailCode            string
	DetailDay             string
	DetailPurchaseOrder   string
	DetailTrade           string
	DetailAmountWhole     string
	DetailAmountFraction  string

	HistoryRows string
	ResultRows  string
}

var currentMarkup = Markup{
	SubmissionForm: "form#registration-form",
	TokenInput:     "input#csrf-token",
	ChallengeText:  "span#captcha-operation",

	ReceiptNumber: ".ty-form .recipe-number",
	ReceiptLinks:  "div.links a",

	DetailPointOfSale:     "input#nr_kasy_1",
	DetailPointOfSaleCell: "input#nr_kasy_%d",
	DetailPointOfSaleLen:  13,
	DetailTaxCell:         "input#nip_%d",
	DetailTaxLen:          10,
	DetailCode:            "span#recipe-nr",
	DetailDay:             "input#dzien",
	DetailPurchaseOrder:   "input#nr_wydruku",
	DetailTrade:           "select#branza option[selected]",
	DetailAmountWhole:     "input#kwota_zl",
	DetailAmountFraction:  "input#kwota_gr",

	HistoryRows: ".table-responsive tr",
	ResultRows:  "div.results-table tr",
}

var markups = map[string]Markup{
	markupCurrent: currentMarkup,
	markupLegacy: func() Markup {
		m := currentMarkup
		m.Legacy = true
		return m
	}(),
}

// matches the print or edit link of a receipt, the 2nd group is the id
var receiptIdPattern = regexp.MustCompile(`(drukuj|edytuj)/([^/]+)/.*$`)

// legacyActionPattern matches the absolute submission url of the legacy
// registration form, the host is checked against the configured one after
// matching.
var legacyActionPattern = regexp.MustCompile(`action="(https?://[^"]+?/paragon/stworz)"`)

// fieldPatterns are the extraction patterns of the legacy markup, config
// `fields` entries reference them by name.
var fieldPatterns = map[string]*regexp.Regexp{
	"csrf-input":        regexp.MustCompile(`<input[^>]+name="_token"[^>]+value="([^"]+)"`),
	"csrf-meta":         regexp.MustCompile(`<meta[^>]+name="csrf-token"[^>]+content="([^"]+)"`),
	"captcha-operation": regexp.MustCompile(`(?s)<span[^>]+id="captcha-operation"[^>]*>(.*?)</span>`),
	"captcha-label":     regexp.MustCompile(`(?s)<label[^>]+for="captcha"[^>]*>(.*?)</label>`),
}

// extractField returns the trimmed first group of the named pattern.
func extractField(body, pattern string) (string, bool) {
	re, ok := fieldPatterns[pattern]
	if !ok {
		return "", false
	}
	groups := re.FindStringSubmatch(body)
	if len(groups) < 2 {
		return "", false
	}
	return strings.TrimSpace(groups[1]), true
}
