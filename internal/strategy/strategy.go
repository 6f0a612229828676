// Package strategy classifies claims into a verification approach.
package strategy

import (
	"regexp"
	"strings"

	"github.com/claimscope/claimscope/internal/model"
)

// Strategy is the verification approach chosen for a claim.
type Strategy string

const (
	// Price claims get supplementary market data before web verification.
	Price Strategy = "price"
	// WebSearch claims go straight to evidence-backed web verification.
	WebSearch Strategy = "web_search"
	// Unverifiable claims are too subjective to check against evidence.
	Unverifiable Strategy = "unverifiable"
)

var (
	vaguePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)patience.*(?:winning|key|important)`),
		regexp.MustCompile(`(?i)^(?:xrp|ripple)\s+is\s+(?:ideal|perfect|great)\s+for`),
		regexp.MustCompile(`(?i)just\s+a\s+matter\s+of\s+time`),
	}

	dollarFigure = regexp.MustCompile(`\$\d`)
	percentage   = regexp.MustCompile(`\d+%`)
)

// Select classifies a claim. Deterministic, no I/O.
func Select(claim model.Claim) Strategy {
	text := strings.ToLower(claim.ClaimText)
	category := strings.ToLower(claim.Category)

	// Vague opinions with no dollar figure and no percentage cannot be
	// checked against objective evidence.
	if isVague(text) {
		return Unverifiable
	}

	// Price targets benefit from live market data.
	if strings.Contains(category, "price") || dollarFigure.MatchString(text) {
		return Price
	}
	if strings.Contains(text, "market cap") || strings.Contains(text, "marketcap") {
		return Price
	}

	return WebSearch
}

func isVague(text string) bool {
	if dollarFigure.MatchString(text) || percentage.MatchString(text) {
		return false
	}
	for _, p := range vaguePatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
