package model

import "time"

// ClaimStatus is the verification state of a claim.
// A claim starts as pending; every other status is terminal.
type ClaimStatus string

const (
	StatusPending       ClaimStatus = "pending"
	StatusVerifiedTrue  ClaimStatus = "verified_true"
	StatusVerifiedFalse ClaimStatus = "verified_false"
	StatusPartiallyTrue ClaimStatus = "partially_true"
	StatusExpired       ClaimStatus = "expired"
	StatusUnverifiable  ClaimStatus = "unverifiable"
)

// ValidStatuses lists every status the verifier may assign.
var ValidStatuses = []ClaimStatus{
	StatusPending,
	StatusVerifiedTrue,
	StatusVerifiedFalse,
	StatusPartiallyTrue,
	StatusExpired,
	StatusUnverifiable,
}

// IsValid reports whether s is one of the six known statuses.
func (s ClaimStatus) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s is a terminal state. Terminal claims must
// never be re-verified.
func (s ClaimStatus) IsTerminal() bool {
	return s.IsValid() && s != StatusPending
}

// ClaimStrength is the extraction-time conviction label.
type ClaimStrength string

const (
	StrengthStrong ClaimStrength = "strong"
	StrengthMedium ClaimStrength = "medium"
	StrengthWeak   ClaimStrength = "weak"
)

// ConfidenceLanguage describes how the claim was phrased by the creator.
type ConfidenceLanguage string

const (
	ConfidenceStrong      ConfidenceLanguage = "strong"
	ConfidenceModerate    ConfidenceLanguage = "moderate"
	ConfidenceSpeculative ConfidenceLanguage = "speculative"
)

// ConfidenceFromStrength maps an extraction strength label to the stored
// confidence language.
func ConfidenceFromStrength(s ClaimStrength) ConfidenceLanguage {
	switch s {
	case StrengthStrong:
		return ConfidenceStrong
	case StrengthWeak:
		return ConfidenceSpeculative
	default:
		return ConfidenceModerate
	}
}

// SpecificityFromStrength maps an extraction strength label to the 0-10
// specificity weight used by the scoring engine.
func SpecificityFromStrength(s ClaimStrength) int {
	switch s {
	case StrengthStrong:
		return 8
	case StrengthWeak:
		return 4
	default:
		return 6
	}
}

// ScoredCategories is the fixed category set used for per-category accuracy.
var ScoredCategories = []string{
	"price", "timeline", "regulatory", "partnership", "technology", "market",
}

// ExtractionCategories are the categories the extraction prompt allows.
// Anything else coming back from the model is coerced to market_analysis.
var ExtractionCategories = []string{
	"price_prediction", "regulatory", "partnership", "technology",
	"market_prediction", "technical_analysis", "etf_approval",
	"partnership_adoption", "market_analysis",
}

// Claim is a single extracted, verifiable predictive statement attributed
// to a creator.
type Claim struct {
	ID                    string             `json:"id"`
	CreatorID             string             `json:"creator_id"`
	VideoID               string             `json:"video_id"`
	ClaimText             string             `json:"claim_text"`
	Category              string             `json:"category"`
	Status                ClaimStatus        `json:"status"`
	ConfidenceLanguage    ConfidenceLanguage `json:"confidence_language"`
	StatedTimeframe       string             `json:"stated_timeframe,omitempty"`
	CreatedAt             time.Time          `json:"created_at"`
	VerificationDate      *time.Time         `json:"verification_date,omitempty"`
	VerificationNotes     string             `json:"verification_notes,omitempty"`
	VideoTimestampSeconds int                `json:"video_timestamp_seconds"`
	SpecificityScore      int                `json:"specificity_score"` // 0-10, higher = more verifiable
}

// ExtractedClaim is a candidate claim produced by the extraction pipeline,
// before dedup and persistence.
type ExtractedClaim struct {
	ClaimText        string        `json:"claimText"`
	ClaimCategory    string        `json:"claimCategory"`
	ClaimStrength    ClaimStrength `json:"claimStrength"`
	StatedTimeframe  string        `json:"statedTimeframe,omitempty"`
	TimestampSeconds int           `json:"timestampSeconds"`
}

// ExtractionResult is the per-video outcome of an extraction run: either a
// list of candidate claims or an error string. A failed video never aborts
// the run.
type ExtractionResult struct {
	CreatorID  string           `json:"creator_id"`
	VideoID    string           `json:"video_id"`
	VideoTitle string           `json:"video_title"`
	VideoDate  time.Time        `json:"video_date"`
	Claims     []ExtractedClaim `json:"claims"`
	Error      string           `json:"error,omitempty"`
}
