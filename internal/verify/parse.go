package verify

import (
	"encoding/json"
	"strings"

	"github.com/claimscope/claimscope/internal/model"
)

const rawExcerptLimit = 500

// rawResult mirrors the JSON object the evidence service is asked to emit.
type rawResult struct {
	Status     string  `json:"status"`
	Confidence float64 `json:"confidence"`
	Notes      string  `json:"notes"`
	Evidence   string  `json:"evidence"`
	Reasoning  string  `json:"reasoning"`
}

// ParseResult decodes the first JSON object found in a free-text evidence
// reply. It never fails: an unknown status coerces to pending, confidence is
// clamped to [0,1], and a missing or malformed object yields a pending
// result flagged for manual review with a raw excerpt in the reasoning.
func ParseResult(text string) model.VerificationResult {
	fallback := model.VerificationResult{
		Status:            model.StatusPending,
		Confidence:        0,
		VerificationNotes: "Automated verification could not parse results. Manual review needed.",
		Reasoning:         excerpt(text),
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return fallback
	}

	var raw rawResult
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return fallback
	}

	status := model.ClaimStatus(raw.Status)
	if !status.IsValid() {
		status = model.StatusPending
	}

	return model.VerificationResult{
		Status:               status,
		Confidence:           clampConfidence(raw.Confidence),
		VerificationNotes:    raw.Notes,
		VerificationEvidence: raw.Evidence,
		Reasoning:            raw.Reasoning,
	}
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

func excerpt(text string) string {
	if len(text) > rawExcerptLimit {
		return text[:rawExcerptLimit]
	}
	return text
}
