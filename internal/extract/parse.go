package extract

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/claimscope/claimscope/internal/model"
)

// rawClaim tolerates the loose typing of model output: timestamps arrive as
// ints, floats, or are missing entirely.
type rawClaim struct {
	ClaimText        string   `json:"claimText"`
	ClaimCategory    string   `json:"claimCategory"`
	ClaimStrength    string   `json:"claimStrength"`
	StatedTimeframe  string   `json:"statedTimeframe"`
	TimestampSeconds *float64 `json:"timestampSeconds"`
}

// ParseClaims decodes the first JSON array found in a free-text extraction
// reply. It never fails: missing or malformed JSON yields an empty slice,
// entries without claim text are dropped, unknown categories coerce to
// market_analysis, unknown strengths to medium, and timestamps clamp to >= 0.
func ParseClaims(text string) []model.ExtractedClaim {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil
	}

	var raw []rawClaim
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil
	}

	claims := make([]model.ExtractedClaim, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r.ClaimText) == "" {
			continue
		}

		category := r.ClaimCategory
		if !validCategory(category) {
			category = "market_analysis"
		}

		strength := model.ClaimStrength(r.ClaimStrength)
		switch strength {
		case model.StrengthStrong, model.StrengthMedium, model.StrengthWeak:
		default:
			strength = model.StrengthMedium
		}

		var timestamp int
		if r.TimestampSeconds != nil {
			timestamp = int(math.Round(*r.TimestampSeconds))
			if timestamp < 0 {
				timestamp = 0
			}
		}

		claims = append(claims, model.ExtractedClaim{
			ClaimText:        r.ClaimText,
			ClaimCategory:    category,
			ClaimStrength:    strength,
			StatedTimeframe:  r.StatedTimeframe,
			TimestampSeconds: timestamp,
		})
	}
	return claims
}

func validCategory(category string) bool {
	for _, c := range model.ExtractionCategories {
		if category == c {
			return true
		}
	}
	return false
}
