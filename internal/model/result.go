package model

import "time"

// VerificationResult is the transient outcome of verifying one claim. It is
// never persisted directly; the caller applies it to the claim through the
// store.
type VerificationResult struct {
	Status               ClaimStatus `json:"status"`
	Confidence           float64     `json:"confidence"` // 0.0-1.0
	VerificationNotes    string      `json:"verification_notes"`
	VerificationEvidence string      `json:"verification_evidence"`
	Reasoning            string      `json:"reasoning"`
}

// PriceData is the supplementary market context fetched for price-strategy
// claims. A provider failure degrades to a nil PriceData, never a hard
// verification failure.
type PriceData struct {
	CurrentPrice     float64   `json:"current_price"`
	Currency         string    `json:"currency"`
	MarketCap        float64   `json:"market_cap"`
	AllTimeHigh      float64   `json:"all_time_high"`
	AllTimeHighDate  time.Time `json:"all_time_high_date"`
	PercentChange1y  float64   `json:"percent_change_1y"`
	HasPercentChange bool      `json:"has_percent_change"`
}

// TranscriptSegment is one timed caption line.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Offset   float64 `json:"offset"`
	Duration float64 `json:"duration"`
}

// Transcript is the full caption text of a video plus its timed segments.
type Transcript struct {
	Text     string              `json:"text"`
	Segments []TranscriptSegment `json:"segments"`
}
