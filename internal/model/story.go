package model

import "time"

// EchoChamberType flags a story whose covering creators are overwhelmingly
// one-sided in validity lean.
type EchoChamberType string

const (
	EchoNone            EchoChamberType = ""
	EchoSpeculativeOnly EchoChamberType = "speculative_only"
	EchoReliableOnly    EchoChamberType = "reliable_only"
)

// ValidityBreakdown splits a claim set into verified/mixed/speculative
// buckets. Percentages are rounded independently per bucket, so they may not
// sum to exactly 100. Pending claims are excluded entirely.
type ValidityBreakdown struct {
	Verified         int `json:"verified"`    // percentage 0-100
	Mixed            int `json:"mixed"`       // percentage 0-100
	Speculative      int `json:"speculative"` // percentage 0-100
	VerifiedCount    int `json:"verified_count"`
	MixedCount       int `json:"mixed_count"`
	SpeculativeCount int `json:"speculative_count"`
}

// Total returns the number of scoreable claims behind the breakdown.
func (b ValidityBreakdown) Total() int {
	return b.VerifiedCount + b.MixedCount + b.SpeculativeCount
}

// Story is a cluster of claims grouped externally by topic. Its validity,
// echo-chamber status, and trending score are derived from the claims
// assigned to it.
type Story struct {
	ID              string            `json:"id"`
	Slug            string            `json:"slug"`
	Headline        string            `json:"headline"`
	Summary         string            `json:"summary,omitempty"`
	Category        string            `json:"category"`
	Validity        ValidityBreakdown `json:"validity"`
	CreatorCount    int               `json:"creator_count"`
	ClaimCount      int               `json:"claim_count"`
	IsEchoChamber   bool              `json:"is_echo_chamber"`
	EchoChamberType EchoChamberType   `json:"echo_chamber_type,omitempty"`
	FirstMentioned  time.Time         `json:"first_mentioned_at"`
	LastUpdated     time.Time         `json:"last_updated_at"`
	TrendingScore   int               `json:"trending_score"`
}
