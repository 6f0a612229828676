package model

import "time"

// Tier ranks creators by accuracy once they clear the volume floor.
type Tier string

const (
	TierDiamond  Tier = "diamond"
	TierGold     Tier = "gold"
	TierSilver   Tier = "silver"
	TierBronze   Tier = "bronze"
	TierUnranked Tier = "unranked"
)

// Reliability is the label bucket for a 0-100 reliability score.
type Reliability string

const (
	HighlyReliable    Reliability = "highly_reliable"
	MostlyReliable    Reliability = "mostly_reliable"
	MixedReliability  Reliability = "mixed"
	MostlySpeculative Reliability = "mostly_speculative"
	Unreliable        Reliability = "unreliable"
)

// Sentiment is the creator's current market stance.
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// Lean is the categorical validity tendency of a creator or story.
type Lean string

const (
	LeanVerified    Lean = "verified"
	LeanMixed       Lean = "mixed"
	LeanSpeculative Lean = "speculative"
)

// Creator is a tracked channel plus a cached projection of derived
// statistics. The Stats block is recomputable from the creator's full claim
// set at any time and must never be treated as a source of truth.
type Creator struct {
	ID            string    `json:"id"`
	ChannelName   string    `json:"channel_name"`
	ChannelID     string    `json:"channel_id"` // feed channel id used for extraction
	ChannelHandle string    `json:"channel_handle,omitempty"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	TrackingSince time.Time `json:"tracking_since"`

	Stats CreatorStats `json:"stats"`
}

// CreatorStats is the derived, display-only projection for a creator.
type CreatorStats struct {
	TotalClaims      int                 `json:"total_claims"`
	StatusCounts     map[ClaimStatus]int `json:"status_counts"`
	OverallAccuracy  float64             `json:"overall_accuracy"`
	CategoryAccuracy map[string]int      `json:"category_accuracy"`
	ReliabilityScore int                 `json:"reliability_score"`
	ReliabilityLabel Reliability         `json:"reliability_label"`
	Lean             Lean                `json:"lean"`
	Validity         ValidityBreakdown   `json:"validity"`
	Tier             Tier                `json:"tier"`
	RankOverall      int                 `json:"rank_overall,omitempty"` // 0 = unranked
	RankChange       int                 `json:"rank_change"`
	CurrentSentiment Sentiment           `json:"current_sentiment,omitempty"`
	CurrentStance    string              `json:"current_stance,omitempty"`
}

// Video is a source video a claim was extracted from.
type Video struct {
	ID              string    `json:"id"`
	CreatorID       string    `json:"creator_id"`
	Title           string    `json:"title"`
	SourceVideoID   string    `json:"source_video_id"`
	PublishedAt     time.Time `json:"published_at"`
	ViewCount       int       `json:"view_count"`
	DurationSeconds int       `json:"duration_seconds"`
	ClaimsExtracted bool      `json:"claims_extracted"`
}
