// Package extract turns video transcripts into candidate claims via the
// evidence service and ingests them into the store.
package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/claimscope/claimscope/internal/evidence"
	"github.com/claimscope/claimscope/internal/model"
	"github.com/claimscope/claimscope/internal/worker"
)

const extractionSystemPrompt = `You are a crypto claim extraction analyst for a platform that tracks the accuracy of crypto YouTube creators' predictions and claims.

Analyze the transcript and extract specific, verifiable claims. Focus on:
- Price predictions (specific price targets or ranges)
- Partnership claims (named companies/institutions)
- Regulatory predictions (ETF approvals, SEC actions, legal outcomes)
- Technology claims (specific tech upgrades, adoption metrics)
- Market predictions (market cap targets, altseason timing, dominance shifts)
- Technical analysis claims (specific chart patterns, breakout predictions with timeframes)

Rules:
- Only extract claims that are specific enough to verify later
- Skip vague opinions like "I think crypto is good" or "XRP has potential"
- Each claim should be a self-contained statement that someone could fact-check
- Estimate the timestamp in seconds where the claim was made (approximate is fine)
- Classify claim strength:
  - "strong": Creator states it with high conviction ("will happen", "guaranteed", definite language)
  - "medium": Creator expresses moderate confidence ("likely", "probably", "I believe")
  - "weak": Creator is speculative ("could", "might", "possible")

Respond with ONLY a valid JSON array of claims:
[
  {
    "claimText": "<the specific claim as stated>",
    "claimCategory": "<category>",
    "claimStrength": "strong" | "medium" | "weak",
    "statedTimeframe": "<timeframe if mentioned, e.g. 'by end of 2025', 'within 6 months'>" | null,
    "timestampSeconds": <approximate seconds into video>
  }
]

Valid categories: "price_prediction", "regulatory", "partnership", "technology", "market_prediction", "technical_analysis", "etf_approval", "partnership_adoption", "market_analysis"

If no verifiable claims are found, return an empty array: []`

const truncationMarker = "\n[TRANSCRIPT TRUNCATED]"

// Extractor extracts claims from a single transcript.
type Extractor struct {
	provider evidence.Provider
	pacer    worker.Pacer
	config   model.ExtractionConfig
}

// NewExtractor creates an extractor. The pacer rate-limits provider calls
// and spaces out backoff waits; tests pass worker.NewNopPacer.
func NewExtractor(provider evidence.Provider, pacer worker.Pacer, config model.ExtractionConfig) *Extractor {
	if config.MaxTranscriptChars <= 0 {
		config.MaxTranscriptChars = 20000
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}
	if config.BackoffBase <= 0 {
		config.BackoffBase = 15 * time.Second
	}

	return &Extractor{
		provider: provider,
		pacer:    pacer,
		config:   config,
	}
}

// ExtractClaims asks the evidence service for the verifiable claims in a
// transcript. Transcripts beyond the configured size are truncated and
// flagged so the model knows the tail is missing. Rate-limited calls retry
// with doubling backoff before becoming a hard error.
func (e *Extractor) ExtractClaims(ctx context.Context, transcript, creatorID, videoTitle string, videoDate time.Time) ([]model.ExtractedClaim, error) {
	if len(transcript) > e.config.MaxTranscriptChars {
		transcript = transcript[:e.config.MaxTranscriptChars] + truncationMarker
	}

	prompt := fmt.Sprintf(`Extract verifiable claims from this crypto YouTube video transcript.

VIDEO TITLE: %s
CREATOR: %s
DATE: %s

TRANSCRIPT:
%s

Extract all specific, verifiable claims as a JSON array.`,
		videoTitle, creatorID, videoDate.Format("2006-01-02"), transcript)

	reply, err := e.complete(ctx, evidence.Request{
		System: extractionSystemPrompt,
		Prompt: prompt,
	})
	if err != nil {
		return nil, err
	}

	return ParseClaims(reply), nil
}

// complete calls the provider behind the rate limiter, retrying rate-limited
// responses with 30s/60s/120s waits before giving up.
func (e *Extractor) complete(ctx context.Context, req evidence.Request) (string, error) {
	var lastErr error
	for attempt := 0; attempt < e.config.MaxRetries; attempt++ {
		if err := e.pacer.Wait(ctx); err != nil {
			return "", err
		}
		reply, err := e.provider.Complete(ctx, req)
		if err == nil {
			return reply, nil
		}
		if !errors.Is(err, evidence.ErrRateLimited) {
			return "", err
		}
		lastErr = err

		wait := e.config.BackoffBase * (1 << (attempt + 1))
		if sleepErr := e.pacer.Sleep(ctx, wait); sleepErr != nil {
			return "", sleepErr
		}
	}
	return "", fmt.Errorf("rate limited after %d attempts: %w", e.config.MaxRetries, lastErr)
}
