// Package verify runs claims through the evidence service and turns the
// replies into verification results.
package verify

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/claimscope/claimscope/internal/evidence"
	"github.com/claimscope/claimscope/internal/model"
	"github.com/claimscope/claimscope/internal/strategy"
	"github.com/claimscope/claimscope/internal/worker"
)

const systemPrompt = `You are a crypto claim verification analyst. Use available evidence about crypto claims to provide a structured verification verdict. Be rigorous: require real evidence, not speculation.

Rules:
- "verified_true": Clear evidence confirms the claim happened/is happening
- "verified_false": Clear evidence contradicts the claim
- "partially_true": Some truth but overstated, understated, or mischaracterized
- "pending": Timeframe hasn't elapsed yet or insufficient evidence
- "expired": Timeframe passed without the predicted event occurring
- "unverifiable": Too subjective to verify objectively
- Price predictions: only "verified_true" if the target price was actually reached

Respond with ONLY valid JSON in this format:
{
  "status": "verified_true" | "verified_false" | "partially_true" | "pending" | "expired" | "unverifiable",
  "confidence": <number 0.0-1.0>,
  "notes": "<1-3 sentence verification summary>",
  "evidence": "<key evidence sources and facts found>",
  "reasoning": "<step-by-step reasoning>"
}`

// PriceProvider supplies market context for price-strategy claims.
type PriceProvider interface {
	Current(ctx context.Context) (*model.PriceData, error)
}

// Verifier verifies claims one at a time or in rate-limited batches.
type Verifier struct {
	provider evidence.Provider
	prices   PriceProvider
	pacer    worker.Pacer
	config   model.VerificationConfig
	verbose  bool
	now      func() time.Time
}

// NewVerifier creates a verifier. prices may be nil, in which case price
// claims are verified without market context. The pacer spaces out batch
// chunks; tests pass worker.NewNopPacer.
func NewVerifier(provider evidence.Provider, prices PriceProvider, pacer worker.Pacer, config model.VerificationConfig, verbose bool) *Verifier {
	if config.Concurrency <= 0 {
		config.Concurrency = 2
	}

	return &Verifier{
		provider: provider,
		prices:   prices,
		pacer:    pacer,
		config:   config,
		verbose:  verbose,
		now:      time.Now,
	}
}

// VerifyClaim verifies a single claim. Unverifiable claims short-circuit
// without any external call; price-provider failures degrade to verification
// without market context.
func (v *Verifier) VerifyClaim(ctx context.Context, claim model.Claim) (model.VerificationResult, error) {
	switch strategy.Select(claim) {
	case strategy.Unverifiable:
		return model.VerificationResult{
			Status:            model.StatusUnverifiable,
			Confidence:        0.9,
			VerificationNotes: "This claim is too subjective or vague to verify with objective evidence.",
			Reasoning:         "Claim contains opinion-based language without specific verifiable assertions.",
		}, nil
	case strategy.Price:
		var priceData *model.PriceData
		if v.prices != nil {
			data, err := v.prices.Current(ctx)
			if err != nil {
				v.logf("price provider unavailable, verifying without market context: %v", err)
			} else {
				priceData = data
			}
		}
		return v.verifyWithEvidence(ctx, claim, priceData)
	default:
		return v.verifyWithEvidence(ctx, claim, nil)
	}
}

// VerifyBatch verifies claims in chunks of the configured concurrency. Chunk
// starts are spaced by the pacer's rate limiter; chunk members run
// concurrently, and each settles independently. A claim whose verification
// fails or panics becomes a pending result carrying the reason, so the
// returned map always has one entry per input claim.
func (v *Verifier) VerifyBatch(ctx context.Context, claims []model.Claim) map[string]model.VerificationResult {
	results := make(map[string]model.VerificationResult, len(claims))

	for start := 0; start < len(claims); start += v.config.Concurrency {
		if err := v.pacer.Wait(ctx); err != nil {
			v.logf("batch verification interrupted: %v", err)
			// Keep the one-entry-per-claim contract even on
			// cancellation.
			for _, claim := range claims[start:] {
				results[claim.ID] = model.VerificationResult{
					Status:            model.StatusPending,
					Confidence:        0,
					VerificationNotes: fmt.Sprintf("Verification not attempted: %v", err),
				}
			}
			return results
		}

		end := start + v.config.Concurrency
		if end > len(claims) {
			end = len(claims)
		}
		chunk := claims[start:end]

		settled := make([]model.VerificationResult, len(chunk))
		var wg sync.WaitGroup
		for i, claim := range chunk {
			wg.Add(1)
			go func(idx int, c model.Claim) {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						settled[idx] = model.VerificationResult{
							Status:            model.StatusPending,
							Confidence:        0,
							VerificationNotes: fmt.Sprintf("Verification failed: panic: %v", r),
						}
					}
				}()

				result, err := v.VerifyClaim(ctx, c)
				if err != nil {
					result = model.VerificationResult{
						Status:            model.StatusPending,
						Confidence:        0,
						VerificationNotes: fmt.Sprintf("Verification failed: %v", err),
					}
				}
				settled[idx] = result
			}(i, claim)
		}
		wg.Wait()

		for i, claim := range chunk {
			results[claim.ID] = settled[i]
		}
	}

	return results
}

func (v *Verifier) verifyWithEvidence(ctx context.Context, claim model.Claim, priceData *model.PriceData) (model.VerificationResult, error) {
	reply, err := v.provider.Complete(ctx, evidence.Request{
		System: systemPrompt,
		Prompt: v.buildPrompt(claim, priceData),
	})
	if err != nil {
		return model.VerificationResult{}, fmt.Errorf("evidence service: %w", err)
	}
	return ParseResult(reply), nil
}

func (v *Verifier) buildPrompt(claim model.Claim, priceData *model.PriceData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Verify this crypto claim against real evidence:\n\n")
	fmt.Fprintf(&b, "CLAIM: %q\n", claim.ClaimText)
	fmt.Fprintf(&b, "CATEGORY: %s\n", claim.Category)
	fmt.Fprintf(&b, "CLAIM DATE: %s\n", claim.CreatedAt.Format("2006-01-02"))
	timeframe := claim.StatedTimeframe
	if timeframe == "" {
		timeframe = "None"
	}
	fmt.Fprintf(&b, "STATED TIMEFRAME: %s\n", timeframe)
	fmt.Fprintf(&b, "TODAY: %s", v.now().Format("2006-01-02"))

	if priceData != nil {
		fmt.Fprintf(&b, "\n\nCURRENT PRICE DATA:\n")
		fmt.Fprintf(&b, "- Current Price: $%v\n", priceData.CurrentPrice)
		fmt.Fprintf(&b, "- Market Cap: $%.1fB\n", priceData.MarketCap/1e9)
		fmt.Fprintf(&b, "- All-Time High: $%v (%s)\n",
			priceData.AllTimeHigh, priceData.AllTimeHighDate.Format("2006-01-02"))
		if priceData.HasPercentChange {
			fmt.Fprintf(&b, "- 1-Year Change: %.1f%%", priceData.PercentChange1y)
		} else {
			fmt.Fprintf(&b, "- 1-Year Change: N/A")
		}
	}

	fmt.Fprintf(&b, "\n\nEvaluate the claim, then provide your JSON verdict.")

	return b.String()
}

func (v *Verifier) logf(format string, args ...interface{}) {
	if v.verbose {
		fmt.Fprintf(os.Stderr, "[claimscope] "+format+"\n", args...)
	}
}
