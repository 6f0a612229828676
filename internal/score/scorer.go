// Package score computes every derived metric from claim collections:
// validity breakdowns, reliability scores, leans, echo-chamber flags,
// trending scores, category accuracy, and tiers. All functions are pure and
// deterministic; nothing here touches the store or the network.
package score

import (
	"math"
	"time"

	"github.com/claimscope/claimscope/internal/model"
)

// reliabilityFullConfidence is the scored-claim count at which the
// reliability score stops regressing toward neutral.
const reliabilityFullConfidence = 20

// ValidityBreakdown classifies each scoreable claim into verified
// (verified_true), mixed (partially_true), or speculative (verified_false,
// unverifiable, expired). Pending claims are excluded from the denominator
// entirely. Percentages are rounded independently per bucket, so the three
// may not sum to exactly 100.
func ValidityBreakdown(claims []model.Claim) model.ValidityBreakdown {
	var b model.ValidityBreakdown

	for _, c := range claims {
		switch c.Status {
		case model.StatusVerifiedTrue:
			b.VerifiedCount++
		case model.StatusPartiallyTrue:
			b.MixedCount++
		case model.StatusVerifiedFalse, model.StatusUnverifiable, model.StatusExpired:
			b.SpeculativeCount++
		}
	}

	total := b.Total()
	if total == 0 {
		return b
	}

	b.Verified = roundPct(b.VerifiedCount, total)
	b.Mixed = roundPct(b.MixedCount, total)
	b.Speculative = roundPct(b.SpeculativeCount, total)
	return b
}

// Lean derives the categorical validity tendency from a breakdown.
func Lean(b model.ValidityBreakdown) model.Lean {
	switch {
	case b.Verified >= 50:
		return model.LeanVerified
	case b.Speculative >= 50:
		return model.LeanSpeculative
	default:
		return model.LeanMixed
	}
}

// ReliabilityScore computes the 0-100 volume-adjusted weighted accuracy for
// a claim set. Each claim is weighted by specificity/10; verified_true
// contributes full weight, partially_true half, everything else zero. The
// denominator covers verified_true, verified_false, partially_true, and
// expired claims only. With little evidence the score regresses toward a
// neutral 50.
func ReliabilityScore(claims []model.Claim) int {
	var numerator, denominator float64
	scored := 0

	for _, c := range claims {
		weight := float64(c.SpecificityScore) / 10

		switch c.Status {
		case model.StatusVerifiedTrue:
			numerator += weight
		case model.StatusPartiallyTrue:
			numerator += weight * 0.5
		case model.StatusVerifiedFalse, model.StatusExpired:
			// weight counts against the creator
		default:
			continue
		}

		denominator += weight
		scored++
	}

	raw := 50.0
	if denominator > 0 {
		raw = numerator / denominator * 100
	}

	confidence := math.Min(1, float64(scored)/reliabilityFullConfidence)
	return int(math.Round(raw*confidence + 50*(1-confidence)))
}

// ReliabilityLabel buckets a reliability score.
func ReliabilityLabel(score int) model.Reliability {
	switch {
	case score >= 80:
		return model.HighlyReliable
	case score >= 65:
		return model.MostlyReliable
	case score >= 45:
		return model.MixedReliability
	case score >= 30:
		return model.MostlySpeculative
	default:
		return model.Unreliable
	}
}

// EchoChamberStatus flags a story whose claim set is overwhelmingly
// one-sided. Below three scoreable claims a story is never an echo chamber.
func EchoChamberStatus(b model.ValidityBreakdown) model.EchoChamberType {
	if b.Total() < 3 {
		return model.EchoNone
	}
	if b.Speculative >= 80 {
		return model.EchoSpeculativeOnly
	}
	if b.Verified >= 80 {
		return model.EchoReliableOnly
	}
	return model.EchoNone
}

// TrendingScore combines recency, creator diversity, claim volume, and
// claim velocity into a 0-100 ranking score for a story.
func TrendingScore(creatorCount, claimCount int, firstMentioned, lastUpdated, now time.Time) int {
	// Recency: linear decay to zero over 30 days since the last update.
	daysSinceUpdate := now.Sub(lastUpdated).Hours() / 24
	recency := clamp01(1 - daysSinceUpdate/30)

	// Diversity: saturates at 8 distinct creators.
	diversity := clamp01(float64(creatorCount) / 8)

	// Volume: saturates at 40 claims.
	volume := clamp01(float64(claimCount) / 40)

	// Velocity: claims per elapsed day since first mention, saturating at
	// five per day.
	elapsedDays := math.Max(1, now.Sub(firstMentioned).Hours()/24)
	velocity := clamp01(float64(claimCount) / elapsedDays / 5)

	combined := recency*0.3 + diversity*0.3 + volume*0.2 + velocity*0.2
	return int(math.Round(combined * 100))
}

// CategoryAccuracy computes per-category accuracy over the fixed category
// set: (true + 0.5*partial) / scored * 100, rounded. Categories with no
// scored claims report zero, never NaN.
func CategoryAccuracy(claims []model.Claim) map[string]int {
	result := make(map[string]int, len(model.ScoredCategories))

	for _, cat := range model.ScoredCategories {
		var trueCount, partialCount, scored int
		for _, c := range claims {
			if c.Category != cat {
				continue
			}
			switch c.Status {
			case model.StatusVerifiedTrue:
				trueCount++
				scored++
			case model.StatusPartiallyTrue:
				partialCount++
				scored++
			case model.StatusVerifiedFalse:
				scored++
			}
		}

		if scored == 0 {
			result[cat] = 0
			continue
		}
		result[cat] = int(math.Round((float64(trueCount) + 0.5*float64(partialCount)) / float64(scored) * 100))
	}

	return result
}

// Accuracy returns the overall accuracy percentage with one decimal place.
// Partially true counts as half.
func Accuracy(verifiedTrue, verifiedFalse, partiallyTrue int) float64 {
	total := verifiedTrue + verifiedFalse + partiallyTrue
	if total == 0 {
		return 0
	}
	return math.Round((float64(verifiedTrue)+0.5*float64(partiallyTrue))/float64(total)*1000) / 10
}

// Tier assigns a tier from accuracy percentage and scored-claim volume.
// Fewer than five scored claims is always unranked, whatever the accuracy.
func Tier(accuracy float64, totalScored int) model.Tier {
	if totalScored < 5 {
		return model.TierUnranked
	}
	switch {
	case accuracy >= 90:
		return model.TierDiamond
	case accuracy >= 75:
		return model.TierGold
	case accuracy >= 60:
		return model.TierSilver
	case accuracy >= 50:
		return model.TierBronze
	default:
		return model.TierUnranked
	}
}

// WeightedAccuracy weights each scored claim by recency (full weight inside
// 90 days, decaying to a 0.3 floor over a year) and specificity. Returns
// one-decimal percentage, 0 with no scored claims.
func WeightedAccuracy(claims []model.Claim, now time.Time) float64 {
	var weightedCorrect, totalWeight float64

	for _, c := range claims {
		switch c.Status {
		case model.StatusVerifiedTrue, model.StatusVerifiedFalse, model.StatusPartiallyTrue:
		default:
			continue
		}

		ageDays := now.Sub(c.CreatedAt).Hours() / 24
		recency := math.Max(0.3, 1-ageDays/365)
		weight := recency * float64(c.SpecificityScore) / 10

		if c.Status == model.StatusVerifiedTrue {
			weightedCorrect += weight
		}
		if c.Status == model.StatusPartiallyTrue {
			weightedCorrect += weight * 0.5
		}
		totalWeight += weight
	}

	if totalWeight == 0 {
		return 0
	}
	return math.Round(weightedCorrect/totalWeight*1000) / 10
}

func roundPct(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
