package score

import (
	"sort"

	"github.com/claimscope/claimscope/internal/model"
)

// minRankedClaims is the claim volume below which a creator is excluded
// from the leaderboard.
const minRankedClaims = 5

// CreatorStats recomputes the full derived projection for a creator from
// their claim set. The result is cached for display only and can be thrown
// away and rebuilt at any time.
func CreatorStats(claims []model.Claim) model.CreatorStats {
	counts := make(map[model.ClaimStatus]int, len(model.ValidStatuses))
	for _, c := range claims {
		counts[c.Status]++
	}

	breakdown := ValidityBreakdown(claims)
	reliability := ReliabilityScore(claims)

	return model.CreatorStats{
		TotalClaims:  len(claims),
		StatusCounts: counts,
		OverallAccuracy: Accuracy(
			counts[model.StatusVerifiedTrue],
			counts[model.StatusVerifiedFalse],
			counts[model.StatusPartiallyTrue],
		),
		CategoryAccuracy: CategoryAccuracy(claims),
		ReliabilityScore: reliability,
		ReliabilityLabel: ReliabilityLabel(reliability),
		Lean:             Lean(breakdown),
		Validity:         breakdown,
		Tier: Tier(
			Accuracy(
				counts[model.StatusVerifiedTrue],
				counts[model.StatusVerifiedFalse],
				counts[model.StatusPartiallyTrue],
			),
			counts[model.StatusVerifiedTrue]+counts[model.StatusVerifiedFalse]+counts[model.StatusPartiallyTrue],
		),
	}
}

// Ranking is one leaderboard row.
type Ranking struct {
	CreatorID  string
	Rank       int
	RankChange int // positive = moved up since the previous ranking
}

// RankCreators orders creators by overall accuracy with total claims as the
// tiebreaker. Creators with fewer than five claims are unranked. RankChange
// compares against each creator's previous cached rank (zero when the
// creator was previously unranked).
func RankCreators(creators []model.Creator) []Ranking {
	eligible := make([]model.Creator, 0, len(creators))
	for _, c := range creators {
		if c.Stats.TotalClaims >= minRankedClaims {
			eligible = append(eligible, c)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i].Stats, eligible[j].Stats
		if a.OverallAccuracy != b.OverallAccuracy {
			return a.OverallAccuracy > b.OverallAccuracy
		}
		return a.TotalClaims > b.TotalClaims
	})

	rankings := make([]Ranking, len(eligible))
	for i, c := range eligible {
		rank := i + 1
		change := 0
		if c.Stats.RankOverall > 0 {
			change = c.Stats.RankOverall - rank
		}
		rankings[i] = Ranking{CreatorID: c.ID, Rank: rank, RankChange: change}
	}
	return rankings
}

// MarketPulse is the aggregate sentiment/status snapshot across all tracked
// creators and claims.
type MarketPulse struct {
	BullishPercent int
	BearishPercent int
	NeutralPercent int
	TotalCreators  int
	TotalClaims    int
	PendingClaims  int
	VerifiedTrue   int
	VerifiedFalse  int
}

// Pulse aggregates sentiment and claim-status counts.
func Pulse(creators []model.Creator, claims []model.Claim) MarketPulse {
	pulse := MarketPulse{
		TotalCreators: len(creators),
		TotalClaims:   len(claims),
	}

	var bullish, bearish, neutral int
	for _, c := range creators {
		switch c.Stats.CurrentSentiment {
		case model.SentimentBullish:
			bullish++
		case model.SentimentBearish:
			bearish++
		default:
			neutral++
		}
	}
	if len(creators) > 0 {
		pulse.BullishPercent = roundPct(bullish, len(creators))
		pulse.BearishPercent = roundPct(bearish, len(creators))
		pulse.NeutralPercent = roundPct(neutral, len(creators))
	}

	for _, c := range claims {
		switch c.Status {
		case model.StatusPending:
			pulse.PendingClaims++
		case model.StatusVerifiedTrue:
			pulse.VerifiedTrue++
		case model.StatusVerifiedFalse:
			pulse.VerifiedFalse++
		}
	}

	return pulse
}
