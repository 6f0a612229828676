package score

import (
	"testing"
	"time"

	"github.com/claimscope/claimscope/internal/model"
)

func claimsWithStatuses(statuses map[model.ClaimStatus]int, specificity int) []model.Claim {
	var claims []model.Claim
	for status, n := range statuses {
		for i := 0; i < n; i++ {
			claims = append(claims, model.Claim{
				Status:           status,
				SpecificityScore: specificity,
			})
		}
	}
	return claims
}

func TestValidityBreakdown(t *testing.T) {
	claims := claimsWithStatuses(map[model.ClaimStatus]int{
		model.StatusVerifiedTrue:  4,
		model.StatusPartiallyTrue: 2,
		model.StatusVerifiedFalse: 4,
	}, 6)

	b := ValidityBreakdown(claims)

	if b.Verified != 40 || b.Mixed != 20 || b.Speculative != 40 {
		t.Errorf("percentages = %d/%d/%d, want 40/20/40", b.Verified, b.Mixed, b.Speculative)
	}
	if b.VerifiedCount != 4 || b.MixedCount != 2 || b.SpeculativeCount != 4 {
		t.Errorf("counts = %d/%d/%d, want 4/2/4", b.VerifiedCount, b.MixedCount, b.SpeculativeCount)
	}
}

func TestValidityBreakdown_PendingExcluded(t *testing.T) {
	claims := claimsWithStatuses(map[model.ClaimStatus]int{
		model.StatusVerifiedTrue: 1,
		model.StatusPending:      9,
	}, 6)

	b := ValidityBreakdown(claims)

	if b.Verified != 100 {
		t.Errorf("verified = %d, want 100 (pending excluded from denominator)", b.Verified)
	}
	if b.Total() != 1 {
		t.Errorf("total = %d, want 1", b.Total())
	}
}

func TestValidityBreakdown_Empty(t *testing.T) {
	b := ValidityBreakdown(nil)
	if b != (model.ValidityBreakdown{}) {
		t.Errorf("expected all-zero breakdown, got %+v", b)
	}
}

func TestValidityBreakdown_SpeculativeBucketMembers(t *testing.T) {
	claims := claimsWithStatuses(map[model.ClaimStatus]int{
		model.StatusVerifiedFalse: 1,
		model.StatusUnverifiable:  1,
		model.StatusExpired:       1,
	}, 6)

	b := ValidityBreakdown(claims)
	if b.SpeculativeCount != 3 {
		t.Errorf("speculative count = %d, want 3 (false+unverifiable+expired)", b.SpeculativeCount)
	}
}

func TestLean(t *testing.T) {
	tests := []struct {
		name string
		b    model.ValidityBreakdown
		want model.Lean
	}{
		{"verified majority", model.ValidityBreakdown{Verified: 50, Speculative: 30}, model.LeanVerified},
		{"speculative majority", model.ValidityBreakdown{Verified: 20, Speculative: 60}, model.LeanSpeculative},
		{"neither dominant", model.ValidityBreakdown{Verified: 40, Mixed: 30, Speculative: 30}, model.LeanMixed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lean(tt.b); got != tt.want {
				t.Errorf("Lean(%+v) = %q, want %q", tt.b, got, tt.want)
			}
		})
	}
}

func TestReliabilityScore(t *testing.T) {
	tests := []struct {
		name     string
		statuses map[model.ClaimStatus]int
		want     int
	}{
		{
			name:     "no scored claims is neutral",
			statuses: map[model.ClaimStatus]int{model.StatusPending: 3},
			want:     50,
		},
		{
			name:     "twenty perfect claims hit full confidence",
			statuses: map[model.ClaimStatus]int{model.StatusVerifiedTrue: 20},
			want:     100,
		},
		{
			name:     "five perfect claims regress toward neutral",
			statuses: map[model.ClaimStatus]int{model.StatusVerifiedTrue: 5},
			want:     63, // confidence 0.25: round(100*0.25 + 50*0.75)
		},
		{
			name:     "unverifiable claims never enter the denominator",
			statuses: map[model.ClaimStatus]int{model.StatusUnverifiable: 30},
			want:     50,
		},
		{
			name: "all wrong at full confidence",
			statuses: map[model.ClaimStatus]int{
				model.StatusVerifiedFalse: 10,
				model.StatusExpired:       10,
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := claimsWithStatuses(tt.statuses, 10)
			if got := ReliabilityScore(claims); got != tt.want {
				t.Errorf("ReliabilityScore = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReliabilityScore_SpecificityWeighting(t *testing.T) {
	// A single highly specific correct claim and a vague wrong one: weights
	// 1.0 and 0.2, raw = 1.0/1.2*100 = 83.33, confidence 0.1,
	// final = round(83.33*0.1 + 50*0.9) = round(53.3) = 53.
	claims := []model.Claim{
		{Status: model.StatusVerifiedTrue, SpecificityScore: 10},
		{Status: model.StatusVerifiedFalse, SpecificityScore: 2},
	}
	if got := ReliabilityScore(claims); got != 53 {
		t.Errorf("ReliabilityScore = %d, want 53", got)
	}
}

func TestReliabilityLabel(t *testing.T) {
	tests := []struct {
		score int
		want  model.Reliability
	}{
		{95, model.HighlyReliable},
		{80, model.HighlyReliable},
		{79, model.MostlyReliable},
		{65, model.MostlyReliable},
		{64, model.MixedReliability},
		{45, model.MixedReliability},
		{44, model.MostlySpeculative},
		{30, model.MostlySpeculative},
		{29, model.Unreliable},
		{0, model.Unreliable},
	}
	for _, tt := range tests {
		if got := ReliabilityLabel(tt.score); got != tt.want {
			t.Errorf("ReliabilityLabel(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestEchoChamberStatus(t *testing.T) {
	tests := []struct {
		name string
		b    model.ValidityBreakdown
		want model.EchoChamberType
	}{
		{
			name: "below volume floor never an echo chamber",
			b:    model.ValidityBreakdown{Speculative: 100, SpeculativeCount: 2},
			want: model.EchoNone,
		},
		{
			name: "speculative echo chamber",
			b:    model.ValidityBreakdown{Speculative: 85, SpeculativeCount: 8, VerifiedCount: 1, MixedCount: 1},
			want: model.EchoSpeculativeOnly,
		},
		{
			name: "reliable echo chamber",
			b:    model.ValidityBreakdown{Verified: 90, VerifiedCount: 9, SpeculativeCount: 1},
			want: model.EchoReliableOnly,
		},
		{
			name: "balanced story",
			b:    model.ValidityBreakdown{Verified: 50, Speculative: 50, VerifiedCount: 5, SpeculativeCount: 5},
			want: model.EchoNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EchoChamberStatus(tt.b); got != tt.want {
				t.Errorf("EchoChamberStatus = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrendingScore(t *testing.T) {
	now := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

	// Saturated story: updated now, 8+ creators, 40+ claims, high velocity.
	got := TrendingScore(10, 50, now.AddDate(0, 0, -2), now, now)
	if got != 100 {
		t.Errorf("saturated trending score = %d, want 100", got)
	}

	// Stale story: last update more than 30 days ago zeroes recency.
	stale := TrendingScore(10, 50, now.AddDate(0, 0, -90), now.AddDate(0, 0, -45), now)
	if stale >= got {
		t.Errorf("stale story should score below fresh one: %d vs %d", stale, got)
	}

	// Recency factor alone for a dormant single-creator story.
	quiet := TrendingScore(1, 1, now.AddDate(0, 0, -400), now.AddDate(0, 0, -400), now)
	// diversity 1/8 * 0.3 = 3.75, volume 1/40 * 0.2 = 0.5 -> round(4.25) = 4
	if quiet != 4 {
		t.Errorf("dormant trending score = %d, want 4", quiet)
	}
}

func TestCategoryAccuracy(t *testing.T) {
	claims := []model.Claim{
		{Category: "price", Status: model.StatusVerifiedTrue},
		{Category: "price", Status: model.StatusVerifiedFalse},
		{Category: "price", Status: model.StatusPartiallyTrue},
		{Category: "regulatory", Status: model.StatusVerifiedTrue},
		{Category: "regulatory", Status: model.StatusPending},
		{Category: "technology", Status: model.StatusUnverifiable},
	}

	acc := CategoryAccuracy(claims)

	if acc["price"] != 50 {
		t.Errorf("price = %d, want 50 ((1+0.5)/3)", acc["price"])
	}
	if acc["regulatory"] != 100 {
		t.Errorf("regulatory = %d, want 100 (pending excluded)", acc["regulatory"])
	}
	// timeline has zero claims; technology has only an unscored claim.
	if acc["timeline"] != 0 {
		t.Errorf("timeline = %d, want 0 for empty category", acc["timeline"])
	}
	if acc["technology"] != 0 {
		t.Errorf("technology = %d, want 0 with no scored claims", acc["technology"])
	}

	for _, cat := range model.ScoredCategories {
		if _, ok := acc[cat]; !ok {
			t.Errorf("missing category %q in result", cat)
		}
	}
}

func TestTier(t *testing.T) {
	tests := []struct {
		accuracy float64
		scored   int
		want     model.Tier
	}{
		{95, 4, model.TierUnranked}, // volume floor overrides accuracy
		{91, 10, model.TierDiamond},
		{90, 5, model.TierDiamond},
		{75, 10, model.TierGold},
		{60, 10, model.TierSilver},
		{50, 10, model.TierBronze},
		{49.9, 10, model.TierUnranked},
	}
	for _, tt := range tests {
		if got := Tier(tt.accuracy, tt.scored); got != tt.want {
			t.Errorf("Tier(%v, %d) = %q, want %q", tt.accuracy, tt.scored, got, tt.want)
		}
	}
}

func TestAccuracy(t *testing.T) {
	if got := Accuracy(0, 0, 0); got != 0 {
		t.Errorf("Accuracy(0,0,0) = %v, want 0", got)
	}
	if got := Accuracy(2, 1, 1); got != 62.5 {
		t.Errorf("Accuracy(2,1,1) = %v, want 62.5", got)
	}
}

func TestWeightedAccuracy(t *testing.T) {
	now := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)

	// Equal specificity, one recent correct and one very old wrong claim:
	// recent keeps full weight, old decays to the 0.3 floor.
	claims := []model.Claim{
		{Status: model.StatusVerifiedTrue, SpecificityScore: 10, CreatedAt: now.AddDate(0, 0, -10)},
		{Status: model.StatusVerifiedFalse, SpecificityScore: 10, CreatedAt: now.AddDate(-3, 0, 0)},
	}

	got := WeightedAccuracy(claims, now)
	// weights: ~0.9726 and 0.3 -> 0.9726/1.2726 = 76.4%
	if got < 76 || got > 77 {
		t.Errorf("WeightedAccuracy = %v, want ~76.4", got)
	}

	if WeightedAccuracy(nil, now) != 0 {
		t.Error("expected 0 with no scored claims")
	}
}
