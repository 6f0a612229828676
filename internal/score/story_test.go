package score

import (
	"testing"
	"time"

	"github.com/claimscope/claimscope/internal/model"
)

func TestScoreStory(t *testing.T) {
	now := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

	claims := []model.Claim{
		{CreatorID: "a", Status: model.StatusVerifiedFalse, CreatedAt: now.AddDate(0, 0, -10)},
		{CreatorID: "a", Status: model.StatusUnverifiable, CreatedAt: now.AddDate(0, 0, -8)},
		{CreatorID: "b", Status: model.StatusExpired, CreatedAt: now.AddDate(0, 0, -5)},
		{CreatorID: "c", Status: model.StatusVerifiedTrue, CreatedAt: now.AddDate(0, 0, -1)},
		{CreatorID: "c", Status: model.StatusPending, CreatedAt: now},
	}

	story := ScoreStory(model.Story{ID: "s1", Headline: "ETF approval wave"}, claims, now)

	if story.ClaimCount != 5 || story.CreatorCount != 3 {
		t.Errorf("counts = %d claims / %d creators, want 5/3", story.ClaimCount, story.CreatorCount)
	}
	// 4 scored: 3 speculative (75%), 1 verified (25%), pending excluded.
	if story.Validity.SpeculativeCount != 3 || story.Validity.Speculative != 75 {
		t.Errorf("validity = %+v", story.Validity)
	}
	// 75% speculative is below the 80% echo threshold.
	if story.IsEchoChamber {
		t.Errorf("echo chamber = %q, want none", story.EchoChamberType)
	}
	if !story.FirstMentioned.Equal(now.AddDate(0, 0, -10)) || !story.LastUpdated.Equal(now) {
		t.Errorf("time bounds = %v..%v", story.FirstMentioned, story.LastUpdated)
	}
	if story.TrendingScore <= 0 || story.TrendingScore > 100 {
		t.Errorf("trending score = %d, want within (0,100]", story.TrendingScore)
	}
}

func TestScoreStory_EchoChamber(t *testing.T) {
	now := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)
	var claims []model.Claim
	for i := 0; i < 5; i++ {
		claims = append(claims, model.Claim{
			CreatorID: "a",
			Status:    model.StatusUnverifiable,
			CreatedAt: now.AddDate(0, 0, -i),
		})
	}

	story := ScoreStory(model.Story{ID: "s1"}, claims, now)
	if !story.IsEchoChamber || story.EchoChamberType != model.EchoSpeculativeOnly {
		t.Errorf("story = %+v, want speculative echo chamber", story)
	}
}
