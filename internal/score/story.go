package score

import (
	"time"

	"github.com/claimscope/claimscope/internal/model"
)

// ScoreStory recomputes a story's derived fields from the claims assigned
// to it. Clustering claims into stories happens elsewhere; this only fills
// in the validity breakdown, echo-chamber status, and trending score.
func ScoreStory(story model.Story, claims []model.Claim, now time.Time) model.Story {
	story.ClaimCount = len(claims)

	creators := make(map[string]struct{}, len(claims))
	for _, c := range claims {
		if c.CreatorID != "" {
			creators[c.CreatorID] = struct{}{}
		}
	}
	story.CreatorCount = len(creators)

	story.Validity = ValidityBreakdown(claims)
	story.EchoChamberType = EchoChamberStatus(story.Validity)
	story.IsEchoChamber = story.EchoChamberType != model.EchoNone

	if story.FirstMentioned.IsZero() || story.LastUpdated.IsZero() {
		for _, c := range claims {
			if story.FirstMentioned.IsZero() || c.CreatedAt.Before(story.FirstMentioned) {
				story.FirstMentioned = c.CreatedAt
			}
			if c.CreatedAt.After(story.LastUpdated) {
				story.LastUpdated = c.CreatedAt
			}
		}
	}
	story.TrendingScore = TrendingScore(story.CreatorCount, story.ClaimCount,
		story.FirstMentioned, story.LastUpdated, now)

	return story
}
