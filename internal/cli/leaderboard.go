package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claimscope/claimscope/internal/model"
	"github.com/claimscope/claimscope/internal/score"
)

// leaderboardCmd represents the leaderboard command
var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Rank tracked creators by verified accuracy",
	Long: `Leaderboard recomputes every creator's statistics, ranks those with at
least five claims by overall accuracy (claim volume breaks ties), and
prints the standings plus an aggregate market pulse. New ranks are cached
so the next run can report movement.`,
	RunE: runLeaderboard,
}

func init() {
	rootCmd.AddCommand(leaderboardCmd)
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	creators, err := st.AllCreators()
	if err != nil {
		return err
	}
	allClaims, err := st.AllClaims()
	if err != nil {
		return err
	}

	// Refresh every projection before ranking so stale cached stats never
	// decide the standings.
	byID := make(map[string]model.Creator, len(creators))
	for i, creator := range creators {
		claims, err := st.ClaimsByCreator(creator.ID)
		if err != nil {
			return err
		}
		stats := score.CreatorStats(claims)
		stats.RankOverall = creator.Stats.RankOverall
		creators[i].Stats = stats
		byID[creator.ID] = creators[i]
	}

	rankings := score.RankCreators(creators)
	if len(rankings) == 0 {
		fmt.Println("No creators with enough claims to rank (minimum 5)")
	}

	for _, r := range rankings {
		creator := byID[r.CreatorID]
		movement := ""
		switch {
		case r.RankChange > 0:
			movement = fmt.Sprintf("  (up %d)", r.RankChange)
		case r.RankChange < 0:
			movement = fmt.Sprintf("  (down %d)", -r.RankChange)
		}
		fmt.Printf("%2d. %-24s %5.1f%%  %-8s %d claims%s\n",
			r.Rank, creator.ChannelName, creator.Stats.OverallAccuracy,
			creator.Stats.Tier, creator.Stats.TotalClaims, movement)

		stats := creator.Stats
		stats.RankOverall = r.Rank
		stats.RankChange = r.RankChange
		if err := st.UpdateCreatorStats(r.CreatorID, stats); err != nil {
			return err
		}
	}

	pulse := score.Pulse(creators, allClaims)
	fmt.Printf("\nMarket pulse: %d%% bullish / %d%% bearish / %d%% neutral\n",
		pulse.BullishPercent, pulse.BearishPercent, pulse.NeutralPercent)
	fmt.Printf("Claims: %d total, %d pending, %d verified true, %d verified false\n",
		pulse.TotalClaims, pulse.PendingClaims, pulse.VerifiedTrue, pulse.VerifiedFalse)
	return nil
}
