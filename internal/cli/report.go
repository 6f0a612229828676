package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimscope/claimscope/internal/model"
	"github.com/claimscope/claimscope/internal/score"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <creator-id>",
	Short: "Show a creator's verified track record",
	Long: `Report recomputes a creator's derived statistics from their full claim
history and prints the reliability score, accuracy tier, validity
breakdown, and per-category accuracy. The recomputed projection is cached
on the creator record.

Example:
  claimscope report creator-a`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	creator, err := st.CreatorByID(args[0])
	if err != nil {
		return err
	}
	claims, err := st.ClaimsByCreator(creator.ID)
	if err != nil {
		return err
	}

	stats := score.CreatorStats(claims)
	stats.RankOverall = creator.Stats.RankOverall
	stats.RankChange = creator.Stats.RankChange
	if err := st.UpdateCreatorStats(creator.ID, stats); err != nil {
		return err
	}

	fmt.Printf("%s", formatReport(creator, claims, stats, time.Now()))
	return nil
}

func formatReport(creator model.Creator, claims []model.Claim, stats model.CreatorStats, now time.Time) string {
	out := fmt.Sprintf("Creator:          %s (%s)\n", creator.ChannelName, creator.ID)
	out += fmt.Sprintf("Total claims:     %d\n", stats.TotalClaims)
	out += fmt.Sprintf("Overall accuracy: %.1f%%\n", stats.OverallAccuracy)
	out += fmt.Sprintf("Weighted accuracy: %.1f%% (recent claims count more)\n", score.WeightedAccuracy(claims, now))
	out += fmt.Sprintf("Reliability:      %d/100 (%s)\n", stats.ReliabilityScore, stats.ReliabilityLabel)
	out += fmt.Sprintf("Tier:             %s\n", stats.Tier)
	out += fmt.Sprintf("Lean:             %s\n", stats.Lean)

	out += fmt.Sprintf("\nValidity breakdown (%d scored claims):\n", stats.Validity.Total())
	out += fmt.Sprintf("  verified:    %d%% (%d)\n", stats.Validity.Verified, stats.Validity.VerifiedCount)
	out += fmt.Sprintf("  mixed:       %d%% (%d)\n", stats.Validity.Mixed, stats.Validity.MixedCount)
	out += fmt.Sprintf("  speculative: %d%% (%d)\n", stats.Validity.Speculative, stats.Validity.SpeculativeCount)

	out += "\nCategory accuracy:\n"
	for _, category := range model.ScoredCategories {
		out += fmt.Sprintf("  %-12s %d%%\n", category, stats.CategoryAccuracy[category])
	}

	out += "\nStatus counts:\n"
	statuses := make([]string, 0, len(stats.StatusCounts))
	for status := range stats.StatusCounts {
		statuses = append(statuses, string(status))
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		out += fmt.Sprintf("  %-15s %d\n", status, stats.StatusCounts[model.ClaimStatus(status)])
	}

	return out
}
