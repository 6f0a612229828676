package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimscope/claimscope/internal/evidence"
	"github.com/claimscope/claimscope/internal/extract"
	"github.com/claimscope/claimscope/internal/feed"
	"github.com/claimscope/claimscope/internal/model"
	"github.com/claimscope/claimscope/internal/store"
	"github.com/claimscope/claimscope/internal/worker"
)

var (
	extractAll        bool
	extractVideos     int
	extractSkipVerify bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [creator-id]",
	Short: "Extract claims from a creator's recent videos",
	Long: `Extract fetches a creator's recent videos, pulls their transcripts, and
asks the evidence service for specific, verifiable claims. New claims are
deduplicated against the creator's existing claims and stored as pending,
then verified unless --skip-verify is set.

Example:
  claimscope extract creator-a
  claimscope extract --all --videos 5
  claimscope extract creator-a --skip-verify`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolVar(&extractAll, "all", false, "extract for every tracked creator")
	extractCmd.Flags().IntVar(&extractVideos, "videos", 0, "recent videos per creator (default from config)")
	extractCmd.Flags().BoolVar(&extractSkipVerify, "skip-verify", false, "do not verify newly extracted claims")
}

func runExtract(cmd *cobra.Command, args []string) error {
	if !extractAll && len(args) == 0 {
		return fmt.Errorf("provide a creator id or use --all")
	}

	cfg := loadConfig()
	if extractVideos > 0 {
		cfg.Extraction.VideosPerCreator = extractVideos
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	provider, err := evidence.NewProvider(cfg.Evidence)
	if err != nil {
		return err
	}

	feedClient := feed.NewClient(cfg.Feed, cfg.HTTP)
	pacer := worker.NewPacer(cfg.Extraction.CallDelay)
	extractor := extract.NewExtractor(provider, pacer, cfg.Extraction)
	guard := extract.NewGuard()
	runner := extract.NewRunner(feedClient, extractor, st, guard, pacer, cfg.Extraction, cfg.Output.Verbose)

	ctx := context.Background()

	var results []model.ExtractionResult
	if extractAll {
		results, err = runner.ForAllCreators(ctx)
	} else {
		results, err = runner.ForCreator(ctx, args[0])
	}
	if err != nil {
		if errors.Is(err, extract.ErrExtractionRunning) {
			return fmt.Errorf("extraction already in progress (retry later)")
		}
		return fmt.Errorf("extraction failed: %w", err)
	}

	summary, err := runner.Ingest(results)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	fmt.Printf("Videos processed:     %d\n", summary.VideosProcessed)
	fmt.Printf("Claims added:         %d\n", summary.ClaimsAdded)
	fmt.Printf("Claims deduplicated:  %d\n", summary.ClaimsDeduplicated)
	for _, result := range results {
		if result.Error != "" {
			fmt.Printf("  %s: %s\n", result.VideoID, result.Error)
		}
	}

	if extractSkipVerify || len(summary.NewClaims) == 0 {
		return nil
	}

	fmt.Printf("\nVerifying %d new claims...\n", len(summary.NewClaims))
	return verifyAndApply(ctx, cfg, st, summary.NewClaims)
}

// verifyAndApply runs batch verification and writes every settled result
// back to the store. Claims that settled as pending stay untouched for the
// next run.
func verifyAndApply(ctx context.Context, cfg *model.Config, st store.Store, claims []model.Claim) error {
	verifier, err := newVerifier(cfg)
	if err != nil {
		return err
	}

	results := verifier.VerifyBatch(ctx, claims)

	verified := 0
	for _, claim := range claims {
		result, ok := results[claim.ID]
		if !ok || result.Status == model.StatusPending {
			continue
		}
		applied, err := st.UpdateClaimStatus(claim.ID, result, time.Now())
		if err != nil {
			return fmt.Errorf("apply result for %s: %w", claim.ID, err)
		}
		if applied {
			verified++
			fmt.Printf("  %s: %s\n", claim.ID, result.Status)
		}
	}
	fmt.Printf("Verified %d/%d claims\n", verified, len(claims))
	return nil
}
