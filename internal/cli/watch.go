package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/claimscope/claimscope/internal/evidence"
	"github.com/claimscope/claimscope/internal/extract"
	"github.com/claimscope/claimscope/internal/feed"
	"github.com/claimscope/claimscope/internal/worker"
)

var watchSchedule string

// stuckRunTimeout is how long a run may hold the extraction guard before a
// scheduled run presumes it dead and resets the guard.
const stuckRunTimeout = 2 * time.Hour

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run scheduled extraction and verification",
	Long: `Watch runs the extraction pipeline for every tracked creator on a cron
schedule, ingests the results, and verifies new claims. The process runs
until interrupted.

A run that overlaps a still-active previous run is skipped; the guard
serializes them. A run that has held the guard for over two hours is
presumed dead and its guard is reset.

Example:
  claimscope watch --schedule "0 */6 * * *"`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "0 */6 * * *", "cron schedule for extraction runs")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

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

	run := func() {
		ctx := context.Background()

		if guard.ResetIfStale(stuckRunTimeout) {
			fmt.Fprintln(os.Stderr, "Reset extraction guard: previous run exceeded the stuck-run timeout")
		}

		results, err := runner.ForAllCreators(ctx)
		if err != nil {
			if errors.Is(err, extract.ErrExtractionRunning) {
				fmt.Fprintln(os.Stderr, "Skipping run: previous extraction still in progress")
				return
			}
			fmt.Fprintf(os.Stderr, "Extraction run failed: %v\n", err)
			return
		}

		summary, err := runner.Ingest(results)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ingest failed: %v\n", err)
			return
		}
		fmt.Printf("Run complete: %d videos, %d claims added, %d deduplicated\n",
			summary.VideosProcessed, summary.ClaimsAdded, summary.ClaimsDeduplicated)

		if len(summary.NewClaims) > 0 {
			if err := verifyAndApply(ctx, cfg, st, summary.NewClaims); err != nil {
				fmt.Fprintf(os.Stderr, "Verification failed: %v\n", err)
			}
		}
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(watchSchedule, run); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", watchSchedule, err)
	}

	fmt.Printf("Watching on schedule %q (Ctrl-C to stop)\n", watchSchedule)
	scheduler.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	ctx := scheduler.Stop()
	<-ctx.Done()
	return nil
}
