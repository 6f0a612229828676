package extract

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/claimscope/claimscope/internal/dedup"
	"github.com/claimscope/claimscope/internal/model"
	"github.com/claimscope/claimscope/internal/store"
	"github.com/claimscope/claimscope/internal/worker"
)

const extractionLogSize = 20

// FeedProvider is the slice of the feed client the runner needs.
type FeedProvider interface {
	RecentVideoIDs(ctx context.Context, channelID string, limit int) ([]string, error)
	Transcript(ctx context.Context, videoID string) (*model.Transcript, error)
}

// LogEntry records one ingested video batch for status reporting.
type LogEntry struct {
	Timestamp          time.Time `json:"timestamp"`
	CreatorID          string    `json:"creator_id"`
	ClaimsAdded        int       `json:"claims_added"`
	ClaimsDeduplicated int       `json:"claims_deduplicated"`
}

// IngestSummary is the outcome of persisting one extraction run.
type IngestSummary struct {
	VideosProcessed    int
	ClaimsAdded        int
	ClaimsDeduplicated int

	// NewClaims are the persisted pending claims, for follow-up
	// verification.
	NewClaims []model.Claim
}

// Runner orchestrates extraction runs: fetch recent videos, fetch
// transcripts, extract claims, then ingest into the store. Runs are
// serialized by a Guard.
type Runner struct {
	feed      FeedProvider
	extractor *Extractor
	store     store.Store
	guard     *Guard
	pacer     worker.Pacer
	config    model.ExtractionConfig
	verbose   bool
	now       func() time.Time

	logMu sync.Mutex
	log   []LogEntry
}

// NewRunner creates a runner. The pacer spaces out evidence-service calls;
// tests pass worker.NewNopPacer.
func NewRunner(feed FeedProvider, extractor *Extractor, st store.Store, guard *Guard, pacer worker.Pacer, config model.ExtractionConfig, verbose bool) *Runner {
	if config.VideosPerCreator <= 0 {
		config.VideosPerCreator = 3
	}
	if config.MinTranscriptChars <= 0 {
		config.MinTranscriptChars = 100
	}

	return &Runner{
		feed:      feed,
		extractor: extractor,
		store:     st,
		guard:     guard,
		pacer:     pacer,
		config:    config,
		verbose:   verbose,
		now:       time.Now,
	}
}

// ForCreator extracts claims from a creator's recent videos. Returns
// ErrExtractionRunning when another run is in flight.
func (r *Runner) ForCreator(ctx context.Context, creatorID string) ([]model.ExtractionResult, error) {
	release, err := r.guard.TryAcquire()
	if err != nil {
		return nil, err
	}
	defer release()

	creator, err := r.store.CreatorByID(creatorID)
	if err != nil {
		return nil, err
	}
	if creator.ChannelID == "" {
		return nil, fmt.Errorf("creator %s has no channel id", creatorID)
	}

	return r.extractForCreator(ctx, creator)
}

// ForAllCreators extracts claims for every tracked creator sequentially.
// Creators without a channel id are skipped; a creator's failure never
// aborts the run.
func (r *Runner) ForAllCreators(ctx context.Context) ([]model.ExtractionResult, error) {
	release, err := r.guard.TryAcquire()
	if err != nil {
		return nil, err
	}
	defer release()

	creators, err := r.store.AllCreators()
	if err != nil {
		return nil, err
	}

	var all []model.ExtractionResult
	for i, creator := range creators {
		if creator.ChannelID == "" {
			r.logf("skipping %s: no channel id", creator.ChannelName)
			continue
		}

		results, err := r.extractForCreator(ctx, creator)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			r.logf("extraction failed for %s: %v", creator.ChannelName, err)
			continue
		}
		all = append(all, results...)

		if i < len(creators)-1 {
			if err := r.pacer.Sleep(ctx, r.config.CallDelay); err != nil {
				return all, err
			}
		}
	}
	return all, nil
}

// extractForCreator walks a creator's recent videos sequentially. A video
// with a missing or too-short transcript becomes an error-tagged result,
// never an aborted run.
func (r *Runner) extractForCreator(ctx context.Context, creator model.Creator) ([]model.ExtractionResult, error) {
	r.logf("extracting claims for %s (%s)", creator.ChannelName, creator.ChannelID)

	videoIDs, err := r.feed.RecentVideoIDs(ctx, creator.ChannelID, r.config.VideosPerCreator)
	if err != nil {
		return nil, fmt.Errorf("fetch video ids: %w", err)
	}
	if len(videoIDs) == 0 {
		r.logf("no videos found for %s", creator.ChannelName)
		return nil, nil
	}

	results := make([]model.ExtractionResult, 0, len(videoIDs))
	for i, videoID := range videoIDs {
		result := model.ExtractionResult{
			CreatorID:  creator.ID,
			VideoID:    videoID,
			VideoTitle: "Video " + videoID,
			VideoDate:  r.now(),
		}

		transcript, err := r.feed.Transcript(ctx, videoID)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			result.Error = fmt.Sprintf("fetch transcript: %v", err)
		case len(strings.TrimSpace(transcript.Text)) < r.config.MinTranscriptChars:
			result.Error = "transcript too short or unavailable"
		default:
			claims, err := r.extractor.ExtractClaims(ctx, transcript.Text, creator.ID, result.VideoTitle, result.VideoDate)
			if err != nil {
				if ctx.Err() != nil {
					return results, ctx.Err()
				}
				result.Error = fmt.Sprintf("extract claims: %v", err)
			} else {
				result.Claims = claims
				r.logf("extracted %d claims from %s", len(claims), videoID)
			}
		}

		results = append(results, result)

		if i < len(videoIDs)-1 {
			if err := r.pacer.Sleep(ctx, r.config.CallDelay); err != nil {
				return results, err
			}
		}
	}
	return results, nil
}

// Ingest persists extraction results: the video, then every candidate claim
// that does not duplicate an existing claim of the same creator. New claims
// enter the store as pending and are returned for follow-up verification.
func (r *Runner) Ingest(results []model.ExtractionResult) (IngestSummary, error) {
	var summary IngestSummary

	for _, result := range results {
		summary.VideosProcessed++
		if result.Error != "" || len(result.Claims) == 0 {
			continue
		}

		if err := r.store.AddVideo(model.Video{
			ID:              result.VideoID,
			CreatorID:       result.CreatorID,
			Title:           result.VideoTitle,
			SourceVideoID:   result.VideoID,
			PublishedAt:     result.VideoDate,
			ClaimsExtracted: true,
		}); err != nil {
			return summary, fmt.Errorf("add video %s: %w", result.VideoID, err)
		}

		existing, err := r.store.ClaimsByCreator(result.CreatorID)
		if err != nil {
			return summary, fmt.Errorf("load claims for %s: %w", result.CreatorID, err)
		}
		existingTexts := make([]string, 0, len(existing))
		for _, c := range existing {
			existingTexts = append(existingTexts, c.ClaimText)
		}

		added, deduplicated := 0, 0
		for _, extracted := range result.Claims {
			if dedup.IsDuplicate(extracted.ClaimText, existingTexts) {
				deduplicated++
				continue
			}

			claim := model.Claim{
				ID:                    newClaimID(result.CreatorID, r.now()),
				CreatorID:             result.CreatorID,
				VideoID:               result.VideoID,
				ClaimText:             extracted.ClaimText,
				Category:              extracted.ClaimCategory,
				Status:                model.StatusPending,
				ConfidenceLanguage:    model.ConfidenceFromStrength(extracted.ClaimStrength),
				StatedTimeframe:       extracted.StatedTimeframe,
				CreatedAt:             result.VideoDate,
				VideoTimestampSeconds: extracted.TimestampSeconds,
				SpecificityScore:      model.SpecificityFromStrength(extracted.ClaimStrength),
			}
			if err := r.store.AddClaim(claim); err != nil {
				return summary, fmt.Errorf("add claim: %w", err)
			}

			existingTexts = append(existingTexts, claim.ClaimText)
			summary.NewClaims = append(summary.NewClaims, claim)
			added++
		}

		summary.ClaimsAdded += added
		summary.ClaimsDeduplicated += deduplicated
		r.appendLog(LogEntry{
			Timestamp:          r.now(),
			CreatorID:          result.CreatorID,
			ClaimsAdded:        added,
			ClaimsDeduplicated: deduplicated,
		})
	}

	return summary, nil
}

// RecentExtractions returns the last 20 ingested video batches, oldest
// first.
func (r *Runner) RecentExtractions() []LogEntry {
	r.logMu.Lock()
	defer r.logMu.Unlock()
	out := make([]LogEntry, len(r.log))
	copy(out, r.log)
	return out
}

func (r *Runner) appendLog(entry LogEntry) {
	r.logMu.Lock()
	defer r.logMu.Unlock()
	r.log = append(r.log, entry)
	if len(r.log) > extractionLogSize {
		r.log = r.log[len(r.log)-extractionLogSize:]
	}
}

func (r *Runner) logf(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(os.Stderr, "[claimscope] "+format+"\n", args...)
	}
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func newClaimID(creatorID string, now time.Time) string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return fmt.Sprintf("claim-%s-%d-%s", creatorID, now.UnixMilli(), suffix)
}
