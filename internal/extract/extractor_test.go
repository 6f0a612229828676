package extract

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/claimscope/claimscope/internal/evidence"
	"github.com/claimscope/claimscope/internal/model"
	"github.com/claimscope/claimscope/internal/worker"
)

type stubProvider struct {
	mu      sync.Mutex
	prompts []string
	replies []func() (string, error)
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(_ context.Context, req evidence.Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, req.Prompt)
	if len(s.replies) == 0 {
		return "[]", nil
	}
	next := s.replies[0]
	s.replies = s.replies[1:]
	return next()
}

func (s *stubProvider) IsAvailable(context.Context) bool { return true }

func (s *stubProvider) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

// countingPacer records limiter waits and backoff sleeps without blocking.
type countingPacer struct {
	waits  int
	sleeps []time.Duration
}

func (p *countingPacer) Wait(ctx context.Context) error {
	p.waits++
	return ctx.Err()
}

func (p *countingPacer) Sleep(ctx context.Context, d time.Duration) error {
	p.sleeps = append(p.sleeps, d)
	return ctx.Err()
}

func reply(text string) func() (string, error) {
	return func() (string, error) { return text, nil }
}

func fail(err error) func() (string, error) {
	return func() (string, error) { return "", err }
}

const claimsReply = `Found these claims:
[
  {"claimText": "XRP will hit $5 by end of 2025", "claimCategory": "price_prediction", "claimStrength": "strong", "statedTimeframe": "by end of 2025", "timestampSeconds": 120},
  {"claimText": "Ripple will partner with a major bank", "claimCategory": "partnership", "claimStrength": "weak", "timestampSeconds": 300}
]`

func testExtractionConfig() model.ExtractionConfig {
	return model.ExtractionConfig{
		VideosPerCreator:   3,
		MinTranscriptChars: 100,
		MaxTranscriptChars: 20000,
		MaxRetries:         3,
		BackoffBase:        15 * time.Second,
	}
}

func TestExtractClaims(t *testing.T) {
	provider := &stubProvider{replies: []func() (string, error){reply(claimsReply)}}
	e := NewExtractor(provider, worker.NewNopPacer(), testExtractionConfig())

	claims, err := e.ExtractClaims(context.Background(), strings.Repeat("price talk ", 30),
		"creator-a", "Video v1", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(claims) != 2 {
		t.Fatalf("claims = %d, want 2", len(claims))
	}
	if claims[0].ClaimCategory != "price_prediction" || claims[0].ClaimStrength != model.StrengthStrong {
		t.Errorf("first claim = %+v", claims[0])
	}
	if !strings.Contains(provider.prompts[0], "CREATOR: creator-a") {
		t.Errorf("prompt missing creator id:\n%s", provider.prompts[0])
	}
}

func TestExtractClaims_TruncatesLongTranscript(t *testing.T) {
	provider := &stubProvider{replies: []func() (string, error){reply("[]")}}
	config := testExtractionConfig()
	config.MaxTranscriptChars = 200
	e := NewExtractor(provider, worker.NewNopPacer(), config)

	if _, err := e.ExtractClaims(context.Background(), strings.Repeat("a", 500),
		"creator-a", "Video v1", time.Now()); err != nil {
		t.Fatalf("extract: %v", err)
	}

	prompt := provider.prompts[0]
	if !strings.Contains(prompt, truncationMarker) {
		t.Error("prompt missing truncation marker")
	}
	if strings.Count(prompt, "a") > 250 {
		t.Error("transcript not truncated")
	}
}

func TestExtractClaims_RetriesRateLimit(t *testing.T) {
	provider := &stubProvider{replies: []func() (string, error){
		fail(evidence.ErrRateLimited),
		fail(evidence.ErrRateLimited),
		reply(claimsReply),
	}}
	e := NewExtractor(provider, worker.NewNopPacer(), testExtractionConfig())

	claims, err := e.ExtractClaims(context.Background(), strings.Repeat("x", 200),
		"creator-a", "Video v1", time.Now())
	if err != nil {
		t.Fatalf("extract after retries: %v", err)
	}
	if len(claims) != 2 {
		t.Errorf("claims = %d, want 2", len(claims))
	}
	if provider.callCount() != 3 {
		t.Errorf("provider calls = %d, want 3", provider.callCount())
	}
}

func TestExtractClaims_RateLimitExhausted(t *testing.T) {
	provider := &stubProvider{replies: []func() (string, error){
		fail(evidence.ErrRateLimited),
		fail(evidence.ErrRateLimited),
		fail(evidence.ErrRateLimited),
	}}
	e := NewExtractor(provider, worker.NewNopPacer(), testExtractionConfig())

	_, err := e.ExtractClaims(context.Background(), strings.Repeat("x", 200),
		"creator-a", "Video v1", time.Now())
	if !errors.Is(err, evidence.ErrRateLimited) {
		t.Errorf("err = %v, want wrapped ErrRateLimited", err)
	}
	if provider.callCount() != 3 {
		t.Errorf("provider calls = %d, want 3", provider.callCount())
	}
}

func TestExtractClaims_OtherErrorsAreImmediate(t *testing.T) {
	boom := errors.New("boom")
	provider := &stubProvider{replies: []func() (string, error){fail(boom)}}
	e := NewExtractor(provider, worker.NewNopPacer(), testExtractionConfig())

	_, err := e.ExtractClaims(context.Background(), strings.Repeat("x", 200),
		"creator-a", "Video v1", time.Now())
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if provider.callCount() != 1 {
		t.Errorf("provider calls = %d, want 1 (no retry)", provider.callCount())
	}
}

func TestExtractClaims_PacesEveryProviderCall(t *testing.T) {
	pacer := &countingPacer{}
	provider := &stubProvider{replies: []func() (string, error){
		fail(evidence.ErrRateLimited),
		fail(evidence.ErrRateLimited),
		reply(claimsReply),
	}}
	e := NewExtractor(provider, pacer, testExtractionConfig())

	if _, err := e.ExtractClaims(context.Background(), strings.Repeat("x", 200),
		"creator-a", "Video v1", time.Now()); err != nil {
		t.Fatalf("extract: %v", err)
	}

	if pacer.waits != 3 {
		t.Errorf("limiter waits = %d, want one per provider call (3)", pacer.waits)
	}
	wantSleeps := []time.Duration{30 * time.Second, 60 * time.Second}
	if len(pacer.sleeps) != len(wantSleeps) {
		t.Fatalf("backoff sleeps = %v, want %v", pacer.sleeps, wantSleeps)
	}
	for i, want := range wantSleeps {
		if pacer.sleeps[i] != want {
			t.Errorf("backoff sleep %d = %v, want %v", i, pacer.sleeps[i], want)
		}
	}
}

func TestParseClaims(t *testing.T) {
	t.Run("coerces unknown category and strength", func(t *testing.T) {
		claims := ParseClaims(`[{"claimText": "something", "claimCategory": "vibes", "claimStrength": "certain"}]`)
		if len(claims) != 1 {
			t.Fatalf("claims = %d, want 1", len(claims))
		}
		if claims[0].ClaimCategory != "market_analysis" {
			t.Errorf("category = %q, want market_analysis", claims[0].ClaimCategory)
		}
		if claims[0].ClaimStrength != model.StrengthMedium {
			t.Errorf("strength = %q, want medium", claims[0].ClaimStrength)
		}
	})

	t.Run("drops entries without claim text", func(t *testing.T) {
		claims := ParseClaims(`[{"claimCategory": "regulatory"}, {"claimText": "  "}, {"claimText": "real claim"}]`)
		if len(claims) != 1 || claims[0].ClaimText != "real claim" {
			t.Errorf("claims = %+v, want only the real claim", claims)
		}
	})

	t.Run("clamps negative timestamps", func(t *testing.T) {
		claims := ParseClaims(`[{"claimText": "x claim", "timestampSeconds": -30}]`)
		if len(claims) != 1 || claims[0].TimestampSeconds != 0 {
			t.Errorf("claims = %+v, want timestamp 0", claims)
		}
	})

	t.Run("rounds fractional timestamps", func(t *testing.T) {
		claims := ParseClaims(`[{"claimText": "x claim", "timestampSeconds": 12.7}]`)
		if len(claims) != 1 || claims[0].TimestampSeconds != 13 {
			t.Errorf("claims = %+v, want timestamp 13", claims)
		}
	})

	t.Run("no array yields nothing", func(t *testing.T) {
		if claims := ParseClaims("I found no verifiable claims."); claims != nil {
			t.Errorf("claims = %+v, want nil", claims)
		}
	})

	t.Run("malformed array yields nothing", func(t *testing.T) {
		if claims := ParseClaims(`[{"claimText": }]`); claims != nil {
			t.Errorf("claims = %+v, want nil", claims)
		}
	})
}
