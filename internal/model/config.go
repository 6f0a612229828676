package model

import "time"

// Config is the full runtime configuration. Values are resolved from flags,
// CLAIMSCOPE_* environment variables, and ~/.claimscope/config.yaml, in that
// order of priority.
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Evidence     EvidenceConfig     `yaml:"evidence"`
	Price        PriceConfig        `yaml:"price"`
	Feed         FeedConfig         `yaml:"feed"`
	Extraction   ExtractionConfig   `yaml:"extraction"`
	Verification VerificationConfig `yaml:"verification"`
	Store        StoreConfig        `yaml:"store"`
	Output       OutputConfig       `yaml:"output"`
}

// HTTPConfig covers the shared HTTP client settings.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// EvidenceConfig configures the language-model evidence service.
type EvidenceConfig struct {
	Provider  string        `yaml:"provider"` // openai, anthropic
	Model     string        `yaml:"model"`
	APIKey    string        `yaml:"api_key,omitempty"`
	BaseURL   string        `yaml:"base_url,omitempty"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxTokens int           `yaml:"max_tokens"`
}

// PriceConfig configures the price data provider.
type PriceConfig struct {
	BaseURL  string        `yaml:"base_url"`
	APIKey   string        `yaml:"api_key,omitempty"`
	AssetID  string        `yaml:"asset_id"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// FeedConfig configures the video feed and transcript provider.
type FeedConfig struct {
	FeedBaseURL    string `yaml:"feed_base_url"`
	CaptionBaseURL string `yaml:"caption_base_url"`
	CaptionLang    string `yaml:"caption_lang"`
	RespectRobots  bool   `yaml:"respect_robots"`
	MaxBodyBytes   int64  `yaml:"max_body_bytes"`
}

// ExtractionConfig bounds the extraction orchestrator.
type ExtractionConfig struct {
	VideosPerCreator   int           `yaml:"videos_per_creator"`
	MinTranscriptChars int           `yaml:"min_transcript_chars"`
	MaxTranscriptChars int           `yaml:"max_transcript_chars"`
	CallDelay          time.Duration `yaml:"call_delay"`
	MaxRetries         int           `yaml:"max_retries"`
	BackoffBase        time.Duration `yaml:"backoff_base"`
}

// VerificationConfig bounds the verification orchestrator.
type VerificationConfig struct {
	Concurrency int           `yaml:"concurrency"`
	ChunkDelay  time.Duration `yaml:"chunk_delay"`
}

// StoreConfig locates the claim/creator store.
type StoreConfig struct {
	Path string `yaml:"path"` // JSON snapshot path; empty = in-memory only
}

// OutputConfig controls CLI output.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults matching the production service.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "claimscope/0.1 (+https://github.com/claimscope/claimscope)",
		},
		Evidence: EvidenceConfig{
			Provider:  "anthropic",
			Timeout:   60 * time.Second,
			MaxTokens: 4096,
		},
		Price: PriceConfig{
			BaseURL:  "https://api.coingecko.com/api/v3",
			AssetID:  "ripple",
			CacheTTL: 5 * time.Minute,
		},
		Feed: FeedConfig{
			FeedBaseURL:    "https://www.youtube.com/feeds/videos.xml",
			CaptionBaseURL: "https://www.youtube.com/api/timedtext",
			CaptionLang:    "en",
			RespectRobots:  true,
			MaxBodyBytes:   2_000_000,
		},
		Extraction: ExtractionConfig{
			VideosPerCreator:   3,
			MinTranscriptChars: 100,
			MaxTranscriptChars: 20000,
			CallDelay:          15 * time.Second,
			MaxRetries:         3,
			BackoffBase:        15 * time.Second,
		},
		Verification: VerificationConfig{
			Concurrency: 2,
			ChunkDelay:  time.Second,
		},
		Store: StoreConfig{
			Path: "",
		},
	}
}
