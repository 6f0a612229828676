package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/claimscope/claimscope/internal/evidence"
	"github.com/claimscope/claimscope/internal/model"
	"github.com/claimscope/claimscope/internal/price"
	"github.com/claimscope/claimscope/internal/store"
	"github.com/claimscope/claimscope/internal/verify"
	"github.com/claimscope/claimscope/internal/worker"
)

// loadConfig builds the effective configuration: defaults overridden by the
// config file and CLAIMSCOPE_* environment variables.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("store.path"); v != "" {
		cfg.Store.Path = v
	}
	if v := viper.GetString("evidence.provider"); v != "" {
		cfg.Evidence.Provider = v
	}
	if v := viper.GetString("evidence.model"); v != "" {
		cfg.Evidence.Model = v
	}
	if v := viper.GetString("price.asset_id"); v != "" {
		cfg.Price.AssetID = v
	}
	if v := viper.GetString("price.api_key"); v != "" {
		cfg.Price.APIKey = v
	}
	if v := viper.GetString("feed.caption_lang"); v != "" {
		cfg.Feed.CaptionLang = v
	}
	if v := viper.GetInt("extraction.videos_per_creator"); v > 0 {
		cfg.Extraction.VideosPerCreator = v
	}
	if v := viper.GetInt("verification.concurrency"); v > 0 {
		cfg.Verification.Concurrency = v
	}
	cfg.Output.Verbose = verbose

	if cfg.Store.Path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Store.Path = filepath.Join(home, ".claimscope", "store.json")
		}
	}

	return cfg
}

// openStore opens the configured store. An empty path falls back to an
// in-memory store that forgets everything at exit.
func openStore(cfg *model.Config) (store.Store, error) {
	if cfg.Store.Path == "" {
		return store.NewMemoryStore(), nil
	}
	s, err := store.OpenFileStore(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}

// newVerifier assembles the verification stack from configuration.
func newVerifier(cfg *model.Config) (*verify.Verifier, error) {
	provider, err := evidence.NewProvider(cfg.Evidence)
	if err != nil {
		return nil, err
	}
	prices := price.NewClient(cfg.Price, cfg.HTTP.Timeout)
	pacer := worker.NewPacer(cfg.Verification.ChunkDelay)
	return verify.NewVerifier(provider, prices, pacer, cfg.Verification, cfg.Output.Verbose), nil
}
