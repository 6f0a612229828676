package evidence

import (
	"fmt"
	"os"
	"strings"

	"github.com/claimscope/claimscope/internal/model"
)

// NewProvider creates an evidence provider from configuration. Missing
// credentials are a configuration error surfaced immediately; they are
// never retried.
func NewProvider(config model.EvidenceConfig) (Provider, error) {
	if config.APIKey == "" {
		config.APIKey = keyFromEnv(config.Provider)
	}

	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude", "":
		return NewAnthropicProvider(config)

	default:
		return nil, fmt.Errorf("unknown evidence provider: %s (supported: openai, anthropic)", config.Provider)
	}
}

func keyFromEnv(provider string) string {
	switch strings.ToLower(provider) {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	default:
		return os.Getenv("ANTHROPIC_API_KEY")
	}
}
