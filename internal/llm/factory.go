package llm

import (
	"fmt"

	"github.com/rishav781/Test-Agent/internal/config"
	"github.com/rishav781/Test-Agent/internal/logger"
)

// NewClient creates a new completion client based on the configured
// provider.
func NewClient(cfg *config.LLMConfig, log *logger.Logger) (Client, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIClient(cfg, log), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
