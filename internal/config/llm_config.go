package config

import "time"

// LLMConfig holds configuration for the completion provider
type LLMConfig struct {
	// Provider specifies which LLM provider to use (e.g., "openai")
	Provider string `yaml:"provider"`

	// APIKey is the API key for the LLM provider
	APIKey string `yaml:"api_key"`

	// BaseURL is optional, for custom endpoints
	BaseURL string `yaml:"base_url"`

	// TextModel handles description-only prompts
	TextModel string `yaml:"text_model"`

	// VisionModel handles any prompt carrying an image
	VisionModel string `yaml:"vision_model"`

	// WebsiteModel handles website analysis prompts
	WebsiteModel string `yaml:"website_model"`

	// APIModel handles API document prompts
	APIModel string `yaml:"api_model"`

	// Temperature controls the randomness of the output; kept low to favor
	// deterministic structured output over creativity.
	Temperature float32 `yaml:"temperature"`

	// Timeout bounds one completion round trip. Multimodal calls can be
	// slow, so the default is generous.
	Timeout time.Duration `yaml:"timeout"`
}

func (c *LLMConfig) applyDefaults() {
	if c.Provider == "" {
		c.Provider = "openai"
	}
	if c.TextModel == "" {
		c.TextModel = "gpt-4"
	}
	if c.VisionModel == "" {
		c.VisionModel = "gpt-4o"
	}
	if c.WebsiteModel == "" {
		c.WebsiteModel = "gpt-4"
	}
	if c.APIModel == "" {
		c.APIModel = "gpt-4"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.3
	}
	if c.Timeout == 0 {
		c.Timeout = 300 * time.Second
	}
}
