package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	LLM      LLMConfig      `yaml:"llm"`
	Generate GenerateConfig `yaml:"generate"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// GenerateConfig holds test generation configuration
type GenerateConfig struct {
	// Parallel selects per-scenario fan-out over the worker pool; when
	// false, expansion runs sequential batches of BatchSize scenarios.
	Parallel bool `yaml:"parallel"`

	// BatchSize is the number of scenarios per completion call in the
	// sequential batched variant.
	BatchSize int `yaml:"batch_size"`

	// MaxWorkers caps concurrent upstream calls in the parallel variant.
	MaxWorkers int `yaml:"max_workers"`

	// SmallBatchThreshold is the scenario count at or below which a single
	// completion call covers the whole set.
	SmallBatchThreshold int `yaml:"small_batch_threshold"`

	// MaxPromptEndpoints bounds how many endpoints are listed in a prompt
	// before the "...and K more" note.
	MaxPromptEndpoints int `yaml:"max_prompt_endpoints"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Dir string `yaml:"dir"`
}

// LoadConfig loads the configuration from .env files, an optional yaml
// config file, and environment variable overrides.
func LoadConfig() (*Config, error) {
	// Best effort: system environment still applies when no .env exists.
	for _, path := range []string{".env", "env/.env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	var config Config
	// Pre-set so an absent key keeps the default while an explicit
	// "parallel: false" still takes effect.
	config.Generate.Parallel = true

	configPath := "config/config.yaml"
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %v", configPath, err)
		}
	}

	applyEnvOverrides(&config)

	// Set default values if not specified
	if config.Server.Host == "" {
		config.Server.Host = "0.0.0.0"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 5050
	}
	if len(config.Server.CORSOrigins) == 0 {
		config.Server.CORSOrigins = []string{"*"}
	}
	if config.Generate.BatchSize == 0 {
		config.Generate.BatchSize = 3
	}
	if config.Generate.MaxWorkers == 0 {
		config.Generate.MaxWorkers = 5
	}
	if config.Generate.SmallBatchThreshold == 0 {
		config.Generate.SmallBatchThreshold = 5
	}
	if config.Generate.MaxPromptEndpoints == 0 {
		config.Generate.MaxPromptEndpoints = 10
	}
	if config.Logging.Dir == "" {
		config.Logging.Dir = "logs"
	}
	config.LLM.applyDefaults()

	return &config, nil
}

func applyEnvOverrides(config *Config) {
	if host := os.Getenv("BACKEND_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("BACKEND_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.Server.CORSOrigins = strings.Split(origins, ",")
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.LLM.APIKey = key
	}
	if model := os.Getenv("OPENAI_MODEL_TEXT"); model != "" {
		config.LLM.TextModel = model
	}
	if model := os.Getenv("OPENAI_MODEL_VISION"); model != "" {
		config.LLM.VisionModel = model
	}
	if model := os.Getenv("OPENAI_MODEL_WEBSITE"); model != "" {
		config.LLM.WebsiteModel = model
	}
	if model := os.Getenv("OPENAI_MODEL_API"); model != "" {
		config.LLM.APIModel = model
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.LLM.BaseURL = baseURL
	}
}

// Validate checks critical configuration and returns all problems found.
func (c *Config) Validate() []error {
	var errs []error
	if c.LLM.APIKey == "" {
		errs = append(errs, fmt.Errorf("OPENAI_API_KEY is required"))
	}
	if c.LLM.Provider != "openai" {
		errs = append(errs, fmt.Errorf("unsupported LLM provider: %s", c.LLM.Provider))
	}
	return errs
}
