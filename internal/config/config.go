package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	ProviderVertex = "vertex"
	ProviderOpenAI = "openai"
)

type Config struct {
	ProjectID    string `env:"GCP_PROJECT_ID"`
	Region       string `env:"GCP_REGION"     envDefault:"us-central1"`
	Port         string `env:"PORT"           envDefault:"8080"`
	ShareEmail   string `env:"SHARE_EMAIL"`
	Provider     string `env:"LLM_PROVIDER"   envDefault:"vertex"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.Provider {
	case ProviderVertex:
		if strings.TrimSpace(c.ProjectID) == "" {
			return errors.New("GCP_PROJECT_ID is required for the vertex provider")
		}
	case ProviderOpenAI:
		if strings.TrimSpace(c.OpenAIAPIKey) == "" {
			return errors.New("OPENAI_API_KEY is required for the openai provider")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER: %q", c.Provider)
	}

	return nil
}
