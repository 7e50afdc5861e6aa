package openai

import (
	"github.com/pkg/errors"
	go_openai "github.com/sashabaranov/go-openai"
)

// Settings configures the OpenAI chat-completions engine.
type Settings struct {
	APIKey      string   `yaml:"api_key"`
	Model       string   `yaml:"model"`
	BaseURL     string   `yaml:"base_url,omitempty"`
	Temperature *float32 `yaml:"temperature,omitempty"`
}

// MakeClient builds a go-openai client from the settings.
func MakeClient(s Settings) (*go_openai.Client, error) {
	if s.APIKey == "" {
		return nil, errors.New("missing openai api key")
	}
	cfg := go_openai.DefaultConfig(s.APIKey)
	if s.BaseURL != "" {
		cfg.BaseURL = s.BaseURL
	}
	return go_openai.NewClientWithConfig(cfg), nil
}
