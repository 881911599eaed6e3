package image

import (
	"fmt"
	"strings"
)

// Provider names accepted by NewSearcher
const (
	ProviderPixabay  = "pixabay"
	ProviderUnsplash = "unsplash"
	ProviderOpenAI   = "openai"
)

// Config selects and configures an image provider
type Config struct {
	Provider string

	PixabayKey  string
	UnsplashKey string

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	OpenAISize    string
}

// DefaultConfig uses Pixabay, which works without a key at a lower quota
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderPixabay,
		OpenAIModel: DefaultOpenAIModel,
		OpenAISize:  DefaultOpenAISize,
	}
}

// NewSearcher creates the searcher named by config.Provider
func NewSearcher(config *Config) (ImageSearcher, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch strings.ToLower(config.Provider) {
	case "", ProviderPixabay:
		return NewPixabayClient(config.PixabayKey), nil
	case ProviderUnsplash:
		client, err := NewUnsplashClient(config.UnsplashKey)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderOpenAI:
		client, err := NewOpenAIClient(&OpenAIConfig{
			APIKey:  config.OpenAIKey,
			BaseURL: config.OpenAIBaseURL,
			Model:   config.OpenAIModel,
			Size:    config.OpenAISize,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown image provider: %s (use pixabay, unsplash or openai)", config.Provider)
	}
}
