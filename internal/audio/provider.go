package audio

import (
	"context"
	"fmt"
	"strings"
)

// Output formats understood by every provider.
const (
	FormatMP3 = "mp3"
	FormatWAV = "wav"
)

// Request describes one synthesis call.
type Request struct {
	Text         string
	LanguageCode string // BCP-47, e.g. "ne-NP", "hi-IN", "en-US"
	Format       string // FormatMP3 or FormatWAV, empty means mp3
}

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// Synthesize returns the encoded audio for the request
	Synthesize(ctx context.Context, req Request) ([]byte, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for audio providers
type Config struct {
	Provider         string // "google", "openai", "gemini" or "espeak"
	FallbackProvider string // optional second provider, empty for none
	OutputFormat     string // "mp3" or "wav"

	// Google Cloud Text-to-Speech; empty credentials use application default credentials
	GoogleCredentials string

	// OpenAI-specific settings
	OpenAIKey     string
	OpenAIModel   string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice   string  // "alloy", "ash", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer"
	OpenAISpeed   float64 // 0.25 to 4.0
	OpenAIBaseURL string  // override for proxies, empty for the public API

	// Gemini speech generation
	GeminiKey   string
	GeminiModel string
	GeminiVoice string

	// espeak-ng words per minute
	ESpeakSpeed int
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:     "google",
		OutputFormat: FormatMP3,
		OpenAIModel:  "gpt-4o-mini-tts",
		OpenAIVoice:  "alloy",
		OpenAISpeed:  1.0,
		GeminiModel:  "gemini-2.5-flash-preview-tts",
		GeminiVoice:  "Kore",
		ESpeakSpeed:  150,
	}
}

// NewProvider creates the configured provider, wrapped with the fallback
// provider when one is set.
func NewProvider(ctx context.Context, config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	primary, err := newNamedProvider(ctx, config.Provider, config)
	if err != nil {
		return nil, err
	}
	if config.FallbackProvider == "" || config.FallbackProvider == config.Provider {
		return primary, nil
	}

	fallback, err := newNamedProvider(ctx, config.FallbackProvider, config)
	if err != nil {
		return nil, fmt.Errorf("fallback provider: %w", err)
	}
	return NewProviderWithFallback(primary, fallback), nil
}

func newNamedProvider(ctx context.Context, name string, config *Config) (Provider, error) {
	switch strings.ToLower(name) {
	case "google", "":
		return NewGoogleProvider(ctx, config)

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config)

	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGeminiProvider(ctx, config)

	case "espeak", "espeak-ng":
		return NewESpeakProvider(config)

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", name)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider) Provider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// Synthesize tries the primary provider first and the secondary on error.
func (p *ProviderWithFallback) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	data, err := p.primary.Synthesize(ctx, req)
	if err == nil {
		return data, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	fmt.Printf("Primary provider (%s) failed: %v. Falling back to %s\n",
		p.primary.Name(), err, p.fallback.Name())
	return p.fallback.Synthesize(ctx, req)
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}

func normalizeFormat(format string) (string, error) {
	switch strings.ToLower(format) {
	case "", FormatMP3:
		return FormatMP3, nil
	case FormatWAV:
		return FormatWAV, nil
	default:
		return "", fmt.Errorf("unsupported audio format: %s", format)
	}
}
