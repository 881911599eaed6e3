package audio

import (
	"context"
)

// ESpeakProvider implements Provider interface for espeak-ng
type ESpeakProvider struct {
	espeak *ESpeak
	format string
	encode func(ctx context.Context, wav []byte) ([]byte, error)
}

// NewESpeakProvider creates a new espeak-ng provider
func NewESpeakProvider(config *Config) (Provider, error) {
	format, err := normalizeFormat(config.OutputFormat)
	if err != nil {
		return nil, err
	}

	espeakConfig := DefaultESpeakConfig()
	if config.ESpeakSpeed > 0 {
		espeakConfig.Speed = config.ESpeakSpeed
	}

	espeak, err := NewESpeak(espeakConfig)
	if err != nil {
		return nil, err
	}

	return &ESpeakProvider{
		espeak: espeak,
		format: format,
		encode: EncodeMP3,
	}, nil
}

// Synthesize generates audio using espeak-ng
func (p *ESpeakProvider) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	if err := ValidateText(req.Text); err != nil {
		return nil, err
	}

	format := p.format
	if req.Format != "" {
		f, err := normalizeFormat(req.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}

	wav, err := p.espeak.SynthesizeWAV(ctx, req.Text, ESpeakVoiceFor(req.LanguageCode))
	if err != nil {
		return nil, err
	}
	if format == FormatWAV {
		return wav, nil
	}
	return p.encode(ctx, wav)
}

// Name returns the provider name
func (p *ESpeakProvider) Name() string {
	return "espeak-ng"
}

// IsAvailable checks if espeak-ng is installed
func (p *ESpeakProvider) IsAvailable() error {
	return checkESpeakInstalled()
}
