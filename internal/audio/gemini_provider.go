package audio

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini returns raw 16-bit little-endian mono PCM at 24 kHz.
const (
	geminiSampleRate = 24000
	geminiChannels   = 1
	geminiBitDepth   = 16
)

// GeminiProvider generates speech through the Gemini API audio modality.
type GeminiProvider struct {
	client *genai.Client
	config *Config
	encode func(ctx context.Context, wav []byte) ([]byte, error)
}

// NewGeminiProvider creates a Gemini client for the configured API key.
func NewGeminiProvider(ctx context.Context, config *Config) (Provider, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		config: config,
		encode: EncodeMP3,
	}, nil
}

// Synthesize asks the model to read the text aloud in the given language.
func (p *GeminiProvider) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	if err := ValidateText(req.Text); err != nil {
		return nil, err
	}

	format := p.config.OutputFormat
	if req.Format != "" {
		format = req.Format
	}
	format, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.config.GeminiModel, genai.Text(req.Text), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			LanguageCode: req.LanguageCode,
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: p.config.GeminiVoice,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Gemini speech error (%s): %w", req.LanguageCode, err)
	}

	pcm := inlineAudio(resp)
	if len(pcm) == 0 {
		return nil, fmt.Errorf("no audio data received from Gemini (%s)", req.LanguageCode)
	}

	wav := PCMToWAV(pcm, geminiSampleRate, geminiChannels, geminiBitDepth)
	if format == FormatWAV {
		return wav, nil
	}
	return p.encode(ctx, wav)
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks that an API key is configured
func (p *GeminiProvider) IsAvailable() error {
	if p.config.GeminiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	return nil
}

func inlineAudio(resp *genai.GenerateContentResponse) []byte {
	if resp == nil {
		return nil
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data
			}
		}
	}
	return nil
}
