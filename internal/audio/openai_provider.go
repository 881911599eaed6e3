package audio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider interface for OpenAI TTS
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

var languageNames = map[string]string{
	"ne-NP": "Nepali (नेपाली)",
	"hi-IN": "Hindi (हिन्दी)",
	"en-US": "American English",
	"en-GB": "British English",
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(config *Config) (Provider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Synthesize generates audio using OpenAI TTS. The API has no language
// parameter, so the language is passed through the voice instructions.
func (p *OpenAIProvider) Synthesize(ctx context.Context, req Request) ([]byte, error) {
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

	speechReq := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAIModel),
		Input:          strings.TrimSpace(req.Text),
		Voice:          openai.SpeechVoice(p.config.OpenAIVoice),
		Speed:          p.config.OpenAISpeed,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}
	if format == FormatWAV {
		speechReq.ResponseFormat = openai.SpeechResponseFormatWav
	}
	if supportsInstructions(p.config.OpenAIModel) {
		speechReq.Instructions = instructionFor(req.LanguageCode)
	}

	response, err := p.client.CreateSpeech(ctx, speechReq)
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "does not have access to model") && supportsInstructions(p.config.OpenAIModel) {
			return nil, fmt.Errorf("OpenAI TTS API error: %w\nNote: The %s model requires access. Try using --openai-model tts-1-hd instead", err, p.config.OpenAIModel)
		}
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data received from OpenAI")
	}

	return data, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is accessible
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

func supportsInstructions(model string) bool {
	return model == "gpt-4o-mini-tts" || model == "gpt-4o-mini-audio-preview"
}

func instructionFor(languageCode string) string {
	name, ok := languageNames[languageCode]
	if !ok {
		name = languageCode
	}
	return fmt.Sprintf("You are speaking %s. Pronounce the text with native %s phonetics. Speak slowly and clearly for children learning the alphabet.", name, name)
}
