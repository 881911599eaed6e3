package audio

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
)

// GoogleProvider synthesizes speech with Google Cloud Text-to-Speech.
type GoogleProvider struct {
	synthesize func(context.Context, *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error)
	listVoices func(context.Context, *texttospeechpb.ListVoicesRequest) (*texttospeechpb.ListVoicesResponse, error)
	closeFn    func() error
	format     string
}

// NewGoogleProvider dials the Text-to-Speech API. Credentials come from
// config.GoogleCredentials or GOOGLE_APPLICATION_CREDENTIALS.
func NewGoogleProvider(ctx context.Context, config *Config) (Provider, error) {
	var opts []option.ClientOption
	if config.GoogleCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(config.GoogleCredentials))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Text-to-Speech client: %w", err)
	}

	format, err := normalizeFormat(config.OutputFormat)
	if err != nil {
		client.Close()
		return nil, err
	}

	return &GoogleProvider{
		synthesize: func(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error) {
			return client.SynthesizeSpeech(ctx, req)
		},
		listVoices: func(ctx context.Context, req *texttospeechpb.ListVoicesRequest) (*texttospeechpb.ListVoicesResponse, error) {
			return client.ListVoices(ctx, req)
		},
		closeFn: client.Close,
		format:  format,
	}, nil
}

// Synthesize requests a NEUTRAL voice for the language code.
func (p *GoogleProvider) Synthesize(ctx context.Context, req Request) ([]byte, error) {
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

	encoding := texttospeechpb.AudioEncoding_MP3
	if format == FormatWAV {
		encoding = texttospeechpb.AudioEncoding_LINEAR16
	}

	resp, err := p.synthesize(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: req.Text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: req.LanguageCode,
			SsmlGender:   texttospeechpb.SsmlVoiceGender_NEUTRAL,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: encoding,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Text-to-Speech API error (%s): %w", req.LanguageCode, err)
	}
	if len(resp.GetAudioContent()) == 0 {
		return nil, fmt.Errorf("no audio data received from Text-to-Speech (%s)", req.LanguageCode)
	}

	return resp.GetAudioContent(), nil
}

// ListVoices returns the voice names Google offers for a language code.
func (p *GoogleProvider) ListVoices(ctx context.Context, languageCode string) ([]string, error) {
	resp, err := p.listVoices(ctx, &texttospeechpb.ListVoicesRequest{LanguageCode: languageCode})
	if err != nil {
		return nil, fmt.Errorf("failed to list voices: %w", err)
	}

	names := make([]string, 0, len(resp.GetVoices()))
	for _, v := range resp.GetVoices() {
		names = append(names, v.GetName())
	}
	return names, nil
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// IsAvailable reports whether a client was created.
func (p *GoogleProvider) IsAvailable() error {
	if p.synthesize == nil {
		return fmt.Errorf("Text-to-Speech client not initialized")
	}
	return nil
}

// Close releases the gRPC connection.
func (p *GoogleProvider) Close() error {
	if p.closeFn == nil {
		return nil
	}
	return p.closeFn()
}
