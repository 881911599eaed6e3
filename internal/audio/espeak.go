package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ESpeakConfig holds configuration for espeak-ng audio generation
type ESpeakConfig struct {
	Speed     int // Speech speed in words per minute (default: 150)
	Pitch     int // Pitch adjustment, 0 to 99 (default: 50)
	Amplitude int // Volume/amplitude, 0 to 200 (default: 100)
	WordGap   int // Gap between words in 10ms units (default: 0)
}

// DefaultESpeakConfig returns the default espeak-ng settings
func DefaultESpeakConfig() *ESpeakConfig {
	return &ESpeakConfig{
		Speed:     150,
		Pitch:     50,
		Amplitude: 100,
	}
}

// espeak-ng voice identifiers keyed by BCP-47 language code.
var espeakVoices = map[string]string{
	"ne-NP": "ne",
	"hi-IN": "hi",
	"en-US": "en-us",
	"en-GB": "en-gb",
}

// ESpeakVoiceFor maps a language code to an espeak-ng voice.
func ESpeakVoiceFor(languageCode string) string {
	if v, ok := espeakVoices[languageCode]; ok {
		return v
	}
	primary, _, _ := strings.Cut(languageCode, "-")
	return strings.ToLower(primary)
}

// ESpeak provides an interface to the espeak-ng text-to-speech engine
type ESpeak struct {
	config *ESpeakConfig
	binary string
}

// NewESpeak creates a new ESpeak instance with the given configuration
func NewESpeak(config *ESpeakConfig) (*ESpeak, error) {
	if err := checkESpeakInstalled(); err != nil {
		return nil, err
	}

	if config == nil {
		config = DefaultESpeakConfig()
	}

	return &ESpeak{config: config, binary: "espeak-ng"}, nil
}

// SynthesizeWAV runs espeak-ng and returns the WAV it writes to stdout.
func (e *ESpeak) SynthesizeWAV(ctx context.Context, text, voice string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	args := []string{
		"-v", voice,
		"-s", fmt.Sprintf("%d", clamp(e.config.Speed, 80, 450)),
		"-p", fmt.Sprintf("%d", clamp(e.config.Pitch, 0, 99)),
		"-a", fmt.Sprintf("%d", clamp(e.config.Amplitude, 0, 200)),
	}
	if e.config.WordGap > 0 {
		args = append(args, "-g", fmt.Sprintf("%d", e.config.WordGap))
	}
	args = append(args, "--stdout", "--", text)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("espeak-ng produced no audio")
	}

	return stdout.Bytes(), nil
}

// checkESpeakInstalled verifies that espeak-ng is available on the system
func checkESpeakInstalled() error {
	if _, err := exec.LookPath("espeak-ng"); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
