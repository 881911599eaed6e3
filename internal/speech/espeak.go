package speech

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"math"
	"os/exec"
	"strings"
	"sync"
)

// espeak-ng speaks at 175 words per minute at rate 1.0.
const espeakBaseWPM = 175

// ESpeakEngine speaks through the local espeak-ng binary.
type ESpeakEngine struct {
	binary string
	run    func(ctx context.Context, name string, args ...string) ([]byte, error)

	mu  sync.Mutex
	ids map[string]string // voice name -> espeak identifier
}

// NewESpeakEngine returns an engine for espeak-ng on PATH.
func NewESpeakEngine() *ESpeakEngine {
	return &ESpeakEngine{
		binary: "espeak-ng",
		run:    runCommand,
		ids:    make(map[string]string),
	}
}

// IsAvailable reports whether espeak-ng is installed.
func (e *ESpeakEngine) IsAvailable() error {
	if _, err := exec.LookPath(e.binary); err != nil {
		return fmt.Errorf("%s is not installed or not in PATH: %w", e.binary, err)
	}
	return nil
}

// ListVoices parses `espeak-ng --voices`.
func (e *ESpeakEngine) ListVoices(ctx context.Context) ([]Voice, error) {
	out, err := e.run(ctx, e.binary, "--voices")
	if err != nil {
		return nil, fmt.Errorf("failed to list espeak-ng voices: %w", err)
	}

	voices, ids := parseVoices(out)

	e.mu.Lock()
	e.ids = ids
	e.mu.Unlock()

	return voices, nil
}

// Speak runs espeak-ng until the utterance finishes.
func (e *ESpeakEngine) Speak(ctx context.Context, text, voiceName string, rate float64) error {
	args := []string{"-s", fmt.Sprintf("%d", WordsPerMinute(rate))}
	if voiceName != "" {
		args = append(args, "-v", e.identifier(voiceName))
	}
	args = append(args, "--", text)

	if _, err := e.run(ctx, e.binary, args...); err != nil {
		return fmt.Errorf("espeak-ng failed: %w", err)
	}
	return nil
}

func (e *ESpeakEngine) identifier(voiceName string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if id, ok := e.ids[voiceName]; ok {
		return id
	}
	return voiceName
}

// WordsPerMinute converts a relative rate to espeak-ng's -s value.
func WordsPerMinute(rate float64) int {
	if rate <= 0 {
		rate = 1
	}
	wpm := int(math.Round(espeakBaseWPM * rate))
	if wpm < 80 {
		wpm = 80
	}
	if wpm > 450 {
		wpm = 450
	}
	return wpm
}

// parseVoices reads the table printed by `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  ne              --/M      Nepali             inc/ne
func parseVoices(out []byte) ([]Voice, map[string]string) {
	var voices []Voice
	ids := make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || fields[0] == "Pty" {
			continue
		}

		lang := fields[1]
		name := strings.ReplaceAll(fields[3], "_", " ")
		voices = append(voices, Voice{Name: name, Lang: lang})
		ids[name] = lang
	}

	return voices, ids
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
