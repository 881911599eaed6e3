package prefetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/aksharmala/internal/audio"
)

// Config tunes a Fetcher.
type Config struct {
	Format string // audio.FormatMP3 or audio.FormatWAV

	// BreakerThreshold is the number of consecutive failures after which a
	// primary language is skipped and targets go straight to their
	// fallback. Zero disables the breaker.
	BreakerThreshold uint32
	// BreakerTimeout is how long an open breaker waits before letting one
	// probe request through.
	BreakerTimeout time.Duration

	// LogRoot shortens paths in progress output; empty prints them as is.
	LogRoot string
}

// Options describe one SynthesizeToFile call.
type Options struct {
	OutFile  string
	Language string
	Fallback string
}

// Fetcher writes synthesized audio to disk.
type Fetcher struct {
	provider audio.Provider
	config   Config

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewFetcher creates a fetcher around a provider.
func NewFetcher(provider audio.Provider, config Config) *Fetcher {
	if config.Format == "" {
		config.Format = audio.FormatMP3
	}
	if config.BreakerTimeout == 0 {
		config.BreakerTimeout = 30 * time.Second
	}
	return &Fetcher{
		provider: provider,
		config:   config,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

// SynthesizeToFile makes sure opts.OutFile holds audio for text. The file
// extension must name the configured format. An existing
// file is a CacheHit and the provider is not called. A failed primary request
// is retried exactly once with opts.Fallback; without a fallback, or when the
// fallback fails as well, a *FatalError is returned.
func (f *Fetcher) SynthesizeToFile(ctx context.Context, text string, opts Options) (Outcome, error) {
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.OutFile)), "."); ext != f.config.Format {
		return Saved, &FatalError{Text: text, OutFile: opts.OutFile, Err: fmt.Errorf("%s audio cannot be written to a .%s file", f.config.Format, ext)}
	}

	if err := os.MkdirAll(filepath.Dir(opts.OutFile), 0755); err != nil {
		return Saved, &FatalError{Text: text, OutFile: opts.OutFile, Err: fmt.Errorf("failed to create output directory: %w", err)}
	}

	if _, err := os.Stat(opts.OutFile); err == nil {
		fmt.Printf("✓ Exists: %s\n", f.rel(opts.OutFile))
		return CacheHit, nil
	}

	outcome := Saved
	data, err := f.primary(ctx, text, opts.Language)
	if err != nil {
		if ctx.Err() != nil || opts.Fallback == "" {
			return Saved, &FatalError{Text: text, OutFile: opts.OutFile, Err: err}
		}

		fmt.Fprintf(os.Stderr, "⚠ Using fallback %s for: %s (%v)\n", opts.Fallback, text, err)
		data, err = f.request(ctx, text, opts.Fallback)
		if err != nil {
			return Saved, &FatalError{Text: text, OutFile: opts.OutFile, Err: err}
		}
		outcome = SavedWithFallback
	}

	if err := writeFileAtomic(opts.OutFile, data); err != nil {
		return Saved, &FatalError{Text: text, OutFile: opts.OutFile, Err: err}
	}

	fmt.Printf("Saved: %s\n", f.rel(opts.OutFile))
	return outcome, nil
}

// Run processes targets in order and stops at the first FatalError. Files
// written before the failure are kept. The summary is printed either way.
func (f *Fetcher) Run(ctx context.Context, targets []Target) (Summary, error) {
	summary := Summary{Total: len(targets)}
	defer func() { summary.Print() }()

	for i, t := range targets {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("prefetch interrupted at %d/%d: %w", i+1, len(targets), err)
		}

		outcome, err := f.SynthesizeToFile(ctx, t.Text, Options{
			OutFile:  t.OutFile,
			Language: t.Language,
			Fallback: t.Fallback,
		})
		if err != nil {
			summary.Failed = t.OutFile
			return summary, err
		}
		summary.record(outcome)
	}

	return summary, nil
}

// primary sends the request through the language's breaker, if enabled.
func (f *Fetcher) primary(ctx context.Context, text, language string) ([]byte, error) {
	cb := f.breaker(language)
	if cb == nil {
		return f.request(ctx, text, language)
	}

	result, err := cb.Execute(func() (interface{}, error) {
		return f.request(ctx, text, language)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &ProviderError{Language: language, Err: err}
	}
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (f *Fetcher) request(ctx context.Context, text, language string) ([]byte, error) {
	data, err := f.provider.Synthesize(ctx, audio.Request{
		Text:         text,
		LanguageCode: language,
		Format:       f.config.Format,
	})
	if err != nil {
		return nil, &ProviderError{Language: language, Err: err}
	}
	if len(data) == 0 {
		return nil, &ProviderError{Language: language, Err: errors.New("empty audio")}
	}
	return data, nil
}

func (f *Fetcher) breaker(language string) *gobreaker.CircuitBreaker {
	if f.config.BreakerThreshold == 0 {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if cb, ok := f.breakers[language]; ok {
		return cb
	}

	threshold := f.config.BreakerThreshold
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    language,
		Timeout: f.config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fmt.Fprintf(os.Stderr, "Breaker %s: %s -> %s\n", name, from, to)
		},
	})
	f.breakers[language] = cb
	return cb
}

// BreakerState reports the breaker state for a language, "disabled" when
// breakers are off and "closed" before the first request.
func (f *Fetcher) BreakerState(language string) string {
	if f.config.BreakerThreshold == 0 {
		return "disabled"
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if cb, ok := f.breakers[language]; ok {
		return cb.State().String()
	}
	return gobreaker.StateClosed.String()
}

func (f *Fetcher) rel(path string) string {
	if f.config.LogRoot == "" {
		return path
	}
	if rel, err := filepath.Rel(f.config.LogRoot, path); err == nil {
		return rel
	}
	return path
}

// writeFileAtomic keeps an interrupted write from leaving a partial file
// that the next run would treat as cached.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move audio file into place: %w", err)
	}
	return nil
}
