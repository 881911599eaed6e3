package image

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/aksharmala/internal/translation"
)

// ErrNoTranslation means a word has no glossary entry and no translator
// is configured
var ErrNoTranslation = errors.New("no English search term")

// Translator puts an example word into English
type Translator interface {
	TranslateWord(ctx context.Context, word, language string) (string, error)
}

// FetcherConfig tunes a Fetcher
type FetcherConfig struct {
	// BreakerThreshold consecutive failed searches stop further requests
	// until BreakerTimeout passed. Zero disables the breaker.
	BreakerThreshold uint32
	BreakerTimeout   time.Duration

	Download *DownloadOptions
	// LogRoot shortens paths in progress output
	LogRoot string
}

// Fetcher fills in missing example pictures. A failed target is reported
// and skipped; only cancellation stops a run.
type Fetcher struct {
	searcher   ImageSearcher
	downloader *Downloader
	translator Translator
	glossary   *translation.TranslationCache
	breaker    *gobreaker.CircuitBreaker
	config     FetcherConfig
}

// NewFetcher creates a fetcher. translator may be nil, in which case
// Nepali words must be in the glossary.
func NewFetcher(searcher ImageSearcher, translator Translator, glossary *translation.TranslationCache, config FetcherConfig) *Fetcher {
	if glossary == nil {
		glossary = translation.NewTranslationCache()
	}
	if config.BreakerTimeout == 0 {
		config.BreakerTimeout = time.Minute
	}

	f := &Fetcher{
		searcher:   searcher,
		downloader: NewDownloader(searcher, config.Download),
		translator: translator,
		glossary:   glossary,
		config:     config,
	}

	if threshold := config.BreakerThreshold; threshold > 0 {
		f.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    searcher.Name(),
			Timeout: config.BreakerTimeout,
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
	}
	return f
}

// Glossary returns the word list, including translations made so far
func (f *Fetcher) Glossary() *translation.TranslationCache {
	return f.glossary
}

// Query returns the English search term for a target
func (f *Fetcher) Query(ctx context.Context, t Target) (string, error) {
	if !t.NeedsTranslation() {
		return strings.ToLower(t.Word), nil
	}
	if q, ok := f.glossary.Get(t.Word); ok && q != "" {
		return q, nil
	}
	if f.translator == nil {
		return "", fmt.Errorf("%w for %q: add it to the glossary or set OPENAI_API_KEY", ErrNoTranslation, t.Word)
	}

	q, err := f.translator.TranslateWord(ctx, t.Word, t.Language)
	if err != nil {
		return "", fmt.Errorf("failed to translate %q: %w", t.Word, err)
	}
	f.glossary.Add(t.Word, q)
	return q, nil
}

// Run fetches every target that has no picture on disk yet
func (f *Fetcher) Run(ctx context.Context, targets []Target) (Summary, error) {
	summary := Summary{Total: len(targets)}
	defer func() { summary.Print() }()

	for i, t := range targets {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("image fetch interrupted at %d/%d: %w", i+1, len(targets), err)
		}

		if _, err := os.Stat(t.OutFile); err == nil {
			fmt.Printf("✓ Exists: %s\n", f.rel(t.OutFile))
			summary.Cached++
			continue
		}

		query, err := f.Query(ctx, t)
		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			fmt.Fprintf(os.Stderr, "⚠ Skipping %s: %v\n", f.rel(t.OutFile), err)
			summary.Skipped++
			continue
		}

		result, err := f.fetch(ctx, query, t.OutFile)
		if err != nil {
			if ctx.Err() != nil {
				return summary, fmt.Errorf("image fetch interrupted at %d/%d: %w", i+1, len(targets), ctx.Err())
			}
			fmt.Fprintf(os.Stderr, "✗ Failed %s (%s): %v\n", f.rel(t.OutFile), query, err)
			summary.Failed = append(summary.Failed, t.OutFile)
			continue
		}

		fmt.Printf("Saved: %s (%s, %s)\n", f.rel(t.OutFile), query, result.Source)
		summary.Saved++
	}

	return summary, nil
}

func (f *Fetcher) fetch(ctx context.Context, query, outFile string) (*SearchResult, error) {
	opts := DefaultSearchOptions(query)
	if f.breaker == nil {
		return f.downloader.DownloadBestMatch(ctx, opts, outFile)
	}

	result, err := f.breaker.Execute(func() (interface{}, error) {
		return f.downloader.DownloadBestMatch(ctx, opts, outFile)
	})
	if err != nil {
		return nil, err
	}
	return result.(*SearchResult), nil
}

func (f *Fetcher) rel(path string) string {
	if f.config.LogRoot == "" {
		return path
	}
	if r, err := filepath.Rel(f.config.LogRoot, path); err == nil {
		return r
	}
	return path
}

// Summary counts what a Run did
type Summary struct {
	Total   int
	Saved   int
	Cached  int
	Skipped int      // no search term
	Failed  []string // output files that could not be fetched
}

// Print writes the summary block to stdout
func (s Summary) Print() {
	fmt.Printf("\n=== Image Fetch Summary ===\n")
	fmt.Printf("Total targets: %d\n", s.Total)
	fmt.Printf("Saved: %d\n", s.Saved)
	fmt.Printf("Skipped (already exists): %d\n", s.Cached)
	if s.Skipped > 0 {
		fmt.Printf("Skipped (no search term): %d\n", s.Skipped)
	}
	if len(s.Failed) > 0 {
		fmt.Printf("Failed: %d\n", len(s.Failed))
	}
	fmt.Printf("===========================\n")
}
