package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/snonux/aksharmala/internal/alphabet"
	"codeberg.org/snonux/aksharmala/internal/anki"
	"codeberg.org/snonux/aksharmala/internal/archive"
	"codeberg.org/snonux/aksharmala/internal/audio"
	"codeberg.org/snonux/aksharmala/internal/cli"
	"codeberg.org/snonux/aksharmala/internal/gui"
	"codeberg.org/snonux/aksharmala/internal/image"
	"codeberg.org/snonux/aksharmala/internal/lesson"
	"codeberg.org/snonux/aksharmala/internal/models"
	"codeberg.org/snonux/aksharmala/internal/prefetch"
	"codeberg.org/snonux/aksharmala/internal/speech"
	"codeberg.org/snonux/aksharmala/internal/translation"
)

// voiceLister is the part of the Google provider the voices command uses
type voiceLister interface {
	ListVoices(ctx context.Context, languageCode string) ([]string, error)
}

// modelCatalog is what the voices command needs from models.Lister
type modelCatalog interface {
	Fetch(ctx context.Context) (models.Catalog, error)
}

// Processor handles the command logic
type Processor struct {
	flags *cli.Flags

	newProvider      func(ctx context.Context, config *audio.Config) (audio.Provider, error)
	newGoogle        func(ctx context.Context, config *audio.Config) (audio.Provider, error)
	newImageSearcher func(config *image.Config) (image.ImageSearcher, error)
	newTranslator    func(apiKey, baseURL, model string) image.Translator
	newModelLister   func(apiKey, baseURL string) modelCatalog
	speechEngine     speech.Engine
	runViewer        func(config *gui.Config) error
}

// NewProcessor creates a new processor
func NewProcessor(flags *cli.Flags) *Processor {
	return &Processor{
		flags:            flags,
		newProvider:      audio.NewProvider,
		newGoogle:        audio.NewGoogleProvider,
		newImageSearcher: image.NewSearcher,
		newTranslator: func(apiKey, baseURL, model string) image.Translator {
			return translation.NewTranslator(apiKey, baseURL, model)
		},
		newModelLister: func(apiKey, baseURL string) modelCatalog {
			return models.NewLister(apiKey, baseURL)
		},
		speechEngine: speech.NewESpeakEngine(),
		runViewer: func(config *gui.Config) error {
			gui.New(config).Run()
			return nil
		},
	}
}

// loadDataset returns the configured dataset, or the built-in one. A broken
// data file is reported and replaced by the minimal fallback so the viewer
// still opens.
func (p *Processor) loadDataset(settings cli.Settings) *alphabet.Dataset {
	if settings.DataFile == "" {
		return alphabet.Default()
	}
	ds, err := alphabet.LoadOrFallback(settings.DataFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using built-in fallback data\n", err)
	}
	return ds
}

// FetchAudio pre-generates the pronunciation audio for every letter and
// barakhari combination. The first unrecoverable failure aborts the run.
func (p *Processor) FetchAudio(ctx context.Context) error {
	settings := cli.LoadSettings(p.flags)
	ds := p.loadDataset(settings)
	layout := prefetch.DefaultLayout(settings.AssetRoot)

	// The viewer and the dataset name .mp3 files.
	if format := settings.Audio.OutputFormat; format != "" && format != audio.FormatMP3 {
		return fmt.Errorf("fetch-audio writes .mp3 files; audio format %q is not supported", format)
	}

	if p.flags.Refresh {
		if _, err := os.Stat(layout.AudioDir()); err == nil {
			if _, err := archive.Archive(layout.AudioDir()); err != nil {
				return fmt.Errorf("failed to archive audio: %w", err)
			}
		}
	}

	provider, err := p.newProvider(ctx, settings.Audio)
	if err != nil {
		return fmt.Errorf("failed to create audio provider: %w", err)
	}
	if closer, ok := provider.(interface{ Close() error }); ok {
		defer closer.Close()
	}
	if err := provider.IsAvailable(); err != nil {
		return fmt.Errorf("audio provider %s not available: %w", provider.Name(), err)
	}

	targets := prefetch.BuildTargets(ds, layout)
	if p.flags.Numbers {
		targets = append(targets, prefetch.BuildNumberTargets(ds, layout)...)
	}

	threshold := settings.BreakerThreshold
	if threshold < 0 {
		threshold = 0
	}

	fmt.Printf("Fetching %d audio files with %s\n", len(targets), provider.Name())
	fetcher := prefetch.NewFetcher(provider, prefetch.Config{
		Format:           settings.Audio.OutputFormat,
		BreakerThreshold: uint32(threshold),
		LogRoot:          settings.AssetRoot,
	})

	_, err = fetcher.Run(ctx, targets)
	return err
}

// FetchImages saves a picture for every letter whose image is missing.
// Failed targets are reported and the run goes on; the error names how
// many failed.
func (p *Processor) FetchImages(ctx context.Context) error {
	settings := cli.LoadSettings(p.flags)
	ds := p.loadDataset(settings)

	glossaryPath := settings.GlossaryFile
	if glossaryPath == "" {
		glossaryPath = filepath.Join(settings.AssetRoot, "assets", "images", "glossary.json")
	}
	glossary, err := translation.LoadTranslationCache(glossaryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; starting with an empty glossary\n", err)
	}
	if p.flags.WordList != "" {
		entries, err := translation.ReadWordList(p.flags.WordList)
		if err != nil {
			return err
		}
		fmt.Printf("Merged %d words from %s into the glossary\n", glossary.Merge(entries), p.flags.WordList)
	}

	searcher, err := p.newImageSearcher(settings.Images)
	if err != nil {
		return fmt.Errorf("failed to create image provider: %w", err)
	}

	var translator image.Translator
	if key := settings.Images.OpenAIKey; key != "" {
		translator = p.newTranslator(key, settings.Images.OpenAIBaseURL, settings.TranslateModel)
	} else {
		fmt.Fprintln(os.Stderr, "Note: OPENAI_API_KEY not set; Nepali words are only looked up in the glossary")
	}

	threshold := settings.BreakerThreshold
	if threshold < 0 {
		threshold = 0
	}

	targets := image.BuildTargets(ds, settings.AssetRoot)
	fmt.Printf("Fetching %d images with %s\n", len(targets), searcher.Name())

	fetcher := image.NewFetcher(searcher, translator, glossary, image.FetcherConfig{
		BreakerThreshold: uint32(threshold),
		LogRoot:          settings.AssetRoot,
	})
	summary, runErr := fetcher.Run(ctx, targets)

	if w, ok := searcher.(interface{ Wait() }); ok {
		w.Wait()
	}

	if glossary.Len() > 0 {
		if err := glossary.Save(glossaryPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save glossary: %v\n", err)
		}
	}

	if runErr != nil {
		return runErr
	}
	if n := len(summary.Failed); n > 0 {
		return fmt.Errorf("%d of %d images could not be fetched", n, summary.Total)
	}
	return nil
}

// ExportAnki writes the flashcard package and returns its path
func (p *Processor) ExportAnki() (string, error) {
	settings := cli.LoadSettings(p.flags)
	ds := p.loadDataset(settings)

	outputPath, err := anki.Export(ds, anki.ExportOptions{
		OutputDir: settings.OutputDir,
		DeckName:  settings.DeckName,
		AssetRoot: settings.AssetRoot,
		Groups:    p.flags.Groups,
		CSV:       p.flags.AnkiCSV,
	})
	if err != nil {
		return "", fmt.Errorf("failed to export Anki cards: %w", err)
	}

	fmt.Printf("Anki file created: %s\n", outputPath)
	return outputPath, nil
}

// ListVoices prints the on-device voices, marking the one the viewer
// would pick, and optionally the Google Cloud voices for a language and
// the OpenAI models.
func (p *Processor) ListVoices(ctx context.Context) error {
	voices, err := p.speechEngine.ListVoices(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to list speech voices: %v\n", err)
	}

	preferred := speech.ChooseVoice(voices)
	fmt.Printf("Speech voices (%d):\n", len(voices))
	for _, v := range voices {
		marker := " "
		if v.Name == preferred {
			marker = "*"
		}
		fmt.Printf(" %s %-24s %s\n", marker, v.Lang, v.Name)
	}
	if preferred == "" {
		fmt.Println("No voice available; the viewer stays silent when an audio file is missing.")
	}

	settings := cli.LoadSettings(p.flags)
	if p.flags.GoogleVoices {
		if err := p.listGoogleVoices(ctx, settings); err != nil {
			return err
		}
	}
	if p.flags.OpenAIModels {
		catalog, err := p.newModelLister(settings.Audio.OpenAIKey, settings.Audio.OpenAIBaseURL).Fetch(ctx)
		if err != nil {
			return err
		}
		fmt.Println()
		catalog.Print(os.Stdout)
	}
	return nil
}

func (p *Processor) listGoogleVoices(ctx context.Context, settings cli.Settings) error {
	provider, err := p.newGoogle(ctx, settings.Audio)
	if err != nil {
		return fmt.Errorf("failed to create Google client: %w", err)
	}
	if closer, ok := provider.(interface{ Close() error }); ok {
		defer closer.Close()
	}
	lister, ok := provider.(voiceLister)
	if !ok {
		return fmt.Errorf("provider %s cannot list voices", provider.Name())
	}

	names, err := lister.ListVoices(ctx, p.flags.Language)
	if err != nil {
		return fmt.Errorf("failed to list Google voices: %w", err)
	}
	fmt.Printf("\nGoogle voices for %s (%d):\n", p.flags.Language, len(names))
	for _, name := range names {
		fmt.Printf("   %s\n", name)
	}
	return nil
}

// RunViewer launches the lesson viewer
func (p *Processor) RunViewer() error {
	settings := cli.LoadSettings(p.flags)

	config := &gui.Config{
		Dataset:    p.loadDataset(settings),
		AssetRoot:  settings.AssetRoot,
		AutoPlay:   settings.AutoPlay,
		SpeechRate: settings.SpeechRate,
	}

	if p.flags.StartMode != "" {
		mode, err := lesson.ParseMode(p.flags.StartMode)
		if err != nil {
			return err
		}
		config.StartMode = mode
	}

	return p.runViewer(config)
}
