package processor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"codeberg.org/snonux/aksharmala/internal/image"
	"codeberg.org/snonux/aksharmala/internal/models"
	"codeberg.org/snonux/aksharmala/internal/testutil"
	"codeberg.org/snonux/aksharmala/internal/translation"
)

const imageDataset = `{
  "nepali": {
    "swar": [{"id": "a", "letter": "अ", "example": "अनार", "image": "assets/images/nepali/a.png"}],
    "byanjan": [{"id": "ka", "letter": "क", "example": "कमल", "image": "assets/images/nepali/ka.png"}]
  },
  "english": {
    "az": [{"id": "a", "letter": "A", "lower": "a", "example": "Apple", "image": "assets/images/english/a.jpg"}]
  }
}`

type fakeSearcher struct {
	mu      sync.Mutex
	picture []byte
	err     error
	queries []string
}

func (f *fakeSearcher) Search(ctx context.Context, opts *image.SearchOptions) ([]image.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, opts.Query)
	if f.err != nil {
		return nil, f.err
	}
	return []image.SearchResult{{ID: opts.Query, URL: "mock://" + opts.Query, Source: "mock"}}, nil
}

func (f *fakeSearcher) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.picture)), nil
}

func (f *fakeSearcher) GetAttribution(result *image.SearchResult) string { return "" }

func (f *fakeSearcher) Name() string { return "mock" }

type fakeTranslator struct {
	model string
}

func (f *fakeTranslator) TranslateWord(ctx context.Context, word, language string) (string, error) {
	if word == "कमल" {
		return "lotus", nil
	}
	return "", errors.New("unknown word")
}

// newImageProcessor swaps the small dataset for one with pictures
func newImageProcessor(t *testing.T) (*Processor, *fakeSearcher, string) {
	t.Helper()

	p, _, root := newTestProcessor(t)
	testutil.CreateTestFile(t, p.flags.DataFile, []byte(imageDataset))

	searcher := &fakeSearcher{picture: testutil.MockPNG(t, 16, 16)}
	p.newImageSearcher = func(config *image.Config) (image.ImageSearcher, error) {
		return searcher, nil
	}
	return p, searcher, root
}

func TestFetchImages(t *testing.T) {
	p, searcher, root := newImageProcessor(t)
	t.Setenv("OPENAI_API_KEY", "test-key")

	translator := &fakeTranslator{}
	p.newTranslator = func(apiKey, baseURL, model string) image.Translator {
		translator.model = model
		return translator
	}

	glossaryPath := filepath.Join(root, "assets", "images", "glossary.json")
	seed := translation.NewTranslationCache()
	seed.Add("अनार", "pomegranate")
	if err := seed.Save(glossaryPath); err != nil {
		t.Fatal(err)
	}

	stdout, _ := testutil.CaptureOutput(t, func() {
		if err := p.FetchImages(context.Background()); err != nil {
			t.Errorf("FetchImages() error = %v", err)
		}
	})

	for _, rel := range []string{"assets/images/nepali/a.png", "assets/images/nepali/ka.png", "assets/images/english/a.jpg"} {
		testutil.AssertFileExists(t, filepath.Join(root, filepath.FromSlash(rel)))
	}
	if got := strings.Join(searcher.queries, ","); got != "pomegranate,lotus,apple" {
		t.Errorf("queries = %s", got)
	}
	if translator.model != "gpt-4o-mini" {
		t.Errorf("translate model = %q", translator.model)
	}

	glossary, err := translation.LoadTranslationCache(glossaryPath)
	if err != nil {
		t.Fatal(err)
	}
	if q, ok := glossary.Get("कमल"); !ok || q != "lotus" {
		t.Errorf("new translation not saved to the glossary: %v", glossary.GetAll())
	}

	if !strings.Contains(stdout, "Fetching 3 images with mock") || !strings.Contains(stdout, "=== Image Fetch Summary ===") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestFetchImagesWithoutTranslator(t *testing.T) {
	p, searcher, root := newImageProcessor(t)
	t.Setenv("OPENAI_API_KEY", "")
	p.newTranslator = func(apiKey, baseURL, model string) image.Translator {
		t.Error("translator created without an API key")
		return nil
	}

	_, stderr := testutil.CaptureOutput(t, func() {
		if err := p.FetchImages(context.Background()); err != nil {
			t.Errorf("FetchImages() error = %v", err)
		}
	})

	if got := strings.Join(searcher.queries, ","); got != "apple" {
		t.Errorf("queries = %s, want only the English word", got)
	}
	testutil.AssertFileNotExists(t, filepath.Join(root, "assets", "images", "nepali", "a.png"))
	testutil.AssertFileNotExists(t, filepath.Join(root, "assets", "images", "glossary.json"))
	if !strings.Contains(stderr, "OPENAI_API_KEY not set") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestFetchImagesFailures(t *testing.T) {
	p, searcher, _ := newImageProcessor(t)
	t.Setenv("OPENAI_API_KEY", "")
	p.flags.BreakerThreshold = 0
	searcher.err = errors.New("service down")

	var err error
	testutil.CaptureOutput(t, func() {
		err = p.FetchImages(context.Background())
	})
	if err == nil || !strings.Contains(err.Error(), "1 of 3 images") {
		t.Errorf("FetchImages() error = %v", err)
	}
}

func TestFetchImagesProviderError(t *testing.T) {
	p, _, _ := newImageProcessor(t)
	p.newImageSearcher = func(config *image.Config) (image.ImageSearcher, error) {
		return nil, errors.New("Unsplash access key is required")
	}

	err := p.FetchImages(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to create image provider") {
		t.Errorf("FetchImages() error = %v", err)
	}
}

type fakeModels struct {
	apiKey string
}

func (f *fakeModels) Fetch(ctx context.Context) (models.Catalog, error) {
	if f.apiKey == "" {
		return models.Catalog{}, errors.New("OpenAI API key not found")
	}
	return models.Catalog{Speech: []string{"gpt-4o-mini-tts"}, Image: []string{"dall-e-3"}}, nil
}

func TestListVoicesOpenAI(t *testing.T) {
	p, _, _ := newTestProcessor(t)
	p.speechEngine = &fakeEngine{}
	p.flags.OpenAIModels = true
	t.Setenv("OPENAI_API_KEY", "test-key")

	p.newModelLister = func(apiKey, baseURL string) modelCatalog {
		return &fakeModels{apiKey: apiKey}
	}

	stdout, _ := testutil.CaptureOutput(t, func() {
		if err := p.ListVoices(context.Background()); err != nil {
			t.Errorf("ListVoices() error = %v", err)
		}
	})
	if !strings.Contains(stdout, "gpt-4o-mini-tts") || !strings.Contains(stdout, "dall-e-3") {
		t.Errorf("stdout = %q", stdout)
	}

	t.Setenv("OPENAI_API_KEY", "")
	var err error
	testutil.CaptureOutput(t, func() {
		err = p.ListVoices(context.Background())
	})
	if err == nil {
		t.Error("Expected an error without API key")
	}
}

func TestFetchImagesWordList(t *testing.T) {
	p, searcher, root := newImageProcessor(t)
	t.Setenv("OPENAI_API_KEY", "")

	words := filepath.Join(root, "words.txt")
	testutil.CreateTestFile(t, words, []byte("अनार = pomegranate\nकमल\n"))
	p.flags.WordList = words

	stdout, _ := testutil.CaptureOutput(t, func() {
		if err := p.FetchImages(context.Background()); err != nil {
			t.Errorf("FetchImages() error = %v", err)
		}
	})

	if !strings.Contains(stdout, "Merged 1 words") {
		t.Errorf("stdout = %q", stdout)
	}
	if got := strings.Join(searcher.queries, ","); got != "pomegranate,apple" {
		t.Errorf("queries = %s", got)
	}
	testutil.AssertFileExists(t, filepath.Join(root, "assets", "images", "nepali", "a.png"))
	testutil.AssertFileExists(t, filepath.Join(root, "assets", "images", "glossary.json"))
}
