package prefetch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/snonux/aksharmala/internal/alphabet"
	"codeberg.org/snonux/aksharmala/internal/audio"
	"codeberg.org/snonux/aksharmala/internal/testutil"
)

func TestSynthesizeToFile(t *testing.T) {
	provider := testutil.NewMockProvider()
	fetcher := NewFetcher(provider, Config{})
	out := filepath.Join(t.TempDir(), "nepali", "ka.mp3")

	outcome, err := fetcher.SynthesizeToFile(context.Background(), "क", Options{OutFile: out, Language: LangNepali, Fallback: LangHindi})
	if err != nil {
		t.Fatalf("SynthesizeToFile() unexpected error: %v", err)
	}
	if outcome != Saved {
		t.Errorf("outcome = %v, want saved", outcome)
	}
	testutil.AssertFileContent(t, out, provider.Data)

	if provider.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", provider.CallCount())
	}
	if req := provider.Calls[0]; req.Text != "क" || req.LanguageCode != LangNepali || req.Format != "mp3" {
		t.Errorf("request = %+v", req)
	}
}

func TestSynthesizeToFileCacheHit(t *testing.T) {
	provider := testutil.NewMockProvider()
	fetcher := NewFetcher(provider, Config{})
	out := filepath.Join(t.TempDir(), "ka.mp3")
	testutil.CreateTestFile(t, out, []byte("existing"))
	before, _ := os.Stat(out)

	outcome, err := fetcher.SynthesizeToFile(context.Background(), "क", Options{OutFile: out, Language: LangNepali})
	if err != nil {
		t.Fatalf("SynthesizeToFile() unexpected error: %v", err)
	}
	if outcome != CacheHit {
		t.Errorf("outcome = %v, want exists", outcome)
	}
	if provider.CallCount() != 0 {
		t.Errorf("expected zero provider calls on cache hit, got %d", provider.CallCount())
	}

	testutil.AssertFileContent(t, out, []byte("existing"))
	after, _ := os.Stat(out)
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("cached file was touched")
	}
}

func TestSynthesizeToFileFallback(t *testing.T) {
	provider := testutil.NewMockProvider()
	provider.Errors[LangNepali] = errors.New("language not supported")
	fetcher := NewFetcher(provider, Config{})
	out := filepath.Join(t.TempDir(), "ka.mp3")

	outcome, err := fetcher.SynthesizeToFile(context.Background(), "क", Options{OutFile: out, Language: LangNepali, Fallback: LangHindi})
	if err != nil {
		t.Fatalf("SynthesizeToFile() unexpected error: %v", err)
	}
	if outcome != SavedWithFallback {
		t.Errorf("outcome = %v, want fallback", outcome)
	}

	langs := provider.LanguagesCalled()
	if len(langs) != 2 || langs[0] != LangNepali || langs[1] != LangHindi {
		t.Errorf("languages called = %v, want [ne-NP hi-IN]", langs)
	}
	testutil.AssertFileExists(t, out)
}

func TestSynthesizeToFileFallbackFails(t *testing.T) {
	provider := testutil.NewMockProvider()
	provider.Errors[LangNepali] = errors.New("primary down")
	provider.Errors[LangHindi] = errors.New("fallback down")
	fetcher := NewFetcher(provider, Config{})
	out := filepath.Join(t.TempDir(), "ka.mp3")

	_, err := fetcher.SynthesizeToFile(context.Background(), "क", Options{OutFile: out, Language: LangNepali, Fallback: LangHindi})

	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("expected *FatalError, got %v", err)
	}
	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Language != LangHindi {
		t.Errorf("expected ProviderError for hi-IN, got %v", err)
	}
	if provider.CallCount() != 2 {
		t.Errorf("expected exactly one fallback retry, got %d calls", provider.CallCount())
	}
	testutil.AssertFileNotExists(t, out)
}

func TestSynthesizeToFileNoFallback(t *testing.T) {
	provider := testutil.NewMockProvider()
	provider.Errors[LangEnglish] = errors.New("quota exceeded")
	fetcher := NewFetcher(provider, Config{})
	out := filepath.Join(t.TempDir(), "a.mp3")

	_, err := fetcher.SynthesizeToFile(context.Background(), "A", Options{OutFile: out, Language: LangEnglish})

	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("expected *FatalError, got %v", err)
	}
	if provider.CallCount() != 1 {
		t.Errorf("expected 1 call, got %d", provider.CallCount())
	}
	testutil.AssertFileNotExists(t, out)
}

func TestSynthesizeToFileCancelledSkipsFallback(t *testing.T) {
	provider := testutil.NewMockProvider()
	fetcher := NewFetcher(provider, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.SynthesizeToFile(ctx, "क", Options{OutFile: filepath.Join(t.TempDir(), "ka.mp3"), Language: LangNepali, Fallback: LangHindi})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if provider.CallCount() != 1 {
		t.Errorf("expected no fallback after cancellation, got %d calls", provider.CallCount())
	}
}

func TestSynthesizeToFileFormatMatchesExtension(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		file    string
		wantErr bool
	}{
		{"mp3 into mp3", audio.FormatMP3, "ka.mp3", false},
		{"wav into wav", audio.FormatWAV, "ka.wav", false},
		{"upper case extension", audio.FormatMP3, "ka.MP3", false},
		{"wav into mp3", audio.FormatWAV, "ka.mp3", true},
		{"mp3 into wav", audio.FormatMP3, "ka.wav", true},
		{"no extension", audio.FormatMP3, "ka", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := testutil.NewMockProvider()
			fetcher := NewFetcher(provider, Config{Format: tt.format})
			out := filepath.Join(t.TempDir(), tt.file)

			_, err := fetcher.SynthesizeToFile(context.Background(), "क", Options{OutFile: out, Language: LangNepali, Fallback: LangHindi})
			if (err != nil) != tt.wantErr {
				t.Fatalf("SynthesizeToFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				testutil.AssertFileExists(t, out)
				return
			}

			var fatal *FatalError
			if !errors.As(err, &fatal) {
				t.Errorf("expected *FatalError, got %v", err)
			}
			if provider.CallCount() != 0 {
				t.Errorf("provider calls = %d, want 0", provider.CallCount())
			}
			testutil.AssertFileNotExists(t, out)
		})
	}
}

func TestRunWAVFormatWritesNoMP3(t *testing.T) {
	provider := testutil.NewMockProvider()
	fetcher := NewFetcher(provider, Config{Format: audio.FormatWAV})
	targets := BuildTargets(alphabet.Fallback(), DefaultLayout(t.TempDir()))[:1]

	var err error
	testutil.CaptureOutput(t, func() {
		_, err = fetcher.Run(context.Background(), targets)
	})

	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("expected *FatalError, got %v", err)
	}
	if filepath.Ext(targets[0].OutFile) != ".mp3" {
		t.Fatalf("target path = %s, want .mp3", targets[0].OutFile)
	}
	testutil.AssertFileNotExists(t, targets[0].OutFile)
}

func TestRunFailFast(t *testing.T) {
	provider := testutil.NewMockProvider()
	provider.Errors[LangEnglish] = errors.New("english unavailable")
	fetcher := NewFetcher(provider, Config{})
	dir := t.TempDir()

	targets := []Target{
		{Text: "क", OutFile: filepath.Join(dir, "ka.mp3"), Language: LangNepali, Fallback: LangHindi},
		{Text: "A", OutFile: filepath.Join(dir, "a.mp3"), Language: LangEnglish},
		{Text: "ख", OutFile: filepath.Join(dir, "kha.mp3"), Language: LangNepali, Fallback: LangHindi},
	}

	summary, err := fetcher.Run(context.Background(), targets)
	if err == nil {
		t.Fatal("Run() expected error")
	}
	if summary.Saved != 1 || summary.Failed != targets[1].OutFile {
		t.Errorf("summary = %+v", summary)
	}
	testutil.AssertFileExists(t, targets[0].OutFile)
	testutil.AssertFileNotExists(t, targets[2].OutFile)
	if provider.CallCount() != 2 {
		t.Errorf("expected the run to stop after 2 calls, got %d", provider.CallCount())
	}
}

func TestRunSequentialOrder(t *testing.T) {
	provider := testutil.NewMockProvider()
	fetcher := NewFetcher(provider, Config{})
	dir := t.TempDir()
	testutil.CreateTestFile(t, filepath.Join(dir, "kha.mp3"), []byte("cached"))

	targets := []Target{
		{Text: "क", OutFile: filepath.Join(dir, "ka.mp3"), Language: LangNepali},
		{Text: "ख", OutFile: filepath.Join(dir, "kha.mp3"), Language: LangNepali},
		{Text: "ग", OutFile: filepath.Join(dir, "ga.mp3"), Language: LangNepali},
	}

	summary, err := fetcher.Run(context.Background(), targets)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if summary.Saved != 2 || summary.Cached != 1 || summary.Done() != 3 {
		t.Errorf("summary = %+v", summary)
	}

	if len(provider.Calls) != 2 || provider.Calls[0].Text != "क" || provider.Calls[1].Text != "ग" {
		t.Errorf("calls = %+v", provider.Calls)
	}
}

func TestRunCancelled(t *testing.T) {
	fetcher := NewFetcher(testutil.NewMockProvider(), Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.Run(ctx, []Target{{Text: "क", OutFile: filepath.Join(t.TempDir(), "ka.mp3"), Language: LangNepali}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestBreakerSkipsPrimary(t *testing.T) {
	provider := testutil.NewMockProvider()
	provider.Errors[LangNepali] = errors.New("ne-NP voice missing")
	fetcher := NewFetcher(provider, Config{BreakerThreshold: 2, BreakerTimeout: time.Hour})
	dir := t.TempDir()

	var targets []Target
	for _, id := range []string{"ka", "kha", "ga", "gha"} {
		targets = append(targets, Target{Text: id, OutFile: filepath.Join(dir, id+".mp3"), Language: LangNepali, Fallback: LangHindi})
	}

	summary, err := fetcher.Run(context.Background(), targets)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if summary.Fallback != 4 {
		t.Errorf("summary.Fallback = %d, want 4", summary.Fallback)
	}

	// Two primary attempts trip the breaker, the remaining targets go
	// straight to the fallback.
	want := []string{LangNepali, LangHindi, LangNepali, LangHindi, LangHindi, LangHindi}
	got := provider.LanguagesCalled()
	if len(got) != len(want) {
		t.Fatalf("languages called = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, got[i], want[i])
		}
	}
	if fetcher.BreakerState(LangNepali) != "open" {
		t.Errorf("breaker state = %s, want open", fetcher.BreakerState(LangNepali))
	}
}

func TestBreakerOpenWithoutFallbackIsFatal(t *testing.T) {
	provider := testutil.NewMockProvider()
	provider.Errors[LangEnglish] = errors.New("down")
	fetcher := NewFetcher(provider, Config{BreakerThreshold: 1, BreakerTimeout: time.Hour})
	dir := t.TempDir()

	_, err := fetcher.SynthesizeToFile(context.Background(), "A", Options{OutFile: filepath.Join(dir, "a.mp3"), Language: LangEnglish})
	if err == nil {
		t.Fatal("expected error")
	}
	_, err = fetcher.SynthesizeToFile(context.Background(), "B", Options{OutFile: filepath.Join(dir, "b.mp3"), Language: LangEnglish})

	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("expected *FatalError, got %v", err)
	}
	if provider.CallCount() != 1 {
		t.Errorf("open breaker should not reach the provider, got %d calls", provider.CallCount())
	}
}

func TestBreakerDisabled(t *testing.T) {
	fetcher := NewFetcher(testutil.NewMockProvider(), Config{})
	if fetcher.BreakerState(LangNepali) != "disabled" {
		t.Errorf("BreakerState() = %s", fetcher.BreakerState(LangNepali))
	}
}

func TestOutcomeString(t *testing.T) {
	if CacheHit.String() != "exists" || Saved.String() != "saved" || SavedWithFallback.String() != "saved (fallback)" {
		t.Error("unexpected outcome names")
	}
}
