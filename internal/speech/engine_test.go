package speech

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type fakeEngine struct {
	mu      sync.Mutex
	voices  []Voice
	listErr error
	spoken  []string
	voice   []string
	rates   []float64
}

func (f *fakeEngine) ListVoices(ctx context.Context) ([]Voice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]Voice(nil), f.voices...), nil
}

func (f *fakeEngine) Speak(ctx context.Context, text, voiceName string, rate float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spoken = append(f.spoken, text)
	f.voice = append(f.voice, voiceName)
	f.rates = append(f.rates, rate)
	return nil
}

func (f *fakeEngine) setVoices(v []Voice) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.voices = v
}

func TestMatchesDevanagari(t *testing.T) {
	tests := []struct {
		voice Voice
		want  bool
	}{
		{Voice{Name: "Nepali", Lang: "ne"}, true},
		{Voice{Name: "Google हिन्दी", Lang: "hi-IN"}, true},
		{Voice{Name: "Lekha", Lang: "hi-IN"}, true},
		{Voice{Name: "Devanagari Reader", Lang: "x"}, true},
		{Voice{Name: "Samantha", Lang: "en-US"}, false},
		{Voice{Name: "Daniel", Lang: "en-GB"}, false},
	}

	for _, tt := range tests {
		if got := MatchesDevanagari(tt.voice); got != tt.want {
			t.Errorf("MatchesDevanagari(%+v) = %v, want %v", tt.voice, got, tt.want)
		}
	}
}

func TestChooseVoice(t *testing.T) {
	tests := []struct {
		name   string
		voices []Voice
		want   string
	}{
		{"no voices", nil, ""},
		{"first voice when nothing matches", []Voice{{Name: "Samantha", Lang: "en-US"}, {Name: "Daniel", Lang: "en-GB"}}, "Samantha"},
		{"first match wins", []Voice{{Name: "Samantha", Lang: "en-US"}, {Name: "Lekha", Lang: "hi-IN"}, {Name: "Nepali", Lang: "ne"}}, "Lekha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseVoice(tt.voices); got != tt.want {
				t.Errorf("ChooseVoice() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveVoice(t *testing.T) {
	voices := []Voice{{Name: "Samantha", Lang: "en-US"}, {Name: "Lekha", Lang: "hi-IN"}}

	if got := ResolveVoice(voices, "Samantha"); got != "Samantha" {
		t.Errorf("preferred still installed: got %q", got)
	}
	if got := ResolveVoice(voices, "Gone"); got != "Lekha" {
		t.Errorf("preferred removed: got %q, want pattern match", got)
	}
	if got := ResolveVoice([]Voice{{Name: "Samantha", Lang: "en-US"}}, "Gone"); got != "" {
		t.Errorf("no match: got %q, want engine default", got)
	}
}

func TestVoiceSelector(t *testing.T) {
	engine := &fakeEngine{voices: []Voice{{Name: "Samantha", Lang: "en-US"}, {Name: "Lekha", Lang: "hi-IN"}}}
	selector := NewVoiceSelector(engine)

	if err := selector.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() unexpected error: %v", err)
	}
	if selector.Preferred() != "Lekha" {
		t.Errorf("Preferred() = %q", selector.Preferred())
	}

	// Lekha uninstalled after selection: Resolve falls back to the pattern.
	engine.setVoices([]Voice{{Name: "Samantha", Lang: "en-US"}, {Name: "Nepali", Lang: "ne"}})
	voice, err := selector.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if voice != "Nepali" {
		t.Errorf("Resolve() = %q, want Nepali", voice)
	}

	engine.setVoices(nil)
	if _, err := selector.Resolve(context.Background()); !errors.Is(err, ErrNoVoice) {
		t.Errorf("Resolve() error = %v, want ErrNoVoice", err)
	}
}

func TestVoiceSelectorRefreshError(t *testing.T) {
	engine := &fakeEngine{listErr: errors.New("no engine")}
	selector := NewVoiceSelector(engine)

	if err := selector.Refresh(context.Background()); err == nil {
		t.Error("Refresh() expected error")
	}
	if selector.Preferred() != "" {
		t.Errorf("Preferred() = %q, want empty", selector.Preferred())
	}
}

func TestSpeaker(t *testing.T) {
	engine := &fakeEngine{voices: []Voice{{Name: "Nepali", Lang: "ne"}}}
	selector := NewVoiceSelector(engine)
	selector.Refresh(context.Background())
	speaker := NewSpeaker(engine, selector, 0)

	if speaker.Rate() != DefaultRate {
		t.Errorf("Rate() = %v, want %v", speaker.Rate(), DefaultRate)
	}
	if err := speaker.Speak(context.Background(), "क"); err != nil {
		t.Fatalf("Speak() unexpected error: %v", err)
	}
	if len(engine.spoken) != 1 || engine.spoken[0] != "क" || engine.voice[0] != "Nepali" || engine.rates[0] != DefaultRate {
		t.Errorf("spoke %v with %v at %v", engine.spoken, engine.voice, engine.rates)
	}

	if err := speaker.Speak(context.Background(), ""); err == nil {
		t.Error("Speak() expected error for empty text")
	}
	if len(engine.spoken) != 1 {
		t.Error("empty text reached the engine")
	}
}
