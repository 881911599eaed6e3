// Package speech wraps the on-device speech synthesizer: listing the
// installed voices, picking one that can read Devanagari and speaking text.
package speech

import (
	"context"
	"errors"
	"regexp"
	"sync"
)

// DefaultRate is the speaking rate used for letters and combinations.
const DefaultRate = 0.85

// ErrNoVoice means the engine reports no voices at all.
var ErrNoVoice = errors.New("no speech voice available")

// Voice is one installed synthesizer voice.
type Voice struct {
	Name string
	Lang string
}

// Engine is the on-device synthesizer.
type Engine interface {
	ListVoices(ctx context.Context) ([]Voice, error)
	// Speak blocks until the utterance is done or ctx is cancelled. An
	// empty voiceName leaves the choice to the engine.
	Speak(ctx context.Context, text, voiceName string, rate float64) error
}

var devanagariVoice = regexp.MustCompile(`(?i)ne|hi|hin|ne-NP|hi-IN|Devanagari`)

// MatchesDevanagari reports whether a voice looks like a Nepali, Hindi or
// Devanagari voice, judged on "{lang} {name}".
func MatchesDevanagari(v Voice) bool {
	return devanagariVoice.MatchString(v.Lang + " " + v.Name)
}

// ChooseVoice returns the first Devanagari voice, else the first voice,
// else "".
func ChooseVoice(voices []Voice) string {
	for _, v := range voices {
		if MatchesDevanagari(v) {
			return v.Name
		}
	}
	if len(voices) > 0 {
		return voices[0].Name
	}
	return ""
}

// ResolveVoice returns preferred if it is still installed, otherwise the
// first Devanagari voice, otherwise "" (engine default).
func ResolveVoice(voices []Voice, preferred string) string {
	if preferred != "" {
		for _, v := range voices {
			if v.Name == preferred {
				return v.Name
			}
		}
	}
	for _, v := range voices {
		if MatchesDevanagari(v) {
			return v.Name
		}
	}
	return ""
}

// VoiceSelector holds the process-wide preferred voice.
type VoiceSelector struct {
	engine Engine

	mu        sync.RWMutex
	voices    []Voice
	preferred string
}

// NewVoiceSelector creates a selector; call Refresh before first use.
func NewVoiceSelector(engine Engine) *VoiceSelector {
	return &VoiceSelector{engine: engine}
}

// Refresh reloads the voice list and re-picks the preferred voice.
func (s *VoiceSelector) Refresh(ctx context.Context) error {
	voices, err := s.engine.ListVoices(ctx)
	if err != nil {
		return err
	}
	s.Update(voices)
	return nil
}

// Update re-picks the preferred voice from a new voice list.
func (s *VoiceSelector) Update(voices []Voice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voices = append([]Voice(nil), voices...)
	s.preferred = ChooseVoice(voices)
}

// Preferred returns the current preferred voice name.
func (s *VoiceSelector) Preferred() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preferred
}

// Voices returns the last known voice list.
func (s *VoiceSelector) Voices() []Voice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Voice(nil), s.voices...)
}

// Resolve picks the voice to speak with right now, against the engine's
// current list. It returns ErrNoVoice when nothing is installed.
func (s *VoiceSelector) Resolve(ctx context.Context) (string, error) {
	voices, err := s.engine.ListVoices(ctx)
	if err != nil {
		return "", err
	}
	if len(voices) == 0 {
		return "", ErrNoVoice
	}
	return ResolveVoice(voices, s.Preferred()), nil
}

// Speaker speaks text with the selected voice at a fixed rate.
type Speaker struct {
	engine   Engine
	selector *VoiceSelector
	rate     float64
}

// NewSpeaker creates a speaker; rate <= 0 means DefaultRate.
func NewSpeaker(engine Engine, selector *VoiceSelector, rate float64) *Speaker {
	if rate <= 0 {
		rate = DefaultRate
	}
	return &Speaker{engine: engine, selector: selector, rate: rate}
}

// Speak says text and blocks until done.
func (s *Speaker) Speak(ctx context.Context, text string) error {
	if text == "" {
		return errors.New("nothing to speak")
	}
	voice, err := s.selector.Resolve(ctx)
	if err != nil {
		return err
	}
	return s.engine.Speak(ctx, text, voice, s.rate)
}

// Rate returns the speaking rate.
func (s *Speaker) Rate() float64 {
	return s.rate
}
