package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode"

	"codeberg.org/snonux/aksharmala/internal/alphabet"
	"codeberg.org/snonux/aksharmala/internal/speech"
)

// SpellGap is the pause between characters when spelling a word.
const SpellGap = 550 * time.Millisecond

// Result tags how a playback ended.
type Result int

const (
	// Played means the audio file was played.
	Played Result = iota
	// FellBackToSpeech means the text was spoken by the synthesizer.
	FellBackToSpeech
	// Silent means nothing could be played or spoken.
	Silent
	// Interrupted means a newer playback or Stop cut this one short.
	Interrupted
)

func (r Result) String() string {
	switch r {
	case Played:
		return "played"
	case FellBackToSpeech:
		return "speech"
	case Silent:
		return "silent"
	case Interrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// Playable is what the resolver needs from an entry: the dataset-relative
// audio path (may be empty) and the text to speak without it.
type Playable struct {
	Audio string
	Text  string
}

// Speaker speaks text and blocks until done.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Resolver plays entries with speech fallback.
type Resolver struct {
	player    Player
	speaker   Speaker
	assetRoot string
	gap       time.Duration
	newTimer  func(time.Duration) *time.Timer
	warnings  io.Writer

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewResolver creates a resolver. Audio paths are resolved against assetRoot.
func NewResolver(player Player, speaker Speaker, assetRoot string) *Resolver {
	return &Resolver{
		player:    player,
		speaker:   speaker,
		assetRoot: assetRoot,
		gap:       SpellGap,
		newTimer:  time.NewTimer,
		warnings:  os.Stderr,
	}
}

// SetWarningOutput redirects playback warnings. A nil writer drops them.
func (r *Resolver) SetWarningOutput(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = w
}

// Play cancels any playback in flight, then plays p.
func (r *Resolver) Play(ctx context.Context, p Playable) Result {
	ctx, done := r.begin(ctx)
	defer done()

	return r.play(ctx, p)
}

// Say speaks text without looking for an audio file.
func (r *Resolver) Say(ctx context.Context, text string) Result {
	return r.Play(ctx, Playable{Text: text})
}

// Spell speaks word one character at a time with SpellGap between
// characters. Whitespace is skipped.
func (r *Resolver) Spell(ctx context.Context, word string) Result {
	ctx, done := r.begin(ctx)
	defer done()

	spoken, attempted := 0, 0
	for _, ch := range word {
		if unicode.IsSpace(ch) {
			continue
		}
		if attempted > 0 && !r.pause(ctx) {
			return Interrupted
		}

		attempted++
		res := r.speak(ctx, string(ch))
		if res == Interrupted {
			return Interrupted
		}
		if res == FellBackToSpeech {
			spoken++
		}
	}

	if spoken == 0 {
		return Silent
	}
	return FellBackToSpeech
}

// pause waits one spell gap. It returns false when ctx ends first.
func (r *Resolver) pause(ctx context.Context) bool {
	timer := r.newTimer(r.gap)
	select {
	case <-ctx.Done():
		timer.Stop()
		return false
	case <-timer.C:
		return true
	}
}

// Stop cancels the playback in flight, if any.
func (r *Resolver) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *Resolver) play(ctx context.Context, p Playable) Result {
	if p.Audio == "" {
		return r.speak(ctx, p.Text)
	}

	path := alphabet.ResolveAsset(r.assetRoot, p.Audio)
	err := r.player.Play(ctx, path)
	if err == nil {
		return Played
	}
	if ctx.Err() != nil {
		return Interrupted
	}

	if !errors.Is(err, ErrMissingFile) {
		r.warn("Warning: audio playback failed: %v\n", err)
	}
	return r.speak(ctx, p.Text)
}

func (r *Resolver) speak(ctx context.Context, text string) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return Silent
	}
	if r.speaker == nil {
		r.warn("Warning: no speech synthesizer, cannot speak %q\n", text)
		return Silent
	}

	err := r.speaker.Speak(ctx, text)
	switch {
	case err == nil:
		return FellBackToSpeech
	case ctx.Err() != nil:
		return Interrupted
	case errors.Is(err, speech.ErrNoVoice):
		r.warn("Warning: no speech voice available for %q\n", text)
		return Silent
	default:
		r.warn("Warning: speech failed for %q: %v\n", text, err)
		return Silent
	}
}

// begin cancels the previous playback and returns a context for this one.
func (r *Resolver) begin(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.seq++
	id := r.seq
	r.cancel = cancel
	r.mu.Unlock()

	return ctx, func() {
		r.mu.Lock()
		if r.seq == id {
			r.cancel = nil
		}
		r.mu.Unlock()
		cancel()
	}
}

func (r *Resolver) warn(format string, args ...interface{}) {
	r.mu.Lock()
	w := r.warnings
	r.mu.Unlock()

	if w != nil {
		fmt.Fprintf(w, format, args...)
	}
}
