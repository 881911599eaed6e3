package speech

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// VoiceWatcher polls the engine and refreshes the selector when the
// installed voices change.
type VoiceWatcher struct {
	engine   Engine
	selector *VoiceSelector
	interval time.Duration
	onChange func(preferred string)
	warnings io.Writer
}

// NewVoiceWatcher creates a watcher. onChange may be nil.
func NewVoiceWatcher(engine Engine, selector *VoiceSelector, interval time.Duration, onChange func(preferred string)) *VoiceWatcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &VoiceWatcher{
		engine:   engine,
		selector: selector,
		interval: interval,
		onChange: onChange,
		warnings: os.Stderr,
	}
}

// SetWarningOutput redirects failed-check warnings. Call before Run.
func (w *VoiceWatcher) SetWarningOutput(out io.Writer) {
	w.warnings = out
}

// Check compares the engine's voices with the selector's and updates it on
// any difference. It reports whether an update happened.
func (w *VoiceWatcher) Check(ctx context.Context) (bool, error) {
	voices, err := w.engine.ListVoices(ctx)
	if err != nil {
		return false, err
	}
	if sameVoices(voices, w.selector.Voices()) {
		return false, nil
	}

	w.selector.Update(voices)
	if w.onChange != nil {
		w.onChange(w.selector.Preferred())
	}
	return true, nil
}

// Run checks on every tick until ctx is cancelled.
func (w *VoiceWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.Check(ctx); err != nil && ctx.Err() == nil && w.warnings != nil {
				fmt.Fprintf(w.warnings, "Warning: voice list check failed: %v\n", err)
			}
		}
	}
}

func sameVoices(a, b []Voice) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
