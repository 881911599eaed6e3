package prefetch

import (
	"fmt"
)

// Outcome reports what SynthesizeToFile did with a target.
type Outcome int

const (
	// Saved means the primary language produced the file.
	Saved Outcome = iota
	// SavedWithFallback means the fallback language produced the file.
	SavedWithFallback
	// CacheHit means the file already existed and nothing was requested.
	CacheHit
)

func (o Outcome) String() string {
	switch o {
	case Saved:
		return "saved"
	case SavedWithFallback:
		return "saved (fallback)"
	case CacheHit:
		return "exists"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ProviderError is a failed synthesis request for one language.
type ProviderError struct {
	Language string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("synthesis failed (%s): %v", e.Language, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// FatalError aborts a run: the target had no fallback, or the fallback
// failed too.
type FatalError struct {
	Text    string
	OutFile string
	Err     error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("cannot synthesize %q to %s: %v", e.Text, e.OutFile, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
