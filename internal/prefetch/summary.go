package prefetch

import (
	"fmt"
)

// Summary counts what a Run did.
type Summary struct {
	Total    int
	Saved    int
	Fallback int
	Cached   int
	Failed   string // output file of the target that stopped the run
}

func (s *Summary) record(o Outcome) {
	switch o {
	case Saved:
		s.Saved++
	case SavedWithFallback:
		s.Saved++
		s.Fallback++
	case CacheHit:
		s.Cached++
	}
}

// Done is the number of targets that have audio on disk.
func (s Summary) Done() int {
	return s.Saved + s.Cached
}

// Print writes the summary block to stdout.
func (s Summary) Print() {
	fmt.Printf("\n=== Audio Fetch Summary ===\n")
	fmt.Printf("Total targets: %d\n", s.Total)
	fmt.Printf("Saved: %d\n", s.Saved)
	if s.Fallback > 0 {
		fmt.Printf("  via fallback language: %d\n", s.Fallback)
	}
	fmt.Printf("Skipped (already exists): %d\n", s.Cached)
	if s.Failed != "" {
		fmt.Printf("Stopped at: %s\n", s.Failed)
		fmt.Printf("Not attempted: %d\n", s.Total-s.Done()-1)
	}
	fmt.Printf("===========================\n")
}
