package lesson

import (
	"strconv"
	"strings"

	"codeberg.org/snonux/aksharmala/internal/alphabet"
	"codeberg.org/snonux/aksharmala/internal/playback"
)

// Session is the fullscreen lesson: closed, or open on one item of a mode.
// The zero value is closed.
type Session struct {
	open   bool
	mode   Mode
	index  int
	length int
}

// Open starts a lesson at index, clamped into the mode's list. A mode
// without items leaves the session closed.
func Open(ds *alphabet.Dataset, index int, mode Mode) Session {
	n := len(Items(ds, mode))
	if n == 0 {
		return Session{}
	}
	return Session{open: true, mode: mode, index: clamp(index, n), length: n}
}

// Next moves one item forward, saturating at the last item.
func (s Session) Next() Session {
	return s.step(1)
}

// Prev moves one item back, saturating at the first item.
func (s Session) Prev() Session {
	return s.step(-1)
}

// Close ends the lesson. Nothing carries over to the next Open.
func (s Session) Close() Session {
	return Session{}
}

func (s Session) step(delta int) Session {
	if !s.open {
		return s
	}
	s.index = clamp(s.index+delta, s.length)
	return s
}

// IsOpen reports whether a lesson is showing.
func (s Session) IsOpen() bool { return s.open }

// Mode returns the lesson mode, empty when closed.
func (s Session) Mode() Mode { return s.mode }

// Index returns the zero-based position.
func (s Session) Index() int { return s.index }

// Len returns the number of items in the lesson.
func (s Session) Len() int { return s.length }

// Frame is what the lesson pop-up renders for the current item.
type Frame struct {
	Glyph    string
	Ordinal  string // 1-based, in the mode's numeral script
	Label    string
	Playable playback.Playable
	Item     Item
}

// Current renders the session's item.
func Current(ds *alphabet.Dataset, s Session) (Frame, bool) {
	if !s.open {
		return Frame{}, false
	}
	items := Items(ds, s.mode)
	if len(items) == 0 {
		return Frame{}, false
	}
	idx := clamp(s.index, len(items))
	it := items[idx]

	return Frame{
		Glyph:    it.Glyph,
		Ordinal:  Ordinal(idx+1, s.mode),
		Label:    it.Label,
		Playable: it.Playable(),
		Item:     it,
	}, true
}

var devanagariDigits = []rune("०१२३४५६७८९")

// DevanagariNumber writes n with Devanagari digits.
func DevanagariNumber(n int) string {
	var b strings.Builder
	for _, r := range strconv.Itoa(n) {
		if r >= '0' && r <= '9' {
			b.WriteRune(devanagariDigits[r-'0'])
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Ordinal formats a 1-based position for mode.
func Ordinal(n int, mode Mode) string {
	if mode.WesternOrdinals() {
		return strconv.Itoa(n)
	}
	return DevanagariNumber(n)
}

func clamp(index, length int) int {
	if index > length-1 {
		index = length - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}
