// Package lesson holds the viewer's navigation state as plain values: which
// items a category shows, the fullscreen lesson session and the cursor of a
// category section. Every transition returns a new value, so the GUI only
// renders what these functions hand back.
package lesson

import (
	"fmt"
)

// Mode names the item list a lesson walks through.
type Mode string

const (
	ModeSwar           Mode = "swar"
	ModeByanjan        Mode = "byanjan"
	ModeEnglish        Mode = "english"
	ModeBarakhari      Mode = "barakhari"
	ModeNumbersNepali  Mode = "numbers-nepali"
	ModeNumbersEnglish Mode = "numbers-english"
)

// Category groups modes that render the same way.
type Category int

const (
	CategoryLetters Category = iota
	CategoryCombinationGrid
	CategoryNumbers
)

// Modes lists every mode in display order.
func Modes() []Mode {
	return []Mode{ModeSwar, ModeByanjan, ModeEnglish, ModeBarakhari, ModeNumbersNepali, ModeNumbersEnglish}
}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown lesson mode: %q", s)
}

// Category returns how the mode's items are rendered.
func (m Mode) Category() Category {
	switch m {
	case ModeBarakhari:
		return CategoryCombinationGrid
	case ModeNumbersNepali, ModeNumbersEnglish:
		return CategoryNumbers
	default:
		return CategoryLetters
	}
}

// WesternOrdinals reports whether ordinals are shown in 0-9 digits. Only the
// English letters do; both number lessons count in Devanagari.
func (m Mode) WesternOrdinals() bool {
	return m == ModeEnglish
}

// Title is the heading shown for the mode.
func (m Mode) Title() string {
	switch m {
	case ModeSwar:
		return "स्वर (Swar)"
	case ModeByanjan:
		return "व्यञ्जन (Byanjan)"
	case ModeEnglish:
		return "English A-Z"
	case ModeBarakhari:
		return "बाह्रखरी (Barakhari)"
	case ModeNumbersNepali:
		return "नेपाली अंक"
	case ModeNumbersEnglish:
		return "English Numbers"
	default:
		return string(m)
	}
}
