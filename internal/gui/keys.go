package gui

import (
	"fyne.io/fyne/v2"

	"codeberg.org/snonux/aksharmala/internal/lesson"
)

// command is a single-rune shortcut
type command int

const (
	commandNone command = iota
	commandHome
	commandLesson
	commandStop
	commandHotkeys
	commandQuit
)

// navigationKey maps a fyne key onto the toolkit-free lesson keys
func navigationKey(name fyne.KeyName) lesson.Key {
	switch name {
	case fyne.KeyRight:
		return lesson.KeyRight
	case fyne.KeyLeft:
		return lesson.KeyLeft
	case fyne.KeySpace:
		return lesson.KeySpace
	case fyne.KeyEscape:
		return lesson.KeyEscape
	default:
		return lesson.KeyOther
	}
}

// sectionForRune maps 1-6 (Latin or Devanagari digits) onto the sections
// in display order
func sectionForRune(r rune) (lesson.Mode, bool) {
	modes := lesson.Modes()

	var n int
	switch {
	case r >= '1' && r <= '9':
		n = int(r - '0')
	case r >= '१' && r <= '९':
		n = int(r - '०')
	default:
		return "", false
	}
	if n > len(modes) {
		return "", false
	}
	return modes[n-1], true
}

// commandForRune maps the remaining shortcuts. Devanagari alternatives sit
// on the same physical keys of the Nepali romanized layout.
func commandForRune(r rune) command {
	switch r {
	case '0', '०':
		return commandHome
	case 'l', 'L', 'ल':
		return commandLesson
	case 's', 'S', 'स':
		return commandStop
	case 'h', 'H', 'ह':
		return commandHotkeys
	case 'q', 'Q':
		return commandQuit
	default:
		return commandNone
	}
}
