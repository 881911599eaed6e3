package lesson

import (
	"codeberg.org/snonux/aksharmala/internal/alphabet"
)

// Key is a navigation key, independent of the GUI toolkit.
type Key int

const (
	KeyOther Key = iota
	KeyRight
	KeyLeft
	KeySpace
	KeyEscape
)

// Action tells the caller what to do after a key.
type Action int

const (
	// ActionNone: ignore the key.
	ActionNone Action = iota
	// ActionShow: render the current item and play it.
	ActionShow
	// ActionClose: hide the lesson.
	ActionClose
)

// HandleKey applies a key to an open lesson. Keys do nothing while the
// lesson is closed.
func HandleKey(s Session, key Key) (Session, Action) {
	if !s.IsOpen() {
		return s, ActionNone
	}

	switch key {
	case KeyRight:
		return s.Next(), ActionShow
	case KeyLeft:
		return s.Prev(), ActionShow
	case KeySpace:
		return s, ActionShow
	case KeyEscape:
		return s.Close(), ActionClose
	default:
		return s, ActionNone
	}
}

// Cursor walks a category section outside the lesson pop-up. It starts
// before the first item; the first move lands on item 0.
type Cursor struct {
	active bool
	mode   Mode
	index  int
	length int
}

// ActivateCursor returns an active cursor for the mode's section.
func ActivateCursor(ds *alphabet.Dataset, mode Mode) Cursor {
	return Cursor{active: true, mode: mode, index: -1, length: len(Items(ds, mode))}
}

// Deactivate returns an inactive cursor.
func (c Cursor) Deactivate() Cursor {
	return Cursor{}
}

// Move steps by delta; from the start position any move goes to item 0.
func (c Cursor) Move(delta int) Cursor {
	if !c.active || c.length == 0 {
		return c
	}
	if c.index < 0 {
		c.index = 0
		return c
	}
	c.index = clamp(c.index+delta, c.length)
	return c
}

// Select puts the cursor on index, e.g. after a tile was tapped.
func (c Cursor) Select(index int) Cursor {
	if !c.active || c.length == 0 {
		return c
	}
	c.index = clamp(index, c.length)
	return c
}

// IsActive reports whether the section is showing.
func (c Cursor) IsActive() bool { return c.active }

// Mode returns the section's mode.
func (c Cursor) Mode() Mode { return c.mode }

// Index returns the highlighted item, -1 before the first move.
func (c Cursor) Index() int { return c.index }

// Current returns the highlighted item.
func (c Cursor) Current(ds *alphabet.Dataset) (Item, bool) {
	if !c.active || c.index < 0 {
		return Item{}, false
	}
	items := Items(ds, c.mode)
	if c.index >= len(items) {
		return Item{}, false
	}
	return items[c.index], true
}

// HandleSectionKey applies a key to a section cursor. Escape is not bound
// here, and nothing happens while the section is inactive.
func HandleSectionKey(c Cursor, key Key) (Cursor, Action) {
	if !c.active {
		return c, ActionNone
	}

	switch key {
	case KeyRight:
		return c.Move(1), ActionShow
	case KeyLeft:
		return c.Move(-1), ActionShow
	case KeySpace:
		if c.index < 0 {
			return c, ActionNone
		}
		return c, ActionShow
	default:
		return c, ActionNone
	}
}
