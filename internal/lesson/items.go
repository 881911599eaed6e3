package lesson

import (
	"strings"

	"codeberg.org/snonux/aksharmala/internal/alphabet"
	"codeberg.org/snonux/aksharmala/internal/playback"
)

// Item is one entry of a mode's list in display form.
type Item struct {
	Glyph string // letter, combined glyph or digit
	Label string // latin or sound for letters, word for numbers
	Audio string // dataset-relative path, may be empty
	// Speech is spoken when Audio cannot be played.
	Speech string

	Letter      *alphabet.LetterEntry
	Combination *alphabet.Combination
	Number      *alphabet.NumberEntry
}

// Playable returns what the resolver needs to pronounce the item.
func (i Item) Playable() playback.Playable {
	return playback.Playable{Audio: i.Audio, Text: i.Speech}
}

// Items returns the ordered list for mode. The barakhari list is the
// filtered grid, row-major.
func Items(ds *alphabet.Dataset, mode Mode) []Item {
	if ds == nil {
		return nil
	}

	switch mode {
	case ModeSwar:
		return letterItems(ds.Nepali.Swar)
	case ModeByanjan:
		return letterItems(ds.Nepali.Byanjan)
	case ModeEnglish:
		return letterItems(ds.English.AZ)
	case ModeBarakhari:
		combos := ds.Combinations()
		items := make([]Item, len(combos))
		for i := range combos {
			items[i] = CombinationItem(combos[i])
		}
		return items
	case ModeNumbersNepali:
		return numberItems(ds.NepaliNumbers())
	case ModeNumbersEnglish:
		return numberItems(ds.EnglishNumbers())
	default:
		return nil
	}
}

// LetterItem builds the display item for a letter.
func LetterItem(e alphabet.LetterEntry) Item {
	return Item{
		Glyph:  e.Letter,
		Label:  firstNonEmpty(e.Latin, e.Sound),
		Audio:  e.Audio,
		Speech: firstNonEmpty(e.Letter, e.Latin),
		Letter: &e,
	}
}

// CombinationItem builds the display item for a barakhari cell.
func CombinationItem(c alphabet.Combination) Item {
	return Item{
		Glyph:       c.Glyph,
		Label:       c.Latin(),
		Audio:       c.Assets.Audio,
		Speech:      c.Glyph,
		Combination: &c,
	}
}

// NumberItem builds the display item for a number.
func NumberItem(n alphabet.NumberEntry) Item {
	return Item{
		Glyph:  n.Digit,
		Label:  n.Word,
		Audio:  n.Audio,
		Speech: firstNonEmpty(n.Word, n.Digit),
		Number: &n,
	}
}

func letterItems(entries []alphabet.LetterEntry) []Item {
	items := make([]Item, len(entries))
	for i := range entries {
		items[i] = LetterItem(entries[i])
	}
	return items
}

func numberItems(entries []alphabet.NumberEntry) []Item {
	items := make([]Item, len(entries))
	for i := range entries {
		items[i] = NumberItem(entries[i])
	}
	return items
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
