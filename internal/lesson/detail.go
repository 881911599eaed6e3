package lesson

import (
	"strings"
	"unicode"

	"codeberg.org/snonux/aksharmala/internal/alphabet"
	"codeberg.org/snonux/aksharmala/internal/playback"
)

// Placeholders shown when an entry has no image or writing diagram.
const (
	PlaceholderImage = "assets/images/placeholder.svg"
	PlaceholderSVG   = "assets/svg/write-placeholder.svg"
)

// Phrase is the "{letter} बाट {word}" line of the detail view.
type Phrase struct {
	Letter string
	Word   string
}

// Visible reports whether both halves are present.
func (p Phrase) Visible() bool {
	return p.Letter != "" && p.Word != ""
}

// Text is the phrase as spoken.
func (p Phrase) Text() string {
	return strings.TrimSpace(p.Letter + " बाट " + p.Word)
}

// PhraseWord is the entry's word, else the example up to the first space
// or parenthesis.
func PhraseWord(e alphabet.LetterEntry) string {
	if e.Word != "" {
		return e.Word
	}
	if i := strings.IndexFunc(e.Example, func(r rune) bool { return unicode.IsSpace(r) || r == '(' }); i >= 0 {
		return e.Example[:i]
	}
	return e.Example
}

// Detail is the content of the letter or combination detail dialog.
type Detail struct {
	Title         string
	Pronunciation string
	Latin         string
	Example       string
	Image         string
	SVG           string
	Phrase        Phrase
	Playable      playback.Playable

	// Set for barakhari cells only.
	Combination *alphabet.Combination
	Variations  []alphabet.Variation
}

// LetterDetail builds the detail for a swar, byanjan or English letter.
func LetterDetail(e alphabet.LetterEntry) Detail {
	title := e.Letter
	if e.Lower != "" {
		title += " / " + e.Lower
	}

	return Detail{
		Title:         title,
		Pronunciation: e.Sound,
		Latin:         e.Latin,
		Example:       e.Example,
		Image:         firstNonEmpty(e.Image, PlaceholderImage),
		SVG:           firstNonEmpty(e.SVG, PlaceholderSVG),
		Phrase:        Phrase{Letter: e.Letter, Word: PhraseWord(e)},
		Playable:      LetterItem(e).Playable(),
	}
}

// CombinationDetail builds the detail for a barakhari cell, including the
// variation strip for its base consonant.
func CombinationDetail(ds *alphabet.Dataset, c alphabet.Combination) Detail {
	return Detail{
		Title:         c.Glyph,
		Pronunciation: c.Sound(),
		Latin:         strings.TrimSpace(c.Latin()),
		Example:       ds.ExampleHint(),
		Image:         c.Assets.Image,
		SVG:           c.Assets.SVG,
		Playable:      CombinationItem(c).Playable(),
		Combination:   &c,
		Variations:    ds.Variations(c.Base, c.Vowel.Key),
	}
}

// NumberDetail builds the detail for a number tile.
func NumberDetail(n alphabet.NumberEntry) Detail {
	return Detail{
		Title:    n.Digit,
		Latin:    n.Word,
		Image:    PlaceholderImage,
		SVG:      PlaceholderSVG,
		Playable: NumberItem(n).Playable(),
	}
}
