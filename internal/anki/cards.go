package anki

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/aksharmala/internal/alphabet"
)

// Card represents a single Anki note
type Card struct {
	Front     string // Glyph, letter or digit
	Back      string // Transliteration or number word
	Sound     string // Pronunciation hint, may be empty
	Example   string // Example word, may be empty
	AudioFile string // Resolved path to the audio file
	ImageFile string // Resolved path to the image file
	Tag       string // Group the card came from, e.g. "swar"
}

// Groups that can be exported
const (
	GroupSwar           = "swar"
	GroupByanjan        = "byanjan"
	GroupEnglish        = "english"
	GroupBarakhari      = "barakhari"
	GroupNumbersNepali  = "numbers-nepali"
	GroupNumbersEnglish = "numbers-english"
)

// AllGroups lists every group in export order
func AllGroups() []string {
	return []string{GroupSwar, GroupByanjan, GroupEnglish, GroupBarakhari, GroupNumbersNepali, GroupNumbersEnglish}
}

// BuildCards turns the dataset into cards for the given groups. Asset paths
// are resolved against assetRoot; files that do not exist are left out so
// the export never references missing media.
func BuildCards(ds *alphabet.Dataset, assetRoot string, groups []string) ([]Card, error) {
	if len(groups) == 0 {
		groups = AllGroups()
	}

	var cards []Card
	for _, group := range groups {
		switch group {
		case GroupSwar:
			cards = append(cards, letterCards(ds.Nepali.Swar, assetRoot, group)...)
		case GroupByanjan:
			cards = append(cards, letterCards(ds.Nepali.Byanjan, assetRoot, group)...)
		case GroupEnglish:
			cards = append(cards, letterCards(ds.English.AZ, assetRoot, group)...)
		case GroupBarakhari:
			for _, c := range ds.Combinations() {
				cards = append(cards, Card{
					Front:     c.Glyph,
					Back:      c.Latin(),
					Sound:     c.Sound(),
					AudioFile: existing(assetRoot, c.Assets.Audio),
					ImageFile: existing(assetRoot, c.Assets.Image),
					Tag:       group,
				})
			}
		case GroupNumbersNepali:
			cards = append(cards, numberCards(ds.NepaliNumbers(), assetRoot, group)...)
		case GroupNumbersEnglish:
			cards = append(cards, numberCards(ds.EnglishNumbers(), assetRoot, group)...)
		default:
			return nil, fmt.Errorf("unknown card group: %s", group)
		}
	}

	return cards, nil
}

func letterCards(entries []alphabet.LetterEntry, assetRoot, tag string) []Card {
	cards := make([]Card, 0, len(entries))
	for _, e := range entries {
		front := e.Letter
		if e.Lower != "" {
			front += " " + e.Lower
		}
		cards = append(cards, Card{
			Front:     front,
			Back:      e.Latin,
			Sound:     e.Sound,
			Example:   e.Example,
			AudioFile: existing(assetRoot, e.Audio),
			ImageFile: existing(assetRoot, e.Image),
			Tag:       tag,
		})
	}
	return cards
}

func numberCards(entries []alphabet.NumberEntry, assetRoot, tag string) []Card {
	cards := make([]Card, 0, len(entries))
	for _, n := range entries {
		cards = append(cards, Card{
			Front:     n.Digit,
			Back:      n.Word,
			AudioFile: existing(assetRoot, n.Audio),
			Tag:       tag,
		})
	}
	return cards
}

// existing resolves asset and returns it only if the file is there
func existing(assetRoot, asset string) string {
	if asset == "" {
		return ""
	}
	p := alphabet.ResolveAsset(assetRoot, asset)
	if !fileExists(p) {
		return ""
	}
	return p
}

// mediaName derives a collision-free media filename from the last three
// path elements, so nepali/a.mp3 and english/a.mp3 stay apart.
func mediaName(path string) string {
	parts := strings.Split(filepath.ToSlash(filepath.Clean(path)), "/")
	if len(parts) > 3 {
		parts = parts[len(parts)-3:]
	}
	return strings.Join(parts, "_")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
