package image

import (
	"path/filepath"
	"strings"

	"codeberg.org/snonux/aksharmala/internal/alphabet"
	"codeberg.org/snonux/aksharmala/internal/lesson"
)

// Languages of the example words
const (
	LanguageNepali  = "Nepali"
	LanguageEnglish = "English"
)

// Target is one picture to fetch
type Target struct {
	Group    string // swar, byanjan or english
	ID       string
	Word     string
	Language string
	OutFile  string
}

// NeedsTranslation reports whether Word must be put into English before
// searching
func (t Target) NeedsTranslation() bool {
	return t.Language != LanguageEnglish
}

// BuildTargets lists every letter that names an image and has an example
// word, in dataset order
func BuildTargets(ds *alphabet.Dataset, root string) []Target {
	var targets []Target

	add := func(group, language string, entries []alphabet.LetterEntry, word func(alphabet.LetterEntry) string) {
		for _, e := range entries {
			w := strings.TrimSpace(word(e))
			if e.Image == "" || w == "" {
				continue
			}
			targets = append(targets, Target{
				Group:    group,
				ID:       e.ID,
				Word:     w,
				Language: language,
				OutFile:  filepath.Join(root, filepath.FromSlash(e.Image)),
			})
		}
	}

	add("swar", LanguageNepali, ds.Nepali.Swar, lesson.PhraseWord)
	add("byanjan", LanguageNepali, ds.Nepali.Byanjan, lesson.PhraseWord)
	add("english", LanguageEnglish, ds.English.AZ, englishWord)

	return targets
}

func englishWord(e alphabet.LetterEntry) string {
	if e.Word != "" {
		return e.Word
	}
	return e.Example
}
