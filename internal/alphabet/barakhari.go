package alphabet

import (
	"fmt"
	"path"
)

// Asset roots of the barakhari grid, relative to the asset root
const (
	BarakhariAudioRoot = "assets/audio/nepali/barakhari"
	BarakhariImageRoot = "assets/images/nepali/barakhari"
	BarakhariSVGRoot   = "assets/svg/nepali/barakhari"
)

// excludedVowels are never shown in grids, lessons or variation strips
var excludedVowels = map[string]bool{
	"ri":  true,
	"anb": true,
}

// IsExcludedVowel reports whether key is filtered out of every enumeration
func IsExcludedVowel(key string) bool {
	return excludedVowels[key]
}

// Combine builds the display glyph for a consonant and a vowel. The matra is
// always appended in storage order; pre-base signs such as ि are reordered by
// the text shaper at render time.
func Combine(baseLetter string, vowel VowelEntry) string {
	if !vowel.HasMatra() {
		return baseLetter
	}
	return baseLetter + *vowel.Matra
}

// AssetSet is the derived audio, image and svg location of one combination
type AssetSet struct {
	Audio string
	Image string
	SVG   string
}

// AssetPaths derives the asset locations for a base consonant and vowel key
func AssetPaths(baseID, vowelKey string) AssetSet {
	name := fmt.Sprintf("%s_%s", baseID, vowelKey)
	return AssetSet{
		Audio: path.Join(BarakhariAudioRoot, name+".mp3"),
		Image: path.Join(BarakhariImageRoot, name+".png"),
		SVG:   path.Join(BarakhariSVGRoot, name+".svg"),
	}
}

// FilteredVowels returns the vowels without the excluded keys, in dataset order
func FilteredVowels(vowels []VowelEntry) []VowelEntry {
	filtered := make([]VowelEntry, 0, len(vowels))
	for _, v := range vowels {
		if IsExcludedVowel(v.Key) {
			continue
		}
		filtered = append(filtered, v)
	}
	return filtered
}

// Combination is one cell of the barakhari grid
type Combination struct {
	Base   BaseConsonantEntry
	Vowel  VowelEntry
	Glyph  string
	Assets AssetSet
}

// Latin returns the spaced transliteration, e.g. "ka aa"
func (c Combination) Latin() string {
	return c.Base.Latin + " " + c.Vowel.Latin
}

// Sound returns the vowel pronunciation used on the detail view
func (c Combination) Sound() string {
	if c.Vowel.Sound != "" {
		return c.Vowel.Sound
	}
	return c.Vowel.Latin
}

// NewCombination combines base and vowel and derives their asset paths
func NewCombination(base BaseConsonantEntry, vowel VowelEntry) Combination {
	return Combination{
		Base:   base,
		Vowel:  vowel,
		Glyph:  Combine(base.Letter, vowel),
		Assets: AssetPaths(base.ID, vowel.Key),
	}
}

// Combinations expands the filtered grid in row-major order: every vowel of
// the first consonant, then every vowel of the second, and so on.
func (d *Dataset) Combinations() []Combination {
	if !d.HasBarakhari() {
		return nil
	}
	vowels := FilteredVowels(d.Barakhari.Vowels)
	result := make([]Combination, 0, len(d.Barakhari.BaseConsonants)*len(vowels))
	for _, base := range d.Barakhari.BaseConsonants {
		for _, vowel := range vowels {
			result = append(result, NewCombination(base, vowel))
		}
	}
	return result
}

// Variation is one chip of the variation strip on the barakhari detail view
type Variation struct {
	Combination
	Active bool
}

// Variations returns every filtered vowel combined with base, marking the
// vowel identified by activeKey
func (d *Dataset) Variations(base BaseConsonantEntry, activeKey string) []Variation {
	if d.Barakhari == nil {
		return nil
	}
	vowels := FilteredVowels(d.Barakhari.Vowels)
	result := make([]Variation, 0, len(vowels))
	for _, vowel := range vowels {
		result = append(result, Variation{
			Combination: NewCombination(base, vowel),
			Active:      vowel.Key == activeKey,
		})
	}
	return result
}
