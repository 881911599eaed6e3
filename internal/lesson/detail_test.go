package lesson

import (
	"testing"

	"codeberg.org/snonux/aksharmala/internal/alphabet"
)

func TestPhraseWord(t *testing.T) {
	tests := []struct {
		name  string
		entry alphabet.LetterEntry
		want  string
	}{
		{"explicit word", alphabet.LetterEntry{Word: "कमल", Example: "किताब"}, "कमल"},
		{"example up to space", alphabet.LetterEntry{Example: "अनार फल"}, "अनार"},
		{"example up to parenthesis", alphabet.LetterEntry{Example: "Apple(fruit)"}, "Apple"},
		{"single-word example", alphabet.LetterEntry{Example: "घर"}, "घर"},
		{"no example", alphabet.LetterEntry{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PhraseWord(tt.entry); got != tt.want {
				t.Errorf("PhraseWord() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPhrase(t *testing.T) {
	p := Phrase{Letter: "क", Word: "कमल"}
	if !p.Visible() {
		t.Error("Visible() = false")
	}
	if p.Text() != "क बाट कमल" {
		t.Errorf("Text() = %q", p.Text())
	}
	if (Phrase{Letter: "ङ"}).Visible() {
		t.Error("phrase without word should be hidden")
	}
}

func TestLetterDetail(t *testing.T) {
	d := LetterDetail(alphabet.LetterEntry{
		ID: "a", Letter: "A", Lower: "a", Latin: "A a", Sound: "ay", Example: "Apple",
		Audio: "assets/audio/english/a.mp3",
	})

	if d.Title != "A / a" {
		t.Errorf("Title = %q", d.Title)
	}
	if d.Image != PlaceholderImage || d.SVG != PlaceholderSVG {
		t.Errorf("placeholders not used: %q %q", d.Image, d.SVG)
	}
	if d.Phrase.Text() != "A बाट Apple" {
		t.Errorf("Phrase = %q", d.Phrase.Text())
	}
	if d.Playable.Audio != "assets/audio/english/a.mp3" || d.Playable.Text != "A" {
		t.Errorf("Playable = %+v", d.Playable)
	}
	if d.Combination != nil || d.Variations != nil {
		t.Error("letter detail should have no variations")
	}
}

func TestCombinationDetail(t *testing.T) {
	ds := alphabet.Default()
	combo := ds.Combinations()[1] // ka + aa

	d := CombinationDetail(ds, combo)

	if d.Title != "का" || d.Latin != "ka aa" {
		t.Errorf("Title/Latin = %q/%q", d.Title, d.Latin)
	}
	if d.Example != ds.ExampleHint() {
		t.Errorf("Example = %q", d.Example)
	}
	if d.SVG != "assets/svg/nepali/barakhari/ka_aa.svg" {
		t.Errorf("SVG = %q", d.SVG)
	}
	if d.Playable.Audio != "assets/audio/nepali/barakhari/ka_aa.mp3" {
		t.Errorf("Playable.Audio = %q", d.Playable.Audio)
	}

	active := 0
	for _, v := range d.Variations {
		if alphabet.IsExcludedVowel(v.Vowel.Key) {
			t.Errorf("variation strip contains %s", v.Vowel.Key)
		}
		if v.Active {
			active++
		}
	}
	if active != 1 {
		t.Errorf("active variations = %d", active)
	}
}

func TestNumberDetail(t *testing.T) {
	d := NumberDetail(alphabet.NumberEntry{Digit: "५", Word: "पाँच", Audio: "assets/audio/numbers/nepali/5.mp3"})
	if d.Title != "५" || d.Latin != "पाँच" || d.Playable.Text != "पाँच" {
		t.Errorf("NumberDetail() = %+v", d)
	}
}
