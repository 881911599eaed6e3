package alphabet

import (
	"testing"
)

func matra(s string) *string {
	return &s
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		vowel    VowelEntry
		expected string
	}{
		{
			name:     "inherent vowel keeps base",
			base:     "क",
			vowel:    VowelEntry{Key: "a"},
			expected: "क",
		},
		{
			name:     "post-base matra",
			base:     "क",
			vowel:    VowelEntry{Key: "aa", Matra: matra("ा")},
			expected: "का",
		},
		{
			name:     "pre-base matra stays in storage order",
			base:     "क",
			vowel:    VowelEntry{Key: "i", Matra: matra("ि")},
			expected: "क" + "ि",
		},
		{
			name:     "empty matra is still appended",
			base:     "ग",
			vowel:    VowelEntry{Key: "x", Matra: matra("")},
			expected: "ग",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Combine(tt.base, tt.vowel); got != tt.expected {
				t.Errorf("Combine() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCombineWholeDataset(t *testing.T) {
	ds := Default()
	for _, base := range ds.Barakhari.BaseConsonants {
		for _, vowel := range ds.Barakhari.Vowels {
			got := Combine(base.Letter, vowel)
			want := base.Letter
			if vowel.Matra != nil {
				want = base.Letter + *vowel.Matra
			}
			if got != want {
				t.Errorf("Combine(%s, %s) = %q, want %q", base.ID, vowel.Key, got, want)
			}
		}
	}
}

func TestAssetPaths(t *testing.T) {
	got := AssetPaths("ka", "aa")

	if got.Audio != "assets/audio/nepali/barakhari/ka_aa.mp3" {
		t.Errorf("Audio = %s", got.Audio)
	}
	if got.Image != "assets/images/nepali/barakhari/ka_aa.png" {
		t.Errorf("Image = %s", got.Image)
	}
	if got.SVG != "assets/svg/nepali/barakhari/ka_aa.svg" {
		t.Errorf("SVG = %s", got.SVG)
	}
}

func TestFilteredVowels(t *testing.T) {
	vowels := []VowelEntry{{Key: "a"}, {Key: "ri"}, {Key: "aa"}, {Key: "anb"}, {Key: "ah"}}

	got := FilteredVowels(vowels)

	want := []string{"a", "aa", "ah"}
	if len(got) != len(want) {
		t.Fatalf("FilteredVowels() returned %d vowels, want %d", len(got), len(want))
	}
	for i, key := range want {
		if got[i].Key != key {
			t.Errorf("vowel %d = %s, want %s", i, got[i].Key, key)
		}
	}
}

func TestCombinationsRowMajor(t *testing.T) {
	ds := Default()
	combos := ds.Combinations()
	vowels := FilteredVowels(ds.Barakhari.Vowels)

	expected := len(ds.Barakhari.BaseConsonants) * len(vowels)
	if len(combos) != expected {
		t.Fatalf("len(Combinations()) = %d, want %d", len(combos), expected)
	}

	for i, c := range combos {
		base := ds.Barakhari.BaseConsonants[i/len(vowels)]
		vowel := vowels[i%len(vowels)]
		if c.Base.ID != base.ID || c.Vowel.Key != vowel.Key {
			t.Fatalf("combination %d = %s_%s, want %s_%s", i, c.Base.ID, c.Vowel.Key, base.ID, vowel.Key)
		}
		if IsExcludedVowel(c.Vowel.Key) {
			t.Errorf("combination %d uses excluded vowel %s", i, c.Vowel.Key)
		}
	}
}

func TestCombinationsWithoutGrid(t *testing.T) {
	if got := Fallback().Combinations(); got != nil {
		t.Errorf("Combinations() on dataset without grid = %v, want nil", got)
	}
}

func TestVariations(t *testing.T) {
	ds := Default()
	base := ds.Barakhari.BaseConsonants[0]

	strip := ds.Variations(base, "aa")

	if len(strip) != len(FilteredVowels(ds.Barakhari.Vowels)) {
		t.Fatalf("len(Variations()) = %d", len(strip))
	}
	active := 0
	for _, v := range strip {
		if IsExcludedVowel(v.Vowel.Key) {
			t.Errorf("variation strip contains excluded vowel %s", v.Vowel.Key)
		}
		if v.Base.ID != base.ID {
			t.Errorf("variation base = %s, want %s", v.Base.ID, base.ID)
		}
		if v.Active {
			active++
			if v.Vowel.Key != "aa" {
				t.Errorf("active variation = %s, want aa", v.Vowel.Key)
			}
		}
	}
	if active != 1 {
		t.Errorf("expected exactly one active variation, got %d", active)
	}
}

func TestCombinationLabels(t *testing.T) {
	c := NewCombination(
		BaseConsonantEntry{ID: "ka", Letter: "क", Latin: "ka"},
		VowelEntry{Key: "aa", Matra: matra("ा"), Latin: "aa"},
	)

	if c.Latin() != "ka aa" {
		t.Errorf("Latin() = %q", c.Latin())
	}
	if c.Sound() != "aa" {
		t.Errorf("Sound() falls back to latin, got %q", c.Sound())
	}
	if c.Assets.Audio != "assets/audio/nepali/barakhari/ka_aa.mp3" {
		t.Errorf("Assets.Audio = %s", c.Assets.Audio)
	}
}
