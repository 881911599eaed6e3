package prefetch

import (
	"path/filepath"
	"testing"

	"codeberg.org/snonux/aksharmala/internal/alphabet"
)

func TestBuildTargets(t *testing.T) {
	ds := alphabet.Default()
	layout := DefaultLayout("/site")

	targets := BuildTargets(ds, layout)

	letters := len(ds.Nepali.Swar) + len(ds.Nepali.Byanjan) + len(ds.English.AZ)
	grid := len(ds.Barakhari.BaseConsonants) * len(ds.Barakhari.Vowels)
	if len(targets) != letters+grid {
		t.Fatalf("len(BuildTargets()) = %d, want %d", len(targets), letters+grid)
	}

	first := targets[0]
	if first.Group != "swar" || first.Text != ds.Nepali.Swar[0].Letter {
		t.Errorf("first target = %+v", first)
	}
	if first.OutFile != filepath.Join("/site", "assets", "audio", "nepali", ds.Nepali.Swar[0].ID+".mp3") {
		t.Errorf("first OutFile = %s", first.OutFile)
	}
	if first.Language != LangNepali || first.Fallback != LangHindi {
		t.Errorf("first languages = %s/%s", first.Language, first.Fallback)
	}

	english := targets[len(ds.Nepali.Swar)+len(ds.Nepali.Byanjan)]
	if english.Group != "english" || english.Language != LangEnglish || english.Fallback != "" {
		t.Errorf("english target = %+v", english)
	}
	if english.OutFile != filepath.Join("/site", "assets", "audio", "english", "a.mp3") {
		t.Errorf("english OutFile = %s", english.OutFile)
	}

	last := targets[len(targets)-1]
	base := ds.Barakhari.BaseConsonants[len(ds.Barakhari.BaseConsonants)-1]
	vowel := ds.Barakhari.Vowels[len(ds.Barakhari.Vowels)-1]
	if last.OutFile != filepath.Join("/site", "assets", "audio", "nepali", "barakhari", base.ID+"_"+vowel.Key+".mp3") {
		t.Errorf("last OutFile = %s", last.OutFile)
	}
	if last.Text != alphabet.Combine(base.Letter, vowel) {
		t.Errorf("last Text = %q", last.Text)
	}
}

func TestBuildTargetsKeepsHiddenVowels(t *testing.T) {
	targets := BuildTargets(alphabet.Default(), DefaultLayout("."))

	found := map[string]bool{}
	for _, tgt := range targets {
		if tgt.Group != "barakhari" {
			continue
		}
		switch filepath.Base(tgt.OutFile) {
		case "ka_ri.mp3":
			found["ri"] = true
		case "ka_anb.mp3":
			found["anb"] = true
		}
	}
	if !found["ri"] || !found["anb"] {
		t.Errorf("expected hidden vowels in fetch grid, found %v", found)
	}
}

func TestBuildTargetsFallbackDataset(t *testing.T) {
	targets := BuildTargets(alphabet.Fallback(), DefaultLayout("."))

	if len(targets) != 6 {
		t.Errorf("len(BuildTargets()) = %d, want 6 without a grid", len(targets))
	}
}

func TestBuildNumberTargets(t *testing.T) {
	ds := alphabet.Default()
	targets := BuildNumberTargets(ds, DefaultLayout("/site"))

	if len(targets) != len(ds.NepaliNumbers())+len(ds.EnglishNumbers()) {
		t.Fatalf("len(BuildNumberTargets()) = %d", len(targets))
	}
	if targets[0].Text != ds.NepaliNumbers()[0].Word || targets[0].Language != LangNepali {
		t.Errorf("first number target = %+v", targets[0])
	}
	if targets[0].OutFile != filepath.Join("/site", filepath.FromSlash(ds.NepaliNumbers()[0].Audio)) {
		t.Errorf("first number OutFile = %s", targets[0].OutFile)
	}
}

func TestLayoutAudioDir(t *testing.T) {
	layout := DefaultLayout("/site")
	if layout.AudioDir() != filepath.Join("/site", "assets", "audio") {
		t.Errorf("AudioDir() = %s", layout.AudioDir())
	}
}
