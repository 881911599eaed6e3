package prefetch

import (
	"path/filepath"

	"codeberg.org/snonux/aksharmala/internal/alphabet"
)

// Language codes used for synthesis.
const (
	LangNepali  = "ne-NP"
	LangHindi   = "hi-IN"
	LangEnglish = "en-US"
)

// Layout holds the output directories for each target group.
type Layout struct {
	NepaliRoot    string
	EnglishRoot   string
	BarakhariRoot string
	// AssetRoot resolves dataset-relative paths such as number audio.
	AssetRoot string
}

// DefaultLayout places audio under <root>/assets/audio the way the viewer
// expects to find it.
func DefaultLayout(root string) Layout {
	return Layout{
		NepaliRoot:    filepath.Join(root, "assets", "audio", "nepali"),
		EnglishRoot:   filepath.Join(root, "assets", "audio", "english"),
		BarakhariRoot: filepath.Join(root, filepath.FromSlash(alphabet.BarakhariAudioRoot)),
		AssetRoot:     root,
	}
}

// AudioDir is the directory that holds every generated file.
func (l Layout) AudioDir() string {
	return filepath.Dir(l.NepaliRoot)
}

// Target is one file to synthesize.
type Target struct {
	Group    string
	Text     string
	OutFile  string
	Language string
	Fallback string // empty: no fallback
}

// BuildTargets lists the swar, byanjan, English and barakhari targets in
// dataset order. The barakhari grid is the full cross product, including the
// vowels the viewer hides.
func BuildTargets(ds *alphabet.Dataset, layout Layout) []Target {
	var targets []Target

	for _, it := range ds.Nepali.Swar {
		targets = append(targets, Target{
			Group:    "swar",
			Text:     it.Letter,
			OutFile:  filepath.Join(layout.NepaliRoot, it.ID+".mp3"),
			Language: LangNepali,
			Fallback: LangHindi,
		})
	}

	for _, it := range ds.Nepali.Byanjan {
		targets = append(targets, Target{
			Group:    "byanjan",
			Text:     it.Letter,
			OutFile:  filepath.Join(layout.NepaliRoot, it.ID+".mp3"),
			Language: LangNepali,
			Fallback: LangHindi,
		})
	}

	for _, it := range ds.English.AZ {
		targets = append(targets, Target{
			Group:    "english",
			Text:     it.Letter,
			OutFile:  filepath.Join(layout.EnglishRoot, it.ID+".mp3"),
			Language: LangEnglish,
		})
	}

	if ds.HasBarakhari() {
		for _, base := range ds.Barakhari.BaseConsonants {
			for _, vowel := range ds.Barakhari.Vowels {
				targets = append(targets, Target{
					Group:    "barakhari",
					Text:     alphabet.Combine(base.Letter, vowel),
					OutFile:  filepath.Join(layout.BarakhariRoot, base.ID+"_"+vowel.Key+".mp3"),
					Language: LangNepali,
					Fallback: LangHindi,
				})
			}
		}
	}

	return targets
}

// BuildNumberTargets lists the number words at the audio paths the dataset
// declares for them. Entries without an audio path are skipped.
func BuildNumberTargets(ds *alphabet.Dataset, layout Layout) []Target {
	var targets []Target

	for _, n := range ds.NepaliNumbers() {
		if n.Audio == "" {
			continue
		}
		targets = append(targets, Target{
			Group:    "numbers-nepali",
			Text:     n.Word,
			OutFile:  alphabet.ResolveAsset(layout.AssetRoot, n.Audio),
			Language: LangNepali,
			Fallback: LangHindi,
		})
	}

	for _, n := range ds.EnglishNumbers() {
		if n.Audio == "" {
			continue
		}
		targets = append(targets, Target{
			Group:    "numbers-english",
			Text:     n.Word,
			OutFile:  alphabet.ResolveAsset(layout.AssetRoot, n.Audio),
			Language: LangEnglish,
		})
	}

	return targets
}
