package alphabet

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed data/alphabets.json
var embeddedData []byte

// Parse decodes a dataset document
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse alphabet data: %w", err)
	}
	return &ds, nil
}

// Load reads the dataset from a JSON file
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alphabet data: %w", err)
	}
	return Parse(data)
}

// Default returns the dataset compiled into the binary
func Default() *Dataset {
	ds, err := Parse(embeddedData)
	if err != nil {
		panic(fmt.Sprintf("aksharmala: embedded alphabet data: %v", err))
	}
	return ds
}

// LoadOrFallback loads path, or the embedded dataset when path is empty.
// When the file cannot be read the minimal fallback dataset is returned
// together with the load error so the caller can warn about it.
func LoadOrFallback(path string) (*Dataset, error) {
	if path == "" {
		return Default(), nil
	}
	ds, err := Load(path)
	if err != nil {
		return Fallback(), err
	}
	return ds, nil
}

// Fallback returns a tiny dataset with two entries per letter group
func Fallback() *Dataset {
	return &Dataset{
		Nepali: Nepali{
			Swar: []LetterEntry{
				{ID: "a", Letter: "अ", Latin: "a", Sound: "a", Example: "अन्न", Image: "assets/images/nepali/a.png", Audio: "assets/audio/nepali/a.mp3", SVG: "assets/svg/nepali/a.svg"},
				{ID: "aa", Letter: "आ", Latin: "aa", Sound: "aa", Example: "आकाश", Image: "assets/images/nepali/aa.png", Audio: "assets/audio/nepali/aa.mp3", SVG: "assets/svg/nepali/aa.svg"},
			},
			Byanjan: []LetterEntry{
				{ID: "ka", Letter: "क", Latin: "ka", Sound: "ka", Example: "कुकुर", Image: "assets/images/nepali/ka.png", Audio: "assets/audio/nepali/ka.mp3", SVG: "assets/svg/nepali/ka.svg"},
				{ID: "kha", Letter: "ख", Latin: "kha", Sound: "kha", Example: "खरायो", Image: "assets/images/nepali/kha.png", Audio: "assets/audio/nepali/kha.mp3", SVG: "assets/svg/nepali/kha.svg"},
			},
		},
		English: English{
			AZ: []LetterEntry{
				{ID: "a", Letter: "A", Lower: "a", Latin: "A a", Sound: "ay", Example: "Apple", Image: "assets/images/english/a.png", Audio: "assets/audio/english/a.mp3", SVG: "assets/svg/english/a.svg"},
				{ID: "b", Letter: "B", Lower: "b", Latin: "B b", Sound: "bee", Example: "Ball", Image: "assets/images/english/b.png", Audio: "assets/audio/english/b.mp3", SVG: "assets/svg/english/b.svg"},
			},
		},
	}
}

// ResolveAsset maps a dataset-relative asset path onto root. Absolute paths
// and empty values are returned unchanged.
func ResolveAsset(root, asset string) string {
	if asset == "" || filepath.IsAbs(asset) || root == "" {
		return asset
	}
	asset = strings.TrimPrefix(asset, "./")
	return filepath.Join(root, filepath.FromSlash(asset))
}
