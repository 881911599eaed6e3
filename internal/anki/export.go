package anki

import (
	"fmt"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/aksharmala/internal/alphabet"
)

// ExportOptions configures Export
type ExportOptions struct {
	OutputDir string
	DeckName  string
	AssetRoot string
	Groups    []string // empty means every group
	CSV       bool
}

// DefaultExportOptions returns the export defaults
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		OutputDir: ".",
		DeckName:  "Aksharmala",
		AssetRoot: ".",
	}
}

// Export builds the cards for the dataset and writes them as .apkg, or as
// CSV when opts.CSV is set. It returns the written path.
func Export(ds *alphabet.Dataset, opts ExportOptions) (string, error) {
	cards, err := BuildCards(ds, opts.AssetRoot, opts.Groups)
	if err != nil {
		return "", err
	}
	if len(cards) == 0 {
		return "", fmt.Errorf("no cards to export")
	}

	name := fileName(opts.DeckName)

	if opts.CSV {
		out := filepath.Join(opts.OutputDir, name+".csv")
		gen := NewGenerator(&GeneratorOptions{OutputPath: out, IncludeHeaders: true})
		for _, c := range cards {
			gen.AddCard(c)
		}
		if err := gen.GenerateCSV(); err != nil {
			return "", err
		}
		total, audio, images := gen.Stats()
		fmt.Printf("Exported %d cards (%d with audio, %d with images)\n", total, audio, images)
		return out, nil
	}

	out := filepath.Join(opts.OutputDir, name+".apkg")
	gen := NewAPKGGenerator(opts.DeckName)
	gen.AddCards(cards)
	if err := gen.GenerateAPKG(out); err != nil {
		return "", err
	}
	total, audio, images := gen.Stats()
	fmt.Printf("Exported %d cards (%d with audio, %d with images)\n", total, audio, images)
	return out, nil
}

func fileName(deck string) string {
	deck = strings.TrimSpace(strings.ToLower(deck))
	if deck == "" {
		return "aksharmala"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, deck)
}
