package translation

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// WordEntry is one line of a word list
type WordEntry struct {
	Word    string
	English string // empty: still needs translation
}

// ReadWordList reads a hand-written glossary. Each line is either
// "कमल = lotus" or just "कमल". Blank lines and lines starting with # are
// skipped, as are lines without a word before the "=".
func ReadWordList(path string) ([]WordEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	defer file.Close()

	var entries []WordEntry
	scanner := bufio.NewScanner(file)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, english, found := strings.Cut(line, "=")
		word = strings.TrimSpace(word)
		if word == "" {
			fmt.Fprintf(os.Stderr, "Warning: %s:%d: no word before '='\n", path, lineNo)
			continue
		}
		entry := WordEntry{Word: word}
		if found {
			entry.English = cleanTranslation(english)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	return entries, nil
}

// Merge adds the entries that carry an English term and returns how many
// were added. Existing translations are overwritten.
func (tc *TranslationCache) Merge(entries []WordEntry) int {
	added := 0
	for _, e := range entries {
		if e.English == "" {
			continue
		}
		tc.Add(e.Word, e.English)
		added++
	}
	return added
}
