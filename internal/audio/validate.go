package audio

import (
	"fmt"
	"strings"
	"unicode"
)

// Script classifies the writing system of a text.
type Script int

const (
	ScriptUnknown Script = iota
	ScriptDevanagari
	ScriptLatin
	ScriptMixed
)

func (s Script) String() string {
	switch s {
	case ScriptDevanagari:
		return "devanagari"
	case ScriptLatin:
		return "latin"
	case ScriptMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// ValidateText rejects empty or whitespace-only input.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}
	return nil
}

// DetectScript reports whether text is written in Devanagari, Latin or both.
// Digits, punctuation and spaces are ignored.
func DetectScript(text string) Script {
	var deva, latin bool
	for _, r := range text {
		switch {
		case unicode.In(r, unicode.Devanagari):
			deva = true
		case unicode.In(r, unicode.Latin):
			latin = true
		}
	}

	switch {
	case deva && latin:
		return ScriptMixed
	case deva:
		return ScriptDevanagari
	case latin:
		return ScriptLatin
	default:
		return ScriptUnknown
	}
}
