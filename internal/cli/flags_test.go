package cli

import (
	"reflect"
	"testing"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"AssetRoot", flags.AssetRoot, "."},
		{"Provider", flags.Provider, "google"},
		{"AudioFormat", flags.AudioFormat, "mp3"},
		{"BreakerThreshold", flags.BreakerThreshold, 5},
		{"OpenAIModel", flags.OpenAIModel, "gpt-4o-mini-tts"},
		{"OpenAIVoice", flags.OpenAIVoice, "alloy"},
		{"OpenAISpeed", flags.OpenAISpeed, 1.0},
		{"GeminiVoice", flags.GeminiVoice, "Kore"},
		{"DeckName", flags.DeckName, "Aksharmala"},
		{"ImageProvider", flags.ImageProvider, "pixabay"},
		{"ImageModel", flags.ImageModel, "dall-e-3"},
		{"TranslateModel", flags.TranslateModel, "gpt-4o-mini"},
		{"Language", flags.Language, "ne-NP"},
		{"SpeechRate", flags.SpeechRate, 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	boolTests := []struct {
		name  string
		value bool
	}{
		{"Refresh", flags.Refresh},
		{"Numbers", flags.Numbers},
		{"AnkiCSV", flags.AnkiCSV},
		{"GoogleVoices", flags.GoogleVoices},
		{"OpenAIModels", flags.OpenAIModels},
		{"NoAutoPlay", flags.NoAutoPlay},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value {
				t.Errorf("%s = true, want false", tt.name)
			}
		})
	}
}
