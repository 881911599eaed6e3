package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestInitConfig(t *testing.T) {
	defer viper.Reset()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "aksharmala.yaml")
	content := `audio:
  provider: openai
  fallback_provider: espeak
  breaker_threshold: 2
viewer:
  speech_rate: 1.1
  auto_play: false
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	InitConfig(cfgPath)

	if got := viper.GetString("audio.provider"); got != "openai" {
		t.Errorf("audio.provider = %q", got)
	}

	s := LoadSettings(NewFlags())
	if s.Audio.Provider != "openai" || s.Audio.FallbackProvider != "espeak" {
		t.Errorf("providers = %s / %s", s.Audio.Provider, s.Audio.FallbackProvider)
	}
	if s.BreakerThreshold != 2 {
		t.Errorf("BreakerThreshold = %d, want 2", s.BreakerThreshold)
	}
	if s.SpeechRate != 1.1 {
		t.Errorf("SpeechRate = %v, want 1.1", s.SpeechRate)
	}
	if s.AutoPlay {
		t.Error("AutoPlay = true, want false from config")
	}
}

func TestInitConfigEnvironment(t *testing.T) {
	defer viper.Reset()

	t.Setenv("AKSHARMALA_AUDIO_PROVIDER", "gemini")
	t.Setenv("AKSHARMALA_ASSETS_ROOT", "/srv/aksharmala")
	InitConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	s := LoadSettings(NewFlags())
	if s.Audio.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini from environment", s.Audio.Provider)
	}
	if s.AssetRoot != "/srv/aksharmala" {
		t.Errorf("AssetRoot = %q", s.AssetRoot)
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	defer viper.Reset()
	viper.Reset()

	flags := NewFlags()
	flags.NoAutoPlay = true
	s := LoadSettings(flags)

	if s.Audio.Provider != "google" || s.Audio.OutputFormat != "mp3" {
		t.Errorf("Audio = %+v", s.Audio)
	}
	if s.BreakerThreshold != 5 {
		t.Errorf("BreakerThreshold = %d", s.BreakerThreshold)
	}
	if s.AutoPlay {
		t.Error("--no-auto-play ignored")
	}
	if s.SpeechRate != 0.85 || s.AssetRoot != "." || s.DeckName != "Aksharmala" {
		t.Errorf("Settings = %+v", s)
	}
	if s.Images.Provider != "pixabay" || s.Images.OpenAIModel != "dall-e-3" || s.TranslateModel != "gpt-4o-mini" {
		t.Errorf("Images = %+v, TranslateModel = %q", s.Images, s.TranslateModel)
	}
	if s.GlossaryFile != "" {
		t.Errorf("GlossaryFile = %q, want empty", s.GlossaryFile)
	}
}

func TestImageKeys(t *testing.T) {
	defer viper.Reset()
	viper.Reset()

	t.Setenv("PIXABAY_API_KEY", "")
	t.Setenv("UNSPLASH_ACCESS_KEY", "")
	viper.Set("images.pixabay_key", "config-pixabay")
	viper.Set("images.unsplash_key", "config-unsplash")
	viper.Set("images.provider", "unsplash")

	if got := GetPixabayKey(); got != "config-pixabay" {
		t.Errorf("GetPixabayKey() = %q", got)
	}

	t.Setenv("UNSPLASH_ACCESS_KEY", "env-unsplash")
	s := LoadSettings(NewFlags())
	if s.Images.Provider != "unsplash" || s.Images.UnsplashKey != "env-unsplash" || s.Images.PixabayKey != "config-pixabay" {
		t.Errorf("Images = %+v", s.Images)
	}
}

func TestAPIKeys(t *testing.T) {
	defer viper.Reset()
	viper.Reset()

	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/env/creds.json")

	viper.Set("audio.openai_key", "config-openai")
	viper.Set("audio.gemini_key", "config-gemini")

	if got := GetOpenAIKey(); got != "config-openai" {
		t.Errorf("GetOpenAIKey() = %q", got)
	}
	if got := GetGeminiKey(); got != "config-gemini" {
		t.Errorf("GetGeminiKey() = %q", got)
	}
	if got := GetGoogleCredentials(NewFlags()); got != "/env/creds.json" {
		t.Errorf("GetGoogleCredentials() = %q", got)
	}

	t.Setenv("OPENAI_API_KEY", "env-openai")
	t.Setenv("GOOGLE_API_KEY", "env-google")
	if got := GetOpenAIKey(); got != "env-openai" {
		t.Errorf("GetOpenAIKey() = %q, want environment", got)
	}
	if got := GetGeminiKey(); got != "env-google" {
		t.Errorf("GetGeminiKey() = %q, want GOOGLE_API_KEY", got)
	}

	flags := NewFlags()
	flags.GoogleCredentials = "/flag/creds.json"
	if got := GetGoogleCredentials(flags); got != "/flag/creds.json" {
		t.Errorf("GetGoogleCredentials() = %q, want flag", got)
	}
}
