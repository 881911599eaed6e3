package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"codeberg.org/snonux/aksharmala/internal/audio"
	"codeberg.org/snonux/aksharmala/internal/image"
)

// InitConfig initializes viper configuration. A .env file in the working
// directory is loaded first so API credentials can live next to the assets.
func InitConfig(cfgFile string) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".aksharmala" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".aksharmala")
	}

	// AKSHARMALA_AUDIO_PROVIDER maps to audio.provider
	viper.SetEnvPrefix("AKSHARMALA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: failed to read config: %v\n", err)
		}
	}
}

func setDefaults() {
	viper.SetDefault("viewer.auto_play", true)
	viper.SetDefault("viewer.speech_rate", 0.85)
	viper.SetDefault("audio.espeak_speed", 150)
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("audio.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}
	return viper.GetString("audio.gemini_key")
}

// GetPixabayKey retrieves the Pixabay API key. Pixabay also answers
// without one, at a lower quota.
func GetPixabayKey() string {
	if key := os.Getenv("PIXABAY_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("images.pixabay_key")
}

// GetUnsplashKey retrieves the Unsplash access key
func GetUnsplashKey() string {
	if key := os.Getenv("UNSPLASH_ACCESS_KEY"); key != "" {
		return key
	}
	return viper.GetString("images.unsplash_key")
}

// GetGoogleCredentials returns the service account file for Google Cloud
// Text-to-Speech. Empty means application default credentials.
func GetGoogleCredentials(flags *Flags) string {
	if flags != nil && flags.GoogleCredentials != "" {
		return flags.GoogleCredentials
	}
	if path := viper.GetString("audio.google_credentials"); path != "" {
		return path
	}
	return os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
}

// Settings is the resolved configuration of one run
type Settings struct {
	DataFile         string
	AssetRoot        string
	Audio            *audio.Config
	BreakerThreshold int
	AutoPlay         bool
	SpeechRate       float64
	DeckName         string
	OutputDir        string

	Images         *image.Config
	TranslateModel string
	GlossaryFile   string // empty: next to the pictures
}

// LoadSettings merges flags, environment and config file. Bound keys
// already carry the flag value when it was set on the command line.
func LoadSettings(flags *Flags) Settings {
	defaults := NewFlags()

	cfg := audio.DefaultProviderConfig()
	cfg.Provider = stringOr(viper.GetString("audio.provider"), flags.Provider)
	cfg.FallbackProvider = stringOr(viper.GetString("audio.fallback_provider"), flags.FallbackProvider)
	cfg.OutputFormat = stringOr(viper.GetString("audio.format"), flags.AudioFormat)
	cfg.GoogleCredentials = GetGoogleCredentials(flags)
	cfg.OpenAIKey = GetOpenAIKey()
	cfg.OpenAIModel = stringOr(viper.GetString("audio.openai_model"), flags.OpenAIModel)
	cfg.OpenAIVoice = stringOr(viper.GetString("audio.openai_voice"), flags.OpenAIVoice)
	cfg.OpenAISpeed = flags.OpenAISpeed
	if viper.IsSet("audio.openai_speed") {
		cfg.OpenAISpeed = viper.GetFloat64("audio.openai_speed")
	}
	cfg.OpenAIBaseURL = viper.GetString("audio.openai_base_url")
	cfg.GeminiKey = GetGeminiKey()
	cfg.GeminiModel = stringOr(viper.GetString("audio.gemini_model"), flags.GeminiModel)
	cfg.GeminiVoice = stringOr(viper.GetString("audio.gemini_voice"), flags.GeminiVoice)
	if viper.IsSet("audio.espeak_speed") {
		cfg.ESpeakSpeed = viper.GetInt("audio.espeak_speed")
	}

	breaker := flags.BreakerThreshold
	if viper.IsSet("audio.breaker_threshold") {
		breaker = viper.GetInt("audio.breaker_threshold")
	}

	// The rate flag exists on two commands; a config value applies unless
	// the flag moved away from its default.
	rate := flags.SpeechRate
	if rate == defaults.SpeechRate && viper.IsSet("viewer.speech_rate") {
		rate = viper.GetFloat64("viewer.speech_rate")
	}

	autoPlay := !flags.NoAutoPlay
	if autoPlay && viper.IsSet("viewer.auto_play") {
		autoPlay = viper.GetBool("viewer.auto_play")
	}

	images := image.DefaultConfig()
	images.Provider = stringOr(viper.GetString("images.provider"), flags.ImageProvider)
	images.PixabayKey = GetPixabayKey()
	images.UnsplashKey = GetUnsplashKey()
	images.OpenAIKey = cfg.OpenAIKey
	images.OpenAIBaseURL = cfg.OpenAIBaseURL
	images.OpenAIModel = stringOr(viper.GetString("images.openai_model"), stringOr(flags.ImageModel, images.OpenAIModel))

	return Settings{
		DataFile:         stringOr(viper.GetString("data.file"), flags.DataFile),
		AssetRoot:        stringOr(viper.GetString("assets.root"), flags.AssetRoot),
		Audio:            cfg,
		BreakerThreshold: breaker,
		AutoPlay:         autoPlay,
		SpeechRate:       rate,
		DeckName:         stringOr(viper.GetString("anki.deck_name"), flags.DeckName),
		OutputDir:        stringOr(viper.GetString("anki.output_dir"), flags.OutputDir),
		Images:           images,
		TranslateModel:   stringOr(viper.GetString("images.translate_model"), flags.TranslateModel),
		GlossaryFile:     stringOr(viper.GetString("images.glossary"), flags.GlossaryFile),
	}
}

func stringOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
