package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/aksharmala/internal"
)

// Actions are the handlers behind the subcommands
type Actions struct {
	FetchAudio  func(ctx context.Context) error
	View        func() error
	ExportAnki  func() error
	Voices      func(ctx context.Context) error
	FetchImages func(ctx context.Context) error
}

// CreateRootCommand creates the root command with its subcommands. The
// root command without a subcommand opens the viewer.
func CreateRootCommand(flags *Flags, actions Actions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aksharmala",
		Short: "Nepali and English alphabet learning tool",
		Long: `aksharmala teaches the Nepali swar and byanjan, the English alphabet,
the barakhari and numbers with pronunciation audio.

Examples:
  aksharmala                            # Open the lesson viewer (default)
  aksharmala fetch-audio                # Pre-fetch pronunciation audio
  aksharmala fetch-audio --refresh      # Archive existing audio and fetch again
  aksharmala fetch-images               # Download missing example pictures
  aksharmala export-anki --csv          # Export flashcards as CSV
  aksharmala voices                     # List speech voices on this machine`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(actions.View)
		},
	}

	setupGlobalFlags(rootCmd, flags)
	setupViewFlags(rootCmd, flags)

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Open the lesson viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(actions.View)
		},
	}
	setupViewFlags(viewCmd, flags)

	fetchCmd := &cobra.Command{
		Use:   "fetch-audio",
		Short: "Pre-fetch pronunciation audio through a text-to-speech API",
		Long: `fetch-audio writes one MP3 per letter and barakhari combination.
Existing files are kept, so an interrupted run resumes where it stopped.
Nepali text falls back to Hindi when the Nepali request fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContext(cmd, actions.FetchAudio)
		},
	}
	setupFetchFlags(fetchCmd, flags)

	imagesCmd := &cobra.Command{
		Use:   "fetch-images",
		Short: "Download the missing example pictures of the letter detail view",
		Long: `fetch-images looks up each letter's example word in English and saves
a picture from Pixabay, Unsplash or an OpenAI image model to the path the
alphabet data names. Existing pictures are kept. Nepali words are translated
once through the glossary file, which can also be edited by hand.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContext(cmd, actions.FetchImages)
		},
	}
	setupImageFlags(imagesCmd, flags)

	exportCmd := &cobra.Command{
		Use:   "export-anki",
		Short: "Export letters, barakhari and numbers as Anki flashcards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(actions.ExportAnki)
		},
	}
	setupExportFlags(exportCmd, flags)

	voicesCmd := &cobra.Command{
		Use:   "voices",
		Short: "List the speech voices available for on-device playback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContext(cmd, actions.Voices)
		},
	}
	setupVoicesFlags(voicesCmd, flags)

	rootCmd.AddCommand(viewCmd, fetchCmd, imagesCmd, exportCmd, voicesCmd)
	return rootCmd
}

func run(action func() error) error {
	if action == nil {
		return nil
	}
	return action()
}

func runContext(cmd *cobra.Command, action func(context.Context) error) error {
	if action == nil {
		return nil
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return action(ctx)
}

func setupGlobalFlags(cmd *cobra.Command, flags *Flags) {
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.aksharmala.yaml)")
	cmd.PersistentFlags().StringVar(&flags.DataFile, "data", "", "alphabet JSON file (default: built-in data)")
	cmd.PersistentFlags().StringVar(&flags.AssetRoot, "assets", flags.AssetRoot, "directory containing the assets/ tree")

	bindFlag("data.file", cmd.PersistentFlags().Lookup("data"))
	bindFlag("assets.root", cmd.PersistentFlags().Lookup("assets"))
}

func setupViewFlags(cmd *cobra.Command, flags *Flags) {
	cmd.Flags().BoolVar(&flags.NoAutoPlay, "no-auto-play", false, "Do not pronounce items when a lesson moves")
	cmd.Flags().Float64Var(&flags.SpeechRate, "speech-rate", flags.SpeechRate, "Speech synthesis rate (1.0 is normal speed)")
	cmd.Flags().StringVar(&flags.StartMode, "lesson", "", "Open a lesson on start: swar, byanjan, english, barakhari, numbers-nepali, numbers-english")
}

func setupFetchFlags(cmd *cobra.Command, flags *Flags) {
	cmd.Flags().StringVarP(&flags.Provider, "provider", "p", flags.Provider, "TTS provider: google, openai, gemini or espeak")
	cmd.Flags().StringVar(&flags.FallbackProvider, "fallback-provider", "", "Second TTS provider tried when the first one fails")
	cmd.Flags().StringVarP(&flags.AudioFormat, "format", "f", flags.AudioFormat, "Audio format (mp3; the viewer plays .mp3 paths, wav is rejected)")
	cmd.Flags().IntVar(&flags.BreakerThreshold, "breaker-threshold", flags.BreakerThreshold, "Skip a language after this many consecutive failures (0 disables)")
	cmd.Flags().BoolVar(&flags.Refresh, "refresh", false, "Archive the existing audio directory before fetching")
	cmd.Flags().BoolVar(&flags.Numbers, "numbers", false, "Also fetch audio for Nepali and English numbers")
	cmd.Flags().StringVar(&flags.GoogleCredentials, "google-credentials", "", "Google service account JSON (default: application default credentials)")

	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, coral, echo, fable, onyx, nova, sage, shimmer")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0)")

	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini speech generation model")
	cmd.Flags().StringVar(&flags.GeminiVoice, "gemini-voice", flags.GeminiVoice, "Gemini prebuilt voice")

	bindFlagsToViper(cmd)
}

func setupImageFlags(cmd *cobra.Command, flags *Flags) {
	cmd.Flags().StringVar(&flags.ImageProvider, "image-provider", flags.ImageProvider, "Image source: pixabay, unsplash or openai")
	cmd.Flags().StringVar(&flags.ImageModel, "image-model", flags.ImageModel, "OpenAI image model for --image-provider openai")
	cmd.Flags().StringVar(&flags.TranslateModel, "translate-model", flags.TranslateModel, "OpenAI chat model that translates example words")
	cmd.Flags().StringVar(&flags.GlossaryFile, "glossary", "", "Example word glossary (default: <assets>/assets/images/glossary.json)")
	cmd.Flags().StringVar(&flags.WordList, "words", "", "Text file of 'word = english' lines merged into the glossary first")
	cmd.Flags().IntVar(&flags.BreakerThreshold, "breaker-threshold", flags.BreakerThreshold, "Pause searches after this many consecutive failures (0 disables)")

	bindFlag("images.provider", cmd.Flags().Lookup("image-provider"))
	bindFlag("images.openai_model", cmd.Flags().Lookup("image-model"))
	bindFlag("images.translate_model", cmd.Flags().Lookup("translate-model"))
	bindFlag("images.glossary", cmd.Flags().Lookup("glossary"))
}

func setupExportFlags(cmd *cobra.Command, flags *Flags) {
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", flags.OutputDir, "Output directory")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")
	cmd.Flags().BoolVar(&flags.AnkiCSV, "csv", false, "Write a CSV import file instead of an APKG package")
	cmd.Flags().StringSliceVar(&flags.Groups, "groups", nil, "Groups to export: swar, byanjan, english, barakhari, numbers-nepali, numbers-english (default: all)")

	bindFlag("anki.output_dir", cmd.Flags().Lookup("output"))
	bindFlag("anki.deck_name", cmd.Flags().Lookup("deck-name"))
}

func setupVoicesFlags(cmd *cobra.Command, flags *Flags) {
	cmd.Flags().StringVarP(&flags.Language, "language", "l", flags.Language, "Language code for --google")
	cmd.Flags().BoolVar(&flags.GoogleVoices, "google", false, "Also list Google Cloud voices for the language")
	cmd.Flags().BoolVar(&flags.OpenAIModels, "openai", false, "Also list the OpenAI speech, image and chat models for the API key")
	cmd.Flags().StringVar(&flags.GoogleCredentials, "google-credentials", "", "Google service account JSON (default: application default credentials)")
}

func bindFlagsToViper(cmd *cobra.Command) {
	bindFlag("audio.provider", cmd.Flags().Lookup("provider"))
	bindFlag("audio.fallback_provider", cmd.Flags().Lookup("fallback-provider"))
	bindFlag("audio.format", cmd.Flags().Lookup("format"))
	bindFlag("audio.breaker_threshold", cmd.Flags().Lookup("breaker-threshold"))
	bindFlag("audio.google_credentials", cmd.Flags().Lookup("google-credentials"))
	bindFlag("audio.openai_model", cmd.Flags().Lookup("openai-model"))
	bindFlag("audio.openai_voice", cmd.Flags().Lookup("openai-voice"))
	bindFlag("audio.openai_speed", cmd.Flags().Lookup("openai-speed"))
	bindFlag("audio.gemini_model", cmd.Flags().Lookup("gemini-model"))
	bindFlag("audio.gemini_voice", cmd.Flags().Lookup("gemini-voice"))
}

// bindFlag binds a flag to a viper key; a flag missing from the command is
// skipped.
func bindFlag(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}
