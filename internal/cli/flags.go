package cli

// Flags holds all command-line flag values
type Flags struct {
	// Global flags
	CfgFile   string
	DataFile  string
	AssetRoot string

	// fetch-audio
	Provider          string
	FallbackProvider  string
	AudioFormat       string
	BreakerThreshold  int
	Refresh           bool
	Numbers           bool
	GoogleCredentials string

	// OpenAI flags
	OpenAIModel string
	OpenAIVoice string
	OpenAISpeed float64

	// Gemini flags
	GeminiModel string
	GeminiVoice string

	// export-anki
	OutputDir string
	DeckName  string
	AnkiCSV   bool
	Groups    []string

	// fetch-images
	ImageProvider  string
	ImageModel     string
	TranslateModel string
	GlossaryFile   string
	WordList       string

	// voices
	Language     string
	GoogleVoices bool
	OpenAIModels bool

	// view
	NoAutoPlay bool
	SpeechRate float64
	StartMode  string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		AssetRoot:        ".",
		Provider:         "google",
		AudioFormat:      "mp3",
		BreakerThreshold: 5,
		OpenAIModel:      "gpt-4o-mini-tts",
		OpenAIVoice:      "alloy",
		OpenAISpeed:      1.0,
		GeminiModel:      "gemini-2.5-flash-preview-tts",
		GeminiVoice:      "Kore",
		OutputDir:        ".",
		DeckName:         "Aksharmala",
		ImageProvider:    "pixabay",
		ImageModel:       "dall-e-3",
		TranslateModel:   "gpt-4o-mini",
		Language:         "ne-NP",
		SpeechRate:       0.85,
	}
}
