package translation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// DefaultModel is the chat model used for translations
const DefaultModel = openai.GPT4oMini

// ErrNoAPIKey is returned when no OpenAI key is configured
var ErrNoAPIKey = errors.New("OpenAI API key not found")

// Translator translates single words to English
type Translator struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewTranslator creates a translator. An empty baseURL uses the public
// OpenAI endpoint; an empty model uses DefaultModel.
func NewTranslator(apiKey, baseURL, model string) *Translator {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Translator{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(config),
	}
}

// TranslateWord returns the English word for word, which is written in
// the named language (e.g. "Nepali").
func (t *Translator) TranslateWord(ctx context.Context, word, language string) (string, error) {
	if t.apiKey == "" {
		return "", ErrNoAPIKey
	}
	word = strings.TrimSpace(word)
	if word == "" {
		return "", fmt.Errorf("nothing to translate")
	}

	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Translate the %s word '%s' to English. It names a thing a child can picture. Respond with only the English word, nothing else.", language, word),
			},
		},
		MaxTokens:   20,
		Temperature: 0.2,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	translation := cleanTranslation(resp.Choices[0].Message.Content)
	if translation == "" {
		return "", fmt.Errorf("empty translation for %q", word)
	}
	return translation, nil
}

// cleanTranslation strips quotes, trailing punctuation and anything after
// the first line
func cleanTranslation(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.Trim(s, "\"'`.!")
	return strings.ToLower(strings.TrimSpace(s))
}

// TranslationCache maps source words to English. It is safe for
// concurrent use.
type TranslationCache struct {
	mu           sync.RWMutex
	translations map[string]string
}

// NewTranslationCache creates an empty cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		translations: make(map[string]string),
	}
}

// LoadTranslationCache reads a glossary file. A missing file yields an
// empty cache.
func LoadTranslationCache(path string) (*TranslationCache, error) {
	tc := NewTranslationCache()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return tc, nil
	}
	if err != nil {
		return tc, fmt.Errorf("failed to read glossary: %w", err)
	}
	if err := json.Unmarshal(data, &tc.translations); err != nil {
		return NewTranslationCache(), fmt.Errorf("failed to parse glossary %s: %w", path, err)
	}
	if tc.translations == nil {
		tc.translations = make(map[string]string)
	}
	return tc, nil
}

// Add stores a translation
func (tc *TranslationCache) Add(word, translation string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.translations[word] = translation
}

// Get looks up a translation
func (tc *TranslationCache) Get(word string) (string, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	translation, ok := tc.translations[word]
	return translation, ok
}

// Len returns the number of entries
func (tc *TranslationCache) Len() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.translations)
}

// GetAll returns a copy of every translation
func (tc *TranslationCache) GetAll() map[string]string {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	result := make(map[string]string, len(tc.translations))
	for k, v := range tc.translations {
		result[k] = v
	}
	return result
}

// Save writes the cache as indented JSON. Keys come out sorted.
func (tc *TranslationCache) Save(path string) error {
	data, err := json.MarshalIndent(tc.GetAll(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode glossary: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create glossary directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write glossary: %w", err)
	}
	return nil
}
