package testutil

import (
	"context"
	"sync"
	"time"

	"codeberg.org/snonux/aksharmala/internal/audio"
)

// MockProvider is an audio.Provider that records every request. Errors are
// keyed by language code.
type MockProvider struct {
	mu sync.Mutex

	ProviderName string
	Data         []byte
	Errors       map[string]error
	AvailableErr error
	Calls        []audio.Request
}

// NewMockProvider returns a provider that succeeds for every language.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		ProviderName: "mock",
		Data:         MockMP3(),
		Errors:       map[string]error{},
	}
}

// Synthesize records the request and returns Data or the language's error.
func (m *MockProvider) Synthesize(ctx context.Context, req audio.Request) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.Errors[req.LanguageCode]; ok && err != nil {
		return nil, err
	}
	return m.Data, nil
}

// Name returns the provider name
func (m *MockProvider) Name() string {
	return m.ProviderName
}

// IsAvailable returns AvailableErr
func (m *MockProvider) IsAvailable() error {
	return m.AvailableErr
}

// CallCount returns the number of Synthesize calls so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LanguagesCalled lists the language of every call in order.
func (m *MockProvider) LanguagesCalled() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	langs := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		langs[i] = c.LanguageCode
	}
	return langs
}

// MockPlayer records audio files it is asked to play.
type MockPlayer struct {
	mu sync.Mutex

	Err     error
	Played  []string
	// Block makes Play wait for context cancellation.
	Block   bool
	Started chan string
}

// Play records the path and returns Err, or blocks until ctx is done.
func (m *MockPlayer) Play(ctx context.Context, path string) error {
	m.mu.Lock()
	m.Played = append(m.Played, path)
	block, started, err := m.Block, m.Started, m.Err
	m.mu.Unlock()

	if started != nil {
		started <- path
	}
	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

// PlayedFiles returns a copy of the played paths.
func (m *MockPlayer) PlayedFiles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Played...)
}

// MockSpeaker records the text it is asked to speak.
type MockSpeaker struct {
	mu sync.Mutex

	Err    error
	Spoken []string
	At     []time.Time
	// Block makes Speak wait for context cancellation.
	Block  bool
}

// Speak records text and returns Err, or blocks until ctx is done.
func (m *MockSpeaker) Speak(ctx context.Context, text string) error {
	m.mu.Lock()
	m.Spoken = append(m.Spoken, text)
	m.At = append(m.At, time.Now())
	block, err := m.Block, m.Err
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

// SpokenTexts returns a copy of the spoken texts.
func (m *MockSpeaker) SpokenTexts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Spoken...)
}
