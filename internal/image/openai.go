package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	DefaultOpenAIModel = openai.CreateImageModelDallE3
	DefaultOpenAISize  = openai.CreateImageSize1024x1024

	generatedPrefix = "generated:"
)

// OpenAIConfig configures image generation
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Size    string
}

// OpenAIClient implements ImageSearcher by drawing the picture instead of
// searching for one. Every Search returns exactly one result.
type OpenAIClient struct {
	client     *openai.Client
	model      string
	size       string
	httpClient *http.Client

	mu        sync.Mutex
	generated map[string][]byte
	count     int
}

// NewOpenAIClient creates a generator client
func NewOpenAIClient(config *OpenAIConfig) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required for image generation (set OPENAI_API_KEY)")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	model := config.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	size := config.Size
	if size == "" {
		size = DefaultOpenAISize
	}

	return &OpenAIClient{
		client:     openai.NewClientWithConfig(clientConfig),
		model:      model,
		size:       size,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		generated:  make(map[string][]byte),
	}, nil
}

// Search generates one picture of opts.Query
func (c *OpenAIClient) Search(ctx context.Context, opts *SearchOptions) ([]SearchResult, error) {
	req := openai.ImageRequest{
		Prompt: createPrompt(opts.Query),
		Model:  c.model,
		N:      1,
		Size:   c.size,
	}
	// gpt-image models always answer with base64 and reject the field
	if !strings.HasPrefix(c.model, "gpt-image") {
		req.ResponseFormat = openai.CreateImageResponseFormatURL
	}

	resp, err := c.client.CreateImage(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, &SearchError{Provider: "openai", Message: "no image returned"}
	}

	data := resp.Data[0]
	result := SearchResult{
		Description: data.RevisedPrompt,
		Attribution: fmt.Sprintf("Generated by OpenAI %s", c.model),
		Source:      "openai",
	}

	switch {
	case data.URL != "":
		result.ID = data.URL
		result.URL = data.URL
	case data.B64JSON != "":
		raw, err := base64.StdEncoding.DecodeString(data.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to decode generated image: %w", err)
		}
		c.mu.Lock()
		c.count++
		result.ID = fmt.Sprintf("%s%d", generatedPrefix, c.count)
		c.generated[result.ID] = raw
		c.mu.Unlock()
		result.URL = result.ID
	default:
		return nil, &SearchError{Provider: "openai", Message: "empty image data"}
	}

	return []SearchResult{result}, nil
}

// Download fetches a generated picture. Base64 answers are served from
// memory, once.
func (c *OpenAIClient) Download(ctx context.Context, imageURL string) (io.ReadCloser, error) {
	if strings.HasPrefix(imageURL, generatedPrefix) {
		c.mu.Lock()
		raw, ok := c.generated[imageURL]
		delete(c.generated, imageURL)
		c.mu.Unlock()
		if !ok {
			return nil, fmt.Errorf("generated image %s already used", imageURL)
		}
		return io.NopCloser(bytes.NewReader(raw)), nil
	}
	return httpDownload(ctx, c.httpClient, imageURL)
}

// GetAttribution records which model drew the picture
func (c *OpenAIClient) GetAttribution(result *SearchResult) string {
	return result.Attribution
}

// Name returns "openai"
func (c *OpenAIClient) Name() string {
	return "openai"
}

func createPrompt(word string) string {
	return fmt.Sprintf("A simple, friendly children's picture book illustration of a %s, "+
		"centered on a plain light background. No text, letters or numbers.", word)
}
