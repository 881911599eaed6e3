package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Catalog groups model IDs by what aksharmala uses them for
type Catalog struct {
	Speech []string
	Image  []string
	Chat   []string
}

// Lister queries the models endpoint
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a lister. An empty baseURL uses the public endpoint.
func NewLister(apiKey, baseURL string) *Lister {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// Fetch lists the models available to the API key
func (l *Lister) Fetch(ctx context.Context) (Catalog, error) {
	if l.apiKey == "" {
		return Catalog{}, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .aksharmala.yaml")
	}

	list, err := l.client.ListModels(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	return Categorize(ids), nil
}

// Categorize sorts model IDs into the catalog. Models matching no group
// are dropped.
func Categorize(ids []string) Catalog {
	var c Catalog
	for _, id := range ids {
		switch {
		case strings.Contains(id, "tts") || strings.Contains(id, "audio"):
			c.Speech = append(c.Speech, id)
		case strings.Contains(id, "dall-e") || strings.Contains(id, "image"):
			c.Image = append(c.Image, id)
		case strings.HasPrefix(id, "gpt-4") || strings.HasPrefix(id, "gpt-3.5"):
			c.Chat = append(c.Chat, id)
		}
	}

	sort.Strings(c.Speech)
	sort.Strings(c.Image)
	sort.Strings(c.Chat)
	return c
}

// Print writes the catalog in sections
func (c Catalog) Print(w io.Writer) {
	fmt.Fprintln(w, "Available OpenAI Models:")
	printSection(w, "Text-to-Speech Models (fetch-audio --provider openai)", c.Speech)
	printSection(w, "Image Models (fetch-images --image-provider openai)", c.Image)
	printSection(w, "Chat Models (example word translation)", c.Chat)
}

func printSection(w io.Writer, title string, ids []string) {
	fmt.Fprintf(w, "\n%s:\n", title)
	if len(ids) == 0 {
		fmt.Fprintln(w, "  none found")
		return
	}
	for _, id := range ids {
		fmt.Fprintf(w, "  %s\n", id)
	}
}
