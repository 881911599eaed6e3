package models

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key", "")

	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}
	if lister.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestFetch_NoAPIKey(t *testing.T) {
	_, err := NewLister("", "").Fetch(context.Background())
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("Error should name the environment variable: %v", err)
	}
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[
			{"id":"tts-1","object":"model"},
			{"id":"gpt-4o-mini","object":"model"},
			{"id":"dall-e-3","object":"model"},
			{"id":"gpt-4o-mini-tts","object":"model"},
			{"id":"whisper-1","object":"model"}
		]}`))
	}))
	defer server.Close()

	catalog, err := NewLister("key", server.URL+"/v1").Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	want := Catalog{
		Speech: []string{"gpt-4o-mini-tts", "tts-1"},
		Image:  []string{"dall-e-3"},
		Chat:   []string{"gpt-4o-mini"},
	}
	if !reflect.DeepEqual(catalog, want) {
		t.Errorf("Fetch() = %+v, want %+v", catalog, want)
	}
}

func TestFetch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	if _, err := NewLister("key", server.URL+"/v1").Fetch(context.Background()); err == nil {
		t.Error("Expected an error for a rejected key")
	}
}

func TestCategorize(t *testing.T) {
	got := Categorize([]string{"gpt-image-1", "gpt-4o-audio-preview", "gpt-3.5-turbo", "babbage-002", "tts-1-hd"})
	want := Catalog{
		Speech: []string{"gpt-4o-audio-preview", "tts-1-hd"},
		Image:  []string{"gpt-image-1"},
		Chat:   []string{"gpt-3.5-turbo"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categorize() = %+v, want %+v", got, want)
	}
}

func TestCatalogPrint(t *testing.T) {
	var buf bytes.Buffer
	Catalog{Speech: []string{"tts-1"}}.Print(&buf)

	out := buf.String()
	for _, want := range []string{"Available OpenAI Models:", "  tts-1", "Image Models", "  none found"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
