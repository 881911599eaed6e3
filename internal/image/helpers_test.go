package image

import (
	"bytes"
	"context"
	"fmt"
	stdimage "image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"testing"
)

// pngBytes encodes a solid w x h picture
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := stdimage.NewRGBA(stdimage.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// fakeSearcher answers every query with one result per entry in images,
// keyed by URL
type fakeSearcher struct {
	mu sync.Mutex

	images      map[string][]byte
	order       []string
	searchErr   error
	attribution string
	queries     []string
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{images: map[string][]byte{}}
}

func (f *fakeSearcher) add(url string, data []byte) {
	f.images[url] = data
	f.order = append(f.order, url)
}

func (f *fakeSearcher) Search(ctx context.Context, opts *SearchOptions) ([]SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries = append(f.queries, opts.Query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	results := make([]SearchResult, 0, len(f.order))
	for i, url := range f.order {
		results = append(results, SearchResult{
			ID:          fmt.Sprint(i),
			URL:         url,
			Attribution: f.attribution,
			Source:      "fake",
		})
	}
	return results, nil
}

func (f *fakeSearcher) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	data, ok := f.images[url]
	if !ok {
		return nil, fmt.Errorf("download failed with status 404")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeSearcher) GetAttribution(result *SearchResult) string {
	return result.Attribution
}

func (f *fakeSearcher) Name() string {
	return "fake"
}

func (f *fakeSearcher) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}
