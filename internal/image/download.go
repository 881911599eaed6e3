package image

import (
	"bytes"
	"context"
	"fmt"
	stdimage "image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DownloadOptions configures a Downloader
type DownloadOptions struct {
	MaxSizeBytes int64 // refuse larger downloads, 0 = no limit
	MaxSide      int   // scale pictures down to fit, 0 = keep size
	JPEGQuality  int
}

// DefaultDownloadOptions fits pictures to the detail view
func DefaultDownloadOptions() *DownloadOptions {
	return &DownloadOptions{
		MaxSizeBytes: 10 * 1024 * 1024,
		MaxSide:      512,
		JPEGQuality:  85,
	}
}

// Downloader saves search results to asset paths
type Downloader struct {
	searcher ImageSearcher
	options  *DownloadOptions
}

// NewDownloader creates a downloader; nil options use the defaults
func NewDownloader(searcher ImageSearcher, options *DownloadOptions) *Downloader {
	if options == nil {
		options = DefaultDownloadOptions()
	}
	return &Downloader{searcher: searcher, options: options}
}

// downloadTracker is implemented by providers that want to hear which
// result was used
type downloadTracker interface {
	TrackDownload(ctx context.Context, result *SearchResult)
}

// DownloadImage writes result to outputPath. The picture is decoded,
// scaled and re-encoded in the format named by the path's extension, so a
// .png asset is always a PNG whatever the provider served.
func (d *Downloader) DownloadImage(ctx context.Context, result *SearchResult, outputPath string) error {
	encode, err := encoderFor(outputPath, d.options.JPEGQuality)
	if err != nil {
		return err
	}

	reader, err := d.searcher.Download(ctx, result.URL)
	if err != nil {
		return fmt.Errorf("failed to download image: %w", err)
	}
	defer reader.Close()

	data, err := d.readLimited(reader)
	if err != nil {
		return err
	}

	img, _, err := stdimage.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	img = fit(img, d.options.MaxSide)

	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := writeFileAtomic(outputPath, buf.Bytes()); err != nil {
		return err
	}

	if tracker, ok := d.searcher.(downloadTracker); ok {
		tracker.TrackDownload(ctx, result)
	}

	if attribution := d.searcher.GetAttribution(result); attribution != "" {
		if err := os.WriteFile(AttributionPath(outputPath), []byte(attribution+"\n"), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save attribution: %v\n", err)
		}
	}

	return nil
}

// DownloadBestMatch searches for opts.Query and saves the first result
// that downloads and decodes.
func (d *Downloader) DownloadBestMatch(ctx context.Context, opts *SearchOptions, outputPath string) (*SearchResult, error) {
	results, err := d.searcher.Search(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no images found for query: %s", opts.Query)
	}

	for i := range results {
		result := results[i]
		if err := d.DownloadImage(ctx, &result, outputPath); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			fmt.Fprintf(os.Stderr, "Warning: failed to download image %d for %q: %v\n", i+1, opts.Query, err)
			continue
		}
		return &result, nil
	}

	return nil, fmt.Errorf("failed to download any images for query: %s", opts.Query)
}

// AttributionPath is where the credit line of a picture is stored
func AttributionPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + "_attribution.txt"
}

func (d *Downloader) readLimited(r io.Reader) ([]byte, error) {
	if d.options.MaxSizeBytes <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, d.options.MaxSizeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > d.options.MaxSizeBytes {
		return nil, fmt.Errorf("image exceeds maximum size of %d bytes", d.options.MaxSizeBytes)
	}
	return data, nil
}

type encodeFunc func(io.Writer, stdimage.Image) error

func encoderFor(path string, quality int) (encodeFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode, nil
	case ".jpg", ".jpeg":
		if quality <= 0 {
			quality = jpeg.DefaultQuality
		}
		return func(w io.Writer, img stdimage.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
		}, nil
	default:
		return nil, fmt.Errorf("unsupported image extension: %s", path)
	}
}

// fit scales img down so neither side exceeds maxSide, keeping the aspect
// ratio
func fit(img stdimage.Image, maxSide int) stdimage.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}

	if w >= h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := stdimage.NewRGBA(stdimage.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// writeFileAtomic keeps an interrupted run from leaving a truncated
// picture that the next run would skip as cached
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write image file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close image file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move image file into place: %w", err)
	}
	return nil
}
