package gui

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/aksharmala/internal/alphabet"
)

// tileSize is the footprint of a letter or number tile
var tileSize = fyne.NewSize(96, 96)

// Tile is a tappable square showing a glyph and an optional caption
type Tile struct {
	widget.BaseWidget

	container  *fyne.Container
	background *canvas.Rectangle
	glyph      *canvas.Text
	caption    *canvas.Text

	active   bool
	OnTapped func()
}

// NewTile creates a tile. caption may be empty.
func NewTile(glyph, caption string, tapped func()) *Tile {
	t := &Tile{OnTapped: tapped}

	t.background = canvas.NewRectangle(theme.Color(theme.ColorNameButton))
	t.background.CornerRadius = 8
	t.background.StrokeWidth = 2
	t.background.SetMinSize(tileSize)

	t.glyph = canvas.NewText(glyph, theme.Color(theme.ColorNameForeground))
	t.glyph.TextSize = 36
	t.glyph.Alignment = fyne.TextAlignCenter

	t.caption = canvas.NewText(caption, theme.Color(theme.ColorNamePlaceHolder))
	t.caption.TextSize = 13
	t.caption.Alignment = fyne.TextAlignCenter

	labels := container.NewVBox(t.glyph)
	if caption != "" {
		labels.Add(t.caption)
	}

	t.container = container.NewStack(t.background, container.NewCenter(labels))

	t.ExtendBaseWidget(t)
	return t
}

// CreateRenderer implements fyne.Widget
func (t *Tile) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.container)
}

// Tapped implements fyne.Tappable
func (t *Tile) Tapped(*fyne.PointEvent) {
	if t.OnTapped != nil {
		t.OnTapped()
	}
}

// SetActive highlights the tile, e.g. under the section cursor
func (t *Tile) SetActive(active bool) {
	if t.active == active {
		return
	}
	t.active = active

	if active {
		t.background.StrokeColor = theme.Color(theme.ColorNamePrimary)
		t.background.FillColor = theme.Color(theme.ColorNameSelection)
	} else {
		t.background.StrokeColor = nil
		t.background.FillColor = theme.Color(theme.ColorNameButton)
	}
	t.background.Refresh()
}

// AssetImage shows a dataset image or writing diagram, falling back to a
// placeholder when the file is missing
type AssetImage struct {
	widget.BaseWidget

	container   *fyne.Container
	imageCanvas *canvas.Image
	imageLabel  *widget.Label

	assetRoot string
}

// NewAssetImage creates an image display resolving paths against assetRoot
func NewAssetImage(assetRoot string, minSize fyne.Size) *AssetImage {
	d := &AssetImage{assetRoot: assetRoot}

	d.imageCanvas = canvas.NewImageFromResource(nil)
	d.imageCanvas.FillMode = canvas.ImageFillContain
	d.imageCanvas.SetMinSize(minSize)

	d.imageLabel = widget.NewLabel("")
	d.imageLabel.Alignment = fyne.TextAlignCenter

	d.container = container.NewBorder(nil, d.imageLabel, nil, nil, d.imageCanvas)

	d.ExtendBaseWidget(d)
	return d
}

// CreateRenderer implements fyne.Widget
func (d *AssetImage) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.container)
}

// SetAsset shows asset, else placeholder, else a "No image" label
func (d *AssetImage) SetAsset(asset, placeholder string) {
	path := existingAsset(d.assetRoot, asset, placeholder)
	if path == "" {
		d.Clear()
		return
	}

	d.imageCanvas.File = path
	d.imageCanvas.Resource = nil
	d.imageCanvas.Refresh()

	if path == alphabet.ResolveAsset(d.assetRoot, asset) {
		d.imageLabel.SetText("")
	} else {
		d.imageLabel.SetText(filepath.Base(asset) + " not found")
	}
}

// Clear clears the display
func (d *AssetImage) Clear() {
	d.imageCanvas.File = ""
	d.imageCanvas.Resource = nil
	d.imageCanvas.Image = nil
	d.imageCanvas.Refresh()
	d.imageLabel.SetText("No image")
}

// existingAsset returns the first candidate that exists under root
func existingAsset(root string, candidates ...string) string {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		path := alphabet.ResolveAsset(root, c)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
