package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/aksharmala/internal/alphabet"
	"codeberg.org/snonux/aksharmala/internal/lesson"
)

// section is one category page. tiles is index-aligned with
// lesson.Items for the mode.
type section struct {
	mode  lesson.Mode
	view  fyne.CanvasObject
	tiles []*Tile
}

// highlight marks the tile at index and clears the rest
func (s *section) highlight(index int) {
	for i, t := range s.tiles {
		t.SetActive(i == index)
	}
}

// sectionFor returns the cached page for mode, building it on first use
func (a *Application) sectionFor(mode lesson.Mode) *section {
	if s, ok := a.sections[mode]; ok {
		return s
	}

	s := &section{mode: mode}
	items := lesson.Items(a.config.Dataset, mode)
	s.tiles = make([]*Tile, len(items))
	for i, item := range items {
		index := i
		s.tiles[i] = NewTile(item.Glyph, tileCaption(item), func() {
			a.onTileTapped(mode, index)
		})
	}

	var body fyne.CanvasObject
	switch {
	case len(items) == 0:
		body = widget.NewLabel("No data available for this section.")
	case mode.Category() == lesson.CategoryCombinationGrid:
		body = a.barakhariTable(s.tiles)
	default:
		body = container.NewGridWrap(tileSize, tilesAsObjects(s.tiles)...)
	}

	startButton := widget.NewButtonWithIcon("Start lesson", theme.MediaPlayIcon(), func() {
		a.startLesson()
	})
	if len(items) == 0 {
		startButton.Disable()
	}

	title := widget.NewLabelWithStyle(mode.Title(), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	header := container.NewHBox(title, layout.NewSpacer(), startButton)

	s.view = container.NewBorder(header, nil, nil, nil, container.NewScroll(body))
	a.sections[mode] = s
	return s
}

// barakhariTable lays the tiles out as consonant rows under a header of
// vowel labels
func (a *Application) barakhariTable(tiles []*Tile) fyne.CanvasObject {
	ds := a.config.Dataset
	vowels := alphabet.FilteredVowels(ds.Barakhari.Vowels)

	cells := make([]fyne.CanvasObject, 0, (len(vowels)+1)*(len(ds.Barakhari.BaseConsonants)+1))
	cells = append(cells, widget.NewLabel(""))
	for _, v := range vowels {
		cells = append(cells, widget.NewLabelWithStyle(v.Label, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}))
	}

	i := 0
	for _, base := range ds.Barakhari.BaseConsonants {
		cells = append(cells, widget.NewLabelWithStyle(base.Letter, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}))
		for range vowels {
			cells = append(cells, tiles[i])
			i++
		}
	}

	return container.NewGridWithColumns(len(vowels)+1, cells...)
}

// homeView is the landing page with one card per section
func (a *Application) homeView() fyne.CanvasObject {
	cards := make([]fyne.CanvasObject, 0, len(lesson.Modes()))
	for _, mode := range lesson.Modes() {
		m := mode
		count := len(lesson.Items(a.config.Dataset, m))
		button := widget.NewButton(m.Title(), func() { a.showSection(m) })
		if count == 0 {
			button.Disable()
		}
		cards = append(cards, widget.NewCard("", lesson.Ordinal(count, m)+" items", button))
	}

	welcome := widget.NewLabelWithStyle("अक्षरमाला: learn the Nepali and English alphabets", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	return container.NewBorder(welcome, nil, nil, nil, container.NewGridWithColumns(3, cards...))
}

// detailFor builds the dialog content for an item of any category
func (a *Application) detailFor(item lesson.Item) (lesson.Detail, bool) {
	switch {
	case item.Letter != nil:
		return lesson.LetterDetail(*item.Letter), true
	case item.Combination != nil:
		return lesson.CombinationDetail(a.config.Dataset, *item.Combination), true
	case item.Number != nil:
		return lesson.NumberDetail(*item.Number), true
	default:
		return lesson.Detail{}, false
	}
}

// tileCaption is the small line under a glyph: lowercase for English
// letters, the word for numbers
func tileCaption(item lesson.Item) string {
	switch {
	case item.Letter != nil:
		return item.Letter.Lower
	case item.Number != nil:
		return item.Number.Word
	default:
		return ""
	}
}

func tilesAsObjects(tiles []*Tile) []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, len(tiles))
	for i, t := range tiles {
		objects[i] = t
	}
	return objects
}
