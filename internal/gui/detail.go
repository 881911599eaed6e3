package gui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/aksharmala/internal/lesson"
	"codeberg.org/snonux/aksharmala/internal/playback"
)

// showDetail opens the detail dialog for a letter, combination or number,
// replacing any detail already open, and pronounces it when auto-play is on.
func (a *Application) showDetail(d lesson.Detail) {
	a.hideDetail()

	glyph := canvas.NewText(d.Title, theme.Color(theme.ColorNameForeground))
	glyph.TextSize = 96
	glyph.Alignment = fyne.TextAlignCenter

	info := container.NewVBox(glyph)
	if d.Pronunciation != "" {
		info.Add(widget.NewLabel("Pronunciation: " + d.Pronunciation))
	}
	if d.Latin != "" {
		info.Add(widget.NewLabel("Latin: " + d.Latin))
	}
	if d.Example != "" {
		example := widget.NewLabel(d.Example)
		example.Wrapping = fyne.TextWrapWord
		info.Add(example)
	}
	if d.Phrase.Visible() {
		info.Add(widget.NewLabelWithStyle(d.Phrase.Text(), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	}

	image := NewAssetImage(a.config.AssetRoot, fyne.NewSize(220, 180))
	image.SetAsset(d.Image, lesson.PlaceholderImage)

	buttons := container.NewHBox(
		widget.NewButtonWithIcon("Play", theme.MediaPlayIcon(), func() {
			a.play(d.Title, d.Playable)
		}),
		widget.NewButtonWithIcon("How to write", theme.DocumentCreateIcon(), func() {
			a.showWriting(d)
		}),
	)
	if d.Phrase.Visible() {
		phrase := d.Phrase.Text()
		buttons.Add(widget.NewButtonWithIcon("Speak phrase", theme.VolumeUpIcon(), func() {
			a.playWith(phrase, func(ctx context.Context) playback.Result {
				return a.resolver.Say(ctx, phrase)
			})
		}))
	}
	if word := d.Phrase.Word; word != "" {
		buttons.Add(widget.NewButton("Spell", func() {
			a.playWith(word, func(ctx context.Context) playback.Result {
				return a.resolver.Spell(ctx, word)
			})
		}))
	}

	content := container.NewVBox(
		container.NewHBox(info, image),
		widget.NewSeparator(),
		buttons,
	)
	if len(d.Variations) > 0 {
		content.Add(widget.NewSeparator())
		content.Add(a.variationStrip(d))
	}

	dlg := dialog.NewCustom(d.Title, "Close", content, a.window)
	dlg.SetOnClosed(func() {
		if a.detail == dlg {
			a.detail = nil
		}
	})
	a.detail = dlg
	dlg.Show()

	if a.config.AutoPlay {
		a.play(d.Title, d.Playable)
	}
}

// hideDetail closes the open detail dialog, if any
func (a *Application) hideDetail() {
	if a.detail == nil {
		return
	}
	dlg := a.detail
	a.detail = nil
	dlg.Hide()
}

// variationStrip lists every vowel sign on the same base consonant
func (a *Application) variationStrip(d lesson.Detail) fyne.CanvasObject {
	chips := container.NewHBox()
	for _, v := range d.Variations {
		combo := v.Combination
		chip := widget.NewButton(combo.Glyph, func() {
			a.showDetail(lesson.CombinationDetail(a.config.Dataset, combo))
		})
		if v.Active {
			chip.Importance = widget.HighImportance
		}
		chips.Add(chip)
	}

	scroll := container.NewHScroll(chips)
	scroll.SetMinSize(fyne.NewSize(480, 0))
	return scroll
}

// showWriting shows the stroke diagram of the detail's glyph
func (a *Application) showWriting(d lesson.Detail) {
	diagram := NewAssetImage(a.config.AssetRoot, fyne.NewSize(320, 320))
	diagram.SetAsset(d.SVG, lesson.PlaceholderSVG)

	dialog.NewCustom("How to write: "+d.Title, "Close", diagram, a.window).Show()
}
