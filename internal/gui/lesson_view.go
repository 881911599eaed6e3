package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/aksharmala/internal/lesson"
)

// LessonView is the content of the fullscreen lesson pop-up. Its buttons
// feed the same keys as the keyboard so both paths share one transition.
type LessonView struct {
	widget.BaseWidget

	container *fyne.Container
	title     *widget.Label
	progress  *widget.Label
	glyph     *canvas.Text
	ordinal   *canvas.Text
	label     *canvas.Text
}

// NewLessonView creates the lesson view; onKey receives button presses.
func NewLessonView(onKey func(lesson.Key)) *LessonView {
	v := &LessonView{}

	v.title = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	v.progress = widget.NewLabel("")

	v.glyph = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	v.glyph.TextSize = 180
	v.glyph.Alignment = fyne.TextAlignCenter

	v.ordinal = canvas.NewText("", theme.Color(theme.ColorNamePlaceHolder))
	v.ordinal.TextSize = 32
	v.ordinal.Alignment = fyne.TextAlignCenter

	v.label = canvas.NewText("", theme.Color(theme.ColorNamePrimary))
	v.label.TextSize = 40
	v.label.Alignment = fyne.TextAlignCenter

	prev := widget.NewButtonWithIcon("Previous", theme.NavigateBackIcon(), func() { onKey(lesson.KeyLeft) })
	speak := widget.NewButtonWithIcon("Speak", theme.VolumeUpIcon(), func() { onKey(lesson.KeySpace) })
	next := widget.NewButtonWithIcon("Next", theme.NavigateNextIcon(), func() { onKey(lesson.KeyRight) })
	next.IconPlacement = widget.ButtonIconTrailingText
	closeBtn := widget.NewButtonWithIcon("", theme.CancelIcon(), func() { onKey(lesson.KeyEscape) })
	closeBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, v.title, container.NewHBox(v.progress, closeBtn))
	controls := container.NewHBox(layout.NewSpacer(), prev, speak, next, layout.NewSpacer())
	center := container.NewCenter(container.NewVBox(v.ordinal, v.glyph, v.label))

	v.container = container.NewBorder(header, container.NewPadded(controls), nil, nil, center)

	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *LessonView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.container)
}

// SetFrame renders one lesson step
func (v *LessonView) SetFrame(s lesson.Session, f lesson.Frame) {
	v.title.SetText(s.Mode().Title())
	v.progress.SetText(fmt.Sprintf("%s / %s", f.Ordinal, lesson.Ordinal(s.Len(), s.Mode())))

	v.ordinal.Text = f.Ordinal
	v.glyph.Text = f.Glyph
	v.label.Text = f.Label
	v.ordinal.Refresh()
	v.glyph.Refresh()
	v.label.Refresh()
}
