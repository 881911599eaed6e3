package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/aksharmala/internal/playback"
)

// AudioPlayer is the playback bar: replay, stop and the outcome of the last
// pronunciation
type AudioPlayer struct {
	widget.BaseWidget

	container    *fyne.Container
	replayButton *ttwidget.Button
	stopButton   *ttwidget.Button
	statusLabel  *widget.Label

	current string
}

// NewAudioPlayer creates a new playback bar. Both callbacks run on the UI
// goroutine.
func NewAudioPlayer(onReplay, onStop func()) *AudioPlayer {
	p := &AudioPlayer{}

	p.replayButton = ttwidget.NewButton("", onReplay)
	p.replayButton.Icon = theme.MediaReplayIcon()

	p.stopButton = ttwidget.NewButton("", func() {
		onStop()
		p.Stopped()
	})
	p.stopButton.Icon = theme.MediaStopIcon()

	p.statusLabel = widget.NewLabel("Nothing played yet")

	p.replayButton.Disable()
	p.stopButton.Disable()

	p.container = container.NewHBox(
		p.replayButton,
		p.stopButton,
		layout.NewSpacer(),
		p.statusLabel,
	)

	p.ExtendBaseWidget(p)
	return p
}

// CreateRenderer implements fyne.Widget
func (p *AudioPlayer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.container)
}

// SetToolTips sets the button tooltips once the tooltip layer exists
func (p *AudioPlayer) SetToolTips() {
	p.replayButton.SetToolTip("Replay (Space)")
	p.stopButton.SetToolTip("Stop (s)")
}

// Start marks text as playing
func (p *AudioPlayer) Start(text string) {
	p.current = text
	p.replayButton.Enable()
	p.stopButton.Enable()
	p.statusLabel.SetText(fmt.Sprintf("Playing: %s", text))
}

// Finish shows how the playback of text ended. Results of interrupted
// playbacks are dropped since a newer one owns the bar.
func (p *AudioPlayer) Finish(text string, res playback.Result) {
	status, ok := statusText(text, res)
	if !ok || text != p.current {
		return
	}
	p.stopButton.Disable()
	p.statusLabel.SetText(status)
}

// Stopped shows that the user cut the playback short
func (p *AudioPlayer) Stopped() {
	p.stopButton.Disable()
	if p.current != "" {
		p.statusLabel.SetText(fmt.Sprintf("Stopped: %s", p.current))
	}
}

func statusText(text string, res playback.Result) (string, bool) {
	switch res {
	case playback.Played:
		return fmt.Sprintf("Played: %s", text), true
	case playback.FellBackToSpeech:
		return fmt.Sprintf("Spoken: %s (speech synthesis)", text), true
	case playback.Silent:
		return fmt.Sprintf("Silent: %s (no audio file or voice)", text), true
	default:
		return "", false
	}
}
