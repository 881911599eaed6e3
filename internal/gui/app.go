package gui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/aksharmala/internal"
	"codeberg.org/snonux/aksharmala/internal/alphabet"
	"codeberg.org/snonux/aksharmala/internal/lesson"
	"codeberg.org/snonux/aksharmala/internal/playback"
	"codeberg.org/snonux/aksharmala/internal/speech"
)

// voicePollInterval is how often the installed voices are compared
const voicePollInterval = 30 * time.Second

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	content      *fyne.Container
	home         fyne.CanvasObject
	audioPlayer  *AudioPlayer
	logViewer    *LogViewer
	voiceLabel   *widget.Label
	homeButton   *ttwidget.Button
	lessonButton *ttwidget.Button
	stopButton   *ttwidget.Button
	helpButton   *ttwidget.Button
	lessonView   *LessonView
	lessonPopUp  *widget.PopUp
	detail       dialog.Dialog

	// Navigation state, only touched on the UI goroutine
	sections map[lesson.Mode]*section
	current  lesson.Mode
	cursor   lesson.Cursor
	session  lesson.Session
	lastPlay func()

	// Pronunciation
	engine   *speech.ESpeakEngine
	selector *speech.VoiceSelector
	resolver *playback.Resolver

	config *Config

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config holds GUI configuration
type Config struct {
	Dataset    *alphabet.Dataset
	AssetRoot  string
	AutoPlay   bool
	SpeechRate float64
	// StartMode opens the fullscreen lesson for this mode on start.
	StartMode lesson.Mode
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{
		Dataset:    alphabet.Default(),
		AssetRoot:  ".",
		AutoPlay:   true,
		SpeechRate: speech.DefaultRate,
	}
}

// New creates a new GUI application
func New(config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	} else {
		defaults := DefaultConfig()
		if config.Dataset == nil {
			config.Dataset = defaults.Dataset
		}
		if config.AssetRoot == "" {
			config.AssetRoot = defaults.AssetRoot
		}
		if config.SpeechRate <= 0 {
			config.SpeechRate = defaults.SpeechRate
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	myApp := app.NewWithID("org.codeberg.snonux.aksharmala")
	myApp.SetIcon(GetAppIcon())

	a := &Application{
		app:      myApp,
		config:   config,
		ctx:      ctx,
		cancel:   cancel,
		sections: make(map[lesson.Mode]*section),
	}

	a.engine = speech.NewESpeakEngine()
	a.selector = speech.NewVoiceSelector(a.engine)
	speaker := speech.NewSpeaker(a.engine, a.selector, config.SpeechRate)
	a.resolver = playback.NewResolver(playback.NewCommandPlayer(), speaker, config.AssetRoot)

	a.setupUI()
	a.resolver.SetWarningOutput(io.MultiWriter(os.Stderr, a.logViewer))

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("Aksharmala v%s - Nepali & English Alphabet", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(1000, 760))

	a.homeButton = ttwidget.NewButtonWithIcon("", theme.HomeIcon(), a.showHome)
	a.lessonButton = ttwidget.NewButtonWithIcon("", theme.ViewFullScreenIcon(), a.startLesson)
	a.lessonButton.Disable()
	a.stopButton = ttwidget.NewButtonWithIcon("", theme.MediaStopIcon(), a.stopPlayback)
	a.helpButton = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)

	sectionButtons := container.NewHBox()
	for _, mode := range lesson.Modes() {
		m := mode
		sectionButtons.Add(widget.NewButton(m.Title(), func() { a.showSection(m) }))
	}

	a.voiceLabel = widget.NewLabel("Voice: detecting...")
	a.voiceLabel.TextStyle = fyne.TextStyle{Italic: true}

	toolbar := container.NewHBox(
		a.homeButton,
		widget.NewSeparator(),
		sectionButtons,
		widget.NewSeparator(),
		a.lessonButton,
		a.stopButton,
		layout.NewSpacer(),
		a.helpButton,
	)

	a.home = a.homeView()
	a.content = container.NewStack(a.home)

	a.audioPlayer = NewAudioPlayer(a.replay, a.resolver.Stop)
	a.logViewer = NewLogViewer()

	mainSection := container.NewVSplit(a.content, a.logViewer)
	mainSection.SetOffset(0.82)

	statusSection := container.NewBorder(nil, nil, nil, a.voiceLabel, a.audioPlayer)

	content := container.NewBorder(
		container.NewVBox(toolbar, widget.NewSeparator()),
		statusSection,
		nil, nil,
		mainSection,
	)

	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))

	a.homeButton.SetToolTip("Home (0)")
	a.lessonButton.SetToolTip("Start fullscreen lesson (l)")
	a.stopButton.SetToolTip("Stop (s)")
	a.helpButton.SetToolTip("Show hotkeys (h)")
	a.audioPlayer.SetToolTips()

	a.window.SetOnClosed(func() {
		a.resolver.Stop()
		a.cancel()
		a.wg.Wait()
	})

	a.setupKeyboardShortcuts()
}

// Run starts the GUI application
func (a *Application) Run() {
	a.app.Lifecycle().SetOnStarted(func() {
		a.startVoiceWatcher()
		if a.config.StartMode != "" {
			a.showSection(a.config.StartMode)
			a.openLesson(a.config.StartMode, 0)
		}
	})
	a.window.ShowAndRun()
}

// startVoiceWatcher picks the preferred voice and follows changes to the
// installed voices in the background
func (a *Application) startVoiceWatcher() {
	watcher := speech.NewVoiceWatcher(a.engine, a.selector, voicePollInterval, func(preferred string) {
		fyne.Do(func() { a.setVoiceLabel(preferred) })
	})
	watcher.SetWarningOutput(io.MultiWriter(os.Stderr, a.logViewer))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		if err := a.engine.IsAvailable(); err != nil {
			a.logViewer.Log("Warning: %v; letters without audio files stay silent", err)
			fyne.Do(func() { a.setVoiceLabel("") })
			return
		}
		if _, err := watcher.Check(a.ctx); err != nil {
			a.logViewer.Log("Warning: cannot list speech voices: %v", err)
		}
		preferred := a.selector.Preferred()
		fyne.Do(func() { a.setVoiceLabel(preferred) })

		watcher.Run(a.ctx)
	}()
}

func (a *Application) setVoiceLabel(preferred string) {
	if preferred == "" {
		a.voiceLabel.SetText("Voice: none")
		return
	}
	a.voiceLabel.SetText("Voice: " + preferred)
}

// showHome switches to the landing page
func (a *Application) showHome() {
	a.current = ""
	a.cursor = a.cursor.Deactivate()
	a.lessonButton.Disable()
	a.setContent(a.home)
}

// showSection switches to a category page with a fresh cursor
func (a *Application) showSection(mode lesson.Mode) {
	s := a.sectionFor(mode)
	s.highlight(-1)

	a.current = mode
	a.cursor = lesson.ActivateCursor(a.config.Dataset, mode)
	if len(s.tiles) > 0 {
		a.lessonButton.Enable()
	} else {
		a.lessonButton.Disable()
	}
	a.setContent(s.view)
}

func (a *Application) setContent(obj fyne.CanvasObject) {
	a.content.Objects = []fyne.CanvasObject{obj}
	a.content.Refresh()
}

// onTileTapped moves the cursor onto the tile and shows the item
func (a *Application) onTileTapped(mode lesson.Mode, index int) {
	if a.current != mode {
		return
	}
	a.cursor = a.cursor.Select(index)
	a.showCursorItem()
}

// showCursorItem highlights the cursor tile, then opens the letter detail
// or plays the number
func (a *Application) showCursorItem() {
	item, ok := a.cursor.Current(a.config.Dataset)
	if !ok {
		return
	}
	a.sectionFor(a.current).highlight(a.cursor.Index())

	if item.Number != nil {
		a.hideDetail()
		a.play(item.Glyph, item.Playable())
		return
	}
	if d, ok := a.detailFor(item); ok {
		a.showDetail(d)
	}
}

// startLesson opens the lesson for the current section at the cursor
func (a *Application) startLesson() {
	if a.current == "" {
		return
	}
	index := a.cursor.Index()
	if index < 0 {
		index = 0
	}
	a.openLesson(a.current, index)
}

// openLesson shows the fullscreen pop-up. Modes without items leave the
// session closed and nothing is shown.
func (a *Application) openLesson(mode lesson.Mode, index int) {
	s := lesson.Open(a.config.Dataset, index, mode)
	if !s.IsOpen() {
		a.logViewer.Log("Nothing to show for %s", mode)
		return
	}

	a.hideDetail()
	a.session = s

	if a.lessonPopUp == nil {
		a.lessonView = NewLessonView(a.applyLessonKey)
		a.lessonPopUp = widget.NewModalPopUp(a.lessonView, a.window.Canvas())
	}
	a.lessonPopUp.Resize(a.window.Canvas().Size())
	a.lessonPopUp.Show()
	a.renderLesson()
}

// applyLessonKey runs one lesson transition and renders its outcome
func (a *Application) applyLessonKey(key lesson.Key) {
	s, action := lesson.HandleKey(a.session, key)
	a.session = s

	switch action {
	case lesson.ActionShow:
		a.renderLesson()
	case lesson.ActionClose:
		a.closeLesson()
	}
}

func (a *Application) renderLesson() {
	frame, ok := lesson.Current(a.config.Dataset, a.session)
	if !ok {
		return
	}
	a.lessonView.SetFrame(a.session, frame)
	a.play(frame.Glyph, frame.Playable)
}

func (a *Application) closeLesson() {
	a.session = a.session.Close()
	a.resolver.Stop()
	a.audioPlayer.Stopped()
	if a.lessonPopUp != nil {
		a.lessonPopUp.Hide()
	}
}

// applySectionKey moves the section cursor
func (a *Application) applySectionKey(key lesson.Key) {
	c, action := lesson.HandleSectionKey(a.cursor, key)
	a.cursor = c
	if action == lesson.ActionShow {
		a.showCursorItem()
	}
}

// play pronounces p off the UI goroutine
func (a *Application) play(label string, p playback.Playable) {
	a.playWith(label, func(ctx context.Context) playback.Result {
		return a.resolver.Play(ctx, p)
	})
}

// playWith runs a resolver call in the background and reports the result
// on the playback bar. Playback never raises a dialog.
func (a *Application) playWith(label string, fn func(ctx context.Context) playback.Result) {
	a.lastPlay = func() { a.playWith(label, fn) }
	a.audioPlayer.Start(label)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		res := fn(a.ctx)
		fyne.Do(func() {
			a.audioPlayer.Finish(label, res)
		})
	}()
}

func (a *Application) replay() {
	if a.lastPlay != nil {
		a.lastPlay()
	}
}

func (a *Application) stopPlayback() {
	a.resolver.Stop()
	a.audioPlayer.Stopped()
}

// setupKeyboardShortcuts installs the window-wide key handlers
func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		if a.session.IsOpen() {
			switch commandForRune(r) {
			case commandStop:
				a.stopPlayback()
			case commandQuit:
				a.window.Close()
			}
			return
		}

		if mode, ok := sectionForRune(r); ok {
			a.hideDetail()
			a.showSection(mode)
			return
		}

		switch commandForRune(r) {
		case commandHome:
			a.hideDetail()
			a.showHome()
		case commandLesson:
			a.startLesson()
		case commandStop:
			a.stopPlayback()
		case commandHotkeys:
			a.onShowHotkeys()
		case commandQuit:
			a.window.Close()
		}
	})

	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		a.handleKey(ev.Name)
	})
}

// handleKey routes navigation keys: the open lesson first, then the open
// detail dialog, then the section cursor
func (a *Application) handleKey(name fyne.KeyName) {
	key := navigationKey(name)

	switch {
	case a.session.IsOpen():
		a.applyLessonKey(key)
	case key == lesson.KeyEscape:
		a.hideDetail()
	case name == fyne.KeyReturn || name == fyne.KeyEnter:
		if item, ok := a.cursor.Current(a.config.Dataset); ok {
			if d, ok := a.detailFor(item); ok {
				a.showDetail(d)
			}
		}
	case a.current != "":
		a.applySectionKey(key)
	}
}
