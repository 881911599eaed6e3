package gui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LogViewer shows playback and voice warnings, newest first. It is an
// io.Writer so the resolver and the voice watcher can write to it directly.
type LogViewer struct {
	widget.BaseWidget

	container  *fyne.Container
	logEntry   *widget.Entry
	scrollView *container.Scroll

	mu          sync.Mutex
	messages    []string
	maxMessages int
	pending     string
}

// NewLogViewer creates a new log viewer widget
func NewLogViewer() *LogViewer {
	v := &LogViewer{
		maxMessages: 200,
	}

	v.logEntry = widget.NewMultiLineEntry()
	v.logEntry.Disable()
	v.logEntry.Wrapping = fyne.TextWrapWord

	v.scrollView = container.NewScroll(v.logEntry)
	v.scrollView.SetMinSize(fyne.NewSize(0, 90))

	v.container = container.NewBorder(
		widget.NewLabel("Messages (newest first):"),
		nil,
		nil,
		nil,
		v.scrollView,
	)

	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *LogViewer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.container)
}

// Write implements io.Writer. Partial lines are held back until their
// newline arrives.
func (v *LogViewer) Write(p []byte) (int, error) {
	v.mu.Lock()
	lines, rest := splitLines(v.pending + string(p))
	v.pending = rest
	v.mu.Unlock()

	for _, line := range lines {
		v.AddMessage(line)
	}
	return len(p), nil
}

// AddMessage adds a timestamped message
func (v *LogViewer) AddMessage(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.messages = prependMessage(v.messages, fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), message), v.maxMessages)
	text := strings.Join(v.messages, "\n")

	fyne.Do(func() {
		v.logEntry.SetText(text)
		v.scrollView.Offset = fyne.NewPos(0, 0)
		v.scrollView.Refresh()
	})
}

// Clear clears all log messages
func (v *LogViewer) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.messages = v.messages[:0]

	fyne.Do(func() {
		v.logEntry.SetText("")
	})
}

// Log formats and adds a message
func (v *LogViewer) Log(format string, args ...interface{}) {
	v.AddMessage(fmt.Sprintf(format, args...))
}

// splitLines returns the complete non-empty lines of s and the unterminated
// remainder
func splitLines(s string) ([]string, string) {
	var lines []string
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			return lines, s
		}
		if line := strings.TrimSpace(s[:i]); line != "" {
			lines = append(lines, line)
		}
		s = s[i+1:]
	}
}

func prependMessage(messages []string, message string, limit int) []string {
	messages = append([]string{message}, messages...)
	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}
	return messages
}
