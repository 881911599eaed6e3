package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const hotkeysText = `[Project Page: https://codeberg.org/snonux/aksharmala](https://codeberg.org/snonux/aksharmala)

---

## Sections
**1/१** स्वर (Swar)  
**2/२** व्यञ्जन (Byanjan)  
**3/३** English A-Z  
**4/४** बाह्रखरी (Barakhari)  
**5/५** नेपाली अंक  
**6/६** English Numbers  
**0/०** Home  

## In a section
**→** Next tile  
**←** Previous tile  
**Space** Play the highlighted tile again  
**Enter** Show details of the highlighted tile  
**Esc** Close the details  
**l/ल** Start the fullscreen lesson  

## In a lesson
**→** Next  
**←** Previous  
**Space** Replay  
**Esc** Close the lesson  

## Playback
**s/स** Stop  

## Help
**h/ह** Show hotkeys  
**c** Close dialog  
**q** Quit application  

---
Press **c** to close this dialog`

// onShowHotkeys shows the shortcut reference
func (a *Application) onShowHotkeys() {
	content := widget.NewRichTextFromMarkdown(hotkeysText)
	content.Wrapping = fyne.TextWrapWord

	scroll := container.NewScroll(container.NewPadded(content))
	scroll.SetMinSize(fyne.NewSize(520, 480))

	d := dialog.NewCustom("Keyboard Shortcuts", "Close", scroll, a.window)

	dialogOpen := true
	originalRuneHandler := a.window.Canvas().OnTypedRune()

	a.window.Canvas().SetOnTypedRune(func(r rune) {
		if dialogOpen && (r == 'c' || r == 'C') {
			d.Hide()
			return
		}
		if originalRuneHandler != nil {
			originalRuneHandler(r)
		}
	})

	d.SetOnClosed(func() {
		dialogOpen = false
		a.setupKeyboardShortcuts()
	})
	d.Show()
}
