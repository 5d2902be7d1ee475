// Package term wraps a tcell screen for the terminal preview of the view
// layer. It exposes just the operations the preview needs: cell and text
// drawing, size queries, and raw event polling.
package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Style selects terminal text attributes for drawing.
type Style struct {
	Bold    bool
	Dim     bool
	Reverse bool
}

// Terminal wraps a tcell screen.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// NewTerminal creates a terminal over the real screen.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewSimulation creates a terminal over a simulated screen for tests.
func NewSimulation() *Terminal {
	return &Terminal{screen: tcell.NewSimulationScreen("")}
}

// Init initializes the screen.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Init()
}

// Shutdown restores the terminal state.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

// Size returns the screen dimensions in cells.
func (t *Terminal) Size() (width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

// Clear erases the screen.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

// Show flushes pending drawing to the terminal.
func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

// SetCell draws one rune at the given position.
func (t *Terminal) SetCell(x, y int, r rune, style Style) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.SetContent(x, y, r, nil, convertStyle(style))
}

// DrawText draws a string starting at the given position and returns the
// x position after the last drawn cell. Each grapheme cluster occupies its
// cell width, so wide runes stay aligned with measured layout widths.
func (t *Terminal) DrawText(x, y int, text string, style Style) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := convertStyle(style)
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		t.screen.SetContent(x, y, runes[0], runes[1:], st)
		x += g.Width()
	}
	return x
}

// HideCursor hides the terminal cursor.
func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.HideCursor()
}

// ShowCursor places the terminal cursor.
func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.ShowCursor(x, y)
}

// PollEvent blocks until the next terminal event.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// PostQuit interrupts a blocked PollEvent during shutdown.
func (t *Terminal) PostQuit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.PostEventWait(tcell.NewEventInterrupt(nil))
}

func convertStyle(s Style) tcell.Style {
	style := tcell.StyleDefault
	if s.Bold {
		style = style.Bold(true)
	}
	if s.Dim {
		style = style.Dim(true)
	}
	if s.Reverse {
		style = style.Reverse(true)
	}
	return style
}
