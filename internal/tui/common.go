// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Common key string constants.
const (
	KeyCtrlC = "ctrl+c"
	KeyTab   = "tab"
	KeyEnter = "enter"
	KeyEsc   = "esc"
)

// IsTTY returns true if stdout is connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Run starts the TUI program with the given model.
// If stdout is a TTY, it runs in alternate screen mode.
// Otherwise, it delegates to runFallback for non-interactive behavior.
// start is called with the running program before the event loop takes
// over, letting callers attach out-of-loop message sources.
func Run(m tea.Model, start func(*tea.Program)) error {
	if !IsTTY() {
		return runFallback()
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if start != nil {
		start(p)
	}
	_, err := p.Run()
	return err
}

// runFallback handles non-TTY execution.
func runFallback() error {
	fmt.Println("Non-TTY environment detected.")
	fmt.Println("Use 'handl login', 'handl logout' or 'handl whoami' for non-interactive use.")
	return nil
}

// Dispatcher forwards messages into a running Bubble Tea program from
// goroutines outside its event loop (the API client's auth-expired
// handler fires on whatever goroutine issued the request). Messages
// sent before Attach are dropped.
type Dispatcher struct {
	mu sync.Mutex
	p  *tea.Program
}

// Attach binds the dispatcher to a running program.
func (d *Dispatcher) Attach(p *tea.Program) {
	d.mu.Lock()
	d.p = p
	d.mu.Unlock()
}

// Send delivers msg to the program, if one is attached.
func (d *Dispatcher) Send(msg tea.Msg) {
	d.mu.Lock()
	p := d.p
	d.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}
