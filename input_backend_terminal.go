// input_backend_terminal.go - Raw-mode terminal keyboard fallback

package main

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"golang.org/x/term"
)

// Raw terminals deliver key presses only, never releases. A held key shows
// up as the OS auto-repeat stream, so the note is released once the repeat
// stream has been quiet for longer than the repeat gap.
const (
	TERMINAL_HOLD_MS = 600 // must exceed the OS key-repeat initial delay
	TERMINAL_POLL_MS = 5
)

// TerminalInput reads raw stdin and feeds key bytes into the dispatcher.
// Only instantiated in main.go for interactive use - never in tests.
type TerminalInput struct {
	dispatch *InputDispatcher[byte]
	fd       int
	oldState *term.State
}

func NewTerminalInput(engine *OscEngine, baseFrequency float64) *TerminalInput {
	return &TerminalInput{
		dispatch: NewInputDispatcher(engine, TerminalKeyBindings(), baseFrequency),
	}
}

// Run puts stdin into raw non-blocking mode and loops until Esc or Ctrl-C.
// Space releases the current note immediately; any bound key (re)triggers
// its note. Blocks the calling goroutine; restores the terminal on return.
func (ti *TerminalInput) Run() error {
	ti.fd = int(os.Stdin.Fd())

	// Raw mode disables OS-level echo and line buffering so single key
	// bytes arrive as they are typed.
	oldState, err := term.MakeRaw(ti.fd)
	if err != nil {
		return fmt.Errorf("terminal: failed to set raw mode: %w", err)
	}
	ti.oldState = oldState
	defer ti.restore()

	if err := syscall.SetNonblock(ti.fd, true); err != nil {
		return fmt.Errorf("terminal: failed to set nonblocking stdin: %w", err)
	}
	defer func() { _ = syscall.SetNonblock(ti.fd, false) }()

	fmt.Print("keys a w s e d f t g y h u j play one octave, space releases, esc quits\r\n")

	buf := make([]byte, 1)
	lastPress := time.Now()

	for {
		n, err := syscall.Read(ti.fd, buf)
		if n > 0 {
			b := buf[0]
			switch b {
			case 0x1b, 0x03: // Esc / Ctrl-C
				if key, ok := ti.dispatch.Held(); ok {
					ti.dispatch.KeyUp(key)
				}
				return nil
			case ' ':
				if key, ok := ti.dispatch.Held(); ok {
					ti.dispatch.KeyUp(key)
				}
			default:
				ti.dispatch.KeyDown(b)
				lastPress = time.Now()
			}
			continue
		}
		if err != nil && err != syscall.EAGAIN && err != syscall.EWOULDBLOCK {
			return fmt.Errorf("terminal: stdin read: %w", err)
		}

		// No byte this poll: if the repeat stream for the held key has gone
		// quiet, treat it as the key-up the terminal never sends.
		if key, ok := ti.dispatch.Held(); ok {
			if time.Since(lastPress) > TERMINAL_HOLD_MS*time.Millisecond {
				ti.dispatch.KeyUp(key)
			}
		}
		time.Sleep(TERMINAL_POLL_MS * time.Millisecond)
	}
}

func (ti *TerminalInput) restore() {
	if ti.oldState != nil {
		_ = term.Restore(ti.fd, ti.oldState)
		ti.oldState = nil
	}
}
