//go:build headless

package main

import "errors"

// Headless builds have no window and no MIDI driver; the terminal backend
// is the only interactive input.

func RunKeyboardWindow(engine *OscEngine, baseFrequency float64) error {
	return errors.New("built with -tags headless: no window backend, use -terminal")
}

type MIDIInput struct{}

func NewMIDIInput(dispatch *InputDispatcher[int]) (*MIDIInput, error) {
	return nil, errors.New("built with -tags headless: no MIDI backend")
}

func (m *MIDIInput) Open(pattern string) error { return nil }

func (m *MIDIInput) Close() {}
