//go:build !headless

// midi_input.go - MIDI note input via gomidi/rtmidi

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionKeys
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"strings"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// Virtual/system ports that are never auto-connected.
var excludedPortPatterns = []string{"Midi Through", "Through Port", "Dummy"}

// MIDIInput feeds NoteOn/NoteOff from a hardware keyboard into the same
// monophonic dispatcher the computer keyboard uses, keyed by MIDI note
// number. The gomidi listener runs on its own goroutine, so dispatcher
// calls are serialized under a mutex here.
type MIDIInput struct {
	mu       sync.Mutex
	drv      *rtmididrv.Driver
	inPort   drivers.In
	stopFn   func()
	dispatch *InputDispatcher[int]
}

func NewMIDIInput(dispatch *InputDispatcher[int]) (*MIDIInput, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	return &MIDIInput{drv: drv, dispatch: dispatch}, nil
}

// Open connects to the first input port whose name contains pattern
// (case-insensitive). Pattern "auto" or "" picks the first non-virtual port.
func (m *MIDIInput) Open(pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ins, err := m.drv.Ins()
	if err != nil {
		return fmt.Errorf("midi: list inputs: %w", err)
	}

	var found drivers.In
	for _, in := range ins {
		name := in.String()
		if portExcluded(name) {
			continue
		}
		if pattern == "" || pattern == "auto" || containsCI(name, pattern) {
			found = in
			break
		}
	}
	if found == nil {
		return fmt.Errorf("midi: no input port matching %q", pattern)
	}
	if err := found.Open(); err != nil {
		return fmt.Errorf("midi: open %q: %w", found.String(), err)
	}

	stop, err := midi.ListenTo(found, func(msg midi.Message, _ int32) {
		var ch, key, vel uint8
		if msg.GetNoteStart(&ch, &key, &vel) {
			m.mu.Lock()
			m.dispatch.KeyDown(int(key))
			m.mu.Unlock()
		} else if msg.GetNoteEnd(&ch, &key) {
			m.mu.Lock()
			m.dispatch.KeyUp(int(key))
			m.mu.Unlock()
		}
	}, midi.HandleError(func(listenErr error) {
		logger.Warn("midi: listener error", "err", listenErr)
	}))
	if err != nil {
		_ = found.Close()
		return fmt.Errorf("midi: listen %q: %w", found.String(), err)
	}

	m.inPort = found
	m.stopFn = stop
	logger.Info("midi: connected", "device", found.String())
	return nil
}

// Close stops the listener, releases any sounding note and shuts the driver.
func (m *MIDIInput) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopFn != nil {
		m.stopFn()
		m.stopFn = nil
	}
	if m.inPort != nil {
		_ = m.inPort.Close()
		m.inPort = nil
	}
	if key, ok := m.dispatch.Held(); ok {
		m.dispatch.KeyUp(key)
	}
	m.drv.Close()
}

func portExcluded(name string) bool {
	for _, pat := range excludedPortPatterns {
		if containsCI(name, pat) {
			return true
		}
	}
	return false
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
