// input_dispatcher.go - Monophonic key-event arbitration

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

// InputDispatcher translates discrete key events from one input backend into
// oscillator commands. The key type is opaque to the dispatcher, so the same
// arbitration serves ebiten key codes, raw terminal bytes and MIDI note
// numbers.
//
// It is monophonic with a single held-key record: pressing a second key
// while the first is down overwrites both the pitch and the record, and
// releasing the first key afterwards is ignored. There is no return to the
// previous note when the second key lifts - last press wins.
//
// Each dispatcher instance belongs to exactly one event-delivery goroutine;
// backends that receive events off their own goroutine (MIDI) serialize
// calls themselves.
type InputDispatcher[T comparable] struct {
	engine        *OscEngine
	bindings      map[T]int // key -> scale degree; populated once, read-only
	baseFrequency float64

	heldKey T
	heldSet bool
}

func NewInputDispatcher[T comparable](engine *OscEngine, bindings map[T]int, baseFrequency float64) *InputDispatcher[T] {
	return &InputDispatcher[T]{
		engine:        engine,
		bindings:      bindings,
		baseFrequency: baseFrequency,
	}
}

// KeyDown starts the note bound to key. Keys absent from the binding table
// are ignored entirely: no frequency is computed and no state changes.
func (d *InputDispatcher[T]) KeyDown(key T) {
	degree, ok := d.bindings[key]
	if !ok {
		return
	}
	d.heldKey = key
	d.heldSet = true
	// Frequency is positive by construction here, so the contract check in
	// RequestNote cannot fire.
	_ = d.engine.RequestNote(ScaleDegreeFrequency(d.baseFrequency, degree))
}

// KeyUp releases the note only if key is the currently-held key. A release
// for any other key is dropped; that is what stops an already-superseded
// key's key-up from silencing a note the player still intends.
func (d *InputDispatcher[T]) KeyUp(key T) {
	if !d.heldSet || key != d.heldKey {
		return
	}
	d.heldSet = false
	d.engine.ReleaseNote()
}

// Held reports the currently tracked key, if any.
func (d *InputDispatcher[T]) Held() (T, bool) {
	return d.heldKey, d.heldSet
}

// Degree looks up the scale degree bound to key.
func (d *InputDispatcher[T]) Degree(key T) (int, bool) {
	degree, ok := d.bindings[key]
	return degree, ok
}
