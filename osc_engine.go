// osc_engine.go - Monophonic sine oscillator engine for IntuitionKeys

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionKeys
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
)

const (
	DEFAULT_SAMPLE_RATE = 48000
	BASE_FREQUENCY      = 440.0 // A4 reference pitch

	// RELEASE_EPSILON is the phase window near zero in which a released note
	// is allowed to fall silent. A tolerance rather than an exact zero test:
	// floating-point phase arithmetic rarely lands exactly on 0.
	RELEASE_EPSILON = 0.001

	// AMPLITUDE_SCALE leaves headroom below full scale so the mono stream
	// never clips.
	AMPLITUDE_SCALE = 0.5
)

// noteCommand is the immutable control record published from the event
// thread to the audio thread. Publishing the whole record through one
// atomic pointer swap means the audio thread can never observe a
// half-updated frequency/gate pair.
type noteCommand struct {
	phaseInc  float64 // frequency / sampleRate, per-sample phase advance
	frequency float64 // last requested pitch in Hz, informational
	held      bool    // true between note-on and note-off
}

// OscEngine generates a continuous sine stream one buffer at a time. The
// phase accumulator lives in [0,1) and belongs exclusively to the audio
// thread; control state arrives via the atomic command slot.
//
// A released note is not cut off mid-cycle: FillBuffer keeps emitting until
// the phase wraps back below RELEASE_EPSILON, which removes the audible
// click a truncated waveform would produce.
type OscEngine struct {
	phase        float64 // audio thread only
	samplePeriod float64 // 1/sampleRate, fixed at construction
	sampleRate   int

	cmd atomic.Pointer[noteCommand] // control side writes, audio thread reads

	// ctrl serializes the control-side writers. More than one input backend
	// can drive the engine at once (computer keyboard plus MIDI), and
	// ReleaseNote republishes the current command - without this lock a
	// release on one backend could overwrite a newer note-on from the
	// other with stale state. The audio thread never takes it.
	ctrl sync.Mutex
}

func NewOscEngine(sampleRate int) (*OscEngine, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("osc: sample rate must be positive, got %d", sampleRate)
	}
	eng := &OscEngine{
		samplePeriod: 1.0 / float64(sampleRate),
		sampleRate:   sampleRate,
	}
	eng.cmd.Store(&noteCommand{})
	return eng, nil
}

// RequestNote starts (or re-pitches) the note. The phase accumulator is
// deliberately not reset: retriggering while a note is sounding continues
// from the current point in the cycle instead of introducing a step.
func (eng *OscEngine) RequestNote(frequency float64) error {
	if frequency <= 0 {
		return fmt.Errorf("osc: frequency must be positive, got %g", frequency)
	}
	eng.ctrl.Lock()
	eng.cmd.Store(&noteCommand{
		phaseInc:  eng.samplePeriod * frequency,
		frequency: frequency,
		held:      true,
	})
	eng.ctrl.Unlock()
	return nil
}

// ReleaseNote drops the gate but keeps the phase increment so the current
// cycle can run out. Silence begins when FillBuffer next sees the phase
// wrap below RELEASE_EPSILON.
func (eng *OscEngine) ReleaseNote() {
	eng.ctrl.Lock()
	cur := eng.cmd.Load()
	eng.cmd.Store(&noteCommand{
		phaseInc:  cur.phaseInc,
		frequency: cur.frequency,
		held:      false,
	})
	eng.ctrl.Unlock()
}

// CurrentNote reports the last published command. Display/diagnostic use
// only; synthesis reads the command inside FillBuffer.
func (eng *OscEngine) CurrentNote() (frequency float64, held bool) {
	cur := eng.cmd.Load()
	return cur.frequency, cur.held
}

// SampleRate returns the fixed construction-time rate.
func (eng *OscEngine) SampleRate() int {
	return eng.sampleRate
}

// FillBuffer writes up to frameCount mono float32 samples and returns how
// many were written. Callers pre-zero buf, so an early return on note-off
// leaves the tail reading as silence.
//
// This runs on the audio callback deadline: no locks, no allocation, no
// I/O. The command slot is loaded once per call (the same cadence the
// backend uses for its source pointer), so a control write landing
// mid-buffer is picked up on the next callback, never torn.
func (eng *OscEngine) FillBuffer(buf []float32, frameCount int) int {
	if frameCount < 0 {
		return 0
	}
	if frameCount > len(buf) {
		frameCount = len(buf)
	}
	cmd := eng.cmd.Load()
	for i := 0; i < frameCount; i++ {
		if !cmd.held && eng.phase < RELEASE_EPSILON {
			return i
		}
		buf[i] = float32(math.Sin(eng.phase*2*math.Pi)) * AMPLITUDE_SCALE
		// Wrap with mod rather than subtract: handles phase increments >= 1
		// and phase landing exactly on 1 alike, keeping phase in [0,1).
		eng.phase = math.Mod(eng.phase+cmd.phaseInc, 1.0)
	}
	return frameCount
}
