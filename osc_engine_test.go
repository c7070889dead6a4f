// osc_engine_test.go - Oscillator engine behaviour tests

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
	"math"
	"testing"
)

func newTestEngine(t *testing.T) *OscEngine {
	t.Helper()
	eng, err := NewOscEngine(DEFAULT_SAMPLE_RATE)
	if err != nil {
		t.Fatalf("NewOscEngine(%d): %v", DEFAULT_SAMPLE_RATE, err)
	}
	return eng
}

func TestOscEngine_RejectsInvalidConfig(t *testing.T) {
	for _, rate := range []int{0, -1, -48000} {
		if _, err := NewOscEngine(rate); err == nil {
			t.Errorf("NewOscEngine(%d): expected error, got nil", rate)
		}
	}

	eng := newTestEngine(t)
	for _, freq := range []float64{0, -1, -440} {
		if err := eng.RequestNote(freq); err == nil {
			t.Errorf("RequestNote(%g): expected error, got nil", freq)
		}
	}
	// A rejected request must not change published state.
	if freq, held := eng.CurrentNote(); freq != 0 || held {
		t.Errorf("rejected request leaked state: freq=%g held=%v", freq, held)
	}
}

func TestOscEngine_SampleRateFixedAtConstruction(t *testing.T) {
	for _, rate := range []int{44100, 48000, 96000} {
		eng, err := NewOscEngine(rate)
		if err != nil {
			t.Fatalf("NewOscEngine(%d): %v", rate, err)
		}
		if got := eng.SampleRate(); got != rate {
			t.Errorf("SampleRate() = %d, want %d", got, rate)
		}
	}
}

func TestOscEngine_SilentOnIdle(t *testing.T) {
	eng := newTestEngine(t)

	// Never-started engine writes nothing and leaves the buffer's prior
	// contents alone (the real callback pre-zeroes; a sentinel proves the
	// early return does not touch the tail).
	buf := make([]float32, 256)
	for i := range buf {
		buf[i] = 7
	}
	if n := eng.FillBuffer(buf, len(buf)); n != 0 {
		t.Fatalf("FillBuffer on idle engine wrote %d frames, want 0", n)
	}
	for i, s := range buf {
		if s != 7 {
			t.Fatalf("frame %d overwritten to %g on idle engine", i, s)
		}
	}
}

func TestOscEngine_PhaseStaysBounded(t *testing.T) {
	eng := newTestEngine(t)
	if err := eng.RequestNote(BASE_FREQUENCY); err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, 1024)
	for _, frames := range []int{1, 7, 64, 480, 1024} {
		for call := 0; call < 100; call++ {
			eng.FillBuffer(buf, frames)
			if eng.phase < 0 || eng.phase >= 1 {
				t.Fatalf("phase %g out of [0,1) after %d-frame fill", eng.phase, frames)
			}
		}
	}

	// Phase increment >= 1 (frequency above the sample rate) must still wrap
	// into [0,1) every sample.
	if err := eng.RequestNote(2.5 * DEFAULT_SAMPLE_RATE); err != nil {
		t.Fatal(err)
	}
	for call := 0; call < 1000; call++ {
		eng.FillBuffer(buf, 3)
		if eng.phase < 0 || eng.phase >= 1 {
			t.Fatalf("phase %g out of [0,1) with increment >= 1", eng.phase)
		}
	}
}

func TestOscEngine_MonophonicOverrideKeepsPhase(t *testing.T) {
	eng := newTestEngine(t)
	if err := eng.RequestNote(440); err != nil {
		t.Fatal(err)
	}
	buf := make([]float32, 128)
	eng.FillBuffer(buf, 100)

	before := eng.phase
	if before == 0 {
		t.Fatal("test needs a mid-cycle phase")
	}

	// Re-pitching without a release must not reset the accumulator.
	if err := eng.RequestNote(880); err != nil {
		t.Fatal(err)
	}
	if eng.phase != before {
		t.Fatalf("RequestNote reset phase: %g -> %g", before, eng.phase)
	}

	// The next sample continues from the old phase at the new increment.
	one := make([]float32, 1)
	eng.FillBuffer(one, 1)
	wantSample := float32(math.Sin(before*2*math.Pi)) * AMPLITUDE_SCALE
	if one[0] != wantSample {
		t.Errorf("first sample after override = %g, want %g (sine continuity)", one[0], wantSample)
	}
	wantPhase := math.Mod(before+880.0/DEFAULT_SAMPLE_RATE, 1.0)
	if math.Abs(eng.phase-wantPhase) > 1e-12 {
		t.Errorf("phase after override advance = %g, want %g", eng.phase, wantPhase)
	}
}

func TestOscEngine_ClickFreeRelease(t *testing.T) {
	const freq = 440.0
	inc := freq / DEFAULT_SAMPLE_RATE

	eng := newTestEngine(t)
	if err := eng.RequestNote(freq); err != nil {
		t.Fatal(err)
	}
	warm := make([]float32, 16)
	eng.FillBuffer(warm, len(warm)) // move mid-cycle

	eng.ReleaseNote()

	buf := make([]float32, DEFAULT_SAMPLE_RATE) // pre-zeroed, one second
	n := eng.FillBuffer(buf, len(buf))

	// Must keep sounding until the cycle runs out, then stop well before the
	// buffer does: at most one full cycle of samples.
	if n == 0 {
		t.Fatal("release silenced output immediately, cycle was cut off")
	}
	maxFrames := int(math.Ceil(1.0/inc)) + 1
	if n >= maxFrames {
		t.Fatalf("release kept sounding for %d frames, want < %d (one cycle)", n, maxFrames)
	}
	if eng.phase >= RELEASE_EPSILON {
		t.Errorf("engine stopped with phase %g, want < %g", eng.phase, RELEASE_EPSILON)
	}

	// No discontinuity beyond the waveform's own per-sample slope, including
	// the final step into silence.
	maxDelta := 2 * math.Pi * inc * AMPLITUDE_SCALE * 1.05
	for i := 1; i < n; i++ {
		if d := math.Abs(float64(buf[i] - buf[i-1])); d > maxDelta {
			t.Fatalf("sample step %d->%d jumps by %g, max natural delta %g", i-1, i, d, maxDelta)
		}
	}
	if last := math.Abs(float64(buf[n-1])); last > maxDelta {
		t.Errorf("last sample before silence is %g, larger than natural delta %g", last, maxDelta)
	}
	for i := n; i < len(buf); i++ {
		if buf[i] != 0 {
			t.Fatalf("frame %d written after silence point", i)
		}
	}

	// And it stays silent on subsequent fills.
	if n := eng.FillBuffer(buf, 64); n != 0 {
		t.Errorf("engine resumed after release completed: wrote %d frames", n)
	}
}

func TestOscEngine_RetriggerDuringRelease(t *testing.T) {
	eng := newTestEngine(t)
	if err := eng.RequestNote(440); err != nil {
		t.Fatal(err)
	}
	buf := make([]float32, 32)
	eng.FillBuffer(buf, len(buf))

	eng.ReleaseNote()
	// Retrigger before the cycle runs out cancels the pending silence.
	if err := eng.RequestNote(550); err != nil {
		t.Fatal(err)
	}

	big := make([]float32, 4096)
	if n := eng.FillBuffer(big, len(big)); n != len(big) {
		t.Fatalf("retriggered note stopped after %d frames, want full %d", n, len(big))
	}
}

func TestOscEngine_ReleaseWhileSilentIsNoOp(t *testing.T) {
	eng := newTestEngine(t)
	eng.ReleaseNote()
	buf := make([]float32, 64)
	if n := eng.FillBuffer(buf, len(buf)); n != 0 {
		t.Errorf("release on silent engine produced %d frames", n)
	}
}

// A 440 Hz note at 48000 Hz completes one cycle every 48000/440 = 109.09
// samples, so after round(109.09) single-sample advances the phase must be
// back within a whisker of where it started - not after 48000 samples.
func TestOscEngine_PhaseReturnsAfterOneCycle(t *testing.T) {
	eng := newTestEngine(t)
	if err := eng.RequestNote(440); err != nil {
		t.Fatal(err)
	}

	wantInc := 440.0 / 48000.0 // ~0.0091667
	if gotInc := eng.cmd.Load().phaseInc; math.Abs(gotInc-wantInc) > 1e-9 {
		t.Fatalf("phase increment = %g, want %g", gotInc, wantInc)
	}

	steps := int(math.Round(48000.0 / 440.0)) // 109
	one := make([]float32, 1)
	for i := 0; i < steps; i++ {
		eng.FillBuffer(one, 1)
	}

	dist := math.Min(eng.phase, 1-eng.phase) // distance to the cycle start
	if dist > 1e-3 {
		t.Errorf("phase %g after %d steps, want within 1e-3 of cycle start", eng.phase, steps)
	}
}

func TestOscEngine_AmplitudeHeadroom(t *testing.T) {
	eng := newTestEngine(t)
	if err := eng.RequestNote(997); err != nil { // deliberately non-divisor pitch
		t.Fatal(err)
	}
	buf := make([]float32, 4800)
	n := eng.FillBuffer(buf, len(buf))
	for i := 0; i < n; i++ {
		if a := math.Abs(float64(buf[i])); a > AMPLITUDE_SCALE+1e-6 {
			t.Fatalf("sample %d amplitude %g exceeds scale %g", i, a, float64(AMPLITUDE_SCALE))
		}
	}
}

func TestOscEngine_FillBufferValidation(t *testing.T) {
	eng := newTestEngine(t)
	if err := eng.RequestNote(440); err != nil {
		t.Fatal(err)
	}

	if n := eng.FillBuffer(nil, 128); n != 0 {
		t.Errorf("nil buffer wrote %d frames", n)
	}
	buf := make([]float32, 64)
	if n := eng.FillBuffer(buf, -5); n != 0 {
		t.Errorf("negative frame count wrote %d frames", n)
	}
	// Frame count beyond capacity clamps to the buffer length.
	if n := eng.FillBuffer(buf, 1<<20); n != len(buf) {
		t.Errorf("oversized frame count wrote %d frames, want %d", n, len(buf))
	}
}
