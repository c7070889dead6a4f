// keymap.go - Key binding tables and equal-tempered pitch math

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

import "math"

const (
	SEMITONES_PER_OCTAVE = 12
	MIDI_NOTE_A4         = 69 // MIDI note number of the 440 Hz reference
)

// noteNames indexes a scale degree (mod 12) relative to A.
var noteNames = [SEMITONES_PER_OCTAVE]string{
	"A", "A#", "B", "C", "C#", "D", "D#", "E", "F", "F#", "G", "G#",
}

// ScaleDegreeFrequency maps an equal-tempered semitone offset from the base
// pitch to a frequency in Hz. Degrees outside 0-11 are valid and simply
// land in neighbouring octaves (degree 12 is exactly one octave up).
func ScaleDegreeFrequency(baseFrequency float64, degree int) float64 {
	return baseFrequency * math.Pow(2, float64(degree)/SEMITONES_PER_OCTAVE)
}

// NoteName renders a scale degree as a pitch-class name for display.
func NoteName(degree int) string {
	idx := degree % SEMITONES_PER_OCTAVE
	if idx < 0 {
		idx += SEMITONES_PER_OCTAVE
	}
	return noteNames[idx]
}

// TerminalKeyBindings is the fixed one-octave chromatic layout for the raw
// terminal input backend: home row plays the scale, the row above supplies
// the sharps. Built once at startup, read-only thereafter.
func TerminalKeyBindings() map[byte]int {
	return map[byte]int{
		'a': 0,  // A
		'w': 1,  // A#
		's': 2,  // B
		'e': 3,  // C
		'd': 4,  // C#
		'f': 5,  // D
		't': 6,  // D#
		'g': 7,  // E
		'y': 8,  // F
		'h': 9,  // F#
		'u': 10, // G
		'j': 11, // G#
	}
}

// MIDIKeyBindings maps every MIDI note number to its semitone offset from
// A4, so the standard dispatcher arbitration and frequency math serve MIDI
// input unchanged (note 69 -> degree 0 -> base frequency).
func MIDIKeyBindings() map[int]int {
	m := make(map[int]int, 128)
	for note := 0; note < 128; note++ {
		m[note] = note - MIDI_NOTE_A4
	}
	return m
}
