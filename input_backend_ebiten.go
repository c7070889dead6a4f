//go:build !headless

// input_backend_ebiten.go - Ebiten window and keyboard input backend

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
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// noteKeys is the fixed polling/legend order: one chromatic octave up from
// the base pitch, home row for the scale, the row above for the sharps.
var noteKeys = []ebiten.Key{
	ebiten.KeyA, ebiten.KeyW, ebiten.KeyS, ebiten.KeyE,
	ebiten.KeyD, ebiten.KeyF, ebiten.KeyT, ebiten.KeyG,
	ebiten.KeyY, ebiten.KeyH, ebiten.KeyU, ebiten.KeyJ,
}

// EbitenKeyBindings maps the playable keys to scale degrees 0-11.
// Built once at startup, read-only thereafter.
func EbitenKeyBindings() map[ebiten.Key]int {
	m := make(map[ebiten.Key]int, len(noteKeys))
	for degree, key := range noteKeys {
		m[key] = degree
	}
	return m
}

// KeyboardWindow is the ebiten game driving the event-thread side: it polls
// key edges every update tick and forwards them to the dispatcher. Drawing
// is a plain text overlay; the engine never depends on it.
type KeyboardWindow struct {
	engine   *OscEngine
	dispatch *InputDispatcher[ebiten.Key]
}

func NewKeyboardWindow(engine *OscEngine, baseFrequency float64) *KeyboardWindow {
	return &KeyboardWindow{
		engine:   engine,
		dispatch: NewInputDispatcher(engine, EbitenKeyBindings(), baseFrequency),
	}
}

func (kw *KeyboardWindow) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for _, key := range noteKeys {
		if inpututil.IsKeyJustPressed(key) {
			kw.dispatch.KeyDown(key)
		}
	}
	for _, key := range noteKeys {
		if inpututil.IsKeyJustReleased(key) {
			kw.dispatch.KeyUp(key)
		}
	}
	return nil
}

func (kw *KeyboardWindow) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff})

	face := basicfont.Face7x13
	white := color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	green := color.RGBA{R: 0x40, G: 0xe0, B: 0x80, A: 0xff}
	grey := color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

	text.Draw(screen, "IntuitionKeys - monophonic sine synth", face, 16, 24, white)
	text.Draw(screen, "keys  A W S E D F T G Y H U J   one octave up from the base pitch", face, 16, 48, grey)
	text.Draw(screen, fmt.Sprintf("rate  %d Hz    esc  quit", kw.engine.SampleRate()), face, 16, 64, grey)

	frequency, held := kw.engine.CurrentNote()
	switch {
	case held:
		line := fmt.Sprintf("note  %s  %.2f Hz", kw.heldNoteName(), frequency)
		text.Draw(screen, line, face, 16, 96, green)
	case frequency > 0:
		text.Draw(screen, fmt.Sprintf("note  released  (%.2f Hz)", frequency), face, 16, 96, grey)
	default:
		text.Draw(screen, "note  silent", face, 16, 96, grey)
	}
}

func (kw *KeyboardWindow) heldNoteName() string {
	key, ok := kw.dispatch.Held()
	if !ok {
		return "?"
	}
	degree, ok := kw.dispatch.Degree(key)
	if !ok {
		return "?"
	}
	return NoteName(degree)
}

func (kw *KeyboardWindow) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 480, 120
}

// RunKeyboardWindow opens the window and blocks on the event loop until the
// user quits. Must be called from the main goroutine.
func RunKeyboardWindow(engine *OscEngine, baseFrequency float64) error {
	ebiten.SetWindowSize(480, 120)
	ebiten.SetWindowTitle("IntuitionKeys (c) 2024 - 2026 Zayn Otley")
	ebiten.SetRunnableOnUnfocused(true)
	err := ebiten.RunGame(NewKeyboardWindow(engine, baseFrequency))
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
