// main.go - Main entry point for IntuitionKeys

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
	"flag"
	"fmt"
	"log/slog"
	"os"
)

// logger is the package-wide structured logger. Safe to use before
// initLogger is called; defaults to slog.Default(). Never used on the
// audio render path.
var logger = slog.Default()

// initLogger configures the shared slog logger and calls slog.SetDefault so
// the stdlib log package also routes through the same handler.
func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug, // include file:line in debug mode
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

func boilerPlate() {
	fmt.Println("\nIntuitionKeys - a monophonic live-keyboard sine synthesizer.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionKeys")
	fmt.Println("License: GPLv3 or later")
	fmt.Println()
}

func main() {
	var (
		rate         = flag.Int("rate", DEFAULT_SAMPLE_RATE, "audio sample rate in Hz")
		base         = flag.Float64("base", BASE_FREQUENCY, "base reference pitch in Hz (scale degree 0)")
		terminalMode = flag.Bool("terminal", false, "read keys from the terminal instead of opening a window")
		midiPort     = flag.String("midi", "", "also take notes from a MIDI input port (name substring, or \"auto\")")
		debug        = flag.Bool("debug", false, "enable debug logging (adds source location)")
	)
	flag.Parse()

	initLogger(*debug)
	boilerPlate()

	engine, err := NewOscEngine(*rate)
	if err != nil {
		logger.Error("engine init failed", "err", err)
		os.Exit(1)
	}

	output, err := NewAudioOutput(AUDIO_BACKEND_OTO, *rate, engine)
	if err != nil {
		logger.Error("audio init failed", "err", err)
		os.Exit(1)
	}
	output.Start()
	defer output.Close()
	logger.Info("audio started", "rate", *rate, "base_hz", *base)

	if *midiPort != "" {
		midiIn, err := NewMIDIInput(NewInputDispatcher(engine, MIDIKeyBindings(), *base))
		if err != nil {
			logger.Error("midi init failed", "err", err)
			os.Exit(1)
		}
		if err := midiIn.Open(*midiPort); err != nil {
			logger.Warn("midi input unavailable", "err", err)
			midiIn.Close()
		} else {
			defer midiIn.Close()
		}
	}

	if *terminalMode {
		err = NewTerminalInput(engine, *base).Run()
	} else {
		err = RunKeyboardWindow(engine, *base)
	}
	if err != nil {
		logger.Error("input loop failed", "err", err)
		os.Exit(1)
	}
}
