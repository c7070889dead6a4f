//go:build headless

package main

type OtoPlayer struct {
	started bool
	engine  *OscEngine
}

func NewOtoPlayer(sampleRate int, engine *OscEngine) (*OtoPlayer, error) {
	return &OtoPlayer{engine: engine}, nil
}

func (op *OtoPlayer) Read(p []byte) (n int, err error) {
	return len(p), nil
}

func (op *OtoPlayer) Start() {
	op.started = true
}

func (op *OtoPlayer) Stop() {
	op.started = false
}

func (op *OtoPlayer) Close() {
	op.started = false
}

func (op *OtoPlayer) IsStarted() bool {
	return op.started
}
