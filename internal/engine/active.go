package engine

import (
	"errors"
	"sync"
)

// ErrEngineRunning is returned when an engine is started while another one
// (or the same one) is already being driven.
var ErrEngineRunning = errors.New("engine: another engine is already running")

// Only one engine may be driven per process. Schedulers that can only call a
// zero-argument function reach it through this slot.
var (
	activeMu sync.Mutex
	active   *Engine
)

func claimActive(e *Engine) error {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active != nil {
		return ErrEngineRunning
	}
	active = e
	return nil
}

func releaseActive(e *Engine) {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active == e {
		active = nil
	}
}

// Active returns the engine currently being driven, or nil.
func Active() *Engine {
	activeMu.Lock()
	defer activeMu.Unlock()
	return active
}

// Loop ticks the active engine. It is the callback handed to a Scheduler.
func Loop() {
	if e := Active(); e != nil {
		e.Tick()
	}
}
