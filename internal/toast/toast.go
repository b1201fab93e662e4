// Package toast implements the ephemeral status message channel: a single
// live toast that is replaced by every new emission and self-expires a fixed
// interval after it became visible.
package toast

import (
	"sync"
	"time"
)

// Kind classifies a toast message.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
	Warning Kind = "warning"
)

// Toast is a snapshot of the current status message.
type Toast struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
	Visible bool   `json:"visible"`
}

// Notifier is the side channel every store and orchestrator emits outcomes to.
type Notifier interface {
	Emit(message string, kind Kind)
}

// Emitter holds at most one visible toast. A new emission pre-empts the
// current toast and cancels its pending expiry, so only the latest toast's
// timer is ever live.
type Emitter struct {
	mu      sync.Mutex
	ttl     time.Duration
	seq     uint64
	current Toast
	timer   *time.Timer
}

// DefaultTTL is the standard auto-dismiss window.
const DefaultTTL = 3 * time.Second

// NewEmitter creates an Emitter whose toasts expire ttl after emission.
// A non-positive ttl falls back to DefaultTTL.
func NewEmitter(ttl time.Duration) *Emitter {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Emitter{ttl: ttl}
}

// Emit replaces the visible toast with a new one and schedules its expiry.
// The ttl is measured from this moment, not from any earlier toast.
func (e *Emitter) Emit(message string, kind Kind) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.seq++
	seq := e.seq
	e.current = Toast{Message: message, Kind: kind, Visible: true}

	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.ttl, func() { e.expire(seq) })
}

// expire hides the toast only if no newer emission superseded it.
func (e *Emitter) expire(seq uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if seq == e.seq {
		e.current.Visible = false
	}
}

// Current returns a snapshot of the toast state.
func (e *Emitter) Current() Toast {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}
