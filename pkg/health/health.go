// Package health exposes liveness and readiness endpoints for the local
// server. Readiness runs its checks on demand; for the storefront that is
// essentially "can we reach the commerce gateway".
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// CheckFunc reports whether a dependency is usable.
type CheckFunc func(ctx context.Context) error

type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc
}

// Service aggregates readiness checks behind HTTP endpoints.
type Service struct {
	mu     sync.RWMutex
	ready  bool
	checks []check
}

// New creates a Service that reports not-ready until SetReady(true).
func New() *Service {
	return &Service{}
}

// AddReadinessCheck registers a named dependency check with a timeout.
func (s *Service) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks = append(s.checks, check{name: name, timeout: timeout, fn: fn})
}

// SetReady flips the readiness gate. Shutdown flips it back to false to
// drain before the listener stops.
func (s *Service) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// LiveEndpoint always reports OK while the process is running.
func (s *Service) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	writeStatus(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ReadyEndpoint reports OK only when the gate is open and every registered
// check passes.
func (s *Service) ReadyEndpoint(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	ready := s.ready
	checks := make([]check, len(s.checks))
	copy(checks, s.checks)
	s.mu.RUnlock()

	if !ready {
		writeStatus(w, http.StatusServiceUnavailable, map[string]string{"status": "shutting down"})
		return
	}

	failures := make(map[string]string)
	for _, c := range checks {
		ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
		if err := c.fn(ctx); err != nil {
			failures[c.name] = err.Error()
		}
		cancel()
	}

	if len(failures) > 0 {
		writeStatus(w, http.StatusServiceUnavailable, failures)
		return
	}
	writeStatus(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeStatus(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
