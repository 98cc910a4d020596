package scan

import (
	"strings"
	"sync"
)

// ManualAdapter handles operator-typed identifiers from a dedicated search
// field. Unlike the timer-driven adapters it is purely synchronous: one call
// to Submit per operator action.
type ManualAdapter struct {
	submit SubmitFunc

	mu     sync.Mutex
	active bool
}

// NewManualAdapter creates a manual-entry adapter.
func NewManualAdapter(submit SubmitFunc) *ManualAdapter {
	return &ManualAdapter{submit: submit}
}

// Start enables manual submission. Idempotent.
func (m *ManualAdapter) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = true
}

// Stop disables manual submission. Idempotent and safe without a prior Start.
func (m *ManualAdapter) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = false
}

// Active reports whether manual submission is enabled.
func (m *ManualAdapter) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Submit trims and forwards one operator-entered identifier.
// Empty input is a validation failure, not a scan.
func (m *ManualAdapter) Submit(input string) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ErrEmptyInput
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return ErrInactive
	}
	m.submit(trimmed)
	return nil
}
