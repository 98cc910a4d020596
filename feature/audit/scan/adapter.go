package scan

import "errors"

// SubmitFunc receives one candidate asset identifier observed by an adapter.
// Adapters normalize every input modality into calls to this function and
// hold no asset-domain state of their own.
type SubmitFunc func(identifier string)

// WarnFunc surfaces a non-fatal adapter problem (e.g. camera unavailable).
type WarnFunc func(message string)

// Adapter is the contract shared by all scan input sources.
//
// Start is idempotent: calling it on a running adapter is a no-op.
// Stop is idempotent, safe to call even if Start was never called, and
// guarantees that no further submissions are produced after it returns.
type Adapter interface {
	Start()
	Stop()
	// Active reports whether the adapter is currently started.
	Active() bool
}

// ErrEmptyInput is returned by the manual adapter for blank input.
var ErrEmptyInput = errors.New("no identifier entered")

// ErrInactive is returned by the manual adapter when no audit is running.
var ErrInactive = errors.New("adapter is not active")
