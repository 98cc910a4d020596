package scan

import (
	"strings"
	"sync"
	"time"
)

// KeyboardAdapter emulates a hardware barcode scanner that types its payload
// as a rapid keystroke stream. Characters accumulate in a buffer; a short
// debounce timer flushes the buffer as one submission when the stream stalls,
// and an explicit Enter flushes immediately.
//
// The adapter is a small Idle -> Buffering -> Flush state machine with one
// cancellable timer. Flushing swaps the buffer out atomically before invoking
// the submit callback, so a flush can never double-submit.
type KeyboardAdapter struct {
	submit   SubmitFunc
	debounce time.Duration

	mu     sync.Mutex
	active bool
	buf    strings.Builder
	timer  *time.Timer
}

// NewKeyboardAdapter creates a keyboard adapter with the given debounce window.
func NewKeyboardAdapter(submit SubmitFunc, debounce time.Duration) *KeyboardAdapter {
	if debounce <= 0 {
		debounce = 20 * time.Millisecond
	}
	return &KeyboardAdapter{submit: submit, debounce: debounce}
}

// Start enables keystroke capture. Idempotent.
func (k *KeyboardAdapter) Start() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.active {
		return
	}
	k.active = true
	k.buf.Reset()
}

// Stop disables capture, cancels any pending debounce timer, and discards the
// buffer. Idempotent and safe without a prior Start; no submission is produced
// after Stop returns.
func (k *KeyboardAdapter) Stop() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.active = false
	k.buf.Reset()
	if k.timer != nil {
		k.timer.Stop()
		k.timer = nil
	}
}

// Active reports whether keystroke capture is enabled.
func (k *KeyboardAdapter) Active() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.active
}

// HandleKey processes one keystroke. Keys targeting ordinary text-entry fields
// (textField true) pass through untouched. It returns true when the adapter
// consumed the key.
func (k *KeyboardAdapter) HandleKey(key rune, textField bool) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.active || textField {
		return false
	}

	if k.timer != nil {
		k.timer.Stop()
		k.timer = nil
	}

	if key == '\n' || key == '\r' {
		k.flushLocked()
		return true
	}

	k.buf.WriteRune(key)
	k.timer = time.AfterFunc(k.debounce, k.flush)
	return true
}

// HandleText feeds a whole chunk of keystrokes at once, as delivered by a
// scanner that batches its payload.
func (k *KeyboardAdapter) HandleText(text string, textField bool) {
	for _, r := range text {
		k.HandleKey(r, textField)
	}
}

// flush is the debounce-timer callback.
func (k *KeyboardAdapter) flush() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.flushLocked()
}

// flushLocked clears the buffer and submits its previous content.
// The submit callback runs under the adapter lock so Stop, which takes the
// same lock, cannot return while a submission is in flight.
func (k *KeyboardAdapter) flushLocked() {
	if !k.active || k.buf.Len() == 0 {
		return
	}
	payload := k.buf.String()
	k.buf.Reset()
	k.submit(payload)
}
