package scan

import (
	"sync"
	"time"
)

// PickFunc supplies the next simulated tag read. ok is false when nothing is
// in range. The session owns the roster, so it provides the picker; the
// adapter itself holds no asset state.
type PickFunc func() (identifier string, ok bool)

// RFIDAdapter simulates a continuous RFID reader by submitting an identifier
// from its picker on a fixed interval. Real reader hardware would slot in by
// replacing the picker with a driver callback.
type RFIDAdapter struct {
	pick     PickFunc
	submit   SubmitFunc
	interval time.Duration

	mu      sync.Mutex
	running bool
	stop    chan struct{}
}

// NewRFIDAdapter creates an RFID simulation adapter.
func NewRFIDAdapter(pick PickFunc, submit SubmitFunc, interval time.Duration) *RFIDAdapter {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &RFIDAdapter{pick: pick, submit: submit, interval: interval}
}

// Start begins the simulated read loop. Idempotent.
func (r *RFIDAdapter) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return
	}
	r.running = true
	r.stop = make(chan struct{})
	go r.loop(r.stop)
}

// Stop cancels the read loop. Idempotent and safe without a prior Start;
// no submissions occur after Stop returns.
func (r *RFIDAdapter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	r.running = false
	close(r.stop)
}

// Active reports whether the read loop is running.
func (r *RFIDAdapter) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *RFIDAdapter) loop(stop chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.mu.Lock()
			if !r.running {
				r.mu.Unlock()
				return
			}
			if id, ok := r.pick(); ok {
				r.submit(id)
			}
			r.mu.Unlock()
		}
	}
}
