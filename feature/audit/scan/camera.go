package scan

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// FrameDecoder is the capability interface for camera-based code recognition.
// Real implementations wrap a camera pipeline and a decoding library; the
// audit core only ever sees decoded identifiers.
type FrameDecoder interface {
	// Acquire claims the camera. It is called once per adapter start.
	Acquire() error
	// Release returns the camera. Safe to call after a failed Acquire.
	Release()
	// DecodeFrame attempts to decode one visual code from the current frame.
	// ok is false when the frame held no readable code.
	DecodeFrame() (code string, ok bool)
}

// CameraAdapter polls a FrameDecoder on a fixed interval and submits every
// decoded identifier. When the decoder is unavailable the adapter degrades to
// an inert mode instead of failing the session: decoding is an external
// capability, not a core responsibility.
type CameraAdapter struct {
	decoder FrameDecoder
	submit  SubmitFunc
	warn    WarnFunc
	poll    time.Duration
	pause   time.Duration

	mu      sync.Mutex
	running bool
	inert   bool
	stop    chan struct{}
}

// NewCameraAdapter creates a camera adapter. A nil decoder yields an adapter
// that starts in inert mode with a warning.
func NewCameraAdapter(decoder FrameDecoder, submit SubmitFunc, warn WarnFunc, poll, pause time.Duration) *CameraAdapter {
	if poll <= 0 {
		poll = 500 * time.Millisecond
	}
	if pause <= 0 {
		pause = time.Second
	}
	return &CameraAdapter{
		decoder: decoder,
		submit:  submit,
		warn:    warn,
		poll:    poll,
		pause:   pause,
	}
}

// Start acquires the camera and begins polling. Idempotent.
func (c *CameraAdapter) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return
	}
	c.running = true
	c.stop = make(chan struct{})

	if c.decoder == nil {
		c.inert = true
		c.warnf("Camera scanning is unavailable: no frame decoder configured.")
		return
	}
	if err := c.decoder.Acquire(); err != nil {
		c.inert = true
		c.warnf("Could not access camera: %v", err)
		return
	}
	c.inert = false

	go c.loop(c.stop)
}

// Stop cancels the poll timer and releases the camera. Idempotent and safe
// without a prior Start. No submissions occur after Stop returns.
func (c *CameraAdapter) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}
	c.running = false
	close(c.stop)

	if !c.inert && c.decoder != nil {
		c.decoder.Release()
	}
	c.inert = false
}

// Active reports whether the adapter is started (even in inert mode).
func (c *CameraAdapter) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *CameraAdapter) loop(stop chan struct{}) {
	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// Decode and submit under the adapter lock so Stop cannot
			// return while a submission is still in flight.
			c.mu.Lock()
			if !c.running {
				c.mu.Unlock()
				return
			}
			code, ok := c.decoder.DecodeFrame()
			if ok {
				c.submit(code)
			}
			c.mu.Unlock()

			if ok {
				// Visual-confirmation pause before polling resumes.
				select {
				case <-stop:
					return
				case <-time.After(c.pause):
				}
			}
		}
	}
}

func (c *CameraAdapter) warnf(format string, args ...any) {
	if c.warn != nil {
		c.warn(fmt.Sprintf(format, args...))
	}
}

// SimulatedDecoder is a FrameDecoder stand-in for environments without a
// camera. It occasionally "decodes" an identifier drawn from its configured
// pool, mimicking the cadence of a real scanner.
type SimulatedDecoder struct {
	// Identifiers is the pool of ids the simulator draws from.
	Identifiers []string
	// HitRate is the per-frame probability of a successful decode (0..1).
	// Zero means the default of 0.3.
	HitRate float64

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Acquire always succeeds.
func (s *SimulatedDecoder) Acquire() error { return nil }

// Release is a no-op.
func (s *SimulatedDecoder) Release() {}

// DecodeFrame returns a random identifier from the pool at the configured rate.
func (s *SimulatedDecoder) DecodeFrame() (string, bool) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	rate := s.HitRate
	if rate == 0 {
		rate = 0.3
	}
	if len(s.Identifiers) == 0 || s.rng.Float64() > rate {
		return "", false
	}
	return s.Identifiers[s.rng.Intn(len(s.Identifiers))], true
}
