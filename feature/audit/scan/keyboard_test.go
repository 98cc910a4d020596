package scan

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collector records submissions from an adapter under test.
type collector struct {
	mu  sync.Mutex
	got []string
}

func (c *collector) submit(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, id)
}

func (c *collector) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.got))
	copy(out, c.got)
	return out
}

func (c *collector) waitFor(t *testing.T, n int) []string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := c.all(); len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d submissions, got %v", n, c.all())
	return nil
}

func TestKeyboardEnterFlushesImmediately(t *testing.T) {
	c := &collector{}
	k := NewKeyboardAdapter(c.submit, time.Hour) // debounce never fires
	k.Start()

	for _, r := range "ASSET-42" {
		assert.True(t, k.HandleKey(r, false))
	}
	assert.Empty(t, c.all(), "nothing flushes mid-burst")

	k.HandleKey('\n', false)
	assert.Equal(t, []string{"ASSET-42"}, c.all())
}

func TestKeyboardDebounceFlushesStalledBurst(t *testing.T) {
	c := &collector{}
	k := NewKeyboardAdapter(c.submit, 10*time.Millisecond)
	k.Start()

	k.HandleText("ASSET-7", false)
	got := c.waitFor(t, 1)
	assert.Equal(t, []string{"ASSET-7"}, got)
}

func TestKeyboardSplitsSeparateBursts(t *testing.T) {
	c := &collector{}
	k := NewKeyboardAdapter(c.submit, 10*time.Millisecond)
	k.Start()

	k.HandleText("FIRST", false)
	c.waitFor(t, 1)
	k.HandleText("SECOND\n", false)

	assert.Equal(t, []string{"FIRST", "SECOND"}, c.waitFor(t, 2))
}

func TestKeyboardTextFieldKeysPassThrough(t *testing.T) {
	c := &collector{}
	k := NewKeyboardAdapter(c.submit, 10*time.Millisecond)
	k.Start()

	assert.False(t, k.HandleKey('a', true))
	k.HandleKey('\n', true)

	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, c.all(), "text-field keystrokes never become scans")
}

func TestKeyboardStopDiscardsBuffer(t *testing.T) {
	c := &collector{}
	k := NewKeyboardAdapter(c.submit, 10*time.Millisecond)
	k.Start()

	k.HandleText("PARTIAL", false)
	k.Stop()

	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, c.all(), "no submission after Stop returns")
	assert.False(t, k.Active())

	// Keys after stop are ignored.
	assert.False(t, k.HandleKey('x', false))
}

func TestKeyboardStopIdempotent(t *testing.T) {
	c := &collector{}
	k := NewKeyboardAdapter(c.submit, 10*time.Millisecond)

	// Stop without Start is safe.
	k.Stop()
	k.Start()
	k.Start()
	require.True(t, k.Active())
	k.Stop()
	k.Stop()
	assert.False(t, k.Active())
}
