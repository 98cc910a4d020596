package audit

import (
	"context"
	"testing"
	"time"

	"asset-audit/feature/audit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() Config {
	return Config{
		Enabled:        true,
		CameraPollMS:   5,
		CameraPauseMS:  1,
		DebounceMS:     10,
		RfidIntervalMS: 5,
		EventLimit:     100,
	}
}

func newTestManager(gw *fakeGateway) *Manager {
	return NewManager(testConfig(), gw, nil, zap.NewNop())
}

func TestManagerManualFlow(t *testing.T) {
	gw := newFakeGateway(expected("A1"), expected("A2"))
	m := newTestManager(gw)

	require.NoError(t, m.Start(context.Background(), "R101", models.MethodManual))
	assert.Equal(t, models.StateActive, m.State())

	require.NoError(t, m.Scan("A1"))
	snap := m.Snapshot()
	assert.Equal(t, 1, snap.FoundCount)

	summary, err := m.Stop(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"A2"}, summary.MissingIDs)
	assert.Equal(t, models.StateIdle, m.State())
}

func TestManagerKeyboardFlow(t *testing.T) {
	gw := newFakeGateway(expected("A1"))
	m := newTestManager(gw)

	require.NoError(t, m.Start(context.Background(), "R101", models.MethodBarcode))
	m.PressKeys("A1\n")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && m.Snapshot().FoundCount == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, 1, m.Snapshot().FoundCount)

	_, err := m.Cancel()
	require.NoError(t, err)
}

func TestManagerRfidFlow(t *testing.T) {
	gw := newFakeGateway(expected("A1"), expected("A2"), expected("A3"))
	m := newTestManager(gw)

	require.NoError(t, m.Start(context.Background(), "R101", models.MethodRfid))

	// The simulated reader should eventually sweep the whole roster.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		snap := m.Snapshot()
		if snap.FoundCount == snap.TotalCount {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	summary, err := m.Stop(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Found)
	assert.Empty(t, summary.MissingIDs)
}

func TestManagerMethodSwitchKeepsProgress(t *testing.T) {
	gw := newFakeGateway(expected("A1"), expected("A2"))
	m := newTestManager(gw)

	require.NoError(t, m.Start(context.Background(), "R101", models.MethodManual))
	require.NoError(t, m.Scan("A1"))

	require.NoError(t, m.SetMethod(models.MethodBarcode))
	snap := m.Snapshot()
	assert.Equal(t, 1, snap.FoundCount)
	assert.Equal(t, models.MethodBarcode, snap.Method)

	// The manual adapter stopped with the switch.
	assert.Error(t, m.Scan("A2"))

	_, err := m.Cancel()
	require.NoError(t, err)
}

func TestManagerRejectedStartLeavesSessionUntouched(t *testing.T) {
	gw := newFakeGateway(expected("A1"), expected("A2"))
	m := newTestManager(gw)

	require.NoError(t, m.Start(context.Background(), "R101", models.MethodManual))
	require.NoError(t, m.Scan("A1"))
	eventsBefore := len(m.Events())
	require.NotZero(t, eventsBefore)

	assert.ErrorIs(t, m.Start(context.Background(), "R202", models.MethodRfid), ErrAuditActive)

	snap := m.Snapshot()
	assert.Equal(t, models.MethodManual, snap.Method, "input modality unchanged")
	assert.Equal(t, "R101", snap.RoomID)
	assert.Len(t, m.Events(), eventsBefore, "event history unchanged")

	// The manual adapter is still live.
	require.NoError(t, m.Scan("A2"))

	_, err := m.Cancel()
	require.NoError(t, err)
}

func TestManagerStartResetsEvents(t *testing.T) {
	gw := newFakeGateway(expected("A1"))
	m := newTestManager(gw)

	require.NoError(t, m.Start(context.Background(), "R101", models.MethodManual))
	require.NoError(t, m.Scan("A1"))
	_, err := m.Stop(context.Background(), false)
	require.NoError(t, err)
	assert.NotEmpty(t, m.Events())

	require.NoError(t, m.Start(context.Background(), "R101", models.MethodManual))
	defer m.Cancel()

	for _, ev := range m.Events() {
		assert.NotEqual(t, EventAssetFound, ev.Kind, "history resets on start")
	}
	latest, ok := m.Latest()
	require.True(t, ok)
	assert.Equal(t, EventSessionStarted, latest.Kind)
}
