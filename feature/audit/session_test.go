package audit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"asset-audit/feature/audit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeGateway is a hand-rolled Gateway capturing every call.
type fakeGateway struct {
	mu sync.Mutex

	roster    []models.ExpectedAsset
	rosterErr error

	assets   map[string]*models.AssetRecord
	assetErr error

	assetCalls     int
	locationCalls  []string
	missingCalls   [][]string
	mutationsTotal int
}

func newFakeGateway(roster ...models.ExpectedAsset) *fakeGateway {
	return &fakeGateway{
		roster: roster,
		assets: make(map[string]*models.AssetRecord),
	}
}

func (g *fakeGateway) ExpectedAssets(ctx context.Context, roomID string) ([]models.ExpectedAsset, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.rosterErr != nil {
		return nil, g.rosterErr
	}
	out := make([]models.ExpectedAsset, len(g.roster))
	copy(out, g.roster)
	return out, nil
}

func (g *fakeGateway) Asset(ctx context.Context, identifier string) (*models.AssetRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.assetCalls++
	if g.assetErr != nil {
		return nil, g.assetErr
	}
	if record, ok := g.assets[identifier]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, ErrAssetNotFound
}

func (g *fakeGateway) UpdateAssetLocation(ctx context.Context, identifier, roomID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.locationCalls = append(g.locationCalls, identifier)
	g.mutationsTotal++
	return nil
}

func (g *fakeGateway) MarkAssetsMissing(ctx context.Context, identifiers []string) (models.BulkResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ids := make([]string, len(identifiers))
	copy(ids, identifiers)
	g.missingCalls = append(g.missingCalls, ids)
	g.mutationsTotal++
	return models.BulkResult{Processed: len(ids)}, nil
}

func (g *fakeGateway) MarkAssetLost(ctx context.Context, identifier string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mutationsTotal++
	return nil
}

func (g *fakeGateway) MarkAssetFound(ctx context.Context, identifier string, returnToRoom bool, notes string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mutationsTotal++
	return nil
}

func (g *fakeGateway) RelocateAsset(ctx context.Context, identifier, roomID, notes string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mutationsTotal++
	return nil
}

func (g *fakeGateway) BulkMarkFound(ctx context.Context, identifiers []string, notes string) (models.BulkResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mutationsTotal++
	return models.BulkResult{Processed: len(identifiers)}, nil
}

func (g *fakeGateway) BulkRelocate(ctx context.Context, identifiers []string, roomID, notes string) (models.BulkResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mutationsTotal++
	return models.BulkResult{Processed: len(identifiers)}, nil
}

func expected(id string) models.ExpectedAsset {
	return models.ExpectedAsset{
		ID:             id,
		Description:    "Test Asset " + id,
		AssignedRoomID: "R101",
		Status:         models.StatusGood,
	}
}

func newTestSession(t *testing.T, gw *fakeGateway) (*Session, *Recorder) {
	t.Helper()
	recorder := NewRecorder(100)
	return NewSession(gw, recorder, zap.NewNop()), recorder
}

// waitForRecord polls until the ledger entry for id leaves the pending state,
// covering the async resolution path.
func waitForRecord(t *testing.T, s *Session, id string) models.ScannedRecord {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, rec := range s.Snapshot().Scanned {
			if rec.ID == id && rec.Status != models.StatusPending {
				return rec
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("record for %s never settled", id)
	return models.ScannedRecord{}
}

func TestSessionStartValidation(t *testing.T) {
	gw := newFakeGateway(expected("A1"))
	s, _ := newTestSession(t, gw)

	assert.ErrorIs(t, s.Start(context.Background(), "  ", ""), ErrNoRoomSelected)
	assert.Error(t, s.Start(context.Background(), "R101", "telepathy"))

	require.NoError(t, s.Start(context.Background(), "R101", models.MethodManual))
	assert.Equal(t, models.StateActive, s.State())

	// A rejected start must not touch the running session.
	assert.ErrorIs(t, s.Start(context.Background(), "R102", models.MethodRfid), ErrAuditActive)
	assert.Equal(t, models.MethodManual, s.Method())
	assert.Equal(t, "R101", s.Snapshot().RoomID)
}

func TestSessionStartRosterFailureDegrades(t *testing.T) {
	gw := newFakeGateway()
	gw.rosterErr = fmt.Errorf("backend down")
	s, recorder := newTestSession(t, gw)

	require.NoError(t, s.Start(context.Background(), "R101", ""))
	assert.Equal(t, models.StateActive, s.State())

	snap := s.Snapshot()
	assert.Empty(t, snap.Expected)

	var warned bool
	for _, ev := range recorder.Events() {
		if ev.Kind == EventWarning {
			warned = true
		}
	}
	assert.True(t, warned, "roster failure should surface a warning")
}

func TestSessionFoundFlipsOnce(t *testing.T) {
	gw := newFakeGateway(expected("A1"), expected("A2"))
	s, recorder := newTestSession(t, gw)
	require.NoError(t, s.Start(context.Background(), "R101", ""))

	s.SubmitScan("A1")
	s.SubmitScan("A1")
	s.SubmitScan(" A1 ")

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.FoundCount)
	assert.Equal(t, 2, snap.TotalCount)
	assert.Len(t, snap.Scanned, 1)
	assert.Equal(t, models.StatusGood, snap.Scanned[0].Status)

	var foundEvents, duplicates int
	for _, ev := range recorder.Events() {
		switch ev.Kind {
		case EventAssetFound:
			foundEvents++
		case EventAlreadyScanned:
			duplicates++
		}
	}
	assert.Equal(t, 1, foundEvents)
	assert.Equal(t, 2, duplicates)

	summary, err := s.Stop(true)
	require.NoError(t, err)

	gw.mu.Lock()
	defer gw.mu.Unlock()
	assert.Equal(t, []string{"A1"}, gw.locationCalls, "one location update per first-time find")
	assert.Equal(t, 1, summary.Found)
}

func TestSessionStopMarksMissingInOneBatch(t *testing.T) {
	gw := newFakeGateway(expected("A1"), expected("A2"), expected("A3"))
	s, _ := newTestSession(t, gw)
	require.NoError(t, s.Start(context.Background(), "R101", ""))

	s.SubmitScan("A2")

	summary, err := s.Stop(true)
	require.NoError(t, err)

	sort.Strings(summary.MissingIDs)
	assert.Equal(t, []string{"A1", "A3"}, summary.MissingIDs)
	assert.Equal(t, 3, summary.Expected)
	assert.Equal(t, 1, summary.Found)
	assert.False(t, summary.Cancelled)

	gw.mu.Lock()
	defer gw.mu.Unlock()
	require.Len(t, gw.missingCalls, 1, "exactly one bulk call")
	got := append([]string(nil), gw.missingCalls[0]...)
	sort.Strings(got)
	assert.Equal(t, []string{"A1", "A3"}, got, "bulk ids are exactly the unfound expected assets")
	assert.Equal(t, models.StateIdle, s.State())
}

func TestSessionStopWithoutMarkMissing(t *testing.T) {
	gw := newFakeGateway(expected("A1"), expected("A2"))
	s, _ := newTestSession(t, gw)
	require.NoError(t, s.Start(context.Background(), "R101", ""))

	summary, err := s.Stop(false)
	require.NoError(t, err)
	assert.Empty(t, summary.MissingIDs)

	gw.mu.Lock()
	defer gw.mu.Unlock()
	assert.Empty(t, gw.missingCalls, "no bulk call without markMissing")
}

func TestSessionCancelIssuesNoMutations(t *testing.T) {
	gw := newFakeGateway(expected("A1"), expected("A2"))
	gw.assets["M1"] = &models.AssetRecord{ID: "M1", AssignedRoomID: "R200"}
	s, recorder := newTestSession(t, gw)
	require.NoError(t, s.Start(context.Background(), "R101", ""))

	s.SubmitScan("A1")
	s.SubmitScan("M1")
	waitForRecord(t, s, "M1")

	gw.mu.Lock()
	before := gw.mutationsTotal
	gw.mu.Unlock()

	summary, err := s.Cancel()
	require.NoError(t, err)
	assert.True(t, summary.Cancelled)

	gw.mu.Lock()
	after := gw.mutationsTotal
	gw.mu.Unlock()
	assert.Equal(t, before, after, "cancel must not touch the backend")

	last, ok := recorder.Latest()
	require.True(t, ok)
	assert.Equal(t, EventSessionCancelled, last.Kind)

	_, err = s.Cancel()
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestSessionMisplacedAsset(t *testing.T) {
	gw := newFakeGateway(expected("A1"))
	gw.assets["M1"] = &models.AssetRecord{
		ID:             "M1",
		Description:    "Wandering Monitor",
		AssignedRoomID: "R200",
	}
	s, recorder := newTestSession(t, gw)
	require.NoError(t, s.Start(context.Background(), "R101", ""))

	s.SubmitScan("M1")
	rec := waitForRecord(t, s, "M1")

	assert.Equal(t, models.StatusMisplaced, rec.Status)
	assert.Equal(t, "R200", rec.AssignedRoomID)
	assert.Equal(t, "R101", rec.CurrentRoomID)
	assert.Equal(t, "Wandering Monitor", rec.Description)

	// Misplaced assets still get their location updated.
	s.updates.Wait()
	gw.mu.Lock()
	assert.Contains(t, gw.locationCalls, "M1")
	gw.mu.Unlock()

	// A misplaced asset does not count toward expected progress.
	snap := s.Snapshot()
	assert.Equal(t, 0, snap.FoundCount)

	var misplacedEvents int
	for _, ev := range recorder.Events() {
		if ev.Kind == EventAssetMisplaced {
			misplacedEvents++
		}
	}
	assert.Equal(t, 1, misplacedEvents)
}

func TestSessionUnexpectedAsset(t *testing.T) {
	gw := newFakeGateway(expected("A1"))
	s, _ := newTestSession(t, gw)
	require.NoError(t, s.Start(context.Background(), "R101", ""))

	s.SubmitScan("GHOST")
	rec := waitForRecord(t, s, "GHOST")

	assert.Equal(t, models.StatusUnexpected, rec.Status)
	assert.Empty(t, rec.AssignedRoomID)

	// No backend record exists, so no location update is attempted.
	s.updates.Wait()
	gw.mu.Lock()
	assert.NotContains(t, gw.locationCalls, "GHOST")
	gw.mu.Unlock()

	// Rescanning the same unknown id is a duplicate, not a second lookup.
	gw.mu.Lock()
	calls := gw.assetCalls
	gw.mu.Unlock()
	s.SubmitScan("GHOST")
	gw.mu.Lock()
	assert.Equal(t, calls, gw.assetCalls)
	gw.mu.Unlock()
}

func TestSessionLookupFailureDropsScan(t *testing.T) {
	gw := newFakeGateway(expected("A1"))
	gw.assetErr = fmt.Errorf("query timeout")
	s, recorder := newTestSession(t, gw)
	require.NoError(t, s.Start(context.Background(), "R101", ""))

	s.SubmitScan("U1")

	// The reservation is released once resolution fails.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(s.Snapshot().Scanned) == 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	assert.Empty(t, s.Snapshot().Scanned, "failed lookup must not leave a ledger entry")

	var reported bool
	for _, ev := range recorder.Events() {
		if ev.Kind == EventError {
			reported = true
		}
	}
	assert.True(t, reported, "dropped scan must be reported")

	// After the backend recovers a retry classifies cleanly.
	gw.mu.Lock()
	gw.assetErr = nil
	gw.assets["U1"] = &models.AssetRecord{ID: "U1", AssignedRoomID: "R300"}
	gw.mu.Unlock()

	s.SubmitScan("U1")
	rec := waitForRecord(t, s, "U1")
	assert.Equal(t, models.StatusMisplaced, rec.Status)
}

func TestSessionConcurrentUnknownScansResolveOnce(t *testing.T) {
	gw := newFakeGateway(expected("A1"))
	s, _ := newTestSession(t, gw)
	require.NoError(t, s.Start(context.Background(), "R101", ""))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.SubmitScan("GHOST")
		}()
	}
	wg.Wait()
	waitForRecord(t, s, "GHOST")

	gw.mu.Lock()
	defer gw.mu.Unlock()
	assert.Equal(t, 1, gw.assetCalls, "duplicate concurrent scans collapse to one lookup")

	snap := s.Snapshot()
	assert.Len(t, snap.Scanned, 1)
}

func TestSessionMethodSwitchPreservesProgress(t *testing.T) {
	gw := newFakeGateway(expected("A1"), expected("A2"))
	s, _ := newTestSession(t, gw)
	require.NoError(t, s.Start(context.Background(), "R101", ""))

	s.SubmitScan("A1")
	require.NoError(t, s.SetMethod(models.MethodBarcode))

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.FoundCount)
	assert.Equal(t, models.MethodBarcode, snap.Method)

	assert.Error(t, s.SetMethod(models.Method("telepathy")))
}

func TestSessionScansDroppedWhenNotActive(t *testing.T) {
	gw := newFakeGateway(expected("A1"))
	s, _ := newTestSession(t, gw)

	// Before start.
	s.SubmitScan("A1")
	assert.Empty(t, s.Snapshot().Scanned)

	require.NoError(t, s.Start(context.Background(), "R101", ""))
	_, err := s.Stop(false)
	require.NoError(t, err)

	// After stop.
	s.SubmitScan("A1")
	assert.Empty(t, s.Snapshot().Scanned)

	gw.mu.Lock()
	defer gw.mu.Unlock()
	assert.Empty(t, gw.locationCalls)
}

func TestSessionStopRequiresActive(t *testing.T) {
	gw := newFakeGateway()
	s, _ := newTestSession(t, gw)

	_, err := s.Stop(true)
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestSessionRestartAfterStop(t *testing.T) {
	gw := newFakeGateway(expected("A1"))
	s, _ := newTestSession(t, gw)

	require.NoError(t, s.Start(context.Background(), "R101", ""))
	_, err := s.Stop(true)
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background(), "R101", ""))
	snap := s.Snapshot()
	assert.Equal(t, 0, snap.FoundCount, "new session starts with a clean ledger")
	assert.Len(t, snap.Expected, 1)
	assert.False(t, snap.Expected[0].Found)
}

func TestSessionSimulationPick(t *testing.T) {
	gw := newFakeGateway(expected("A1"), expected("A2"), expected("A3"))
	s, _ := newTestSession(t, gw)

	_, ok := s.SimulationPick()
	assert.False(t, ok, "no picks while idle")

	require.NoError(t, s.Start(context.Background(), "R101", ""))
	for i := 0; i < 50; i++ {
		id, ok := s.SimulationPick()
		require.True(t, ok)
		assert.NotEmpty(t, id)
	}
}

func TestSessionPendingSettleAfterStopIsIgnored(t *testing.T) {
	gw := newFakeGateway()
	blocker := make(chan struct{})
	slow := &blockingGateway{fakeGateway: gw, release: blocker}
	recorder := NewRecorder(100)
	s := NewSession(slow, recorder, zap.NewNop())

	require.NoError(t, s.Start(context.Background(), "R101", ""))
	s.SubmitScan("SLOW")

	// Release the blocked lookup while Cancel is draining in-flight work.
	timer := time.AfterFunc(50*time.Millisecond, func() { close(blocker) })
	defer timer.Stop()

	_, err := s.Cancel()
	require.NoError(t, err)
	assert.Empty(t, s.Snapshot().Scanned)
}

func TestSessionStopExcludesUnsettledReservations(t *testing.T) {
	gw := newFakeGateway(expected("A1"))
	blocker := make(chan struct{})
	slow := &blockingGateway{fakeGateway: gw, release: blocker}
	recorder := NewRecorder(100)
	s := NewSession(slow, recorder, zap.NewNop())

	require.NoError(t, s.Start(context.Background(), "R101", ""))
	s.SubmitScan("A1")
	s.SubmitScan("SLOW")

	// The lookup for SLOW is still blocked when the stop begins, so its
	// reservation never settles.
	timer := time.AfterFunc(50*time.Millisecond, func() { close(blocker) })
	defer timer.Stop()

	summary, err := s.Stop(true)
	require.NoError(t, err)

	require.Len(t, summary.Scanned, 1)
	assert.Equal(t, "A1", summary.Scanned[0].ID)
	for _, rec := range summary.Scanned {
		assert.NotEqual(t, models.StatusPending, rec.Status)
	}
}

// blockingGateway delays Asset until released.
type blockingGateway struct {
	*fakeGateway
	release chan struct{}
}

func (g *blockingGateway) Asset(ctx context.Context, identifier string) (*models.AssetRecord, error) {
	<-g.release
	return nil, errors.New("too late")
}
