package audit

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"asset-audit/feature/audit/models"
	"asset-audit/feature/audit/scan"

	"go.uber.org/zap"
)

var (
	// ErrNoRoomSelected is returned by Start when no room id is given.
	ErrNoRoomSelected = errors.New("no room selected")
	// ErrAuditActive is returned by Start when a session is already running.
	ErrAuditActive = errors.New("an audit is already active")
	// ErrNotActive is returned by Stop and Cancel when no audit is running.
	ErrNotActive = errors.New("no audit is active")
)

// backendTimeout bounds the identifier lookups and mutations issued while a
// session is running.
const backendTimeout = 10 * time.Second

// Session is the audit state machine. It owns the expected-asset roster and
// the scanned-record ledger for exactly one room audit at a time and is the
// only component that mutates them.
//
// Adapter timers run on their own goroutines, so every state transition
// happens under the session lock. The critical ordering rule: ledger slots
// are reserved synchronously at scan time, before any backend resolution,
// so concurrent duplicate scans settle deterministically.
type Session struct {
	log      *zap.Logger
	gateway  Gateway
	notifier Notifier
	now      func() time.Time
	rng      *rand.Rand

	mu       sync.Mutex
	state    models.State
	roomID   string
	method   models.Method
	expected map[string]*models.ExpectedAsset
	scanned  map[string]*models.ScannedRecord
	adapters map[models.Method]scan.Adapter
	started  time.Time

	// updates tracks in-flight backend work (identifier resolutions and
	// fire-and-forget location updates) so Stop can drain it before
	// finalizing.
	updates sync.WaitGroup
}

// NewSession creates an idle session. Adapters are attached afterwards via
// RegisterAdapter because they need the session's SubmitScan as their sink.
func NewSession(gateway Gateway, notifier Notifier, log *zap.Logger) *Session {
	return &Session{
		log:      log,
		gateway:  gateway,
		notifier: notifier,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		state:    models.StateIdle,
		method:   models.MethodManual,
		adapters: make(map[models.Method]scan.Adapter),
	}
}

// RegisterAdapter attaches the adapter serving one audit method.
func (s *Session) RegisterAdapter(method models.Method, adapter scan.Adapter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adapters[method] = adapter
}

// State returns the current lifecycle state.
func (s *Session) State() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Method returns the current audit method.
func (s *Session) Method() models.Method {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.method
}

// Start begins an audit for the given room. An empty method keeps the
// session's current one; a non-empty method takes effect only when the start
// is accepted, so a rejected start never touches a running session. Start
// fetches the expected-asset roster before the session becomes active, so the
// first scan always sees a complete (possibly empty) roster. A roster fetch
// failure degrades to an empty roster with a warning rather than failing the
// start.
func (s *Session) Start(ctx context.Context, roomID string, method models.Method) error {
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return ErrNoRoomSelected
	}
	if method != "" && !method.Valid() {
		return fmt.Errorf("unknown audit method %q", method)
	}

	s.mu.Lock()
	if s.state != models.StateIdle {
		s.mu.Unlock()
		return ErrAuditActive
	}
	if method != "" {
		s.method = method
	}
	// Hold Stopping as a guard so a concurrent Start cannot slip in while
	// the roster fetch is in flight.
	s.state = models.StateStopping
	s.mu.Unlock()

	roster, err := s.gateway.ExpectedAssets(ctx, roomID)
	if err != nil {
		s.log.Warn("Roster fetch failed, starting with empty roster",
			zap.String("room", roomID), zap.Error(err))
		s.notifier.Warning(fmt.Sprintf("Could not load assets for room %s; starting with an empty roster.", roomID))
		roster = nil
	}

	s.mu.Lock()
	s.roomID = roomID
	s.expected = make(map[string]*models.ExpectedAsset, len(roster))
	for i := range roster {
		asset := roster[i]
		asset.Found = false
		if asset.AssignedRoomID == "" {
			asset.AssignedRoomID = roomID
		}
		s.expected[asset.ID] = &asset
	}
	s.scanned = make(map[string]*models.ScannedRecord)
	s.started = s.now()
	s.state = models.StateActive
	adapter := s.adapters[s.method]
	method = s.method
	s.mu.Unlock()

	s.notifier.RosterLoaded(roomID, len(roster))
	s.notifier.SessionStarted(roomID, method)

	if adapter != nil {
		adapter.Start()
	}
	return nil
}

// SetMethod switches the input modality. While active, the old adapter stops
// and the new one starts; the roster and ledger are untouched. A no-op when
// the method is unchanged.
func (s *Session) SetMethod(method models.Method) error {
	if !method.Valid() {
		return fmt.Errorf("unknown audit method %q", method)
	}

	s.mu.Lock()
	if method == s.method {
		s.mu.Unlock()
		return nil
	}
	old := s.adapters[s.method]
	s.method = method
	next := s.adapters[method]
	active := s.state == models.StateActive
	s.mu.Unlock()

	if active {
		if old != nil {
			old.Stop()
		}
		if next != nil {
			next.Start()
		}
	}
	return nil
}

// SubmitScan is the single entry point used by every adapter. It classifies
// the identifier, applies the session mutation, notifies the presentation
// layer, and issues the backend location update. Scans arriving while the
// session is not active (late timer events) are silently dropped.
func (s *Session) SubmitScan(rawIdentifier string) {
	identifier := strings.TrimSpace(rawIdentifier)
	if identifier == "" {
		return
	}

	s.mu.Lock()
	if s.state != models.StateActive {
		s.mu.Unlock()
		return
	}
	roomID := s.roomID

	switch Classify(identifier, s.expected, s.scanned) {
	case DecideAlreadyScanned:
		s.mu.Unlock()
		s.notifier.AlreadyScanned(identifier)

	case DecideFound:
		asset := s.expected[identifier]
		asset.Found = true
		asset.Status = models.StatusGood
		asset.LastLocatedRoomID = roomID
		asset.LastUpdate = s.now()

		rec := &models.ScannedRecord{
			ID:             identifier,
			Description:    asset.Description,
			Brand:          asset.Brand,
			Model:          asset.Model,
			Status:         models.StatusGood,
			CurrentRoomID:  roomID,
			AssignedRoomID: asset.AssignedRoomID,
			ScannedAt:      s.now(),
		}
		s.scanned[identifier] = rec
		found, total := s.progressLocked()
		s.updates.Add(1)
		s.mu.Unlock()

		s.notifier.AssetFound(*rec)
		s.notifier.Progress(found, total)
		s.updateLocation(identifier, roomID)

	case DecideLookup:
		// Reserve the ledger slot before the backend lookup so a concurrent
		// duplicate scan of the same identifier classifies as AlreadyScanned
		// instead of racing to a second record.
		s.scanned[identifier] = &models.ScannedRecord{
			ID:            identifier,
			Status:        models.StatusPending,
			CurrentRoomID: roomID,
			ScannedAt:     s.now(),
		}
		s.updates.Add(1)
		s.mu.Unlock()

		go func() {
			defer s.updates.Done()
			s.resolve(identifier, roomID)
		}()
	}
}

// resolve settles a pending ledger reservation by asking the backend who the
// identifier belongs to.
func (s *Session) resolve(identifier, roomID string) {
	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()

	record, err := s.gateway.Asset(ctx, identifier)

	s.mu.Lock()
	rec, ok := s.scanned[identifier]
	if !ok || rec.Status != models.StatusPending || s.state != models.StateActive {
		// Session ended or the reservation was already settled.
		s.mu.Unlock()
		return
	}

	switch {
	case err == nil:
		rec.Status = models.StatusMisplaced
		rec.Description = record.Description
		rec.Brand = record.Brand
		rec.Model = record.Model
		rec.AssignedRoomID = record.AssignedRoomID
		s.updates.Add(1)
		s.mu.Unlock()

		s.notifier.AssetMisplaced(*rec)
		s.updateLocation(identifier, roomID)

	case errors.Is(err, ErrAssetNotFound):
		rec.Status = models.StatusUnexpected
		if rec.Description == "" {
			rec.Description = "Unexpected Asset"
		}
		rec.AssignedRoomID = ""
		s.mu.Unlock()

		// No location update: the backend has nothing to update. The record
		// exists only in the session ledger until an operator files it.
		s.notifier.AssetUnexpected(*rec)

	default:
		// Transient backend failure: drop the scan and report, releasing the
		// reservation so a retry can classify cleanly. Auto-filing the id as
		// unexpected here would mis-file a genuinely known asset.
		delete(s.scanned, identifier)
		s.mu.Unlock()

		s.log.Error("Identifier lookup failed", zap.String("id", identifier), zap.Error(err))
		s.notifier.Error(fmt.Sprintf("Could not verify asset %s; scan dropped.", identifier))
	}
}

// updateLocation issues the fire-and-forget backend location update. Failure
// is logged and surfaced as a warning but never rolls back the session-local
// ledger: until finalize, the ledger is the presentation's source of truth.
// Callers add to s.updates under the session lock before invoking it.
func (s *Session) updateLocation(identifier, roomID string) {
	go func() {
		defer s.updates.Done()

		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()

		if err := s.gateway.UpdateAssetLocation(ctx, identifier, roomID); err != nil {
			s.log.Warn("Location update failed",
				zap.String("id", identifier), zap.String("room", roomID), zap.Error(err))
			s.notifier.Warning(fmt.Sprintf("Could not update location of asset %s.", identifier))
		}
	}()
}

// Stop ends the audit. With markMissing, every expected asset not found is
// transitioned to Missing locally and one batched mark-missing call is issued
// for exactly those ids; partial failure is surfaced with counts but neither
// retried nor rolled back locally. Without markMissing no statuses change and
// no backend mutation is issued.
func (s *Session) Stop(markMissing bool) (*models.Summary, error) {
	return s.shutdown(markMissing, false)
}

// Cancel ends the audit discarding the delta: no backend mutations, no status
// changes, plus an explicit "nothing was changed" notification.
func (s *Session) Cancel() (*models.Summary, error) {
	return s.shutdown(false, true)
}

func (s *Session) shutdown(markMissing, cancelled bool) (*models.Summary, error) {
	s.mu.Lock()
	if s.state != models.StateActive {
		s.mu.Unlock()
		return nil, ErrNotActive
	}
	s.state = models.StateStopping
	adapters := make([]scan.Adapter, 0, len(s.adapters))
	for _, a := range s.adapters {
		adapters = append(adapters, a)
	}
	s.mu.Unlock()

	// Stop every adapter, not just the current method's: a method switch may
	// have left a previous adapter with in-flight timers.
	for _, a := range adapters {
		a.Stop()
	}

	// Drain fire-and-forget location updates so the bulk call observes a
	// settled backend.
	s.updates.Wait()

	s.mu.Lock()
	var missing []string
	if markMissing {
		for id, asset := range s.expected {
			if !asset.Found {
				asset.Status = models.StatusMissing
				missing = append(missing, id)
			}
		}
	}
	summary := s.summaryLocked(cancelled, missing)
	s.expected = nil
	s.scanned = nil
	s.roomID = ""
	s.state = models.StateIdle
	s.mu.Unlock()

	if markMissing && len(missing) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()

		result, err := s.gateway.MarkAssetsMissing(ctx, missing)
		switch {
		case err != nil:
			s.log.Error("Bulk mark-missing failed", zap.Int("count", len(missing)), zap.Error(err))
			s.notifier.Warning(fmt.Sprintf("Could not mark %d assets missing; inventory may be out of date.", len(missing)))
		case result.Failed > 0:
			s.notifier.Warning(fmt.Sprintf("Marked %d assets missing, %d could not be updated.", result.Processed, result.Failed))
		}
	}

	if cancelled {
		s.notifier.SessionCancelled()
	} else {
		s.notifier.SessionStopped(len(missing))
	}
	return summary, nil
}

func (s *Session) summaryLocked(cancelled bool, missing []string) *models.Summary {
	summary := &models.Summary{
		RoomID:     s.roomID,
		Method:     s.method,
		StartedAt:  s.started,
		StoppedAt:  s.now(),
		Cancelled:  cancelled,
		Expected:   len(s.expected),
		MissingIDs: missing,
	}
	for _, asset := range s.expected {
		if asset.Found {
			summary.Found++
		}
	}
	for _, rec := range s.scanned {
		// A lookup abandoned mid-flight by the shutdown leaves its
		// reservation unsettled; reservations are not outcomes.
		if rec.Status == models.StatusPending {
			continue
		}
		summary.Scanned = append(summary.Scanned, *rec)
	}
	return summary
}

// Snapshot returns a point-in-time view of the session for presentation.
func (s *Session) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.Snapshot{
		State:  s.state.String(),
		RoomID: s.roomID,
		Method: s.method,
	}
	for _, asset := range s.expected {
		snap.Expected = append(snap.Expected, *asset)
	}
	for _, rec := range s.scanned {
		snap.Scanned = append(snap.Scanned, *rec)
	}
	snap.FoundCount, snap.TotalCount = s.progressLocked()
	return snap
}

// progressLocked counts found vs expected. Callers hold s.mu.
func (s *Session) progressLocked() (found, total int) {
	for _, asset := range s.expected {
		if asset.Found {
			found++
		}
	}
	return found, len(s.expected)
}

// SimulationPick supplies the RFID simulator with its next tag read: mostly
// unscanned expected assets, sometimes an already-scanned one, and the odd
// unknown tag, mimicking a real room's radio environment.
func (s *Session) SimulationPick() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.StateActive || len(s.expected) == 0 {
		return "", false
	}

	if s.rng.Float64() < 0.05 {
		return fmt.Sprintf("RFID-%04d", s.rng.Intn(10000)), true
	}

	var unscanned, all []string
	for id, asset := range s.expected {
		all = append(all, id)
		if !asset.Found {
			unscanned = append(unscanned, id)
		}
	}
	if len(unscanned) > 0 && s.rng.Float64() < 0.8 {
		return unscanned[s.rng.Intn(len(unscanned))], true
	}
	return all[s.rng.Intn(len(all))], true
}
