package audit

import (
	"fmt"
	"sync"
	"time"

	"asset-audit/feature/audit/models"

	"go.uber.org/zap"
)

// Notifier is the observer contract through which the session reports state
// transitions to the presentation layer. The core has no dependency on how
// any of these are rendered.
type Notifier interface {
	RosterLoaded(roomID string, count int)
	AssetFound(rec models.ScannedRecord)
	AssetMisplaced(rec models.ScannedRecord)
	AssetUnexpected(rec models.ScannedRecord)
	AlreadyScanned(identifier string)
	Progress(found, total int)
	SessionStarted(roomID string, method models.Method)
	SessionStopped(missingCount int)
	SessionCancelled()
	Warning(message string)
	Error(message string)
}

// LogNotifier renders every session event as a structured log line.
type LogNotifier struct {
	Log *zap.Logger
}

func (n *LogNotifier) RosterLoaded(roomID string, count int) {
	n.Log.Info("Roster loaded", zap.String("room", roomID), zap.Int("expected", count))
}

func (n *LogNotifier) AssetFound(rec models.ScannedRecord) {
	n.Log.Info("Asset found", zap.String("id", rec.ID), zap.String("description", rec.Description))
}

func (n *LogNotifier) AssetMisplaced(rec models.ScannedRecord) {
	n.Log.Warn("Asset misplaced",
		zap.String("id", rec.ID),
		zap.String("assigned_room", rec.AssignedRoomID),
		zap.String("current_room", rec.CurrentRoomID))
}

func (n *LogNotifier) AssetUnexpected(rec models.ScannedRecord) {
	n.Log.Warn("Unexpected asset added", zap.String("id", rec.ID))
}

func (n *LogNotifier) AlreadyScanned(identifier string) {
	n.Log.Info("Asset already scanned", zap.String("id", identifier))
}

func (n *LogNotifier) Progress(found, total int) {
	n.Log.Info("Audit progress", zap.Int("found", found), zap.Int("total", total))
}

func (n *LogNotifier) SessionStarted(roomID string, method models.Method) {
	n.Log.Info("Audit started", zap.String("room", roomID), zap.String("method", string(method)))
}

func (n *LogNotifier) SessionStopped(missingCount int) {
	n.Log.Info("Audit stopped", zap.Int("missing", missingCount))
}

func (n *LogNotifier) SessionCancelled() {
	n.Log.Info("Audit cancelled, no assets were changed")
}

func (n *LogNotifier) Warning(message string) {
	n.Log.Warn(message)
}

func (n *LogNotifier) Error(message string) {
	n.Log.Error(message)
}

// EventKind labels a recorded notification.
type EventKind string

const (
	EventRosterLoaded     EventKind = "roster_loaded"
	EventAssetFound       EventKind = "asset_found"
	EventAssetMisplaced   EventKind = "asset_misplaced"
	EventAssetUnexpected  EventKind = "asset_unexpected"
	EventAlreadyScanned   EventKind = "already_scanned"
	EventProgress         EventKind = "progress"
	EventSessionStarted   EventKind = "session_started"
	EventSessionStopped   EventKind = "session_stopped"
	EventSessionCancelled EventKind = "session_cancelled"
	EventWarning          EventKind = "warning"
	EventError            EventKind = "error"
)

// Event is one recorded notification.
type Event struct {
	Kind    EventKind `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Recorder keeps a bounded history of notifications for the presentation
// layer to poll. Only the latest event is "displayed": per the presentation
// policy, a new notification pre-empts the previous one rather than queueing.
type Recorder struct {
	mu     sync.Mutex
	limit  int
	events []Event
}

// NewRecorder creates a recorder retaining at most limit events.
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 50
	}
	return &Recorder{limit: limit}
}

func (r *Recorder) record(kind EventKind, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, Event{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		At:      time.Now(),
	})
	if len(r.events) > r.limit {
		r.events = r.events[len(r.events)-r.limit:]
	}
}

// Latest returns the most recent event, if any.
func (r *Recorder) Latest() (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.events) == 0 {
		return Event{}, false
	}
	return r.events[len(r.events)-1], true
}

// Events returns the recorded history, oldest first.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Reset discards the history.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func (r *Recorder) RosterLoaded(roomID string, count int) {
	r.record(EventRosterLoaded, "Loaded %d expected assets for room %s", count, roomID)
}

func (r *Recorder) AssetFound(rec models.ScannedRecord) {
	r.record(EventAssetFound, "Asset found: %s (%s)", rec.Description, rec.ID)
}

func (r *Recorder) AssetMisplaced(rec models.ScannedRecord) {
	r.record(EventAssetMisplaced, "Asset found: %s (%s) - not assigned to this room", rec.Description, rec.ID)
}

func (r *Recorder) AssetUnexpected(rec models.ScannedRecord) {
	r.record(EventAssetUnexpected, "Unknown asset %s added as unexpected", rec.ID)
}

func (r *Recorder) AlreadyScanned(identifier string) {
	r.record(EventAlreadyScanned, "Asset already scanned: %s", identifier)
}

func (r *Recorder) Progress(found, total int) {
	r.record(EventProgress, "%d of %d assets found", found, total)
}

func (r *Recorder) SessionStarted(roomID string, method models.Method) {
	r.record(EventSessionStarted, "Audit started for room %s (%s)", roomID, method)
}

func (r *Recorder) SessionStopped(missingCount int) {
	r.record(EventSessionStopped, "Audit completed, %d assets marked as missing", missingCount)
}

func (r *Recorder) SessionCancelled() {
	r.record(EventSessionCancelled, "Audit cancelled. No assets were changed.")
}

func (r *Recorder) Warning(message string) {
	r.record(EventWarning, "%s", message)
}

func (r *Recorder) Error(message string) {
	r.record(EventError, "%s", message)
}

// multiNotifier fans one notification out to several notifiers.
type multiNotifier []Notifier

// CombineNotifiers returns a Notifier that forwards to all given notifiers.
func CombineNotifiers(notifiers ...Notifier) Notifier {
	return multiNotifier(notifiers)
}

func (m multiNotifier) RosterLoaded(roomID string, count int) {
	for _, n := range m {
		n.RosterLoaded(roomID, count)
	}
}

func (m multiNotifier) AssetFound(rec models.ScannedRecord) {
	for _, n := range m {
		n.AssetFound(rec)
	}
}

func (m multiNotifier) AssetMisplaced(rec models.ScannedRecord) {
	for _, n := range m {
		n.AssetMisplaced(rec)
	}
}

func (m multiNotifier) AssetUnexpected(rec models.ScannedRecord) {
	for _, n := range m {
		n.AssetUnexpected(rec)
	}
}

func (m multiNotifier) AlreadyScanned(identifier string) {
	for _, n := range m {
		n.AlreadyScanned(identifier)
	}
}

func (m multiNotifier) Progress(found, total int) {
	for _, n := range m {
		n.Progress(found, total)
	}
}

func (m multiNotifier) SessionStarted(roomID string, method models.Method) {
	for _, n := range m {
		n.SessionStarted(roomID, method)
	}
}

func (m multiNotifier) SessionStopped(missingCount int) {
	for _, n := range m {
		n.SessionStopped(missingCount)
	}
}

func (m multiNotifier) SessionCancelled() {
	for _, n := range m {
		n.SessionCancelled()
	}
}

func (m multiNotifier) Warning(message string) {
	for _, n := range m {
		n.Warning(message)
	}
}

func (m multiNotifier) Error(message string) {
	for _, n := range m {
		n.Error(message)
	}
}
