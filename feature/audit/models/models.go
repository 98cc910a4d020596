package models

import "time"

// Status is the lifecycle status of an asset, shared between the session-local
// view and the system of record.
type Status string

const (
	// StatusGood means the asset was confirmed in its assigned room.
	StatusGood Status = "Good"
	// StatusMissing means the asset was not found during an audit.
	StatusMissing Status = "Missing"
	// StatusMisplaced means the asset was found in a room other than its assigned one.
	StatusMisplaced Status = "Misplaced"
	// StatusUnexpected means the scanned identifier has no backend record.
	StatusUnexpected Status = "Unexpected"
	// StatusLost means the asset was explicitly written off.
	StatusLost Status = "Lost"
	// StatusPending is a session-local placeholder while a scanned identifier
	// is being resolved against the backend. It never reaches the database.
	StatusPending Status = "Pending"
)

// Method identifies the input modality driving an audit session.
type Method string

const (
	MethodManual  Method = "manual"
	MethodBarcode Method = "barcode"
	MethodRfid    Method = "rfid"
	MethodQrcode  Method = "qrcode"
)

// Valid reports whether m is a known audit method.
func (m Method) Valid() bool {
	switch m {
	case MethodManual, MethodBarcode, MethodRfid, MethodQrcode:
		return true
	default:
		return false
	}
}

// State is the lifecycle state of an audit session.
type State int

const (
	// StateIdle means no audit is running.
	StateIdle State = iota
	// StateActive means scanning is enabled and one method is live.
	StateActive
	// StateStopping means the session is shutting down its adapters.
	StateStopping
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Classification is the outcome of reconciling one scanned identifier.
type Classification string

const (
	// ClassFound means the identifier matched an expected asset not yet scanned.
	ClassFound Classification = "found"
	// ClassAlreadyScanned means the identifier was already processed this session.
	ClassAlreadyScanned Classification = "already_scanned"
	// ClassMisplaced means the identifier resolved to an asset assigned elsewhere.
	ClassMisplaced Classification = "misplaced"
	// ClassUnexpected means the identifier resolved to nothing in the backend.
	ClassUnexpected Classification = "unexpected"
)

// ExpectedAsset is one asset the backend states belongs in the room under audit.
// Found is session-local and flips true exactly once, the first time the asset
// is successfully scanned.
type ExpectedAsset struct {
	ID                string    `json:"id"`
	Description       string    `json:"description"`
	Brand             string    `json:"brand"`
	Model             string    `json:"model"`
	SerialNumber      string    `json:"serial_number"`
	AssignedRoomID    string    `json:"room_id"`
	LastLocatedRoomID string    `json:"last_located"`
	AssigneeID        string    `json:"assignee_id"`
	LastUpdate        time.Time `json:"last_update"`
	Notes             string    `json:"notes"`
	Status            Status    `json:"status"`
	Found             bool      `json:"found"`
}

// ScannedRecord is a session-local ledger entry created the first time an
// identifier is resolved, regardless of expected/unexpected origin.
// The session keeps at most one record per identifier.
type ScannedRecord struct {
	ID             string    `json:"id"`
	Description    string    `json:"description"`
	Brand          string    `json:"brand"`
	Model          string    `json:"model"`
	Status         Status    `json:"status"`
	CurrentRoomID  string    `json:"current_room_id"`
	AssignedRoomID string    `json:"assigned_room_id,omitempty"`
	ScannedAt      time.Time `json:"scanned_at"`
}

// AssetRecord is the backend's view of an asset, returned by identifier lookups.
type AssetRecord struct {
	ID                string    `json:"id"`
	Description       string    `json:"description"`
	Brand             string    `json:"brand"`
	Model             string    `json:"model"`
	SerialNumber      string    `json:"serial_number"`
	AssignedRoomID    string    `json:"room_id"`
	LastLocatedRoomID string    `json:"last_located"`
	AssigneeID        string    `json:"assignee_id"`
	Status            Status    `json:"status"`
	Notes             string    `json:"notes"`
	LastUpdate        time.Time `json:"last_update"`
}

// BulkResult reports the outcome of a bulk backend mutation.
type BulkResult struct {
	// Processed counts identifiers that were mutated.
	Processed int `json:"processed_count"`
	// Failed counts identifiers that were skipped or errored.
	Failed int `json:"error_count"`
	// Errors describes each failed identifier.
	Errors []string `json:"errors"`
}

// Snapshot is a point-in-time view of an audit session for presentation.
type Snapshot struct {
	State      string          `json:"state"`
	RoomID     string          `json:"room_id,omitempty"`
	Method     Method          `json:"method"`
	Expected   []ExpectedAsset `json:"expected_assets"`
	Scanned    []ScannedRecord `json:"scanned_records"`
	FoundCount int             `json:"found_count"`
	TotalCount int             `json:"total_count"`
}

// Summary is the final reconciliation produced when a session ends.
type Summary struct {
	RoomID     string          `json:"room_id"`
	Method     Method          `json:"method"`
	StartedAt  time.Time       `json:"started_at"`
	StoppedAt  time.Time       `json:"stopped_at"`
	Cancelled  bool            `json:"cancelled"`
	Expected   int             `json:"expected_count"`
	Found      int             `json:"found_count"`
	MissingIDs []string        `json:"missing_ids"`
	Scanned    []ScannedRecord `json:"scanned_records"`
}
