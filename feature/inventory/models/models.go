package models

import "time"

// Asset statuses as stored in the database. The audit feature mirrors these
// in its session-local views.
const (
	StatusGood       = "Good"
	StatusMissing    = "Missing"
	StatusMisplaced  = "Misplaced"
	StatusUnexpected = "Unexpected"
	StatusLost       = "Lost"
)

// Building is a physical site containing floors.
type Building struct {
	ID   string `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name" json:"name"`
}

// TableName overrides the table name.
func (Building) TableName() string {
	return "buildings"
}

// Floor is one level of a building.
type Floor struct {
	ID         string `gorm:"column:id;primaryKey" json:"id"`
	BuildingID string `gorm:"column:building_id;index" json:"building_id"`
	Level      int    `gorm:"column:level" json:"level"`
	Name       string `gorm:"column:name" json:"name"`
}

// TableName overrides the table name.
func (Floor) TableName() string {
	return "floors"
}

// Room is the unit assets are assigned to and audited against.
type Room struct {
	ID      string `gorm:"column:id;primaryKey" json:"id"`
	FloorID string `gorm:"column:floor_id;index" json:"floor_id"`
	Name    string `gorm:"column:name" json:"name"`
}

// TableName overrides the table name.
func (Room) TableName() string {
	return "rooms"
}

// Assignee is the person an asset is issued to.
type Assignee struct {
	ID    string `gorm:"column:id;primaryKey" json:"id"`
	Name  string `gorm:"column:name" json:"name"`
	Email string `gorm:"column:email" json:"email"`
}

// TableName overrides the table name.
func (Assignee) TableName() string {
	return "assignees"
}

// Asset is one tracked item. The tag printed on the item is the primary key;
// RoomID is where the asset should be, LastLocated where it was last seen.
type Asset struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	Description  string    `gorm:"column:description" json:"description"`
	Brand        string    `gorm:"column:brand" json:"brand"`
	Model        string    `gorm:"column:model" json:"model"`
	SerialNumber string    `gorm:"column:serial_number" json:"serial_number"`
	RoomID       string    `gorm:"column:room_id;index" json:"room_id"`
	LastLocated  string    `gorm:"column:last_located" json:"last_located"`
	AssigneeID   string    `gorm:"column:assignee_id;index" json:"assignee_id"`
	Status       string    `gorm:"column:status;index" json:"status"`
	Notes        string    `gorm:"column:notes" json:"notes"`
	LastUpdate   time.Time `gorm:"column:last_update" json:"last_update"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name.
func (Asset) TableName() string {
	return "assets"
}

// ScanEvent is the append-only record of one asset sighting.
type ScanEvent struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	AssetID   string    `gorm:"column:asset_id;index" json:"asset_id"`
	RoomID    string    `gorm:"column:room_id" json:"room_id"`
	Status    string    `gorm:"column:status" json:"status"`
	ScannedAt time.Time `gorm:"column:scanned_at" json:"scanned_at"`
}

// TableName overrides the table name.
func (ScanEvent) TableName() string {
	return "scan_events"
}

// BulkResult reports the outcome of a bulk mutation. Skipped assets are
// counted as errors with a per-asset reason.
type BulkResult struct {
	Processed int      `json:"processed_count"`
	Failed    int      `json:"error_count"`
	Errors    []string `json:"errors"`
}

// All lists every model for schema migration.
func All() []any {
	return []any{
		&Building{},
		&Floor{},
		&Room{},
		&Assignee{},
		&Asset{},
		&ScanEvent{},
	}
}
