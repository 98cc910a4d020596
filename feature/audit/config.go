package audit

// Config carries the tunables of the audit engine and its scan adapters.
type Config struct {
	// Enabled toggles the audit feature's HTTP surface.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// CameraPollMS is the camera frame polling interval in milliseconds.
	CameraPollMS int `mapstructure:"camera_poll_ms" default:"500"`
	// CameraPauseMS is the confirmation pause after a successful camera
	// decode, in milliseconds.
	CameraPauseMS int `mapstructure:"camera_pause_ms" default:"1000"`
	// DebounceMS is the keyboard-wedge burst debounce window in milliseconds.
	DebounceMS int `mapstructure:"debounce_ms" default:"20"`
	// RfidIntervalMS is the simulated RFID read interval in milliseconds.
	RfidIntervalMS int `mapstructure:"rfid_interval_ms" default:"3000"`
	// ResolverTTLSeconds is how long identifier lookups are cached.
	ResolverTTLSeconds int `mapstructure:"resolver_ttl_seconds" default:"30"`
	// ArchiveEnabled turns on summary archiving to object storage.
	ArchiveEnabled bool `mapstructure:"archive_enabled" default:"false"`
	// EventLimit bounds the in-memory notification history.
	EventLimit int `mapstructure:"event_limit" default:"50"`
}
