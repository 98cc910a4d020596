package inventory

// Config carries the inventory feature's tunables.
type Config struct {
	// Enabled toggles the inventory HTTP surface.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// MisplacedThresholdDays protects recently-sighted misplaced assets from
	// being marked missing: an asset seen in the wrong room within this many
	// days keeps its Misplaced status.
	MisplacedThresholdDays int `mapstructure:"misplaced_threshold_days" default:"30"`
	// Migrate runs schema migration at startup.
	Migrate bool `mapstructure:"migrate" default:"true"`
}
