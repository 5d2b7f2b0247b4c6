package run

// Config represents run plugin configuration
type Config struct {
	ScanPath   bool `mapstructure:"scan_path"`
	InTerminal bool `mapstructure:"in_terminal"`
}

// DefaultConfig returns default run configuration
func DefaultConfig() Config {
	return Config{ScanPath: true}
}
