package dmenu

// Config represents dmenu plugin configuration
type Config struct {
	// Trim strips trailing whitespace and drops empty lines.
	Trim bool `mapstructure:"trim"`
}

// DefaultConfig returns default dmenu configuration
func DefaultConfig() Config {
	return Config{Trim: true}
}
