package man

// Config represents man plugin configuration
type Config struct {
	// Sections limits the listed pages; empty lists every section.
	Sections         []string `mapstructure:"sections"`
	ShowDescriptions bool     `mapstructure:"show_descriptions"`
	InTerminal       bool     `mapstructure:"in_terminal"`
}

// DefaultConfig returns default man configuration
func DefaultConfig() Config {
	return Config{
		ShowDescriptions: true,
		InTerminal:       true,
	}
}
