package apps

// Config represents apps plugin configuration
type Config struct {
	// ExtraDirs are searched after the XDG application directories.
	ExtraDirs   []string `mapstructure:"extra_dirs"`
	ShowComment bool     `mapstructure:"show_comment"`
}

// DefaultConfig returns default apps configuration
func DefaultConfig() Config {
	return Config{ShowComment: true}
}
