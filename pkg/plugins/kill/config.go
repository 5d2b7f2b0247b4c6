package kill

// Config represents kill plugin configuration
type Config struct {
	// Signal is passed to kill(1) as -<signal>.
	Signal   string   `mapstructure:"signal"`
	UserOnly bool     `mapstructure:"user_only"`
	Exclude  []string `mapstructure:"exclude"`
}

// DefaultConfig returns default kill configuration
func DefaultConfig() Config {
	return Config{
		Signal:   "TERM",
		UserOnly: true,
		Exclude: []string{
			"systemd",
			"init",
			"kthreadd",
		},
	}
}
