package bookmarks

// Source defines a bookmark source in config.toml
type Source struct {
	Name string `mapstructure:"name"`
	// Path may be a glob; the first match is read.
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

// Config holds bookmarks plugin configuration
type Config struct {
	Sources []Source `mapstructure:"sources"`
	// Limit caps the rows read from a Firefox database.
	Limit int `mapstructure:"limit"`
}

// DefaultConfig returns default bookmarks configuration
func DefaultConfig() Config {
	return Config{
		Limit: 1000,
		Sources: []Source{
			{
				Name:   "Qutebrowser Quickmarks",
				Path:   "~/.config/qutebrowser/quickmarks",
				Format: FormatQuteQuickmarks,
			},
			{
				Name:   "Qutebrowser Bookmarks",
				Path:   "~/.config/qutebrowser/bookmarks/urls",
				Format: FormatQuteBookmarks,
			},
		},
	}
}
