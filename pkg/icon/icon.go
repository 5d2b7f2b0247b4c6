// Package icon maps icon identifiers to terminal glyphs.
//
// Plugins only name icons ("firefox", "org.gnome.Nautilus",
// "/usr/share/pixmaps/gimp.png"); the UI resolves the name through a Cache
// built from the [icons] table.
package icon

import (
	"path/filepath"
	"strings"

	"github.com/lvim-tech/qlaunch/pkg/config"
)

// Cache is immutable after Load and safe for concurrent reads.
type Cache struct {
	glyphs map[string]string
}

// Load builds the cache from the configured icon table.
func Load(cfg *config.Config) *Cache {
	c := &Cache{glyphs: make(map[string]string, len(cfg.Icons))}
	for id, glyph := range cfg.Icons {
		if glyph == "" {
			continue
		}
		c.glyphs[strings.ToLower(id)] = glyph
	}
	return c
}

// Len returns the number of known identifiers.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.glyphs)
}

// Resolve finds the glyph for id. It tries the identifier itself, then its
// file stem, the part before the first dash and the last reverse-DNS
// component.
func (c *Cache) Resolve(id string) (string, bool) {
	if c == nil || id == "" {
		return "", false
	}

	for _, key := range candidates(id) {
		if glyph, ok := c.glyphs[key]; ok {
			return glyph, true
		}
	}
	return "", false
}

func candidates(id string) []string {
	key := strings.ToLower(id)
	keys := []string{key}

	stem := filepath.Base(key)
	switch filepath.Ext(stem) {
	case ".png", ".svg", ".xpm":
		stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	}
	if stem != key {
		keys = append(keys, stem)
	}

	if head, _, found := strings.Cut(stem, "-"); found && head != "" {
		keys = append(keys, head)
	}

	if i := strings.LastIndexByte(stem, '.'); i >= 0 && i < len(stem)-1 {
		last := stem[i+1:]
		keys = append(keys, last)
		if head, _, found := strings.Cut(last, "-"); found && head != "" {
			keys = append(keys, head)
		}
	}

	return keys
}
