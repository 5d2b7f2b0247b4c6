package bookmarks

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	_ "modernc.org/sqlite"

	"github.com/lvim-tech/qlaunch/pkg/utils"
)

// Source formats.
const (
	FormatQuteQuickmarks = "qutebrowser_quickmarks"
	FormatQuteBookmarks  = "qutebrowser_bookmarks"
	FormatChrome         = "chrome"
	FormatFirefox        = "firefox"
)

// Node is a bookmark, or a folder when URL is empty.
type Node struct {
	Title    string
	URL      string
	Source   string
	Children []*Node
}

// IsFolder reports whether n groups other nodes.
func (n *Node) IsFolder() bool {
	return n.URL == ""
}

// parseSource determines which format parser to call based on source.Format.
func parseSource(ctx context.Context, src Source, limit int) ([]*Node, error) {
	path, err := resolvePath(src.Path)
	if err != nil {
		return nil, err
	}

	switch src.Format {
	case FormatQuteQuickmarks:
		return parseQuteQuickmarks(src.Name, path)
	case FormatQuteBookmarks:
		return parseQuteBookmarks(src.Name, path)
	case FormatChrome, "chrome_bookmarks_json":
		return parseChromeBookmarks(src.Name, path)
	case FormatFirefox, "firefox_sqlite":
		return parseFirefoxBookmarks(ctx, src.Name, path, limit)
	default:
		return nil, fmt.Errorf("unknown source format: %s", src.Format)
	}
}

func resolvePath(pattern string) (string, error) {
	pattern = utils.ExpandHomeDir(pattern)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%s: %w", pattern, os.ErrNotExist)
	}
	return matches[0], nil
}

// parseQuteQuickmarks parses qutebrowser quickmarks (<name> <url> per line)
func parseQuteQuickmarks(srcName, path string) ([]*Node, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	var result []*Node
	for _, l := range lines {
		fs := strings.Fields(l)
		if len(fs) >= 2 {
			result = append(result, &Node{
				Title:  strings.Join(fs[:len(fs)-1], " "),
				URL:    fs[len(fs)-1],
				Source: srcName,
			})
		}
	}
	return result, nil
}

// parseQuteBookmarks parses qutebrowser bookmarks (<url> <title...> per line)
func parseQuteBookmarks(srcName, path string) ([]*Node, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	var result []*Node
	for _, l := range lines {
		fs := strings.Fields(l)
		if len(fs) == 0 {
			continue
		}
		n := &Node{URL: fs[0], Source: srcName}
		if len(fs) > 1 {
			n.Title = strings.Join(fs[1:], " ")
		}
		result = append(result, n)
	}
	return result, nil
}

// parseChromeBookmarks parses the Bookmarks JSON file of Chrome, Chromium
// and Brave. The children of every root become top-level nodes.
func parseChromeBookmarks(srcName, path string) ([]*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s: invalid JSON", path)
	}

	var result []*Node
	gjson.GetBytes(data, "roots").ForEach(func(_, root gjson.Result) bool {
		if root.IsObject() {
			result = append(result, chromeChildren(srcName, root)...)
		}
		return true
	})
	return result, nil
}

func chromeChildren(srcName string, folder gjson.Result) []*Node {
	var nodes []*Node
	for _, c := range folder.Get("children").Array() {
		switch c.Get("type").String() {
		case "url":
			if url := c.Get("url").String(); url != "" {
				nodes = append(nodes, &Node{Title: c.Get("name").String(), URL: url, Source: srcName})
			}
		case "folder":
			children := chromeChildren(srcName, c)
			if len(children) > 0 {
				nodes = append(nodes, &Node{Title: c.Get("name").String(), Source: srcName, Children: children})
			}
		}
	}
	return nodes
}

// parseFirefoxBookmarks reads the newest bookmarks from places.sqlite.
// Firefox keeps the database locked while running, so a copy is queried.
func parseFirefoxBookmarks(ctx context.Context, srcName, path string, limit int) ([]*Node, error) {
	snapshot, err := copyToTemp(path)
	if err != nil {
		return nil, fmt.Errorf("copy places database: %w", err)
	}
	defer os.Remove(snapshot)

	db, err := sql.Open("sqlite", snapshot)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if limit <= 0 {
		limit = -1
	}

	const q = `
	SELECT COALESCE(b.title, ''), p.url
	FROM moz_bookmarks b
	JOIN moz_places p ON b.fk = p.id
	WHERE b.type = 1 AND p.url LIKE 'http%'
	ORDER BY b.dateAdded DESC
	LIMIT ?
	`
	rows, err := db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite query: %w", err)
	}
	defer rows.Close()

	var result []*Node
	for rows.Next() {
		var title, url string
		if err := rows.Scan(&title, &url); err != nil {
			continue
		}
		result = append(result, &Node{Title: title, URL: url, Source: srcName})
	}
	return result, rows.Err()
}

func copyToTemp(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "qlaunch-places-*.sqlite")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}

// readLines reads a text file into a slice of strings (one per line).
func readLines(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
