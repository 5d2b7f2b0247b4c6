package apps

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
)

// Application is the launchable part of a desktop entry.
type Application struct {
	ID          string
	Name        string
	GenericName string
	Comment     string
	Icon        string
	Exec        string
	TryExec     string
	Terminal    bool
	NoDisplay   bool
	Hidden      bool
	Type        string
}

// Visible reports whether the entry belongs in a launcher.
func (a Application) Visible() bool {
	return a.Type == "Application" && !a.NoDisplay && !a.Hidden && a.Name != "" && a.Exec != ""
}

// parseDesktopEntry reads the [Desktop Entry] group. Localized keys and
// other groups (actions) are ignored.
func parseDesktopEntry(r io.Reader) (Application, error) {
	var app Application

	scanner := bufio.NewScanner(r)
	inEntry := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if !inEntry {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = unescape(strings.TrimSpace(value))

		switch key {
		case "Type":
			app.Type = value
		case "Name":
			app.Name = value
		case "GenericName":
			app.GenericName = value
		case "Comment":
			app.Comment = value
		case "Icon":
			app.Icon = value
		case "Exec":
			app.Exec = value
		case "TryExec":
			app.TryExec = value
		case "Terminal":
			app.Terminal, _ = strconv.ParseBool(value)
		case "NoDisplay":
			app.NoDisplay, _ = strconv.ParseBool(value)
		case "Hidden":
			app.Hidden, _ = strconv.ParseBool(value)
		}
	}

	return app, scanner.Err()
}

func unescape(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	return strings.NewReplacer(`\s`, " ", `\n`, "\n", `\t`, "\t", `\r`, "\r", `\\`, `\`).Replace(value)
}

// commandLine splits an Exec value and drops the field codes a launcher
// without file arguments has nothing to substitute for.
func commandLine(exec string) ([]string, error) {
	fields, err := shlex.Split(exec)
	if err != nil {
		return nil, err
	}

	argv := make([]string, 0, len(fields))
	for _, field := range fields {
		switch field {
		case "%f", "%F", "%u", "%U", "%d", "%D", "%n", "%N", "%i", "%c", "%k", "%v", "%m":
			continue
		}
		argv = append(argv, strings.ReplaceAll(field, "%%", "%"))
	}
	return argv, nil
}
