// Package levels embeds the bundled maps.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed *.tmx
var LevelsFS embed.FS

// Open returns the raw document of an embedded map.
func Open(name string) ([]byte, error) {
	b, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return b, nil
}

// Exists reports whether name is an embedded map.
func Exists(name string) bool {
	_, err := fs.Stat(LevelsFS, name)
	return err == nil
}

// Names lists the embedded maps in sorted order.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
