// Package clm is the catalog of CLM math-font blobs available to the
// renderer. Fonts are embedded at build time from clm/data (the build
// pipeline drops fetched .clm2 files there before compiling) and can
// be supplemented at run time with Register, which is how tests and
// embedders without the data directory provide font bytes.
package clm

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed data
var dataFS embed.FS

var (
	mu         sync.RWMutex
	registered = map[string][]byte{}
)

// Available lists the names of all CLM fonts in the catalog, embedded
// and registered, sorted.
func Available() []string {
	seen := map[string]bool{}
	for _, name := range embeddedNames() {
		seen[name] = true
	}
	mu.RLock()
	for name := range registered {
		seen[name] = true
	}
	mu.RUnlock()
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the font bytes for name. Registered fonts shadow
// embedded ones.
func Get(name string) ([]byte, bool) {
	mu.RLock()
	data, ok := registered[name]
	mu.RUnlock()
	if ok {
		return append([]byte(nil), data...), true
	}
	b, err := dataFS.ReadFile(path.Join("data", name))
	if err != nil {
		return nil, false
	}
	return b, true
}

// Register adds or replaces a font in the catalog at run time.
func Register(name string, data []byte) {
	mu.Lock()
	defer mu.Unlock()
	registered[name] = append([]byte(nil), data...)
}

// Remove drops a registered font. Embedded fonts cannot be removed.
func Remove(name string) {
	mu.Lock()
	defer mu.Unlock()
	delete(registered, name)
}

func embeddedNames() []string {
	var names []string
	entries, err := fs.ReadDir(dataFS, "data")
	if err != nil {
		return nil
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".clm2") {
			continue
		}
		names = append(names, e.Name())
	}
	return names
}
