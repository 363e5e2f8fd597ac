package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/d21d3q/goutmp/internal/record"
)

// Exporter renders decoded records into one output format.
type Exporter interface {
	Name() string
	// Extension is the output file suffix without the dot.
	Extension() string
	Write(w io.Writer, records []record.Record, opts Options) error
}

var (
	regMu    sync.RWMutex
	registry = map[string]Exporter{}
)

// Register stores an exporter under its name. Registering the same name twice
// panics.
func Register(e Exporter) {
	regMu.Lock()
	defer regMu.Unlock()
	name := strings.ToLower(e.Name())
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("export: exporter %q registered twice", name))
	}
	registry[name] = e
}

// Lookup returns the exporter registered under name.
func Lookup(name string) (Exporter, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	if e, ok := registry[strings.ToLower(name)]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("exporter not found for format %q (available: %s)", name, strings.Join(namesLocked(), ", "))
}

// Names lists registered formats in sorted order.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
