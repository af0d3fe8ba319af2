// Package codec serializes match reports.
//
// Reports store the codec name in their header and are decoded by looking the
// name up in the registry, so custom codecs must be registered before their
// reports are read.
package codec

import (
	"fmt"
	"slices"
	"sync"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

var registry = struct {
	sync.RWMutex
	codecs map[string]Codec
}{
	codecs: map[string]Codec{
		"json":    JSON{},
		"go-json": GoJSON{},
	},
}

// Register makes c available to ByName. Registering a name twice fails.
func Register(c Codec) error {
	registry.Lock()
	defer registry.Unlock()

	name := c.Name()
	if name == "" {
		return fmt.Errorf("codec: empty name")
	}
	if _, dup := registry.codecs[name]; dup {
		return fmt.Errorf("codec: %q already registered", name)
	}
	registry.codecs[name] = c
	return nil
}

// ByName returns a registered codec by its stable name.
func ByName(name string) (Codec, bool) {
	registry.RLock()
	defer registry.RUnlock()
	c, ok := registry.codecs[name]
	return c, ok
}

// Names returns the sorted names of all registered codecs.
func Names() []string {
	registry.RLock()
	defer registry.RUnlock()

	names := make([]string, 0, len(registry.codecs))
	for name := range registry.codecs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
