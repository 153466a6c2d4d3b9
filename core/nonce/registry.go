package nonce

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// UUIDName identifies the source producing random (version 4) UUID strings.
const UUIDName = "uuid"

var (
	sourcesMu sync.RWMutex
	sources   = map[string]Source{}
)

func init() {
	Register(SystemName, System)
	Register(UUIDName, UUIDSource)
}

// Register makes a source available by name. It panics if src is nil or the
// name is already taken.
func Register(name string, src Source) {
	sourcesMu.Lock()
	defer sourcesMu.Unlock()
	if src == nil {
		panic("nonce: Register source is nil")
	}
	if _, dup := sources[name]; dup {
		panic(fmt.Sprintf("nonce: Register called twice for source %q", name))
	}
	sources[name] = src
	log.Debugw("registered nonce source", "name", name)
}

// Lookup returns the source registered under name.
func Lookup(name string) (Source, error) {
	sourcesMu.RLock()
	defer sourcesMu.RUnlock()
	src, ok := sources[name]
	if !ok {
		return nil, NewUnknownSourceError(name)
	}
	return src, nil
}

// Names returns the registered source names, sorted.
func Names() []string {
	sourcesMu.RLock()
	defer sourcesMu.RUnlock()
	return slices.Sorted(maps.Keys(sources))
}

// UUIDSource produces RFC 4122 version 4 UUIDs in their canonical string
// form. The 122 random bits come from crypto/rand.
var UUIDSource Source = SourceFunc(func() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", NewEntropyUnavailableError(err)
	}
	return u.String(), nil
})
