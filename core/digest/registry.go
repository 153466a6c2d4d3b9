package digest

import (
	"fmt"
	"hash"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/multiformats/go-multicodec"
	mhcore "github.com/multiformats/go-multihash/core"
	_ "github.com/multiformats/go-multihash/register/all"
)

type backend struct {
	name string
	new  func() hash.Hash
}

var (
	backendsMu sync.RWMutex
	backends   = map[string]backend{}
)

func key(name string) string {
	return strings.ToUpper(strings.NewReplacer("-", "", "_", "").Replace(name))
}

// Register makes an algorithm available to New under name. It panics if
// newHash is nil or if name, once normalised, is already registered.
func Register(name string, newHash func() hash.Hash) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	if newHash == nil {
		panic("digest: Register hash constructor is nil")
	}
	k := key(name)
	if prev, dup := backends[k]; dup {
		panic(fmt.Sprintf("digest: Register called twice for algorithm %q (already registered as %q)", name, prev.name))
	}
	backends[k] = backend{name, newHash}
	log.Debugw("registered digest algorithm", "name", name)
}

// Algorithms returns the canonical names of the directly registered
// algorithms, sorted.
func Algorithms() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for _, b := range backends {
		names = append(names, b.name)
	}
	slices.Sort(names)
	return names
}

// Supported reports whether New would succeed for name.
func Supported(name string) bool {
	_, ok := resolve(name)
	return ok
}

// Canonical returns the name New would bind for name.
func Canonical(name string) (string, error) {
	b, ok := resolve(name)
	if !ok {
		return "", NewUnsupportedAlgorithmError(name)
	}
	return b.name, nil
}

func resolve(name string) (backend, bool) {
	backendsMu.RLock()
	b, ok := backends[key(name)]
	backendsMu.RUnlock()
	if ok {
		return b, true
	}
	return resolveMulticodec(name)
}

// multicodecNames maps the algorithms registered by this package to their
// multicodec names.
var multicodecNames = map[string]string{
	"MD5":         "md5",
	"SHA-1":       "sha1",
	"SHA-224":     "sha2-224",
	"SHA-256":     "sha2-256",
	"SHA-384":     "sha2-384",
	"SHA-512":     "sha2-512",
	"SHA-512/256": "sha2-512-256",
	"SHA3-224":    "sha3-224",
	"SHA3-256":    "sha3-256",
	"SHA3-384":    "sha3-384",
	"SHA3-512":    "sha3-512",
	"KECCAK-256":  "keccak-256",
	"BLAKE2b-256": "blake2b-256",
	"BLAKE2b-384": "blake2b-384",
	"BLAKE2b-512": "blake2b-512",
	"BLAKE2s-256": "blake2s-256",
	"BLAKE3":      "blake3",
}

// builtinNames is the inverse of multicodecNames.
var builtinNames = func() map[string]string {
	m := make(map[string]string, len(multicodecNames))
	for alg, codec := range multicodecNames {
		m[codec] = alg
	}
	return m
}()

// MulticodecName returns the multicodec name of a canonical algorithm name.
// Names bound through the multicodec table are returned unchanged.
func MulticodecName(algorithm string) (string, bool) {
	if name, ok := multicodecNames[algorithm]; ok {
		return name, true
	}
	var code multicodec.Code
	if !isNumeric(algorithm) && code.Set(algorithm) == nil && code.String() == algorithm {
		return algorithm, true
	}
	return "", false
}

// multicodec.Code.Set also parses code numbers, which are not algorithm names.
func isNumeric(name string) bool {
	_, err := strconv.ParseUint(name, 0, 64)
	return err == nil
}

// resolveMulticodec looks name up in the multicodec table ("sha2-256",
// "blake2b-160" ...). Spellings of algorithms registered by this package bind
// the registered backend, anything else uses the go-multihash hasher. Only
// codes tagged as multihash functions are accepted, and identity is excluded
// because it does not digest its input.
func resolveMulticodec(name string) (backend, bool) {
	if isNumeric(name) {
		return backend{}, false
	}
	var code multicodec.Code
	if err := code.Set(strings.ToLower(name)); err != nil {
		return backend{}, false
	}
	if code.Tag() != "multihash" || code == multicodec.Identity {
		return backend{}, false
	}
	if alg, ok := builtinNames[code.String()]; ok {
		backendsMu.RLock()
		b, ok := backends[key(alg)]
		backendsMu.RUnlock()
		if ok {
			return b, true
		}
	}
	if _, err := mhcore.GetHasher(uint64(code)); err != nil {
		return backend{}, false
	}
	log.Debugw("resolved digest algorithm through multicodec table", "name", name, "code", code)
	return backend{
		name: code.String(),
		new: func() hash.Hash {
			// checked above
			h, _ := mhcore.GetHasher(uint64(code))
			return h
		},
	}, true
}
