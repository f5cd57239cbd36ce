/*
Package buildopts provides read access to the process-wide build options,
such as the target architecture ("optarch"). Options are set once before
toolchains are prepared and never change afterwards.
*/
package buildopts

import (
	"fmt"
	"strings"

	"github.com/gvallee/kv/pkg/kv"
)

// EnvPrefix is the prefix of environment variables that define build options.
const EnvPrefix = "EASYBUILD_"

// A Store gives read-only access to build options.
type Store interface {
	// Get returns the value of the named option and whether it is defined.
	Get(name string) (string, bool)
}

// Map is a Store backed by a map.
type Map map[string]string

var _ Store = Map(nil)

func (m Map) Get(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// LoadFile reads build options from a key/value configuration file.
// Keys are normalized like option names: lower case, with dashes instead of underscores.
func LoadFile(path string) (Map, error) {
	kvs, err := kv.LoadKeyValueConfig(path)
	if err != nil {
		return nil, fmt.Errorf("buildopts: failed to load key/value from %s: %w", path, err)
	}

	m := make(Map, len(kvs))
	for _, e := range kvs {
		key := normalize(e.Key)
		if key == "" {
			continue
		}
		m[key] = strings.TrimSpace(e.Value)
	}

	return m, nil
}

// FromEnviron reads build options from environment entries of the form
// "<prefix><NAME>=value", as returned by os.Environ. EASYBUILD_OPTARCH
// defines the "optarch" option.
func FromEnviron(prefix string, environ []string) Map {
	m := Map{}
	for _, entry := range environ {
		pair := strings.SplitN(entry, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefix) {
			continue
		}

		key := normalize(strings.TrimPrefix(pair[0], prefix))
		if key == "" {
			continue
		}
		m[key] = pair[1]
	}

	return m
}

// Layered looks up options in each store in turn and returns the first defined value.
type Layered []Store

var _ Store = Layered(nil)

func (l Layered) Get(name string) (string, bool) {
	for _, s := range l {
		if s == nil {
			continue
		}
		if v, ok := s.Get(name); ok {
			return v, true
		}
	}

	return "", false
}

func normalize(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "-")
}
