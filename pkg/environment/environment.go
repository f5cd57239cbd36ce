/*
Package environment abstracts the environment variables a toolchain
sets up before compilers are invoked. The process environment is the
usual sink; an in-memory implementation is provided for dry runs and tests.
*/
package environment

import (
	"fmt"
	"os"
	"sort"
	"sync"
)

// An Environment receives the variables a toolchain defines.
type Environment interface {
	// Setenv defines the variable key with the given value, replacing any previous value.
	Setenv(key, value string) error
	// Unsetenv removes the variable key. Removing a missing variable is not an error.
	Unsetenv(key string) error
	// Lookup returns the value of the variable key and whether it is defined.
	Lookup(key string) (string, bool)
}

// Process is the environment of the running process.
type Process struct{}

var _ Environment = Process{}

func (Process) Setenv(key, value string) error {
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("environment: failed to set $%s: %w", key, err)
	}

	return nil
}

func (Process) Unsetenv(key string) error {
	if err := os.Unsetenv(key); err != nil {
		return fmt.Errorf("environment: failed to unset $%s: %w", key, err)
	}

	return nil
}

func (Process) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Map is an in-memory environment. The zero value is ready to use.
type Map struct {
	mu   sync.RWMutex
	vars map[string]string
}

var _ Environment = (*Map)(nil)

// NewMap returns an in-memory environment holding a copy of the given variables.
func NewMap(vars map[string]string) *Map {
	m := &Map{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		m.vars[k] = v
	}

	return m
}

func (m *Map) Setenv(key, value string) error {
	if key == "" {
		return fmt.Errorf("environment: empty variable name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.vars == nil {
		m.vars = make(map[string]string)
	}
	m.vars[key] = value

	return nil
}

func (m *Map) Unsetenv(key string) error {
	m.mu.Lock()
	delete(m.vars, key)
	m.mu.Unlock()

	return nil
}

func (m *Map) Lookup(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.vars[key]
	return v, ok
}

// Keys returns the names of the defined variables in sorted order.
func (m *Map) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.vars))
	for k := range m.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Vars returns a copy of the defined variables.
func (m *Map) Vars() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.vars))
	for k, v := range m.vars {
		out[k] = v
	}

	return out
}
