/*
Package modules drives the environment module system used on HPC sites
to make software available, such as the compilers and the architecture
targets of the Cray Programming Environment.
*/
package modules

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// A Tool queries and loads environment modules.
type Tool interface {
	// Exist reports for each name whether the module exists. When skipAvail is set,
	// every module is checked individually instead of filtering the list of
	// available modules, which also finds hidden modules.
	Exist(ctx context.Context, names []string, skipAvail bool) ([]bool, error)
	// Load loads the given modules. It fails if any of the modules cannot be loaded.
	Load(ctx context.Context, names []string) error
}

// Static is an in-memory module tool with a fixed set of available modules.
// It is used for dry runs and tests.
type Static struct {
	mu        sync.Mutex
	available map[string]bool
	loaded    []string
}

var _ Tool = (*Static)(nil)

// NewStatic returns a module tool where the given modules are available.
func NewStatic(available ...string) *Static {
	s := &Static{available: map[string]bool{}}
	s.Add(available...)
	return s
}

// Add makes the given modules available.
func (s *Static) Add(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.available == nil {
		s.available = map[string]bool{}
	}
	for _, name := range names {
		s.available[name] = true
	}
}

func (s *Static) Exist(ctx context.Context, names []string, _ bool) ([]bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists := make([]bool, len(names))
	for i, name := range names {
		exists[i] = s.available[name]
	}

	return exists, nil
}

func (s *Static) Load(ctx context.Context, names []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range names {
		if !s.available[name] {
			return fmt.Errorf("modules: module %q not found", name)
		}
	}
	s.loaded = append(s.loaded, names...)

	return nil
}

// Loaded returns the loaded modules, in load order.
func (s *Static) Loaded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.loaded...)
}

// Available returns the available modules, sorted.
func (s *Static) Available() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.available))
	for name := range s.available {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
