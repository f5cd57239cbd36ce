package toolchain

import (
	"fmt"
	"sort"
	"strings"
)

type flagKind uint8

const (
	flagLiteral flagKind = iota
	flagList
	flagToggle
)

// A FlagValue is the realization of a toolchain option for a compiler family.
// Flags are stored without their leading dash. FlagValues are immutable.
//
// The zero value is an empty literal, which suppresses the flag.
type FlagValue struct {
	kind    flagKind
	flags   []string
	onTrue  string
	onFalse string
}

// Literal returns a single flag. An empty flag means no flag is passed for the option.
func Literal(flag string) FlagValue {
	return FlagValue{kind: flagLiteral, flags: []string{flag}}
}

// List returns a sequence of flags. An empty list means the option has no flag.
func List(flags ...string) FlagValue {
	return FlagValue{kind: flagList, flags: append([]string{}, flags...)}
}

// Toggle returns a flag that depends on the value of the option.
func Toggle(onTrue, onFalse string) FlagValue {
	return FlagValue{kind: flagToggle, onTrue: onTrue, onFalse: onFalse}
}

// Resolve returns the flags for the given option value. Empty flags are omitted.
func (v FlagValue) Resolve(value bool) []string {
	if v.kind == flagToggle {
		flag := v.onFalse
		if value {
			flag = v.onTrue
		}
		if flag == "" {
			return nil
		}
		return []string{flag}
	}

	var out []string
	for _, flag := range v.flags {
		if flag != "" {
			out = append(out, flag)
		}
	}

	return out
}

// IsEmpty reports whether the value never produces a flag.
func (v FlagValue) IsEmpty() bool {
	return len(v.Resolve(true)) == 0 && len(v.Resolve(false)) == 0
}

// Equal reports whether both values have the same kind and the same flags.
func (v FlagValue) Equal(other FlagValue) bool {
	if v.kind != other.kind || v.onTrue != other.onTrue || v.onFalse != other.onFalse {
		return false
	}

	if v.kind == flagLiteral {
		return v.literal() == other.literal()
	}

	if len(v.flags) != len(other.flags) {
		return false
	}
	for i := range v.flags {
		if v.flags[i] != other.flags[i] {
			return false
		}
	}

	return true
}

func (v FlagValue) literal() string {
	if len(v.flags) == 0 {
		return ""
	}
	return v.flags[0]
}

func (v FlagValue) String() string {
	switch v.kind {
	case flagList:
		return "[" + strings.Join(v.flags, " ") + "]"
	case flagToggle:
		return fmt.Sprintf("{true: %q, false: %q}", v.onTrue, v.onFalse)
	default:
		return fmt.Sprintf("%q", v.literal())
	}
}

// A FlagMap maps option names to their flags for a compiler family.
// A FlagMap is immutable: every method that changes entries returns a new map,
// so tables can be shared freely between compilers.
type FlagMap struct {
	entries map[string]FlagValue
}

// NewFlagMap creates a flag map holding a copy of the given entries.
func NewFlagMap(entries map[string]FlagValue) FlagMap {
	m := FlagMap{entries: make(map[string]FlagValue, len(entries))}
	for name, v := range entries {
		m.entries[name] = v
	}

	return m
}

// Len returns the number of entries.
func (m FlagMap) Len() int {
	return len(m.entries)
}

// Lookup returns the entry of the option.
func (m FlagMap) Lookup(name string) (FlagValue, bool) {
	v, ok := m.entries[name]
	return v, ok
}

// Resolve returns the flags of the option for the given value.
// It fails if the map has no entry for the option.
func (m FlagMap) Resolve(name string, value bool) ([]string, error) {
	v, ok := m.entries[name]
	if !ok {
		return nil, NewConfigError(ErrMissingFlag, "toolchain: no flag mapping for option %q", name)
	}

	return v.Resolve(value), nil
}

// With returns a copy of the map with the given entries added or replaced.
func (m FlagMap) With(overrides map[string]FlagValue) FlagMap {
	out := FlagMap{entries: make(map[string]FlagValue, len(m.entries)+len(overrides))}
	for name, v := range m.entries {
		out.entries[name] = v
	}
	for name, v := range overrides {
		out.entries[name] = v
	}

	return out
}

// Set returns a copy of the map with a single entry added or replaced.
func (m FlagMap) Set(name string, v FlagValue) FlagMap {
	return m.With(map[string]FlagValue{name: v})
}

// Merge returns a copy of the map with all the entries of other added or replaced.
func (m FlagMap) Merge(other FlagMap) FlagMap {
	return m.With(other.entries)
}

// Names returns the option names that have an entry, sorted.
func (m FlagMap) Names() []string {
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Missing returns the given names that have no entry, in the given order.
func (m FlagMap) Missing(names []string) []string {
	var missing []string
	for _, name := range names {
		if _, ok := m.entries[name]; !ok {
			missing = append(missing, name)
		}
	}

	return missing
}

// Equal reports whether both maps have the same entries.
func (m FlagMap) Equal(other FlagMap) bool {
	if len(m.entries) != len(other.entries) {
		return false
	}

	for name, v := range m.entries {
		o, ok := other.entries[name]
		if !ok || !v.Equal(o) {
			return false
		}
	}

	return true
}
