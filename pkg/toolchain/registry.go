package toolchain

import (
	"fmt"
	"sync"
)

// Family identifies a compiler family, for example "GCC".
type Family string

var (
	flagTables         = map[Family]FlagMap{}
	flagTablesFamilies []Family // provide ordered iteration for the map
	flagTablesMutex    sync.RWMutex
)

// RegisterFlagTable publishes the flag table of a compiler family.
// If a table for the same family already exists, this function panics.
// If the family name has path separators or path list separators, this
// function panics.
func RegisterFlagTable(family Family, table FlagMap) {
	flagTablesMutex.Lock()
	defer flagTablesMutex.Unlock()

	if family == "" || !isValidImplementationName(string(family)) {
		panic(fmt.Sprintf("toolchain: compiler family %q has invalid characters", family))
	}

	if _, ok := flagTables[family]; ok {
		panic(fmt.Sprintf("toolchain: flag table for compiler family %q is already registered", family))
	}

	flagTables[family] = table
	flagTablesFamilies = append(flagTablesFamilies, family)
}

// LookupFlagTable returns the flag table registered for the given family.
func LookupFlagTable(family Family) (FlagMap, error) {
	flagTablesMutex.RLock()
	table, ok := flagTables[family]
	flagTablesMutex.RUnlock()

	if !ok {
		return FlagMap{}, fmt.Errorf("toolchain: missing flag table for compiler family %q, forgotten import?", family)
	}

	return table, nil
}

// Families returns the families with a registered flag table, in registration order.
func Families() []Family {
	flagTablesMutex.RLock()
	defer flagTablesMutex.RUnlock()

	return append([]Family(nil), flagTablesFamilies...)
}
