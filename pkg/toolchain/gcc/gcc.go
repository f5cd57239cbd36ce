/*
Package gcc provides the flag table of the GNU Compiler Collection.

It registers the table for the GCC compiler family.
*/
package gcc

import (
	"github.com/tmaxmax/craype/pkg/toolchain"
)

// Family is the compiler family of GCC.
const Family toolchain.Family = "GCC"

func init() {
	toolchain.RegisterFlagTable(Family, flags)
}
