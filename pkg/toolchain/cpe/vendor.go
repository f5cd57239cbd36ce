package cpe

import (
	"fmt"
	"strings"

	"github.com/tmaxmax/craype/pkg/toolchain"
	"github.com/tmaxmax/craype/pkg/toolchain/aocc"
	"github.com/tmaxmax/craype/pkg/toolchain/gcc"
	"github.com/tmaxmax/craype/pkg/toolchain/intel"
)

// A Vendor is a flavor of the Cray Programming Environment.
type Vendor int

const (
	// AOCC uses the AMD compilers (PrgEnv-aocc, cpeAMD).
	AOCC Vendor = iota + 1
	// CCE uses the Cray compilers (PrgEnv-cray, cpeCray).
	CCE
	// GCC uses the GNU compilers (PrgEnv-gnu, cpeGNU).
	GCC
	// Intel uses the Intel compilers (PrgEnv-intel, cpeIntel).
	Intel
)

// Vendors returns all the vendors.
func Vendors() []Vendor {
	return []Vendor{AOCC, CCE, GCC, Intel}
}

// Identity holds the names a vendor is known by.
type Identity struct {
	// CPEModuleSuffix completes the name of the cpe<suffix> compiler module.
	CPEModuleSuffix string
	// PrgEnvSuffix completes the name of the PrgEnv-<suffix> module.
	PrgEnvSuffix string
	// Family of the underlying compiler.
	Family toolchain.Family
}

var identities = map[Vendor]Identity{
	AOCC:  {CPEModuleSuffix: "AMD", PrgEnvSuffix: "aocc", Family: aocc.Family},
	CCE:   {CPEModuleSuffix: "Cray", PrgEnvSuffix: "cray", Family: FamilyCCE},
	GCC:   {CPEModuleSuffix: "GNU", PrgEnvSuffix: "gnu", Family: gcc.Family},
	Intel: {CPEModuleSuffix: "Intel", PrgEnvSuffix: "intel", Family: intel.Family},
}

// Identity returns the names of the vendor. ok is false for unknown vendors.
func (v Vendor) Identity() (id Identity, ok bool) {
	id, ok = identities[v]
	return
}

func (v Vendor) String() string {
	switch v {
	case AOCC:
		return "AOCC"
	case CCE:
		return "CCE"
	case GCC:
		return "GCC"
	case Intel:
		return "Intel"
	default:
		return fmt.Sprintf("Vendor(%d)", int(v))
	}
}

// ParseVendor returns the vendor named by s. It accepts the vendor name,
// the cpe module suffix and the cpe module name, case-insensitively.
func ParseVendor(s string) (Vendor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aocc", "amd", "cpeamd":
		return AOCC, nil
	case "cce", "cray", "cpecray":
		return CCE, nil
	case "gcc", "gnu", "cpegnu":
		return GCC, nil
	case "intel", "icc", "cpeintel":
		return Intel, nil
	default:
		return 0, fmt.Errorf("cpe: unknown vendor %q", s)
	}
}
