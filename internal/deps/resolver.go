package deps

import (
	"os"
	"path/filepath"
)

// DefaultBinDir is where package-manager binaries live on every supported
// distribution.
const DefaultBinDir = "/usr/bin"

// Resolver picks the first known package manager present on this system.
type Resolver struct {
	// BinDir overrides the probe directory; empty means DefaultBinDir.
	BinDir string
}

// Resolve returns the first manager whose binary exists under BinDir.
// List order is the priority order.
func (r Resolver) Resolve(managers []Manager) (Manager, bool) {
	binDir := r.BinDir
	if binDir == "" {
		binDir = DefaultBinDir
	}
	for _, m := range managers {
		if _, err := os.Stat(filepath.Join(binDir, m.Name)); err == nil {
			return m, true
		}
	}
	return Manager{}, false
}
