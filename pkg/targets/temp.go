package targets

import (
	"github.com/arthur-debert/whatif/pkg/registry"
	"github.com/arthur-debert/whatif/pkg/types"
)

// Temp is the tempfile target. It implements types.TempFiles.
type Temp struct {
	reg     *registry.Registry
	genuine types.TempFiles
}

var _ types.TempFiles = (*Temp)(nil)

// NewTemp creates the tempfile target over a genuine implementation
func NewTemp(reg *registry.Registry, genuine types.TempFiles) *Temp {
	return &Temp{reg: reg, genuine: genuine}
}

func (t *Temp) TempFile(dir, pattern string) (types.File, error) {
	fn, found, err := behavior[TempFunc](t.reg, registry.TargetTempFile, SigTempFile)
	if err != nil {
		return nil, err
	}
	if found {
		return fn(dir, pattern)
	}
	return t.genuine.TempFile(dir, pattern)
}
