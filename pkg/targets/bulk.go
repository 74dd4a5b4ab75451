package targets

import (
	"github.com/arthur-debert/whatif/pkg/registry"
	"github.com/arthur-debert/whatif/pkg/types"
)

// Bulk is the fileutils target. It implements types.BulkOps.
type Bulk struct {
	reg     *registry.Registry
	genuine types.BulkOps
}

var _ types.BulkOps = (*Bulk)(nil)

// NewBulk creates the fileutils target over a genuine implementation
func NewBulk(reg *registry.Registry, genuine types.BulkOps) *Bulk {
	return &Bulk{reg: reg, genuine: genuine}
}

func (b *Bulk) MkdirP(dir string) error {
	return dispatchPath(b.reg, registry.TargetFileUtils, SigMkdirP, dir, b.genuine.MkdirP)
}

// Cp dispatches on whether options were passed
func (b *Bulk) Cp(src, dst string, opts *types.CopyOptions) error {
	sig := SigCp
	if opts != nil {
		sig = SigCpOptions
	}
	fn, found, err := behavior[CopyFunc](b.reg, registry.TargetFileUtils, sig)
	if err != nil {
		return err
	}
	if found {
		return fn(src, dst, opts)
	}
	return b.genuine.Cp(src, dst, opts)
}

func (b *Bulk) Rm(path string) error {
	return dispatchPath(b.reg, registry.TargetFileUtils, SigRm, path, b.genuine.Rm)
}

func (b *Bulk) RmRf(path string) error {
	return dispatchPath(b.reg, registry.TargetFileUtils, SigRmRf, path, b.genuine.RmRf)
}

func (b *Bulk) Mv(src, dst string) error {
	return dispatchPair(b.reg, registry.TargetFileUtils, SigMv, src, dst, b.genuine.Mv)
}

func (b *Bulk) ChownR(uid, gid int, path string) error {
	return dispatchChown(b.reg, registry.TargetFileUtils, SigChownR, uid, gid, path, b.genuine.ChownR)
}
