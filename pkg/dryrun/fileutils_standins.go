package dryrun

import (
	"fmt"

	"github.com/arthur-debert/whatif/pkg/registry"
	"github.com/arthur-debert/whatif/pkg/targets"
	"github.com/arthur-debert/whatif/pkg/types"
)

func (r *reporter) fileUtilsStandIns() []standIn {
	return []standIn{
		{registry.TargetFileUtils, targets.SigMkdirP, targets.PathFunc(r.mkdirP)},
		{registry.TargetFileUtils, targets.SigCp, targets.CopyFunc(r.cp)},
		{registry.TargetFileUtils, targets.SigCpOptions, targets.CopyFunc(r.cp)},
		{registry.TargetFileUtils, targets.SigRm, targets.PathFunc(r.delete)},
		{registry.TargetFileUtils, targets.SigRmRf, targets.PathFunc(r.rmRf)},
		{registry.TargetFileUtils, targets.SigMv, targets.PairFunc(r.mv)},
		{registry.TargetFileUtils, targets.SigChownR, targets.ChownFunc(r.chownR)},
	}
}

func (r *reporter) mkdirP(dir string) error {
	r.sink.Warn(fmt.Sprintf("%s would create directory %s", r.resource(), dir))
	return nil
}

func (r *reporter) cp(src, dst string, _ *types.CopyOptions) error {
	r.sink.Warn(fmt.Sprintf("%s would copy %s to %s", r.resource(), src, dst))
	return nil
}

func (r *reporter) rmRf(path string) error {
	r.sink.Warn(fmt.Sprintf("%s would recursively delete %s", r.resource(), path))
	return nil
}

func (r *reporter) mv(src, dst string) error {
	r.sink.Warn(fmt.Sprintf("%s would move %s to %s", r.resource(), src, dst))
	return nil
}

func (r *reporter) chownR(uid, gid int, path string) error {
	r.sink.Warn(fmt.Sprintf("%s would recursively chown %s owner to %s, and group to %s",
		r.resource(), path, types.FormatOwner(uid), types.FormatOwner(gid)))
	return nil
}
