package dryrun

import (
	"fmt"
	"time"

	"github.com/arthur-debert/whatif/pkg/errors"
	"github.com/arthur-debert/whatif/pkg/registry"
	"github.com/arthur-debert/whatif/pkg/targets"
	"github.com/arthur-debert/whatif/pkg/types"
)

func (r *reporter) fileStandIns() []standIn {
	set := []standIn{
		{registry.TargetFile, targets.SigDelete, targets.PathFunc(r.delete)},
		{registry.TargetFile, targets.SigRename, targets.PairFunc(r.rename)},
		{registry.TargetFile, targets.SigSymlink, targets.PairFunc(r.symlink)},
		{registry.TargetFile, targets.SigLink, targets.PairFunc(r.link)},
		{registry.TargetFile, targets.SigChown, targets.ChownFunc(r.chown("chown"))},
		{registry.TargetFile, targets.SigLchown, targets.ChownFunc(r.chown("lchown"))},
		{registry.TargetFile, targets.SigChmod, targets.ChmodFunc(r.chmod)},
		{registry.TargetFile, targets.SigUtime, targets.UtimeFunc(r.utime)},
	}
	for _, sig := range targets.OpenSignatures() {
		set = append(set, standIn{registry.TargetFile, sig, targets.OpenFunc(r.open)})
	}
	return set
}

func (r *reporter) open(req types.OpenRequest) (types.File, error) {
	switch req.Intent() {
	case types.IntentRead:
		return r.openRead(req)
	case types.IntentWrite:
		return r.openFake(req, fmt.Sprintf("%s would overwrite file at %s", r.resource(), req.Path))
	case types.IntentAppend:
		return r.openFake(req, fmt.Sprintf("%s would append to the contents of %s", r.resource(), req.Path))
	}
	// The target never dispatches unsupported modes here
	return nil, errors.Newf(errors.ErrUnsupportedShape, "open mode %q has no stand-in", req.Mode)
}

// openRead passes the open through to storage. A handler runs inside the
// suspended region on the genuine file.
func (r *reporter) openRead(req types.OpenRequest) (types.File, error) {
	r.sink.Trace(fmt.Sprintf("%s opened file %s with mode %s", r.resource(), req.Path, req.Mode))

	var file types.File
	err := r.suspend(func() error {
		var err error
		file, err = r.c.files.Open(req)
		return err
	})
	return file, err
}

func (r *reporter) openFake(req types.OpenRequest, notice string) (types.File, error) {
	r.sink.Warn(notice)
	fake := newFakeFile(req.Path, r.sink)
	if req.HasHandler() {
		return nil, req.Handler(fake)
	}
	return fake, nil
}

func (r *reporter) delete(path string) error {
	r.sink.Warn(fmt.Sprintf("%s would delete %s", r.resource(), path))
	return nil
}

func (r *reporter) rename(oldpath, newpath string) error {
	r.sink.Warn(fmt.Sprintf("%s would rename %s to %s", r.resource(), oldpath, newpath))
	return nil
}

func (r *reporter) symlink(oldname, newname string) error {
	r.sink.Warn(fmt.Sprintf("%s would create symbolic link %s pointing to %s", r.resource(), newname, oldname))
	return nil
}

func (r *reporter) link(oldname, newname string) error {
	r.sink.Warn(fmt.Sprintf("%s would create hard link %s pointing to %s", r.resource(), newname, oldname))
	return nil
}

func (r *reporter) chown(verb string) func(uid, gid int, path string) error {
	return func(uid, gid int, path string) error {
		r.sink.Warn(fmt.Sprintf("%s would %s %s owner to %s, and group to %s",
			r.resource(), verb, path, types.FormatOwner(uid), types.FormatOwner(gid)))
		return nil
	}
}

// chmod reports the mode masked to its permission bits. A mode the genuine
// chmod could not parse fails the same way here.
func (r *reporter) chmod(mode types.Mode, path string) error {
	if _, err := mode.Resolve(); err != nil {
		return err
	}
	r.sink.Warn(fmt.Sprintf("%s would chmod %s to %s", r.resource(), path, mode))
	return nil
}

func (r *reporter) utime(atime, mtime time.Time, path string) error {
	r.sink.Warn(fmt.Sprintf("%s would set atime to %s and mtime to %s on %s",
		r.resource(), atime.Format(time.RFC3339), mtime.Format(time.RFC3339), path))
	return nil
}
