package targets

import (
	"io"
	"time"

	"github.com/arthur-debert/whatif/pkg/errors"
	"github.com/arthur-debert/whatif/pkg/logging"
	"github.com/arthur-debert/whatif/pkg/registry"
	"github.com/arthur-debert/whatif/pkg/types"
	"github.com/rs/zerolog"
)

// Files is the file target. It implements types.FileOps.
type Files struct {
	reg     *registry.Registry
	genuine types.FileOps
	logger  zerolog.Logger
}

var _ types.FileOps = (*Files)(nil)

// NewFiles creates the file target over a genuine implementation
func NewFiles(reg *registry.Registry, genuine types.FileOps) *Files {
	return &Files{
		reg:     reg,
		genuine: genuine,
		logger:  logging.GetLogger("targets.file"),
	}
}

// Open dispatches an open request on its signature. Modes outside the
// intercepted surface reach the genuine primitive with a warning while a
// session is active.
func (f *Files) Open(req types.OpenRequest) (types.File, error) {
	sig, ok := OpenSignature(req)
	if !ok {
		warnUnsupported(f.logger, f.reg, registry.TargetFile, "open", req.Mode)
		return f.genuine.Open(req)
	}
	fn, found, err := behavior[OpenFunc](f.reg, registry.TargetFile, sig)
	if err != nil {
		return nil, err
	}
	if found {
		return fn(req)
	}
	return f.genuine.Open(req)
}

func (f *Files) Delete(path string) error {
	return dispatchPath(f.reg, registry.TargetFile, SigDelete, path, f.genuine.Delete)
}

func (f *Files) Rename(oldpath, newpath string) error {
	return dispatchPair(f.reg, registry.TargetFile, SigRename, oldpath, newpath, f.genuine.Rename)
}

func (f *Files) Symlink(oldname, newname string) error {
	return dispatchPair(f.reg, registry.TargetFile, SigSymlink, oldname, newname, f.genuine.Symlink)
}

func (f *Files) Link(oldname, newname string) error {
	return dispatchPair(f.reg, registry.TargetFile, SigLink, oldname, newname, f.genuine.Link)
}

func (f *Files) Chown(uid, gid int, path string) error {
	return dispatchChown(f.reg, registry.TargetFile, SigChown, uid, gid, path, f.genuine.Chown)
}

func (f *Files) Lchown(uid, gid int, path string) error {
	return dispatchChown(f.reg, registry.TargetFile, SigLchown, uid, gid, path, f.genuine.Lchown)
}

func (f *Files) Chmod(mode types.Mode, path string) error {
	fn, found, err := behavior[ChmodFunc](f.reg, registry.TargetFile, SigChmod)
	if err != nil {
		return err
	}
	if found {
		return fn(mode, path)
	}
	return f.genuine.Chmod(mode, path)
}

func (f *Files) Utime(atime, mtime time.Time, path string) error {
	fn, found, err := behavior[UtimeFunc](f.reg, registry.TargetFile, SigUtime)
	if err != nil {
		return err
	}
	if found {
		return fn(atime, mtime, path)
	}
	return f.genuine.Utime(atime, mtime, path)
}

// ReadFile reads the whole file at path through ops
func ReadFile(ops types.FileOps, path string) ([]byte, error) {
	var data []byte
	_, err := ops.Open(types.OpenRequest{
		Path: path,
		Mode: "r",
		Handler: func(file types.File) error {
			var err error
			data, err = io.ReadAll(file)
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// WriteFile truncates path and writes data to it through ops
func WriteFile(ops types.FileOps, path string, data []byte) error {
	_, err := ops.Open(types.OpenRequest{
		Path: path,
		Mode: "w",
		Handler: func(file types.File) error {
			_, err := file.Write(data)
			return err
		},
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return nil
}

func dispatchPath(reg *registry.Registry, target registry.TargetID, sig registry.Signature, path string, genuine func(string) error) error {
	fn, found, err := behavior[PathFunc](reg, target, sig)
	if err != nil {
		return err
	}
	if found {
		return fn(path)
	}
	return genuine(path)
}

func dispatchPair(reg *registry.Registry, target registry.TargetID, sig registry.Signature, src, dst string, genuine func(string, string) error) error {
	fn, found, err := behavior[PairFunc](reg, target, sig)
	if err != nil {
		return err
	}
	if found {
		return fn(src, dst)
	}
	return genuine(src, dst)
}

func dispatchChown(reg *registry.Registry, target registry.TargetID, sig registry.Signature, uid, gid int, path string, genuine func(int, int, string) error) error {
	fn, found, err := behavior[ChownFunc](reg, target, sig)
	if err != nil {
		return err
	}
	if found {
		return fn(uid, gid, path)
	}
	return genuine(uid, gid, path)
}

// warnUnsupported reports a call that falls outside the intercepted surface.
// Nothing is logged when the target has no stand-ins installed.
func warnUnsupported(logger zerolog.Logger, reg *registry.Registry, target registry.TargetID, op, shape string) {
	if len(reg.Active(target)) == 0 {
		return
	}
	logger.Warn().
		Str("target", string(target)).
		Msgf("%s with shape %s is not intercepted, running for real", op, shape)
}
