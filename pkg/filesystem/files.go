package filesystem

import (
	"os"
	"time"

	"github.com/arthur-debert/whatif/pkg/errors"
	"github.com/arthur-debert/whatif/pkg/logging"
	"github.com/arthur-debert/whatif/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Files implements types.FileOps using afero
type Files struct {
	fs     afero.Fs
	logger zerolog.Logger
}

var _ types.FileOps = (*Files)(nil)

// NewFiles creates file primitives over fs
func NewFiles(fs afero.Fs) *Files {
	return &Files{
		fs:     fs,
		logger: logging.GetLogger("filesystem.files"),
	}
}

// NewOS creates file primitives over the OS filesystem
func NewOS() *Files {
	return NewFiles(afero.NewOsFs())
}

// Fs returns the underlying afero filesystem
func (f *Files) Fs() afero.Fs {
	return f.fs
}

func (f *Files) Open(req types.OpenRequest) (types.File, error) {
	flags, ok := types.OpenFlags(req.Mode)
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown open mode %q", req.Mode).
			WithDetail("path", req.Path)
	}

	file, err := f.fs.OpenFile(req.Path, flags, req.Permission())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s", req.Path).
			WithDetail("mode", req.Mode)
	}

	if !req.HasHandler() {
		return file, nil
	}

	handlerErr := req.Handler(file)
	closeErr := file.Close()
	if handlerErr != nil {
		return nil, handlerErr
	}
	if closeErr != nil {
		return nil, errors.Wrapf(closeErr, errors.ErrFileWrite, "failed to close %s", req.Path)
	}
	return nil, nil
}

func (f *Files) Delete(path string) error {
	return f.fs.Remove(path)
}

func (f *Files) Rename(oldpath, newpath string) error {
	return f.fs.Rename(oldpath, newpath)
}

func (f *Files) Symlink(oldname, newname string) error {
	if linker, ok := f.fs.(afero.Linker); ok {
		return linker.SymlinkIfPossible(oldname, newname)
	}
	// Afero's MemMapFs has no symlinks, so store the link target as the
	// file content. Readlink on such a file reads it back.
	f.logger.Debug().Str("link", newname).Msg("Simulating symlink on a filesystem without links")
	return afero.WriteFile(f.fs, newname, []byte(oldname), 0777|os.ModeSymlink)
}

func (f *Files) Link(oldname, newname string) error {
	if _, ok := f.fs.(*afero.OsFs); ok {
		return os.Link(oldname, newname)
	}
	return errors.Newf(errors.ErrNotImplemented, "hard links are not supported by %s", f.fs.Name())
}

func (f *Files) Chown(uid, gid int, path string) error {
	return f.fs.Chown(path, uid, gid)
}

func (f *Files) Lchown(uid, gid int, path string) error {
	if _, ok := f.fs.(*afero.OsFs); ok {
		return os.Lchown(path, uid, gid)
	}
	// Without links there is nothing to not follow
	return f.fs.Chown(path, uid, gid)
}

func (f *Files) Chmod(mode types.Mode, path string) error {
	fileMode, err := mode.FileMode()
	if err != nil {
		return err
	}
	return f.fs.Chmod(path, fileMode)
}

func (f *Files) Utime(atime, mtime time.Time, path string) error {
	return f.fs.Chtimes(path, atime, mtime)
}

// Readlink returns the target of a symlink created by Symlink
func (f *Files) Readlink(name string) (string, error) {
	if reader, ok := f.fs.(afero.LinkReader); ok {
		return reader.ReadlinkIfPossible(name)
	}
	content, err := afero.ReadFile(f.fs, name)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
