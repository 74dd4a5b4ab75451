package filesystem

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	sfs "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/whatif/pkg/errors"
	"github.com/arthur-debert/whatif/pkg/logging"
	"github.com/arthur-debert/whatif/pkg/types"
	"github.com/rs/zerolog"
)

// ChownFunc changes ownership of one path without following links
type ChownFunc func(path string, uid, gid int) error

// Bulk implements types.BulkOps over a synthfs filesystem
type Bulk struct {
	fs     sfs.FullFileSystem
	chown  ChownFunc
	logger zerolog.Logger
}

var _ types.BulkOps = (*Bulk)(nil)

// NewBulk creates bulk primitives over fsys. fsys must accept absolute
// paths; see NewPathAware.
func NewBulk(fsys sfs.FullFileSystem) *Bulk {
	return &Bulk{
		fs:     fsys,
		chown:  os.Lchown,
		logger: logging.GetLogger("filesystem.bulk"),
	}
}

// NewOSBulk creates bulk primitives over the root filesystem
func NewOSBulk() *Bulk {
	return NewBulk(NewPathAware(sfs.NewOSFileSystem("/")))
}

// NewPathAware wraps a synthfs filesystem rooted at "/" so it takes
// absolute paths
func NewPathAware(fsys sfs.FullFileSystem) sfs.FullFileSystem {
	return synthfs.NewPathAwareFileSystem(fsys, "/").WithAbsolutePaths()
}

// WithChown replaces the ownership primitive used by ChownR. The synthfs
// filesystems carry no ownership, so the default is os.Lchown.
func (b *Bulk) WithChown(fn ChownFunc) *Bulk {
	b.chown = fn
	return b
}

func (b *Bulk) MkdirP(dir string) error {
	if err := b.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir)
	}
	return nil
}

func (b *Bulk) Cp(src, dst string, opts *types.CopyOptions) error {
	info, err := b.fs.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot copy %s", src)
	}
	dst = b.intoDir(src, dst)

	if info.IsDir() {
		if opts == nil || !opts.Recursive {
			return errors.Newf(errors.ErrInvalidInput, "%s is a directory (not copied)", src)
		}
		return b.copyTree(src, dst, opts)
	}
	return b.copyFile(src, dst, info, opts)
}

func (b *Bulk) Rm(path string) error {
	info, err := b.fs.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot remove %s", path)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "cannot remove %s: is a directory", path)
	}
	return b.fs.Remove(path)
}

func (b *Bulk) RmRf(path string) error {
	return b.fs.RemoveAll(path)
}

func (b *Bulk) Mv(src, dst string) error {
	return b.fs.Rename(src, b.intoDir(src, dst))
}

func (b *Bulk) ChownR(uid, gid int, path string) error {
	info, err := b.fs.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot chown %s", path)
	}
	if err := b.chown(path, uid, gid); err != nil {
		return err
	}
	if !info.IsDir() {
		return nil
	}

	entries, err := b.readDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := b.ChownR(uid, gid, filepath.Join(path, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// intoDir returns the destination path for src when dst names an existing
// directory, as cp and mv do
func (b *Bulk) intoDir(src, dst string) string {
	if info, err := b.fs.Stat(dst); err == nil && info.IsDir() {
		return filepath.Join(dst, filepath.Base(src))
	}
	return dst
}

func (b *Bulk) copyFile(src, dst string, info fs.FileInfo, opts *types.CopyOptions) error {
	f, err := b.fs.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s", src)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", src)
	}

	perm := fs.FileMode(0644)
	if opts != nil && opts.Preserve {
		perm = info.Mode().Perm()
	}
	if err := b.fs.WriteFile(dst, data, perm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dst)
	}
	return nil
}

func (b *Bulk) copyTree(src, dst string, opts *types.CopyOptions) error {
	if err := b.MkdirP(dst); err != nil {
		return err
	}
	entries, err := b.readDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := b.copyTree(from, to, opts); err != nil {
				return err
			}
			continue
		}
		info, err := b.fs.Stat(from)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot copy %s", from)
		}
		if err := b.copyFile(from, to, info, opts); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bulk) readDir(dir string) ([]fs.DirEntry, error) {
	f, err := b.fs.Open(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to open directory %s", dir)
	}
	defer func() { _ = f.Close() }()

	rdf, ok := f.(fs.ReadDirFile)
	if !ok {
		return nil, errors.Newf(errors.ErrNotImplemented, "cannot list %s on this filesystem", dir)
	}
	entries, err := rdf.ReadDir(-1)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to list %s", dir)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	b.logger.Trace().Str("dir", dir).Int("entries", len(entries)).Msg("Listed directory")
	return entries, nil
}
