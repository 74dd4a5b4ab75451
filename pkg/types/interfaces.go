package types

import (
	"context"
	"io"
	"time"
)

// File is an open file handle as seen by resource providers
type File interface {
	io.Reader
	io.Writer
	io.StringWriter
	io.Closer
	Name() string
}

// FileOps is the file primitive surface
type FileOps interface {
	// Open opens req.Path according to req.Mode. When req.Handler is set the
	// handler runs on the open file, the file is closed afterwards and a nil
	// File is returned together with the handler's error.
	Open(req OpenRequest) (File, error)

	Delete(path string) error
	Rename(oldpath, newpath string) error
	Symlink(oldname, newname string) error
	Link(oldname, newname string) error

	// Ownership ids of -1 leave that id unchanged
	Chown(uid, gid int, path string) error
	Lchown(uid, gid int, path string) error

	Chmod(mode Mode, path string) error
	Utime(atime, mtime time.Time, path string) error
}

// CopyOptions are the optional settings of a bulk copy
type CopyOptions struct {
	Preserve  bool
	Recursive bool
}

// BulkOps is the bulk file/directory primitive surface
type BulkOps interface {
	MkdirP(dir string) error
	// Cp copies src to dst. A nil opts is the plain two-argument copy.
	Cp(src, dst string, opts *CopyOptions) error
	Rm(path string) error
	RmRf(path string) error
	Mv(src, dst string) error
	ChownR(uid, gid int, path string) error
}

// TempFiles creates private temporary files
type TempFiles interface {
	TempFile(dir, pattern string) (File, error)
}

// CommandRunner is the capability of running external commands. Every
// component that executes commands exposes it.
type CommandRunner interface {
	// RunCommand runs cmd to completion and collects its output
	RunCommand(ctx context.Context, cmd Command) (CommandResult, error)
	// Popen4 starts cmd and hands its pid and the stdin, stdout and stderr
	// streams to fn, then waits for it to exit
	Popen4(ctx context.Context, cmd Command, fn StreamHandler) (ExitStatus, error)
}

// ShellOut is a chainable command wrapper
type ShellOut interface {
	Command() Command
	Run(ctx context.Context) ShellOut
	LiveStream(w io.Writer) ShellOut
	// ErrorIfFailed returns an error when the exit code is not one of the
	// valid exit codes, or the run itself failed
	ErrorIfFailed() error
	// InvalidExitCode reports the command as having produced invalid
	// results, regardless of its exit code
	InvalidExitCode(msg string) error
	ExitCode() int
	Stdout() string
	Stderr() string
}
