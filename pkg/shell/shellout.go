package shell

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/arthur-debert/whatif/pkg/errors"
	"github.com/arthur-debert/whatif/pkg/types"
)

// ShellOut is the genuine chainable command wrapper. It implements
// types.ShellOut.
type ShellOut struct {
	runner         types.CommandRunner
	cmd            types.Command
	validExitCodes []int
	live           io.Writer

	ran    bool
	result types.CommandResult
	err    error
}

var _ types.ShellOut = (*ShellOut)(nil)

// Option configures a ShellOut
type Option func(*ShellOut)

// WithValidExitCodes sets the exit codes ErrorIfFailed accepts. The default
// is 0 only.
func WithValidExitCodes(codes ...int) Option {
	return func(s *ShellOut) {
		s.validExitCodes = codes
	}
}

// NewShellOut creates a wrapper for cmd that runs through runner
func NewShellOut(runner types.CommandRunner, cmd types.Command, opts ...Option) *ShellOut {
	s := &ShellOut{
		runner:         runner,
		cmd:            cmd,
		validExitCodes: []int{0},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Builder returns a constructor of wrappers sharing opts. The runner is
// supplied per wrapper so callers can hand in an intercepted one.
func Builder(opts ...Option) func(types.CommandRunner, types.Command) types.ShellOut {
	return func(runner types.CommandRunner, cmd types.Command) types.ShellOut {
		return NewShellOut(runner, cmd, opts...)
	}
}

func (s *ShellOut) Command() types.Command {
	return s.cmd
}

// LiveStream copies stdout and stderr to w while the command runs
func (s *ShellOut) LiveStream(w io.Writer) types.ShellOut {
	s.live = w
	return s
}

// Run executes the command once. Later calls return the first result.
func (s *ShellOut) Run(ctx context.Context) types.ShellOut {
	if s.ran {
		return s
	}
	s.ran = true

	if s.live == nil {
		s.result, s.err = s.runner.RunCommand(ctx, s.cmd)
		return s
	}

	var stdout, stderr bytes.Buffer
	status, err := s.runner.Popen4(ctx, s.cmd, func(_ int, stdin io.WriteCloser, out, errOut io.Reader) error {
		_ = stdin.Close()
		var wg sync.WaitGroup
		var mu sync.Mutex
		live := &lockedWriter{w: s.live, mu: &mu}

		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = io.Copy(io.MultiWriter(&stderr, live), errOut)
		}()
		_, copyErr := io.Copy(io.MultiWriter(&stdout, live), out)
		wg.Wait()
		return copyErr
	})
	s.result = types.CommandResult{
		ExitCode: status.ExitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	s.err = err
	return s
}

func (s *ShellOut) ErrorIfFailed() error {
	if !s.ran {
		return errors.Newf(errors.ErrInvalidInput, "command has not been run: %s", s.cmd)
	}
	if s.err != nil {
		return s.err
	}
	for _, code := range s.validExitCodes {
		if s.result.ExitCode == code {
			return nil
		}
	}
	return s.failure("Expected process to exit with %v, but received '%d'", s.validExitCodes, s.result.ExitCode)
}

func (s *ShellOut) InvalidExitCode(msg string) error {
	return s.failure("%s", msg)
}

func (s *ShellOut) ExitCode() int {
	return s.result.ExitCode
}

func (s *ShellOut) Stdout() string {
	return s.result.Stdout
}

func (s *ShellOut) Stderr() string {
	return s.result.Stderr
}

func (s *ShellOut) failure(format string, args ...interface{}) error {
	return errors.Newf(errors.ErrCommandFailed, format, args...).
		WithDetail("command", s.cmd.String()).
		WithDetail("exitCode", s.result.ExitCode).
		WithDetail("stdout", s.result.Stdout).
		WithDetail("stderr", s.result.Stderr)
}

type lockedWriter struct {
	w  io.Writer
	mu *sync.Mutex
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
