package targets

import (
	"context"
	"io"
	"sync"

	"github.com/arthur-debert/whatif/pkg/logging"
	"github.com/arthur-debert/whatif/pkg/registry"
	"github.com/arthur-debert/whatif/pkg/types"
	"github.com/rs/zerolog"
)

// ShellOutBuilder builds the genuine command wrapper for a command line
// running through runner
type ShellOutBuilder func(runner types.CommandRunner, cmd types.Command) types.ShellOut

// Commands is the command and shellout target. Command-capable components
// are wrapped at construction and every call through a wrapper consults the
// registry.
type Commands struct {
	reg    *registry.Registry
	build  ShellOutBuilder
	runner types.CommandRunner
	logger zerolog.Logger

	mu      sync.Mutex
	tracked []types.CommandRunner
}

// NewCommands creates the command target. runner is wrapped and build makes
// genuine ShellOut values on the wrapped runner when no stand-in is
// installed, so a wrapper created before a session is still intercepted
// when it runs during one.
func NewCommands(reg *registry.Registry, runner types.CommandRunner, build ShellOutBuilder) *Commands {
	c := &Commands{
		reg:    reg,
		build:  build,
		logger: logging.GetLogger("targets.command"),
	}
	c.runner = c.Wrap(runner)
	return c
}

// Runner returns the wrapped runner given to NewCommands
func (c *Commands) Runner() types.CommandRunner {
	return c.runner
}

// Wrap returns runner decorated with interception and records it
func (c *Commands) Wrap(runner types.CommandRunner) types.CommandRunner {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tracked = append(c.tracked, runner)
	return &interceptedRunner{commands: c, inner: runner}
}

// Tracked returns the runners wrapped so far, in wrap order
func (c *Commands) Tracked() []types.CommandRunner {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]types.CommandRunner, len(c.tracked))
	copy(out, c.tracked)
	return out
}

// NewShellOut is the only constructor of command wrappers. A stand-in of
// the wrong type yields a wrapper that never runs and reports the mismatch
// from ErrorIfFailed.
func (c *Commands) NewShellOut(cmd types.Command) types.ShellOut {
	fn, found, err := behavior[ShellOutFunc](c.reg, registry.TargetShellOut, SigNewShellOut)
	if err != nil {
		c.logger.Error().Err(err).Str("command", cmd.String()).Msg("Refusing to run command with a mistyped shellout stand-in")
		return &brokenShellOut{cmd: cmd, err: err}
	}
	if found {
		return fn(cmd)
	}
	return c.build(c.runner, cmd)
}

// brokenShellOut is handed out when the shellout stand-in cannot be used
type brokenShellOut struct {
	cmd types.Command
	err error
}

func (s *brokenShellOut) Command() types.Command { return s.cmd }
func (s *brokenShellOut) Run(context.Context) types.ShellOut { return s }
func (s *brokenShellOut) LiveStream(io.Writer) types.ShellOut { return s }
func (s *brokenShellOut) ErrorIfFailed() error { return s.err }
func (s *brokenShellOut) InvalidExitCode(string) error { return s.err }
func (s *brokenShellOut) ExitCode() int { return -1 }
func (s *brokenShellOut) Stdout() string { return "" }
func (s *brokenShellOut) Stderr() string { return "" }

type interceptedRunner struct {
	commands *Commands
	inner    types.CommandRunner
}

func (r *interceptedRunner) RunCommand(ctx context.Context, cmd types.Command) (types.CommandResult, error) {
	fn, found, err := behavior[RunFunc](r.commands.reg, registry.TargetCommand, SigRunCommand)
	if err != nil {
		return types.CommandResult{}, err
	}
	if found {
		return fn(ctx, cmd)
	}
	return r.inner.RunCommand(ctx, cmd)
}

func (r *interceptedRunner) Popen4(ctx context.Context, cmd types.Command, fn types.StreamHandler) (types.ExitStatus, error) {
	standIn, found, err := behavior[Popen4Func](r.commands.reg, registry.TargetCommand, SigPopen4)
	if err != nil {
		return types.ExitStatus{}, err
	}
	if found {
		return standIn(ctx, cmd, fn)
	}
	return r.inner.Popen4(ctx, cmd, fn)
}
