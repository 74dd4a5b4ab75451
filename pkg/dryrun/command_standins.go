package dryrun

import (
	"context"
	"fmt"
	"io"

	"github.com/arthur-debert/whatif/pkg/registry"
	"github.com/arthur-debert/whatif/pkg/targets"
	"github.com/arthur-debert/whatif/pkg/types"
)

func (r *reporter) commandStandIns() []standIn {
	return []standIn{
		{registry.TargetCommand, targets.SigRunCommand, targets.RunFunc(r.runCommand)},
		{registry.TargetCommand, targets.SigPopen4, targets.Popen4Func(r.popen4)},
		{registry.TargetShellOut, targets.SigNewShellOut, targets.ShellOutFunc(r.newShellOut)},
	}
}

func (r *reporter) wouldRun(cmd types.Command) {
	r.sink.Warn(fmt.Sprintf("%s would run command %s", r.resource(), cmd))
}

func (r *reporter) runCommand(_ context.Context, cmd types.Command) (types.CommandResult, error) {
	r.wouldRun(cmd)
	return types.CommandResult{ExitCode: 0}, nil
}

func (r *reporter) popen4(_ context.Context, cmd types.Command, _ types.StreamHandler) (types.ExitStatus, error) {
	r.wouldRun(cmd)
	return types.ExitStatus{ExitCode: 0}, nil
}

func (r *reporter) newShellOut(cmd types.Command) types.ShellOut {
	r.wouldRun(cmd)
	return &fakeShellOut{cmd: cmd}
}

// fakeShellOut is a command wrapper that never runs
type fakeShellOut struct {
	cmd types.Command
}

var _ types.ShellOut = (*fakeShellOut)(nil)

func (s *fakeShellOut) Command() types.Command { return s.cmd }
func (s *fakeShellOut) Run(context.Context) types.ShellOut { return s }
func (s *fakeShellOut) LiveStream(io.Writer) types.ShellOut { return s }
func (s *fakeShellOut) ErrorIfFailed() error { return nil }
func (s *fakeShellOut) InvalidExitCode(string) error { return nil }
func (s *fakeShellOut) ExitCode() int { return 0 }
func (s *fakeShellOut) Stdout() string { return "" }
func (s *fakeShellOut) Stderr() string { return "" }
