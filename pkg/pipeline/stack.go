package pipeline

import (
	sfs "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/whatif/pkg/config"
	"github.com/arthur-debert/whatif/pkg/dryrun"
	"github.com/arthur-debert/whatif/pkg/filesystem"
	"github.com/arthur-debert/whatif/pkg/logging"
	"github.com/arthur-debert/whatif/pkg/registry"
	"github.com/arthur-debert/whatif/pkg/shell"
	"github.com/arthur-debert/whatif/pkg/targets"
	"github.com/arthur-debert/whatif/pkg/types"
	"github.com/spf13/afero"
)

// StackOptions replaces genuine backends, mostly for tests. Zero values
// select the OS.
type StackOptions struct {
	Fs     afero.Fs
	Synth  sfs.FullFileSystem
	Runner types.CommandRunner
	Sink   logging.Sink
	// ChownR replaces the ownership primitive of recursive chown
	ChownR filesystem.ChownFunc
}

// Stack is the interception facility wired over genuine primitives
type Stack struct {
	Registry   *registry.Registry
	Files      *targets.Files
	Bulk       *targets.Bulk
	Temp       *targets.Temp
	Commands   *targets.Commands
	Runner     types.CommandRunner
	Controller *dryrun.Controller
	Switch     *config.Switch
	Shell      string
}

// NewStack builds a Stack from cfg
func NewStack(cfg *config.Config, opts StackOptions) *Stack {
	reg := registry.New()

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	bulk := filesystem.NewOSBulk()
	if opts.Synth != nil {
		bulk = filesystem.NewBulk(opts.Synth)
	}
	if opts.ChownR != nil {
		bulk.WithChown(opts.ChownR)
	}
	var runner types.CommandRunner = shell.NewRunner(cfg.Commands.Timeout)
	if opts.Runner != nil {
		runner = opts.Runner
	}

	s := &Stack{
		Registry: reg,
		Switch:   config.NewSwitch(cfg.DryRun),
		Shell:    cfg.Commands.Shell,
	}
	s.Files = targets.NewFiles(reg, filesystem.NewFiles(fs))
	s.Bulk = targets.NewBulk(reg, bulk)
	s.Temp = targets.NewTemp(reg, filesystem.NewTempFiles(s.Files, cfg.TempFiles.Dir))
	s.Commands = targets.NewCommands(reg, runner, shell.Builder())
	s.Runner = s.Commands.Runner()

	ctlOpts := []dryrun.Option{dryrun.WithFlag(s.Switch)}
	if opts.Sink != nil {
		ctlOpts = append(ctlOpts, dryrun.WithSink(opts.Sink))
	}
	s.Controller = dryrun.New(reg, s.Files, s.Temp, ctlOpts...)
	return s
}

// Executor returns a step executor bound to the stack's targets
func (s *Stack) Executor() *Executor {
	return NewExecutor(s.Files, s.Bulk, s.Temp, s.Runner, s.Commands, s.Shell)
}

// Pipeline returns a runner over the stack's controller
func (s *Stack) Pipeline() *Runner {
	return NewRunner(s.Controller, s.Switch)
}
