package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/arthur-debert/whatif/pkg/errors"
	"github.com/arthur-debert/whatif/pkg/logging"
	"github.com/arthur-debert/whatif/pkg/shell"
	"github.com/arthur-debert/whatif/pkg/targets"
	"github.com/arthur-debert/whatif/pkg/types"
	"github.com/rs/zerolog"
)

// stepFields lists what each op needs besides its name
var stepFields = map[string][]string{
	"write":       {"path"},
	"append":      {"path"},
	"read":        {"path"},
	"delete":      {"path"},
	"rename":      {"path", "dest"},
	"symlink":     {"path", "target"},
	"link":        {"path", "target"},
	"chmod":       {"path", "mode"},
	"chown":       {"path"},
	"lchown":      {"path"},
	"touch":       {"path"},
	"mkdir":       {"path"},
	"copy":        {"path", "dest"},
	"remove":      {"path"},
	"remove_tree": {"path"},
	"move":        {"path", "dest"},
	"chown_tree":  {"path"},
	"tempfile":    {},
	"run":         {"command"},
	"shellout":    {"command"},
}

// Validate checks the op is known and its required fields are set
func (s Step) Validate() error {
	fields, ok := stepFields[s.Op]
	if !ok {
		return errors.Newf(errors.ErrPlanInvalid, "unknown op %q", s.Op)
	}
	values := map[string]string{
		"path":    s.Path,
		"dest":    s.Dest,
		"target":  s.Target,
		"mode":    s.Mode,
		"command": s.Command,
	}
	for _, field := range fields {
		if values[field] == "" {
			return errors.Newf(errors.ErrPlanInvalid, "%s needs %s", s.Op, field)
		}
	}
	if s.Op == "chmod" {
		if _, err := types.OctalMode(s.Mode).Resolve(); err != nil {
			return err
		}
	}
	if s.Time != "" {
		if _, err := time.Parse(time.RFC3339, s.Time); err != nil {
			return errors.Wrapf(err, errors.ErrPlanInvalid, "time %q is not RFC 3339", s.Time)
		}
	}
	return nil
}

// Executor performs plan steps through the targets
type Executor struct {
	files    types.FileOps
	bulk     types.BulkOps
	temp     types.TempFiles
	runner   types.CommandRunner
	commands *targets.Commands
	shell    string
	now      func() time.Time
	logger   zerolog.Logger
}

// NewExecutor creates a step executor. shell runs steps whose command has
// no args.
func NewExecutor(files types.FileOps, bulk types.BulkOps, temp types.TempFiles,
	runner types.CommandRunner, commands *targets.Commands, shellPath string) *Executor {
	return &Executor{
		files:    files,
		bulk:     bulk,
		temp:     temp,
		runner:   runner,
		commands: commands,
		shell:    shellPath,
		now:      time.Now,
		logger:   logging.GetLogger("pipeline.steps"),
	}
}

// RunSteps performs steps in order and stops at the first failure
func (e *Executor) RunSteps(ctx context.Context, steps []Step) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.logger.Debug().Int("step", i+1).Str("op", step.Op).Str("path", step.Path).Msg("Running step")
		if err := e.RunStep(ctx, step); err != nil {
			return errors.Wrapf(err, errors.GetErrorCode(err), "step %d (%s)", i+1, step.Op)
		}
	}
	return nil
}

// RunStep performs one step
func (e *Executor) RunStep(ctx context.Context, s Step) error {
	switch s.Op {
	case "write":
		return e.writeContent(s.Path, "w", s.Content)
	case "append":
		return e.writeContent(s.Path, "a", s.Content)
	case "read":
		data, err := targets.ReadFile(e.files, s.Path)
		if err != nil {
			return err
		}
		e.logger.Info().Str("path", s.Path).Int("bytes", len(data)).Msg("Read file")
		return nil
	case "delete":
		return e.files.Delete(s.Path)
	case "rename":
		return e.files.Rename(s.Path, s.Dest)
	case "symlink":
		return e.files.Symlink(s.Target, s.Path)
	case "link":
		return e.files.Link(s.Target, s.Path)
	case "chmod":
		return e.files.Chmod(types.OctalMode(s.Mode), s.Path)
	case "chown":
		return e.files.Chown(ids(s.Owner), ids(s.Group), s.Path)
	case "lchown":
		return e.files.Lchown(ids(s.Owner), ids(s.Group), s.Path)
	case "touch":
		when := e.now()
		if s.Time != "" {
			when, _ = time.Parse(time.RFC3339, s.Time)
		}
		return e.files.Utime(when, when, s.Path)
	case "mkdir":
		return e.bulk.MkdirP(s.Path)
	case "copy":
		var opts *types.CopyOptions
		if s.Recursive || s.Preserve {
			opts = &types.CopyOptions{Recursive: s.Recursive, Preserve: s.Preserve}
		}
		return e.bulk.Cp(s.Path, s.Dest, opts)
	case "remove":
		return e.bulk.Rm(s.Path)
	case "remove_tree":
		return e.bulk.RmRf(s.Path)
	case "move":
		return e.bulk.Mv(s.Path, s.Dest)
	case "chown_tree":
		return e.bulk.ChownR(ids(s.Owner), ids(s.Group), s.Path)
	case "tempfile":
		return e.tempFile(s)
	case "run":
		return e.run(ctx, s)
	case "shellout":
		return e.commands.NewShellOut(e.command(s)).Run(ctx).ErrorIfFailed()
	}
	return errors.Newf(errors.ErrPlanInvalid, "unknown op %q", s.Op)
}

func (e *Executor) writeContent(path, mode, content string) error {
	_, err := e.files.Open(types.OpenRequest{
		Path: path,
		Mode: mode,
		Handler: func(f types.File) error {
			_, err := f.WriteString(content)
			return err
		},
	})
	return err
}

func (e *Executor) tempFile(s Step) error {
	pattern := s.Pattern
	if pattern == "" {
		pattern = "whatif-*"
	}
	f, err := e.temp.TempFile(s.Path, pattern)
	if err != nil {
		return err
	}
	if s.Content != "" {
		if _, err := f.WriteString(s.Content); err != nil {
			_ = f.Close()
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", f.Name())
		}
	}
	e.logger.Debug().Str("path", f.Name()).Msg("Created temp file")
	return f.Close()
}

func (e *Executor) run(ctx context.Context, s Step) error {
	cmd := e.command(s)
	result, err := e.runner.RunCommand(ctx, cmd)
	if err != nil {
		return err
	}
	if !result.Success() {
		return errors.Newf(errors.ErrCommandFailed, "%s exited with %d", cmd, result.ExitCode).
			WithDetail("stderr", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// command builds the step's command. Without args the command text is a
// shell line.
func (e *Executor) command(s Step) types.Command {
	var cmd types.Command
	if len(s.Args) > 0 {
		cmd = types.Command{Name: s.Command, Args: s.Args}
	} else {
		cmd = shell.Line(e.shell, s.Command)
	}
	cmd.Dir = s.Dir
	return cmd
}

func ids(id *int) int {
	if id == nil {
		return -1
	}
	return *id
}
