package shell

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"time"

	"github.com/arthur-debert/whatif/pkg/errors"
	"github.com/arthur-debert/whatif/pkg/logging"
	"github.com/arthur-debert/whatif/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a command when the runner has no timeout configured
const DefaultTimeout = 5 * time.Minute

// Runner executes commands with os/exec. It implements types.CommandRunner.
type Runner struct {
	logger  zerolog.Logger
	timeout time.Duration
}

var _ types.CommandRunner = (*Runner)(nil)

// NewRunner creates a runner. A zero timeout selects DefaultTimeout.
func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{
		logger:  logging.GetLogger("shell.runner"),
		timeout: timeout,
	}
}

// Line returns the command that runs line through shell with -c
func Line(shell, line string) types.Command {
	return types.Command{Name: shell, Args: []string{"-c", line}}
}

// RunCommand runs cmd to completion. A non-zero exit is reported in the
// result, not as an error. Errors mean the command could not run at all.
func (r *Runner) RunCommand(ctx context.Context, cmd types.Command) (types.CommandResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	c, err := r.prepare(ctx, cmd)
	if err != nil {
		return types.CommandResult{}, err
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	logging.LogCommand(cmd.Name, cmd.Args)
	err = c.Run()

	result := types.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err := exitCode(err, &result.ExitCode); err != nil {
		r.logger.Error().
			Err(err).
			Str("command", cmd.String()).
			Msg("Command execution failed")
		return result, errors.Wrapf(err, errors.ErrCommandFailed, "failed to execute command: %s", cmd.Name)
	}

	r.logger.Debug().
		Str("command", cmd.String()).
		Int("exitCode", result.ExitCode).
		Msg("Command finished")
	return result, nil
}

// Popen4 starts cmd, hands its streams to fn and waits for it to exit. fn
// must drain stdout and stderr before returning or the process can block.
func (r *Runner) Popen4(ctx context.Context, cmd types.Command, fn types.StreamHandler) (types.ExitStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	c, err := r.prepare(ctx, cmd)
	if err != nil {
		return types.ExitStatus{}, err
	}

	stdin, err := c.StdinPipe()
	if err != nil {
		return types.ExitStatus{}, errors.Wrap(err, errors.ErrInternal, "failed to open stdin pipe")
	}
	stdout, err := c.StdoutPipe()
	if err != nil {
		return types.ExitStatus{}, errors.Wrap(err, errors.ErrInternal, "failed to open stdout pipe")
	}
	stderr, err := c.StderrPipe()
	if err != nil {
		return types.ExitStatus{}, errors.Wrap(err, errors.ErrInternal, "failed to open stderr pipe")
	}

	logging.LogCommand(cmd.Name, cmd.Args)
	if err := c.Start(); err != nil {
		return types.ExitStatus{}, errors.Wrapf(err, errors.ErrCommandFailed, "failed to start command: %s", cmd.Name)
	}

	status := types.ExitStatus{Pid: c.Process.Pid}
	fnErr := fn(status.Pid, stdin, stdout, stderr)
	_ = stdin.Close()

	waitErr := exitCode(c.Wait(), &status.ExitCode)
	if fnErr != nil {
		return status, fnErr
	}
	if waitErr != nil {
		return status, errors.Wrapf(waitErr, errors.ErrCommandFailed, "failed to execute command: %s", cmd.Name)
	}
	return status, nil
}

func (r *Runner) prepare(ctx context.Context, cmd types.Command) (*exec.Cmd, error) {
	if cmd.Name == "" {
		return nil, errors.New(errors.ErrInvalidInput, "command name cannot be empty")
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if cmd.Dir != "" {
		if _, err := os.Stat(cmd.Dir); os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrFileAccess,
				"working directory does not exist: %s", cmd.Dir)
		}
		c.Dir = cmd.Dir
	}
	c.Env = append(os.Environ(), cmd.Env...)
	return c, nil
}

// exitCode stores the exit code carried by err and returns err only when
// it is something other than a non-zero exit
func exitCode(err error, code *int) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		*code = exitErr.ExitCode()
		if *code >= 0 {
			return nil
		}
	}
	return err
}
