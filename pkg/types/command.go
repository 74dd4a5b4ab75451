package types

import (
	"io"
	"strings"
)

// Command is an external command line
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

// String returns the command line as it would be typed
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// CommandResult is the collected outcome of RunCommand
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports a zero exit code
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// ExitStatus is the outcome of Popen4
type ExitStatus struct {
	Pid      int
	ExitCode int
}

// Success reports a zero exit code
func (s ExitStatus) Success() bool {
	return s.ExitCode == 0
}

// StreamHandler receives a started process's pid and streams
type StreamHandler func(pid int, stdin io.WriteCloser, stdout, stderr io.Reader) error
