// Package execx runs the external commands the migration depends on
// (package sync, checks, version control). Commands run strictly one at a
// time; output is captured so a failing command's diagnostics can be
// surfaced verbatim.
package execx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner is what the driver programs against; tests substitute a recorder.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

type Command struct {
	Name  string
	Args  []string
	Dir   string
	Env   map[string]string // overrides on top of the inherited environment
	Label string            // spinner text; empty runs silently
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// CommandError carries the failing command's captured stderr for operator
// inspection.
type CommandError struct {
	Command string
	Output  string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("error running %s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

type Executor struct {
	stderr  io.Writer
	spinner bool
}

type Options struct {
	Stderr  io.Writer
	Spinner bool
}

func NewExecutor(opts *Options) *Executor {
	if opts == nil {
		opts = &Options{Spinner: true}
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Executor{stderr: opts.Stderr, spinner: opts.Spinner}
}

func (e *Executor) Run(ctx context.Context, cmd Command) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = MergeEnv(cmd.Env)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	var err error
	if e.spinner && cmd.Label != "" {
		err = runWithSpinner(e.stderr, cmd.Label, c.Run)
	} else {
		err = c.Run()
	}
	if err != nil {
		return &CommandError{Command: cmd.String(), Output: stderr.String(), Err: err}
	}
	return nil
}

// MergeEnv layers overrides onto the inherited environment. When overrides
// are present the active-virtualenv variable is dropped as well, so sync
// and check commands cannot pick up another project's environment. A nil
// return means "inherit unchanged".
func MergeEnv(overrides map[string]string) []string {
	if len(overrides) == 0 {
		return nil
	}

	env := make([]string, 0, len(os.Environ())+len(overrides))
	for _, kv := range os.Environ() {
		key := strings.SplitN(kv, "=", 2)[0]
		if key == "VIRTUAL_ENV" {
			continue
		}
		if _, overridden := overrides[key]; overridden {
			continue
		}
		env = append(env, kv)
	}
	for key, value := range overrides {
		env = append(env, key+"="+value)
	}
	return env
}
