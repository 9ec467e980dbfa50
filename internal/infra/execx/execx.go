// Package execx runs external commands for subprocess-backed tools.
// Commands are scoped to the invocation context so their exit (success,
// error, or cancellation) is always observed before the tool returns —
// no orphaned children.
package execx

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Result captures one finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Combined returns stdout followed by stderr, trimmed.
func (r Result) Combined() string {
	return strings.TrimRight(r.Stdout+r.Stderr, "\n")
}

// Runner executes commands. The interface exists so subprocess tools
// can be tested without apt-get or uv installed.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// System runs commands on the host.
type System struct{}

// Run executes name with args under ctx. A non-zero exit is not an
// error here — the exit code and captured output are returned for the
// tool to report. The returned error covers start failures only
// (binary missing, permission denied, context canceled).
func (System) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return res, nil
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	default:
		return res, err
	}
}
