// Package runner executes the external pylint process and captures its
// output and exit status. lintwell never reimplements lint checks; the
// linter is always an external tool whose exit code is preserved.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result holds the outcome of one linter invocation.
type Result struct {
	// Output is the combined stdout of the linter. Diagnostics are parsed
	// from here.
	Output string

	// Stderr is the linter's error stream, kept separate so usage errors
	// can be surfaced verbatim.
	Stderr string

	// ExitCode is the raw process exit code. Pylint uses a bitmask; see
	// Status.
	ExitCode int

	// Argv is the exact command line that was run, for diagnostics.
	Argv []string
}

// Runner invokes pylint over a set of files.
type Runner struct {
	// Bin is the pylint executable. Resolved via PATH when not absolute.
	Bin string

	// BaseArgs are inserted before the pass-through arguments on every
	// invocation (e.g. --output-format).
	BaseArgs []string
}

// New creates a Runner for the given executable.
func New(bin string) *Runner {
	if bin == "" {
		bin = "pylint"
	}
	return &Runner{Bin: bin}
}

// Run lints the given files from workdir, forwarding extraArgs to pylint
// unchanged. A non-zero linter exit is not an error: pylint exits non-zero
// whenever it emits any diagnostic, and that status is part of the Result.
// Run returns an error only when the process could not be started or was
// killed by the context.
func (r *Runner) Run(ctx context.Context, workdir string, files, extraArgs []string) (*Result, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to lint")
	}

	argv := make([]string, 0, len(r.BaseArgs)+len(extraArgs)+len(files))
	argv = append(argv, r.BaseArgs...)
	argv = append(argv, extraArgs...)
	argv = append(argv, files...)

	cmd := exec.CommandContext(ctx, r.Bin, argv...)
	cmd.Dir = workdir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Output:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
		Argv:     append([]string{r.Bin}, argv...),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("linter interrupted: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to run %s: %w", r.Bin, err)
	}

	return result, nil
}

// Version returns the linter's version line (first line of --version).
// Used to key the incremental cache.
func (r *Runner) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, r.Bin, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get %s version: %w", r.Bin, err)
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}
