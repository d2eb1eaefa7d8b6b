package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Singularity wraps the singularity (or apptainer) build command.
type Singularity struct {
	Executable string
	Verbose    bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// NewSingularity creates a runner with default output writers.
// An empty executable means "singularity" on PATH.
func NewSingularity(executable string, verbose bool) *Singularity {
	if executable == "" {
		executable = "singularity"
	}
	return &Singularity{
		Executable: executable,
		Verbose:    verbose,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

// Build executes a single build step.
//
// The returned error is only about launching the tool. A build that runs
// and exits non-zero is reported through StepResult.Status and ExitCode.
func (s *Singularity) Build(ctx context.Context, step BuildStep) (*StepResult, error) {
	start := time.Now()
	result := &StepResult{
		Name: step.Name,
	}

	args := s.buildArgs(step)

	if s.Verbose {
		fmt.Fprintf(s.Stderr, "exec: %s %s\n", s.Executable, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, s.Executable, args...)
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	err := cmd.Run()
	result.Duration = time.Since(start)

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.Status = "success"
		result.Image = step.Image
		return result, nil
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		result.Status = "failed"
		result.ExitCode = exitErr.ExitCode()
		result.Error = fmt.Errorf("%s build exited with status %d", s.Executable, result.ExitCode)
		return result, nil
	default:
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		result.Status = "failed"
		result.ExitCode = -1
		result.Error = fmt.Errorf("running %s build: %w", s.Executable, err)
		return result, result.Error
	}
}

// buildArgs constructs the build argument list:
// build --fakeroot <image> <definition>.
func (s *Singularity) buildArgs(step BuildStep) []string {
	return []string{"build", "--fakeroot", step.Image, step.Definition}
}
