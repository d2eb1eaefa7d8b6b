package build

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBuilder writes a shell script standing in for singularity. It records
// its arguments in the returned file and exits with exitCode.
func fakeBuilder(t *testing.T, exitCode int) (exe, argsFile string) {
	t.Helper()

	dir := t.TempDir()
	exe = filepath.Join(dir, "singularity")
	argsFile = filepath.Join(dir, "args")
	script := fmt.Sprintf(`#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "singularity-ce version 3.11.4-jammy"
  exit 0
fi
echo "building" >&2
printf '%%s\n' "$@" > %q
exit %d
`, argsFile, exitCode)
	require.NoError(t, os.WriteFile(exe, []byte(script), 0o755))
	return exe, argsFile
}

func readArgs(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestNewStep(t *testing.T) {
	step := NewStep("/tmp/out")
	assert.Equal(t, "/tmp/out/Singularity", step.Definition)
	assert.Equal(t, "/tmp/out/container.sif", step.Image)
}

func TestBuildArgs(t *testing.T) {
	s := NewSingularity("", false)
	assert.Equal(t, "singularity", s.Executable)
	assert.Equal(t,
		[]string{"build", "--fakeroot", "/tmp/out/container.sif", "/tmp/out/Singularity"},
		s.buildArgs(NewStep("/tmp/out")),
	)
}

func TestBuildSuccess(t *testing.T) {
	exe, argsFile := fakeBuilder(t, 0)
	var stderr bytes.Buffer
	s := &Singularity{Executable: exe, Verbose: true, Stdout: &bytes.Buffer{}, Stderr: &stderr}

	step := NewStep(t.TempDir())
	result, err := s.Build(context.Background(), step)
	require.NoError(t, err)

	assert.True(t, result.Succeeded())
	assert.Equal(t, step.Image, result.Image)
	assert.Zero(t, result.ExitCode)
	assert.Equal(t, []string{"build", "--fakeroot", step.Image, step.Definition}, readArgs(t, argsFile))
	assert.Contains(t, stderr.String(), "exec: "+exe+" build --fakeroot")
	assert.Contains(t, stderr.String(), "building")
}

func TestBuildNonZeroExitIsReported(t *testing.T) {
	exe, _ := fakeBuilder(t, 3)
	s := &Singularity{Executable: exe, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	result, err := s.Build(context.Background(), NewStep(t.TempDir()))
	require.NoError(t, err, "a build that ran is not a launch failure")

	assert.False(t, result.Succeeded())
	assert.Equal(t, 3, result.ExitCode)
	assert.Empty(t, result.Image)
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "status 3")
}

func TestBuildMissingExecutable(t *testing.T) {
	s := &Singularity{
		Executable: filepath.Join(t.TempDir(), "no-such-builder"),
		Stdout:     &bytes.Buffer{},
		Stderr:     &bytes.Buffer{},
	}

	result, err := s.Build(context.Background(), NewStep(t.TempDir()))
	require.Error(t, err)
	assert.Equal(t, "failed", result.Status)
	assert.Equal(t, -1, result.ExitCode)
}

func TestBuildCanceledContext(t *testing.T) {
	exe, _ := fakeBuilder(t, 0)
	s := &Singularity{Executable: exe, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Build(ctx, NewStep(t.TempDir()))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteDefinition(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	path, err := WriteDefinition(dir, "BootStrap: docker\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Singularity"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "BootStrap: docker\n", string(data))

	// overwrites an existing definition
	_, err = WriteDefinition(dir, "second\n")
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))
}

func TestWriteDefinitionOutputDirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := WriteDefinition(file, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating output dir")
}
