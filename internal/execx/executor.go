// Package execx abstracts external command execution so orchestration
// code can be exercised without touching the host system.
package execx

import (
	"context"
	"os"
	"os/exec"
)

// Runner abstracts command execution to ease testing.
type Runner interface {
	// Run executes a command, streaming its output to the process streams.
	Run(ctx context.Context, name string, args ...string) error
	// Output executes a command and captures its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// System executes commands using the local OS.
type System struct{}

func (System) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (System) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}
