package tsk

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CommandRunner abstracts external tool invocation for testability.
type CommandRunner interface {
	Run(ctx context.Context, command string) (stdout string, stderr string, exitCode int, err error)
}

// ExecRunner implements CommandRunner by shelling out.
type ExecRunner struct{}

func (e *ExecRunner) Run(ctx context.Context, command string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	// Grandchildren can keep the output pipes open after the kill; without
	// a wait delay, Run would block until they exit.
	cmd.WaitDelay = 5 * time.Second

	var stdoutBuf, stderrBuf strings.Builder
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return stdoutBuf.String(), stderrBuf.String(), -1, fmt.Errorf("exec: %w", err)
		}
	}
	return stdoutBuf.String(), stderrBuf.String(), exitCode, nil
}

// Client runs commands through a CommandRunner with a bounded timeout and
// folds every invocation failure into the (stdout, stderr, exit code) triple:
// exit code -1 means the command timed out or could not be executed at all,
// with stderr carrying the cause. Callers never see an error value.
type Client struct {
	cmd     CommandRunner
	timeout time.Duration
}

// NewClient creates a Client. A non-positive timeout falls back to 5 minutes.
func NewClient(cmd CommandRunner, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Client{cmd: cmd, timeout: timeout}
}

// Run executes one command and returns its captured output.
func (c *Client) Run(command string) (stdout string, stderr string, exitCode int) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	stdout, stderr, exitCode, err := c.cmd.Run(ctx, command)
	// A timed-out child is killed and surfaces as a plain non-zero exit,
	// not an error, so the deadline must be checked unconditionally.
	if ctx.Err() == context.DeadlineExceeded {
		return stdout, "Command timed out", -1
	}
	if err != nil {
		return stdout, err.Error(), -1
	}
	return stdout, stderr, exitCode
}
