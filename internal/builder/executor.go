package builder

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, dir, binary string, args []string, onStdout func(string), stderr io.Writer) error
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, dir, binary string, args []string, onStdout func(string), stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Dir = dir
	cmd.Stderr = stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if onStdout != nil {
			onStdout(scanner.Text())
		}
	}
	scanErr := scanner.Err()
	if scanErr != nil {
		// Drain so the child never blocks on a full pipe.
		_, _ = io.Copy(io.Discard, stdout)
	}

	if err := cmd.Wait(); err != nil {
		return err
	}
	if scanErr != nil {
		return fmt.Errorf("read stdout: %w", scanErr)
	}
	return nil
}
