package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"apkship/internal/pipeline"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err, os.Stderr))
}

// exitCode reports err and maps it to the process status. Pipeline failures
// carry the status their Outcome chose and were already printed.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		return stageErr.Code
	}
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, err)
	}
	return 1
}
