package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/roach88/structmatch/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx)
	stop()

	if err == nil {
		return
	}

	// Failed matches and scenarios have already been reported on stdout.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != cli.ExitFailure {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}
