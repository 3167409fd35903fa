package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/AnishMulay/sandsplit/internal/command"
	"github.com/AnishMulay/sandsplit/internal/digest_service"
	"github.com/pkg/errors"
)

const (
	exitOK        = 0
	exitFailure   = 1
	exitUsage     = 2
	exitInterrupt = 130
)

func main() {
	// Partially written chunks are left as they are on interrupt.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Fprintln(os.Stderr, " is caught, exiting...")
		os.Exit(exitInterrupt)
	}()

	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	if isUsage(err) {
		return exitUsage
	}
	return exitFailure
}

// usageError marks errors in how the tool was invoked.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func isUsage(err error) bool {
	var ue usageError
	if errors.As(err, &ue) {
		return true
	}
	return command.IsUsageError(err) || errors.Is(err, digest_service.ErrUnknownAlgorithm)
}
