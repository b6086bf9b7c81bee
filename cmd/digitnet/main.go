// Package main provides the digitnet CLI: train a one-hidden-layer digit
// classifier on raw or IDX image data, save it as a .dnet model, and run
// predictions with a saved model.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const version = "v0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one CLI command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var err error
	switch args[0] {
	case "train":
		err = runTrain(args[1:], stdout, stderr, logger)
	case "predict":
		err = runPredict(args[1:], stdout, stderr)
	case "eval":
		err = runEval(args[1:], stdout, stderr, logger)
	case "version":
		runVersion(stdout)
	case "help", "-h", "--help":
		usage(stdout)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		logger.Error("command failed", "command", args[0], "error", err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "digitnet %s - handwritten digit classifier\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  train    Train a network and optionally save it")
	fmt.Fprintln(w, "  predict  Print the output row for one image")
	fmt.Fprintln(w, "  eval     Report loss and accuracy of a saved model")
	fmt.Fprintln(w, "  version  Show version and CPU features")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'digitnet <command> -h' for command flags.")
}
