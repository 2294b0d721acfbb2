// Command portalgrid decomposes a seeded random cost grid into portal
// rectangles, reports the graph statistics and writes debug images.
//
//	portalgrid solve --width 100 --height 100 --seed 1029382
//	portalgrid stats --json --growth clip
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitRuntime)
	}
}

// run executes the CLI with args, writing results to out and logs to errOut.
func run(args []string, out, errOut io.Writer) error {
	root := newRootCmd(out, errOut)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return err
		}
		// Cobra's own failures are unknown commands and bad arguments.
		return usageError(err)
	}
	return nil
}
