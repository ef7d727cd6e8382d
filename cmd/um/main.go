// Command um runs a Universal Machine program image.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"um/diag"
	"um/image"
	"um/ioport"
	"um/vm"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		rawInput  bool
		maxCycles uint64
		debugMode bool
	)

	cmd := &cobra.Command{
		Use:           "um <image>",
		Short:         "Run a Universal Machine program image",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			if len(cmdArgs) != 1 {
				// Preserve the original tool's behavior: print usage and
				// exit 0 rather than failing the command.
				fmt.Fprintln(os.Stderr, cmd.UsageString())
				return errUsage
			}
			return execImage(cmd, cmdArgs[0], rawInput, maxCycles, debugMode)
		},
	}
	// Cobra falls back to os.Args when given nil; run parses only args.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.Flags().BoolVar(&rawInput, "raw-input", false, "read stdin in raw terminal mode when it is a TTY")
	cmd.Flags().Uint64Var(&maxCycles, "max-cycles", 0, "stop after this many instructions (0 = unbounded)")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "trace each instruction to stderr")

	err := cmd.Execute()
	switch {
	case err == nil:
		return 0
	case err == errUsage || err == errMissingImage:
		return 0
	default:
		return 1
	}
}

var (
	errUsage        = fmt.Errorf("usage")
	errMissingImage = fmt.Errorf("missing image")
)

func execImage(cmd *cobra.Command, path string, rawInput bool, maxCycles uint64, debugMode bool) error {
	log := diag.New(os.Stderr)

	words, err := image.Load(path)
	if err != nil {
		// Per the external interface contract, a nonexistent or malformed
		// image is reported to standard output and the process exits
		// normally rather than starting a VM.
		fmt.Fprintln(os.Stdout, "could not load program:", err)
		diag.HostError(log, err, "loading program image")
		return errMissingImage
	}

	source, closer, err := inputSource(rawInput, log)
	if err != nil {
		fmt.Fprintln(os.Stdout, "could not set up input:", err)
		diag.HostError(log, err, "setting up input binding")
		return errMissingImage
	}
	defer closer.Close()

	sink := ioport.NewStdoutSink()

	m := vm.New(words, sink, source, log, vm.Config{
		Debug:     debugMode,
		MaxCycles: maxCycles,
	})
	m.RunProgram()

	if err := m.Err(); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	return nil
}

func inputSource(rawInput bool, log *slog.Logger) (ioport.Source, io.Closer, error) {
	if !rawInput {
		return ioport.NewStdinSource(), noopCloser{}, nil
	}
	src, closer, err := ioport.NewTerminalSource()
	if err != nil {
		log.Warn("falling back to buffered stdin", "err", err)
		return ioport.NewStdinSource(), noopCloser{}, nil
	}
	return src, closer, nil
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }
