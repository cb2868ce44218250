package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hsgwa/archgraph/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated
// Config, a boolean indicating if the program should exit cleanly, or
// an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("archgraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
archgraph - Reconstructs a pub/sub system's architecture and searches its paths.

Usage:
  archgraph [options] [ARCH_PATH]

Arguments:
  ARCH_PATH
    Path to an architecture description: a .hcl file or directory, or a
    .yaml/.yml file.

Options:
`)
		flagSet.PrintDefaults()
	}

	archFlag := flagSet.String("arch", "", "Path to the architecture description.")
	aFlag := flagSet.String("a", "", "Path to the architecture description (shorthand).")
	fromFlag := flagSet.String("from", "", "Start node of a path search.")
	toFlag := flagSet.String("to", "", "End node of a path search.")
	maxDepthFlag := flagSet.Int("max-depth", 0, "Hop bound for the path search. 0 is unbounded.")
	ignoreFlag := flagSet.String("ignore-topics", "", "Comma-separated topics to ignore. Empty keeps the default list.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *archFlag != "" {
		path = *archFlag
	} else if *aFlag != "" {
		path = *aFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Architecture path determined.", "path", path)

	if path == "" {
		slog.Debug("No architecture path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	var ignoreTopics []string
	if *ignoreFlag != "" {
		for _, topic := range strings.Split(*ignoreFlag, ",") {
			if topic = strings.TrimSpace(topic); topic != "" {
				ignoreTopics = append(ignoreTopics, topic)
			}
		}
	}

	config, err := app.NewConfig(app.Config{
		ArchPath:     path,
		StartNode:    *fromFlag,
		EndNode:      *toFlag,
		MaxDepth:     *maxDepthFlag,
		IgnoreTopics: ignoreTopics,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
