package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hsgwa/archgraph/internal/app"
	"github.com/hsgwa/archgraph/internal/cli"
	"github.com/hsgwa/archgraph/internal/hclarch"
	"github.com/hsgwa/archgraph/internal/reader"
	"github.com/hsgwa/archgraph/internal/yamlarch"
)

// main is the entrypoint for the archgraph application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and
// error handling.
func run(outW io.Writer, args []string) error {
	config, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	instance := app.NewApp(outW, os.Stderr, config, loaderFor(config.ArchPath))
	return instance.Run(context.Background())
}

// loaderFor picks the file backend by extension. The HCL loader takes
// a path list, so it is adapted to the single-path Loader contract.
func loaderFor(path string) app.Loader {
	if app.LoaderForPath(path) == "yaml" {
		return yamlarch.NewLoader()
	}
	return hclLoader{hclarch.NewLoader()}
}

type hclLoader struct{ l *hclarch.Loader }

func (h hclLoader) Load(ctx context.Context, path string) (*reader.Static, error) {
	return h.l.Load(ctx, path)
}
