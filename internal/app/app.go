package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/hsgwa/archgraph/internal/arch"
	"github.com/hsgwa/archgraph/internal/ctxlog"
	"github.com/hsgwa/archgraph/internal/model"
	"github.com/hsgwa/archgraph/internal/reader"
)

// Loader turns a filesystem path into reader records. Both file
// backends satisfy it through small adapters in the cmd layer.
type Loader interface {
	Load(ctx context.Context, path string) (*reader.Static, error)
}

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader Loader
}

// NewApp is the constructor for the main application. It returns a
// fully initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, logW io.Writer, config *Config, loader Loader) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, logW)
	logger.Debug("Logger configured successfully.")
	return &App{outW: outW, logger: logger, config: config, loader: loader}
}

// Run loads the architecture description, assembles it, prints a
// summary, and optionally runs one node-to-node search.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	r, err := a.loader.Load(ctx, a.config.ArchPath)
	if err != nil {
		return fmt.Errorf("loading architecture: %w", err)
	}

	built, err := arch.New(ctx, r, arch.Options{IgnoreTopics: a.config.IgnoreTopics})
	if err != nil {
		return fmt.Errorf("assembling architecture: %w", err)
	}

	a.printSummary(built)

	if a.config.StartNode != "" {
		a.printSearch(ctx, built)
	}
	return nil
}

func (a *App) printSummary(built *arch.Architecture) {
	fmt.Fprintf(a.outW, "Nodes: %d\n", len(built.Nodes()))
	for _, name := range built.NodeNames() {
		fmt.Fprintf(a.outW, "  %s\n", name)
	}
	fmt.Fprintf(a.outW, "Topics: %s\n", strings.Join(built.TopicNames(), ", "))
	fmt.Fprintf(a.outW, "Communications: %d ordinary, %d transform\n",
		len(built.Communications()), len(built.TfCommunications()))
	fmt.Fprintf(a.outW, "Executors: %d\n", len(built.Executors()))

	if named := built.Paths(); len(named) > 0 {
		fmt.Fprintf(a.outW, "Named paths:\n")
		for _, p := range named {
			fmt.Fprintf(a.outW, "  %s: %s\n", p.Name, formatPath(p))
		}
	}
	if warnings := built.Warnings(); len(warnings) > 0 {
		fmt.Fprintf(a.outW, "Warnings: %d (see log)\n", len(warnings))
	}
}

func (a *App) printSearch(ctx context.Context, built *arch.Architecture) {
	paths := built.Search(ctx, a.config.StartNode, a.config.EndNode, a.config.MaxDepth)
	fmt.Fprintf(a.outW, "Search %s -> %s: %d path(s)\n",
		a.config.StartNode, a.config.EndNode, len(paths))
	for i, p := range paths {
		fmt.Fprintf(a.outW, "  %d: %s\n", i+1, formatPath(p))
	}
}

// formatPath renders a path as node names joined by the topics that
// connect them.
func formatPath(p model.Path) string {
	var b strings.Builder
	nodes := p.NodeNames()
	topics := p.TopicNames()
	for i, node := range nodes {
		if i > 0 && i-1 < len(topics) {
			b.WriteString(" --[" + topics[i-1] + "]--> ")
		}
		b.WriteString(node)
	}
	return b.String()
}

// LoaderForPath picks the backend for a path: YAML for .yaml/.yml
// files, HCL otherwise.
func LoaderForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "hcl"
	}
}
