package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/burstbuild/internal/ctxlog"
	"github.com/specialistvlad/burstbuild/internal/env"
	"github.com/specialistvlad/burstbuild/internal/graph"
	"github.com/specialistvlad/burstbuild/internal/manifest"
	"github.com/specialistvlad/burstbuild/internal/mtime"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader *manifest.Loader
	stater mtime.Stater
}

// New is the constructor for the main application. Reports go to outW and log
// records to logW, so the report stays machine-readable.
func New(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: manifest.NewLoader(),
		stater: mtime.System,
	}
}

// Inspect loads the configured manifests into a fresh graph, optionally stats
// every node, fingerprints every edge, and writes a report. A stat failure or
// an edge whose rule has no command aborts the inspection.
func (a *App) Inspect(ctx context.Context) error {
	ctx = ctxlog.With(ctxlog.WithLogger(ctx, a.logger), "op", "inspect")
	a.logger.Debug("App.Inspect method started.", "paths", a.config.ManifestPaths)
	if len(a.config.ManifestPaths) == 0 {
		return errors.New("no manifest paths configured")
	}

	g, err := a.loader.Load(ctx, a.config.ManifestPaths...)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	if a.config.Stat {
		if err := g.StatAll(ctx, a.stater, a.config.Workers); err != nil {
			return err
		}
	}

	rep, err := buildReport(g, a.config.Stat)
	if err != nil {
		return err
	}
	a.logger.Info("Graph inspected.", "nodes", rep.Nodes, "edges", len(rep.Edges), "sources", len(rep.Sources))

	return rep.write(a.outW, a.config.Output)
}

// Hash returns the fingerprint an edge running command would have. rsp is the
// response file content and may be empty.
func (a *App) Hash(ctx context.Context, command, rsp string) (uint64, error) {
	logger := ctxlog.FromContext(ctxlog.With(ctxlog.WithLogger(ctx, a.logger), "op", "hash"))

	rule := env.NewRule("command")
	rule.Bind("command", env.Literal(command))
	if rsp != "" {
		rule.Bind("rspfile_content", env.Literal(rsp))
	}
	e := graph.New(nil).NewEdge(nil)
	e.Rule = rule

	h, err := e.Fingerprint()
	if err != nil {
		return 0, err
	}
	logger.Debug("Command fingerprinted.", "command", command, "rspfile", rsp != "", "hash", fmt.Sprintf("%016x", h))
	return h, nil
}
