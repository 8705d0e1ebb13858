package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/davecgh/go-spew/spew"
	json "github.com/goccy/go-json"

	"binding-generator/internal/config"
	"binding-generator/internal/gen"
	"binding-generator/internal/match"
	"binding-generator/internal/reduce"
	"binding-generator/internal/registry"
	"binding-generator/internal/source"
)

// Inspect output formats.
const (
	FormatSignatures = "signatures"
	FormatJSON       = "json"
	FormatDump       = "dump"
)

var inspectFormats = []string{FormatSignatures, FormatJSON, FormatDump}

// App wires the loader, parser, reducer and generator together.
type App struct {
	cfg    *config.Config
	target reduce.Target
	loader *source.Loader
	logger *slog.Logger
}

// NewApp validates cfg and creates an App.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	target, err := cfg.Target()
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:    cfg,
		target: target,
		loader: source.NewLoader(source.WithTimeout(cfg.Timeout), source.WithLogger(logger)),
		logger: logger,
	}, nil
}

// Build loads, parses and reduces the registry.
func (a *App) Build(ctx context.Context) (*registry.Registry, error) {
	data, err := a.loader.Load(ctx, a.cfg.Registry)
	if err != nil {
		return nil, err
	}

	reg, err := registry.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}

	a.logger.Debug("Parsed registry",
		slog.Int("constants", len(reg.Constants)),
		slog.Int("functions", len(reg.Functions)),
		slog.Int("features", len(reg.Features)),
		slog.Int("extensions", len(reg.Extensions)))

	a.checkExtensions(reg)
	reduce.Reduce(reg, a.target)

	a.logger.Info("Reduced registry",
		slog.String("api", a.target.Api.String()),
		slog.Float64("version", a.target.Version),
		slog.String("profile", a.target.Profile.String()),
		slog.Int("constants", len(reg.Constants)),
		slog.Int("functions", len(reg.Functions)))

	if len(reg.Features) == 0 {
		a.logger.Warn("No feature matches the target", slog.String("api", a.target.Api.String()))
	}

	return reg, nil
}

// checkExtensions warns about requested extensions the registry does not
// declare, suggesting the closest declared name.
func (a *App) checkExtensions(reg *registry.Registry) {
	if len(a.target.Extensions) == 0 {
		return
	}

	declared := make([]string, 0, len(reg.Extensions))
	for _, ext := range reg.Extensions {
		declared = append(declared, ext.Name)
	}

	for _, name := range a.target.Extensions {
		if slices.Contains(declared, name) {
			continue
		}

		attrs := []any{slog.String("extension", name)}
		if suggestion, ok := match.Suggest(name, declared); ok {
			attrs = append(attrs, slog.String("did_you_mean", suggestion))
		}

		a.logger.Warn("Unknown extension", attrs...)
	}
}

// Generate writes the bindings package and returns the written paths.
func (a *App) Generate(ctx context.Context) ([]string, error) {
	reg, err := a.Build(ctx)
	if err != nil {
		return nil, err
	}

	generator := gen.NewGenerator(gen.GeneratorConfig{
		PackageName: a.cfg.Package,
		OutputDir:   a.cfg.Output,
	}, a.logger)

	files, err := generator.Generate(reg, a.target)
	if err != nil {
		return nil, err
	}

	paths, err := gen.WriteFiles(files, a.cfg.Output)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Wrote bindings", slog.String("dir", a.cfg.Output), slog.Int("files", len(paths)))

	return paths, nil
}

// Inspect prints the reduced model to w.
func (a *App) Inspect(ctx context.Context, w io.Writer, format string) error {
	if !slices.Contains(inspectFormats, format) {
		return fmt.Errorf("unknown format %q", format)
	}

	reg, err := a.Build(ctx)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(reg, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal registry: %w", err)
		}

		_, err = fmt.Fprintln(w, string(data))

		return err
	case FormatDump:
		spew.Fdump(w, reg)
		return nil
	default:
		return writeSignatures(w, reg)
	}
}

func writeSignatures(w io.Writer, reg *registry.Registry) error {
	for _, c := range reg.Constants {
		if _, err := fmt.Fprintf(w, "%s = %s\n", c.Name, c.Value); err != nil {
			return err
		}
	}

	for _, fn := range reg.Functions {
		if _, err := fmt.Fprintln(w, fn.Signature()); err != nil {
			return err
		}
	}

	return nil
}
