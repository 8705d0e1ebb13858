// Package main provides the CLI entrypoint for binding-generator.
//
// binding-generator reads an OpenGL-family XML registry, reduces it to the
// constants and functions one api, version and profile require, and writes
// a Go bindings package for them.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"binding-generator/internal/config"
)

const (
	Version = "0.1.0"
	appName = "binding-generator"
)

func main() {
	if err := rootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// targetFlags are the flags shared by generate and inspect. Set flags
// override the config file.
type targetFlags struct {
	registry   string
	api        string
	version    string
	profile    string
	extensions []string
}

func (f *targetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.registry, "registry", config.DefaultRegistry, "Registry file path or http(s) URL")
	cmd.Flags().StringVar(&f.api, "api", config.DefaultApi, "Target api (gl, gles1, gles2, glsc2)")
	cmd.Flags().StringVar(&f.version, "version", config.DefaultVersion, "Target version ceiling, inclusive")
	cmd.Flags().StringVar(&f.profile, "profile", config.DefaultProfile, "Target profile (core, compatibility, common)")
	cmd.Flags().StringSliceVar(&f.extensions, "ext", nil, "Extension to include (repeatable)")
}

func (f *targetFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("registry") {
		cfg.Registry = f.registry
	}

	if flags.Changed("api") {
		cfg.Api = f.api
	}

	if flags.Changed("version") {
		cfg.Version = f.version
	}

	if flags.Changed("profile") {
		cfg.Profile = f.profile
	}

	if flags.Changed("ext") {
		cfg.Extensions = f.extensions
	}
}

func rootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Generate Go bindings from an OpenGL XML registry",
		Long: `binding-generator reduces an OpenGL-family XML registry to the
constants and functions required by one api, version and profile, and
writes them as a Go package.

Settings come from an optional YAML config file (--config); flags override it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	setup := func(c *cobra.Command, flags *targetFlags, adjust func(*config.Config)) (*App, error) {
		logger := newLogger(stderr, logLevel)
		slog.SetDefault(logger)

		cfg := config.DefaultConfig()
		if configPath != "" {
			loaded, err := config.LoadFile(configPath)
			if err != nil {
				return nil, err
			}

			cfg = loaded
			logger.Debug("Loaded config", slog.String("path", configPath))
		}

		flags.apply(c, cfg)

		if adjust != nil {
			adjust(cfg)
		}

		return NewApp(cfg, logger)
	}

	cmd.AddCommand(generateCmd(setup), inspectCmd(setup), initCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(c *cobra.Command, _ []string) {
			fmt.Fprintf(c.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}

// setupFunc builds the App from config file and flags. adjust, if set, lets a
// command apply its own flags before validation.
type setupFunc func(c *cobra.Command, flags *targetFlags, adjust func(*config.Config)) (*App, error)

func generateCmd(setup setupFunc) *cobra.Command {
	var (
		flags   targetFlags
		output  string
		pkgName string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the Go bindings package",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			app, err := setup(c, &flags, func(cfg *config.Config) {
				if c.Flags().Changed("out") {
					cfg.Output = output
				}

				if c.Flags().Changed("package") {
					cfg.Package = pkgName
				}
			})
			if err != nil {
				return err
			}

			paths, err := app.Generate(c.Context())
			if err != nil {
				return err
			}

			for _, p := range paths {
				fmt.Fprintln(c.OutOrStdout(), p)
			}

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "out", "o", config.DefaultOutput, "Output directory")
	cmd.Flags().StringVar(&pkgName, "package", config.DefaultPackage, "Generated package name")

	return cmd
}

func inspectCmd(setup setupFunc) *cobra.Command {
	var (
		flags  targetFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the reduced registry model",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			app, err := setup(c, &flags, nil)
			if err != nil {
				return err
			}

			return app.Inspect(c.Context(), c.OutOrStdout(), format)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", FormatSignatures,
		"Output format ("+strings.Join(inspectFormats, ", ")+")")

	return cmd
}

func initCmd() *cobra.Command {
	var (
		flags  targetFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file holding the defaults and the given target",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg := config.DefaultConfig()
			flags.apply(c, cfg)

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			data, err := config.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}

			if output == "" || output == "-" {
				_, err = c.OutOrStdout().Write(data)
				return err
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write config %s: %w", output, err)
			}

			fmt.Fprintln(c.OutOrStdout(), output)

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "out", "o", "", "Config file to write (default stdout)")

	return cmd
}

func newLogger(w io.Writer, level string) *slog.Logger {
	lvl := slog.LevelInfo

	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
