package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"judgeman/internal/app"
	"judgeman/internal/config"
	"judgeman/internal/observability"
)

var version = "0.3.0"

type globalFlags struct {
	configPath    string
	selectorsPath string
	source        string
	logLevel      string
	logFile       string
}

func main() {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "judgeman [url] [output]",
		Short: "Convert a published judgment into a readable, self-contained HTML report",
		Long: `judgeman loads a judgment page, extracts the case summary, legal issues and
numbered body paragraphs, and writes one HTML file that toggles between a
simplified reading view and the original page.

Examples:
  judgeman
  judgeman https://www.elitigation.sg/gd/s/2009_SGCA_3 case.html
  judgeman --source file saved-judgment.html case.html`,
		Version:       version,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			target, output := positional(args, cfg.Target.URL, cfg.Target.OutputPath)

			return run(cmd.Context(), cfg, func(ctx context.Context, o *app.Orchestrator) error {
				result, err := o.Archive(ctx, target, output)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", result.Path)
				return nil
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&flags.selectorsPath, "selectors", "", "YAML selectors file (overrides the config)")
	rootCmd.PersistentFlags().StringVar(&flags.source, "source", "", "page source: browser, http or file")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "also write logs to this rotating file")

	rootCmd.AddCommand(dumpCmd(flags))
	rootCmd.AddCommand(markdownCmd(flags))
	rootCmd.AddCommand(factsCmd(flags))
	rootCmd.AddCommand(diagramCmd(flags))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func dumpCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dump [url]",
		Short: "Print the extracted fields instead of writing a report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			target, _ := positional(args, cfg.Target.URL, "")

			return run(cmd.Context(), cfg, func(ctx context.Context, o *app.Orchestrator) error {
				return o.Dump(ctx, target, cmd.OutOrStdout(), asJSON)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	return cmd
}

func markdownCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "markdown [url] [output]",
		Short: "Write the simplified view as Markdown",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			target, output := positional(args, cfg.Target.URL, cfg.Target.MarkdownPath)

			return run(cmd.Context(), cfg, func(ctx context.Context, o *app.Orchestrator) error {
				if err := o.Markdown(ctx, target, output); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", output)
				return nil
			})
		},
	}
}

func factsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "facts [url]",
		Short: "Ask the configured model for a short rundown of the case facts",
		Long: `facts extracts the judgment, sends its metadata, legal issues and facts
section to an OpenAI-compatible chat endpoint (Gemini by default) and prints
the reply. The API key comes from llm.api_key or ` + config.LLMAPIKeyEnv + `.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			target, _ := positional(args, cfg.Target.URL, "")

			return run(cmd.Context(), cfg, func(ctx context.Context, o *app.Orchestrator) error {
				return o.Facts(ctx, target, cmd.OutOrStdout())
			})
		},
	}
}

func diagramCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "diagram [url]",
		Short: "Ask the configured model for the case as a JSON graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			target, _ := positional(args, cfg.Target.URL, "")

			return run(cmd.Context(), cfg, func(ctx context.Context, o *app.Orchestrator) error {
				return o.Diagram(ctx, target, cmd.OutOrStdout())
			})
		},
	}
}

// resolve loads the config file, applies command-line overrides and validates
// the result once.
func (f *globalFlags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}

	cfg.Apply(f.overrides(cmd))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (f *globalFlags) overrides(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	set := cmd.Flags()
	if set.Changed("selectors") {
		o.SelectorsFile = &f.selectorsPath
	}
	if set.Changed("source") {
		o.Source = &f.source
	}
	if set.Changed("log-level") {
		o.LogLevel = &f.logLevel
	}
	if set.Changed("log-file") {
		o.LogPath = &f.logFile
	}
	return o
}

func positional(args []string, defaultURL, defaultOutput string) (string, string) {
	target, output := defaultURL, defaultOutput
	if len(args) > 0 && args[0] != "" {
		target = args[0]
	}
	if len(args) > 1 && args[1] != "" {
		output = args[1]
	}
	return target, output
}

func run(parent context.Context, cfg *config.Config, step func(context.Context, *app.Orchestrator) error) error {
	logger, err := observability.NewLogger(observability.Options{
		LogPath:    cfg.Observability.LogPath,
		LogLevel:   cfg.Observability.LogLevel,
		MaxSizeMB:  cfg.Observability.LogMaxSizeMB,
		MaxBackups: cfg.Observability.LogMaxBackups,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()
	logger = logger.With("run_id", uuid.NewString())

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := app.GracefulShutdown(parent, logger)
	defer cancel()

	orchestrator, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	return step(ctx, orchestrator)
}
