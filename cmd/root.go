package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/takak2166/worklist/internal/config"
	"github.com/takak2166/worklist/internal/logger"
	"github.com/takak2166/worklist/internal/parser"
	"github.com/takak2166/worklist/internal/render"
	"github.com/takak2166/worklist/internal/worklist"
)

func newRootCmd() *cobra.Command {
	var cfgFile string
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:   "worklist <source-dir> <destination-file>",
		Short: "Injects a list of dated works into an HTML file",
		Long: `worklist scans a directory for files named yymmdd_label, sorts them
newest first and writes them as a linked list into the element with id
"work-list" of an existing HTML file. The element is created at the end of
<body> if missing; the file is rewritten with the body's content.`,
		Args:          validateArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(".env"); err != nil {
				return err
			}

			loaded, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if err := logger.Init(loaded.LogLevel); err != nil {
				return fmt.Errorf("invalid log level %q: %w", loaded.LogLevel, err)
			}
			cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./worklist.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("container-id", render.DefaultContainerID, "id of the element holding the list")
	flags.String("heading", render.DefaultHeading, "heading text of the list")
	flags.String("normalize", "", `unicode normalization of file names ("" or "nfc")`)
	flags.Bool("watch", false, "rebuild the list whenever the source directory changes")
	flags.Duration("debounce", worklist.DefaultDebounce, "quiet period before a watch rebuild")

	return cmd
}

func validateArgs(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) < 1 || args[0] == "":
		return worklist.ErrMissingSource
	case len(args) < 2 || args[1] == "":
		return worklist.ErrMissingDestination
	case len(args) > 2:
		return fmt.Errorf("accepts 2 arg(s), received %d", len(args))
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config, sourceDir, destination string) error {
	p, err := parser.New(parser.Options{Normalize: cfg.Normalize})
	if err != nil {
		return err
	}
	runner := worklist.NewRunner(worklist.NewFSStore(), p, render.Options{
		ContainerID: cfg.ContainerID,
		Heading:     cfg.Heading,
	})

	if _, err := runner.Run(ctx, sourceDir, destination); err != nil {
		return err
	}
	if !cfg.Watch {
		return nil
	}

	watcher, err := worklist.NewWatcher(sourceDir, worklist.WatchOptions{
		Debounce: cfg.Debounce,
		Ignore:   []string{destination},
	})
	if err != nil {
		return err
	}
	logger.Info("Watching for changes", map[string]interface{}{
		"source": sourceDir,
	})
	return watcher.Run(ctx, func(ctx context.Context) error {
		_, err := runner.Run(ctx, sourceDir, destination)
		return err
	})
}
