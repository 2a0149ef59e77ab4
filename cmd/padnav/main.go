package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user-none/padnav/standalone"
	"github.com/user-none/padnav/standalone/config"
	"github.com/user-none/padnav/standalone/graphics"
	"github.com/user-none/padnav/standalone/layout"
	"github.com/user-none/padnav/standalone/pages"
	"github.com/user-none/padnav/standalone/storage"
)

var version = "dev"

type cli struct {
	cfgFile string
	debug   bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "padnav",
		Short:         "Gamepad navigable settings UI",
		Long:          `padnav - a settings and game profile UI driven entirely by a gamepad`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is padnav.yaml in the user config dir)")
	root.PersistentFlags().BoolVar(&c.debug, "debug", false, "enable debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start the UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.Context())
		},
	}

	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect page layouts without opening a window",
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate every page layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkLayout(cmd.OutOrStdout())
		},
	}

	var asYAML bool
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print registries and zones of every page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpLayout(cmd.OutOrStdout(), asYAML)
		},
	}
	dumpCmd.Flags().BoolVar(&asYAML, "yaml", false, "print YAML instead of a styled listing")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "padnav v%s\n", version)
		},
	}

	layoutCmd.AddCommand(checkCmd, dumpCmd)
	root.AddCommand(runCmd, layoutCmd, versionCmd)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (c *cli) run(ctx context.Context) error {
	logCfg := zap.NewProductionConfig()
	if c.debug {
		logCfg = zap.NewDevelopmentConfig()
	}
	logger, err := logCfg.Build()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	loader := config.NewLoader(c.cfgFile, logger)
	opts, err := loader.Load()
	if err != nil {
		standalone.ShowStartupError(err)
		return err
	}
	// --debug wins over the configured level
	if lvl, err := zap.ParseAtomicLevel(opts.LogLevel); err == nil && !c.debug {
		logCfg.Level.SetLevel(lvl.Level())
	}

	logger.Info("Starting padnav",
		zap.String("version", version),
		zap.String("config", loader.ConfigFile()))

	err = standalone.Run(ctx, standalone.Options{
		Runtime: opts,
		Loader:  loader,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("padnav exited with error", zap.Error(err))
		standalone.ShowStartupError(err)
	}
	return err
}

// headlessPages builds the pages against default settings
func headlessPages() (*pages.Set, error) {
	return pages.Build(&pages.Deps{
		Config:      storage.DefaultConfig(),
		Library:     storage.DefaultLibrary(),
		Graphics:    graphics.NewSimulated(graphics.DefaultSettings()),
		SaveConfig:  func() error { return nil },
		SaveLibrary: func() error { return nil },
	})
}

func checkLayout(w io.Writer) error {
	set, err := headlessPages()
	if err != nil {
		return err
	}
	if err := layout.Check(set.Pages); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d pages OK\n", len(set.Pages))
	return nil
}

func dumpLayout(w io.Writer, asYAML bool) error {
	set, err := headlessPages()
	if err != nil {
		return err
	}
	report := layout.Describe(set.Pages)
	if asYAML {
		return layout.WriteYAML(w, report)
	}
	_, err = io.WriteString(w, layout.Render(report))
	return err
}
