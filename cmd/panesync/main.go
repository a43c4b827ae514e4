package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/panesync/internal/config"
	"github.com/jask/panesync/internal/journal"
	"github.com/jask/panesync/internal/logging"
	"github.com/jask/panesync/internal/page"
	"github.com/jask/panesync/internal/state"
	"github.com/jask/panesync/internal/tui"
)

var version = "dev"

var (
	configPath string
	cfg        config.Config
	logger     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "panesync",
	Short: "A header and two sibling containers sharing one store",
	Long: `panesync draws a page with a header and two sibling containers.
Every view reads and writes one shared state tree through a single store;
each view's private counter is mirrored into shared state on every change.

Run without arguments to start the interactive page.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			if err := os.Setenv("PANESYNC_CONFIG", configPath); err != nil {
				return err
			}
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		logger, err = logging.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runInteractive,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "panesync", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/panesync/config.toml)")
	rootCmd.AddCommand(renderCmd, keysCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInteractive(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	j, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	defer j.Close()

	store := state.NewStore()
	store.Subscribe(logging.DispatchLogger(logger))
	p := page.New(store)
	defer p.Close()

	session := journal.NewSession()
	logger.Info("session start", zap.String("session", session), zap.String("journal", cfg.Journal.Path))

	app, err := tui.New(ctx, p, tui.Options{Config: cfg, Journal: j, Session: session, Logger: logger})
	if err != nil {
		return fmt.Errorf("keybindings: %w", err)
	}

	prog := tea.NewProgram(app, tea.WithAltScreen())
	config.Watch(func(c config.Config) {
		logger.Info("config reloaded")
		prog.Send(tui.ConfigMsg(c))
	}, func(err error) {
		logger.Warn("config reload failed", zap.Error(err))
	})

	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	logger.Info("session end", zap.String("session", session))
	return nil
}
