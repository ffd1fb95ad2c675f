// Package main is the inlaw command: the terminal legal assistant and a few
// maintenance subcommands around its persistent store.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inlaw/internal/config"
	"inlaw/internal/logging"
	"inlaw/internal/orchestrator"
	"inlaw/internal/state"
	"inlaw/internal/store"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	storeDriver string
	storePath   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "inlaw",
	Short: "inlaw - legal research assistant for the terminal",
	Long: `inlaw is a chat-style legal assistant with document templates,
case search and document analysis.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if storeDriver != "" {
			loaded.Store.Driver = storeDriver
		}
		if storePath != "" {
			loaded.Store.Path = storePath
		}
		if verbose {
			loaded.Logging.DebugMode = true
			loaded.Logging.Level = "debug"
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		if err := logging.Initialize(cfg.Logging.Options()); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		logging.Boot("inlaw starting: command=%s driver=%s", cmd.Name(), cfg.Store.Driver)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: .inlaw/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&storeDriver, "store", "", "Store driver: memory, file, sqlite or sqlite3")
	rootCmd.PersistentFlags().StringVar(&storePath, "store-path", "", "Store file path")

	askCmd.Flags().BoolVar(&askRaw, "raw", false, "Print the reply without markdown rendering")
	signOutCmd.Flags().BoolVarP(&signOutYes, "yes", "y", false, "Do not ask for confirmation")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(signOutCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore opens the configured store backend.
func openStore() (store.Store, error) {
	s, err := store.Open(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}
	return s, nil
}

// newOrchestrator wires an orchestrator to kv using the configured timing
// and default theme.
func newOrchestrator(kv store.KV, queue *orchestrator.TaskQueue, r orchestrator.Renderer) *orchestrator.Orchestrator {
	return orchestrator.New(orchestrator.Options{
		Store:     kv,
		Scheduler: queue,
		Renderer:  r,
		Delays:    cfg.Timing.Delays(),
		Theme:     state.Theme(cfg.UI.Theme),
	})
}
