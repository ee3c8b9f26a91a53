package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"relision/internal/config"
	"relision/internal/logging"
	"relision/internal/platform"
	"relision/internal/repl"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

var (
	// Global flags
	verbose   bool
	configDir string
	noBanner  bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "relision",
	Short: "relision - the relision term rewriting library",
	Long: `relision is a term rewriting substrate.

Terms are immutable, typed, located values built by a term factory and
printed in ELI notation.

Run without arguments to start the interactive REPL. Lines starting with
":" are commands and may be abbreviated to any unique prefix.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runREPL,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default: platform location)")
	rootCmd.Flags().BoolVar(&noBanner, "no-banner", false, "Do not print the startup banner")

	configCmd.Flags().BoolVar(&saveConfig, "save", false, "Write the effective configuration to config.yaml")
	factsCmd.Flags().BoolVar(&rawFacts, "datalog", false, "Print the exported facts instead of type chains")

	// Add commands to root
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(platformCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(termsCmd)
	rootCmd.AddCommand(factsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfigDir honours --config-dir before the platform lookup.
func resolveConfigDir() (string, error) {
	if configDir != "" {
		if err := platform.EnsureDir(configDir); err != nil {
			return "", err
		}
		return configDir, nil
	}
	return platform.ConfigDir()
}

// loadEnvironment resolves the config directory, loads config.yaml and
// starts category logging.
func loadEnvironment() (string, *config.Config, error) {
	dir, err := resolveConfigDir()
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve configuration directory: %w", err)
	}

	cfg, err := config.Load(config.Path(dir))
	if err != nil {
		return "", nil, err
	}
	if err := cfg.Validate(); err != nil {
		return "", nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logging.Initialize(dir, cfg.Logging.ToLogging()); err != nil {
		logger.Warn("category logging disabled", zap.Error(err))
	}
	logging.Boot("relision %s on %s, config dir %s", version, platform.Name(), dir)
	return dir, cfg, nil
}

// runREPL starts the interactive session.
func runREPL(cmd *cobra.Command, args []string) error {
	dir, cfg, err := loadEnvironment()
	if err != nil {
		logging.BootError("startup failed: %v", err)
		return err
	}

	if !noBanner {
		fmt.Print(repl.Banner(version, cfg.REPL.Color))
	}
	fmt.Printf("Running on %s.\n", platform.Name())
	fmt.Printf("Configuration stored at: %s.\n", dir)

	history := repl.NewHistory(cfg.REPL.MaxHistory)
	session := repl.NewSession(repl.Options{
		History:     history,
		Reader:      repl.NewInputReader(os.Stdin, os.Stdout, history),
		Out:         os.Stdout,
		Prompt:      cfg.REPL.Prompt,
		HistoryPath: cfg.HistoryPath(dir),
		Color:       cfg.REPL.Color,
	})
	logger.Debug("Starting REPL",
		zap.String("session", session.ID()),
		zap.String("history", cfg.HistoryPath(dir)))

	if err := session.Run(cmd.Context()); err != nil {
		return fmt.Errorf("REPL failed: %w", err)
	}
	return nil
}
