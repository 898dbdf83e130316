package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/verbmotion/internal/config"
	"github.com/kamusis/verbmotion/internal/logging"
)

var (
	flagDebug  bool
	flagConfig string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:          "verbmotion",
	Short:        "verbmotion — resolve action phrases into motion plans",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `verbmotion maps a short phrase like "run quickly" to a motion template
and evaluates it against a skeleton. Templates, the verb hash and the
anchor embeddings live under ~/.verbmotion/.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level := "warn"
		if cfg, err := loadConfig(); err == nil {
			level = cfg.LogLevel
		}
		if flagDebug {
			level = "debug"
		}
		l, err := logging.New(level)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug information to stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.verbmotion/verbmotion.yaml)")
}

// loadConfig reads --config or the default config file.
func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		return config.LoadFile(flagConfig)
	}
	return config.Load()
}

// mustConfig is loadConfig with the hint every command prints on failure.
func mustConfig() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w\nRun 'verbmotion init' first.", err)
	}
	return cfg, nil
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
