package main

import (
	"fmt"
	"os"

	"github.com/jaidar2003/Mockachino/internal/api"
	"github.com/jaidar2003/Mockachino/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	baseURL    string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mockachino",
	Short: "Browse the mockachino users, persons and contacts collections",
	Long: `mockachino fetches the users, persons and contacts collections from a
mock REST backend and shows them in the terminal.

Run without arguments to start the interactive interface. The users table
page sorts and paginates the users list client-side.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive UI owns the terminal and logs to a file instead.
		if cmd == cmd.Root() {
			return nil
		}

		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTUI,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.mockachino/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Backend base URL (or set MOCKACHINO_BASE_URL env)")

	rootCmd.Flags().StringVar(&initialRoute, "route", "", "Initial page: users, users-table, persons, contacts")

	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(personsCmd)
	rootCmd.AddCommand(contactsCmd)
	rootCmd.AddCommand(usersTableCmd)
	rootCmd.AddCommand(fetchAllCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfigPath returns the --config path or the default location.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

// loadConfig loads and validates the effective config: file, then
// environment, then --base-url.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.API.BaseURL, api.WithTimeout(cfg.GetTimeout()))
}
