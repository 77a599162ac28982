package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vinyl-library/vinyl-library-api/internal/config"
	"github.com/vinyl-library/vinyl-library-api/internal/logger"
)

// Cfg is the global variable that will contain the loaded configuration
// It will be accessible to all Cobra commands throughout the application
var Cfg *config.Config

// Log is the application logger built from Cfg.Log
var Log *zap.Logger

// configFile holds the value of the --config flag
var configFile string

// RootCmd is the base command for the CLI application
// All other commands (run-server, add-artist, stats, init-db) are added as subcommands
var RootCmd = &cobra.Command{
	Use:   "vinyl-library",
	Short: "A vinyl library catalog server",
	Long: `A vinyl library backend that stores artists and vinyl records,
serves cover images and checks that every cover file is present.`,
	SilenceUsage: true,
}

// Execute is the main entry point for the Cobra application
// It is called from 'main.go' and handles command execution and error handling
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
	if Log != nil {
		_ = Log.Sync()
	}
}

func init() {
	// Configuration is loaded before any command runs.
	// Subcommands register themselves via their own init() functions.
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is "+config.DefaultConfigPath+"/config.yaml)")
}

// initConfig loads the configuration and builds the logger.
// An invalid configuration aborts the command.
func initConfig() {
	var err error

	Cfg, err = config.LoadConfig(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	Log, err = logger.New(Cfg.Log.Level, Cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building logger: %v\n", err)
		os.Exit(1)
	}
}
