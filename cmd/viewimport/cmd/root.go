package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neuronlabs/viewimport/config"
	"github.com/neuronlabs/viewimport/log"

	// registered store drivers.
	_ "github.com/neuronlabs/viewimport/repository/memory"
	_ "github.com/neuronlabs/viewimport/repository/postgres"
)

// NewRootCmd creates the base command with all its sub commands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "viewimport",
		Short:         "Imports the repository view documents.",
		Long:          `It imports the xml repository view documents into the node store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to the configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "logging level. Possible values: debug3, debug2, debug, info, warning, error, critical")

	rootCmd.AddCommand(newImportCmd(), newDriversCmd())
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration file set with the 'config' flag or the
// default configuration, and sets up the logger level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	var cfg *config.Config
	if path != "" {
		cfg, err = config.ReadConfigFile(path)
	} else {
		cfg, err = config.ReadDefaultConfig()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		if cfg.LogLevel, err = cmd.Flags().GetString("log-level"); err != nil {
			return nil, err
		}
	}
	if err = setupLogger(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(levelName string) error {
	if log.Logger() == nil {
		log.Default()
	}
	if levelName == "" {
		return nil
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return err
	}
	return log.SetLevel(level)
}
