package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "codefmt",
		Short:        "codefmt",
		SilenceUsage: true,
		Long:         `Opinionated source formatter for the internal Swift-like language. See README.md.`,
	}

	configPath string
	verbose    bool

	log = logrus.New()
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "format.yaml", "path to style config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each file as it is processed")
	return rootCmd.Execute()
}

func init() {
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}
