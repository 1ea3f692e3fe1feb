package main

import (
	"os" // Exit codes

	"github.com/sirupsen/logrus" // Logging library
	"github.com/spf13/cobra"     // CLI commands
)

// rootCmd is the catapi entry point; subcommands register in init
var rootCmd = &cobra.Command{
	Use:           "catapi",
	Short:         "Cat and user CRUD backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("catapi failed")
		os.Exit(1)
	}
}
