package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Video game store backend",
	Long: `Storefront keeps the customers, the catalog of video games, consoles
and accessories, and the orders placed against it.

Use "serve" to run the HTTP API and "migrate" to create or update the
database schema.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "directory holding config.yaml")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
