// Package cli implements the compass command line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var projectPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "compass",
	Version: Version,
	Short:   "A product direction system of record",
	Long: `Compass is a system of record for product direction.
It helps product teams answer:
1. Which ideas are worth building?
2. What goes into the next release?
3. How is the current sprint tracking?`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

// currentActor resolves the acting user for audit attribution.
func currentActor() string {
	if actor := os.Getenv("COMPASS_ACTOR"); actor != "" {
		return actor
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "unknown"
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&projectPath, "project", "p", "", "Path to the workspace root (defaults to current directory)")
}
