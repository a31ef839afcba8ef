package root

import (
	"github.com/spf13/cobra"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:   "courseapi",
	Short: "Course API CLI",
	Long:  "Command line interface for interacting with the Course REST API",
}

// GetRoot returns the root command for main to execute; subcommand
// packages register themselves against RootCmd in their init.
func GetRoot() *cobra.Command {
	return RootCmd
}
