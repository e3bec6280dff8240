package cli

import (
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
	Use:     "proposer",
	Version: Version,
	Short:   "Turn project requirements into structured business proposals",
	Long: `Proposer turns free-form project requirements into structured business proposals.
It helps consultancies and freelancers answer:
1. What features does this project need?
2. How long will it take with this team?
3. What does the client-facing proposal look like?`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&projectPath, "project", "", "Path to the project workspace (defaults to the current directory)")
}
