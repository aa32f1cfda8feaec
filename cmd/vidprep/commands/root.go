// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Provides serve, mcp, and version subcommands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

const banner = `
██╗   ██╗██╗██████╗ ██████╗ ██████╗ ███████╗██████╗
██║   ██║██║██╔══██╗██╔══██╗██╔══██╗██╔════╝██╔══██╗
██║   ██║██║██║  ██║██████╔╝██████╔╝█████╗  ██████╔╝
╚██╗ ██╔╝██║██║  ██║██╔═══╝ ██╔══██╗██╔══╝  ██╔═══╝
 ╚████╔╝ ██║██████╔╝██║     ██║  ██║███████╗██║
  ╚═══╝  ╚═╝╚═════╝ ╚═╝     ╚═╝  ╚═╝╚══════╝╚═╝
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vidprep",
		Short: "Video generation preprocessing pipeline",
		Long: banner + `
vidprep analyzes source images with a hosted vision model, routes them
through a content-safety gate, and produces sequenced, enhanced prompts
for downstream video generation - with per-call cost accounting.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
