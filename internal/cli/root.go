package cli

import (
	"context"

	"github.com/dshills/rbarchive/internal/ui"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitRuntimeError = 1
	ExitUsageError   = 2
)

var rootCmd = &cobra.Command{
	Use:   "rbarchive <revision>",
	Short: "Save Review Board patches to a directory",
	Long: `rbarchive mirrors the raw diffs of Review Board review requests into a
static file tree with an index.html per review request.

The revision is a single review request ID such as 1234, or an inclusive
range such as 1234..1300.`,
	Args: cobra.ExactArgs(1),
	RunE: runArchive,
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// Run executes the root command and returns an exit code.
func Run(ctx context.Context) int {
	exitCode = ExitSuccess
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print rbarchive version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printf("rbarchive version %s\n", version)
	},
}

func init() {
	addArchiveFlags(rootCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}
