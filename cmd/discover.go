package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nicolelily/hyper-files-inspector/internal/discover"
)

var discoverCmd = &cobra.Command{
	Use:   "discover <directory>",
	Short: "Recursively find .hyper files under a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := discover.Walk(args[0])
		if err != nil {
			return writeFailure(err, "")
		}
		return writeResult(result)
	},
}

func init() {
	RootCmd.AddCommand(discoverCmd)
}
