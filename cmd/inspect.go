package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nicolelily/hyper-files-inspector/internal/catalog"
	"github.com/nicolelily/hyper-files-inspector/internal/engine"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <path>",
	Short: "Show schemas, tables, columns and sample rows of a .hyper file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		info, err := catalog.ValidateHyperPath(path)
		if err != nil {
			return writeFailure(err, "")
		}

		proc, err := engine.Start(engineConfig(), logger)
		if err != nil {
			return err
		}
		defer proc.Close()

		db, err := proc.Open(path, engine.CreateNone)
		if err != nil {
			return writeFailure(&catalog.EngineError{Op: "connect", Err: err}, path)
		}
		defer db.Close()

		result, err := catalog.NewInspector(db, logger).Inspect(cmd.Context(), path, info.Size())
		if err != nil {
			return writeFailure(&catalog.EngineError{Op: "inspect", Err: err}, path)
		}
		return writeResult(result)
	},
}

func init() {
	RootCmd.AddCommand(inspectCmd)
}
