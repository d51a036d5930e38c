package cmd

import (
	"os"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"

	"github.com/nicolelily/hyper-files-inspector/internal/catalog"
	"github.com/nicolelily/hyper-files-inspector/internal/engine"
	"github.com/nicolelily/hyper-files-inspector/internal/export"
)

var (
	sampleOnly   bool
	maxRows      int
	showProgress bool
)

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export table data from a .hyper file as JSON",
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

		exporter := export.NewExporter(db, logger)
		if showProgress {
			progress := uiprogress.New()
			progress.Out = os.Stderr // stdout carries the JSON result
			progress.Start()
			defer progress.Stop()

			var bar *uiprogress.Bar
			exporter.OnTable = func(fullName string, index, total int) {
				if bar == nil {
					bar = progress.AddBar(total).AppendCompleted()
				}
				bar.Incr()
			}
		}

		mode := export.Mode{SampleOnly: sampleOnly, MaxRows: maxRows}
		result, err := exporter.Export(cmd.Context(), path, info.Size(), mode)
		if err != nil {
			return writeFailure(&catalog.EngineError{Op: "export", Err: err}, path)
		}
		return writeResult(result)
	},
}

func init() {
	exportCmd.Flags().BoolVar(&sampleOnly, "sample-only", false, "export only the first 5 rows per table")
	exportCmd.Flags().IntVar(&maxRows, "max-rows", 0, "maximum number of rows to export per table (0 = all)")
	exportCmd.Flags().BoolVar(&showProgress, "progress", false, "show a per-table progress bar")
	RootCmd.AddCommand(exportCmd)
}
