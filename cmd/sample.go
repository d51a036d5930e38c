package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nicolelily/hyper-files-inspector/internal/catalog"
	"github.com/nicolelily/hyper-files-inspector/internal/engine"
	"github.com/nicolelily/hyper-files-inspector/internal/sample"
)

var (
	extraCustomers int
	extraOrders    int
	sampleSeed     int64
)

var sampleCmd = &cobra.Command{
	Use:   "sample [path]",
	Short: "Create a sample .hyper file with known test data",
	Long: `sample creates a Hyper database with a SampleDB schema holding
Customers (5 rows) and Orders (8 rows), plus optional synthetic extras.
An existing file at the target path is replaced.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "sample-data.hyper"
		if len(args) == 1 {
			path = args[0]
		}
		if !strings.EqualFold(filepath.Ext(path), catalog.HyperExt) {
			return writeFailure(fmt.Errorf("%w: not a %s file: %s", catalog.ErrInvalidInput, catalog.HyperExt, path), "")
		}

		proc, err := engine.Start(engineConfig(), logger)
		if err != nil {
			return err
		}
		defer proc.Close()

		db, err := proc.Open(path, engine.CreateAndReplace)
		if err != nil {
			return writeFailure(&catalog.EngineError{Op: "create", Err: err}, path)
		}
		defer db.Close()

		opts := sample.Options{
			ExtraCustomers: extraCustomers,
			ExtraOrders:    extraOrders,
			Seed:           sampleSeed,
		}
		result, err := sample.Create(cmd.Context(), db, path, opts)
		if err != nil {
			return writeFailure(&catalog.EngineError{Op: "create", Err: err}, path)
		}
		return writeResult(result)
	},
}

func init() {
	sampleCmd.Flags().IntVar(&extraCustomers, "extra-customers", 0, "number of synthetic customers to add")
	sampleCmd.Flags().IntVar(&extraOrders, "extra-orders", 0, "number of synthetic orders to add")
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", 0, "seed for synthetic data")
	RootCmd.AddCommand(sampleCmd)
}
