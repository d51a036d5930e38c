package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nicolelily/hyper-files-inspector/internal/catalog"
	"github.com/nicolelily/hyper-files-inspector/internal/engine"
	"github.com/nicolelily/hyper-files-inspector/internal/output"
)

var (
	cfgFile      string
	outputPath   string
	formatName   string
	engineBinary string
	verbose      bool

	logger *zap.Logger
)

var RootCmd = &cobra.Command{
	Use:   "hyper-inspector",
	Short: "Inspect and export Tableau .hyper files",
	Long: `hyper-inspector launches the embedded Hyper engine, queries its
SQL catalog and reshapes the results into JSON. Nothing is ever written
to the files it inspects.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the CLI. Domain failures are printed as structured JSON
// with exit code 0 by the commands themselves; anything that escapes up
// to here is a critical error and exits 1.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		payload, _ := json.MarshalIndent(catalog.Fail(fmt.Errorf("critical error: %w", err)), "", "  ")
		fmt.Println(string(payload))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./hyper-inspector.yaml)")
	RootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "write result to file instead of stdout")
	RootCmd.PersistentFlags().StringVar(&formatName, "format", "json", "output format (json or human)")
	RootCmd.PersistentFlags().StringVar(&engineBinary, "engine-binary", "", "path to the hyperd binary")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	viper.BindPFlag("engine.binary", RootCmd.PersistentFlags().Lookup("engine-binary"))

	viper.SetDefault("engine.binary", "hyperd")
	viper.SetDefault("engine.start_timeout", "15s")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if ex, err := os.Executable(); err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("hyper-inspector")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("HYPER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func engineConfig() engine.Config {
	timeout, err := time.ParseDuration(viper.GetString("engine.start_timeout"))
	if err != nil {
		timeout = 0
	}
	return engine.Config{
		Binary:       viper.GetString("engine.binary"),
		StartTimeout: timeout,
	}
}

// writeResult renders a payload in the selected format and sends it to
// stdout or the --output file.
func writeResult(result any) error {
	formatter, err := output.NewFormatter(formatName)
	if err != nil {
		return err
	}
	rendered, err := formatter.Render(result)
	if err != nil {
		return err
	}
	return output.Write(rendered, outputPath)
}

// writeFailure emits the uniform failure payload. The command still exits
// 0: a structured failure is a produced result, not a crash.
func writeFailure(err error, path string) error {
	return writeResult(catalog.FailPath(err, path))
}
