package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/citystreamlabs/silverpipe/pkg/config"
	csvdest "github.com/citystreamlabs/silverpipe/pkg/connector/destinations/csv"
	csvsrc "github.com/citystreamlabs/silverpipe/pkg/connector/sources/csv"
	pkgerrors "github.com/citystreamlabs/silverpipe/pkg/errors"
	"github.com/citystreamlabs/silverpipe/pkg/logger"
	"github.com/citystreamlabs/silverpipe/pkg/pipeline"
	"github.com/citystreamlabs/silverpipe/pkg/schema"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	root := &cobra.Command{
		Use:   "silverpipe",
		Short: "silverpipe - raw taxi trips to silver-layer CSV",
		Long: `silverpipe is a single-pass batch transformation pipeline. It reads a raw
taxi trip CSV, normalizes column names, coerces types, filters invalid rows,
recomputes duration fields, de-duplicates on a composite key, and writes the
validated silver-layer CSV plus a run summary.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("silverpipe v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	var configFile string
	flags := &config.JobConfig{}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the raw-to-silver pipeline",
		Long: `Run the raw-to-silver pipeline over one input CSV.

Example:
  silverpipe run --input Taxi_Set.csv --outdir step2_silver`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, configFile, flags)
			if err != nil {
				return err
			}
			return runJob(cfg)
		},
	}

	runCmd.Flags().StringVarP(&flags.Input, "input", "i", config.DefaultInput, "Path to the raw taxi CSV")
	runCmd.Flags().StringVarP(&flags.OutputDir, "outdir", "o", config.DefaultOutputDir, "Output directory for the silver artifact")
	runCmd.Flags().StringVar(&flags.OutputFile, "outfile", config.DefaultOutputFile, "Output file name inside the output directory")
	runCmd.Flags().StringVar(&configFile, "config", "", "Path to a YAML job configuration file (optional)")
	runCmd.Flags().StringVar(&flags.LogLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&flags.SummaryJSON, "summary-json", "", "Also write the run summary as JSON to this path (optional)")

	root.AddCommand(runCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfig merges an optional YAML job file with command line flags.
// Flags the user set explicitly win over file values.
func resolveConfig(cmd *cobra.Command, configFile string, flags *config.JobConfig) (*config.JobConfig, error) {
	cfg := config.NewJobConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("input") {
		cfg.Input = flags.Input
	}
	if cmd.Flags().Changed("outdir") {
		cfg.OutputDir = flags.OutputDir
	}
	if cmd.Flags().Changed("outfile") {
		cfg.OutputFile = flags.OutputFile
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
	if cmd.Flags().Changed("summary-json") {
		cfg.SummaryJSON = flags.SummaryJSON
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runJob executes one raw-to-silver run: read, transform, write, report.
func runJob(cfg *config.JobConfig) error {
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Encoding: "console"}); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	log := logger.With(
		zap.String("component", "silverpipe-cli"),
		zap.String("input", cfg.Input),
		zap.String("outdir", cfg.OutputDir))

	ctx := context.Background()

	source := csvsrc.NewSource(cfg.Input)
	if err := source.Open(ctx); err != nil {
		return err
	}
	defer func() {
		if err := source.Close(); err != nil {
			log.Warn("failed to close source", zap.Error(err))
		}
	}()

	log.Info("reading input table")
	raw, err := source.ReadTable(ctx)
	if err != nil {
		return err
	}

	silver, summary, err := pipeline.New(schema.Default(), log).Run(ctx, raw)
	if err != nil {
		return err
	}

	dest := csvdest.NewDestination(cfg.OutputDir, cfg.OutputFile)
	if err := dest.Initialize(ctx); err != nil {
		return err
	}
	defer func() {
		if err := dest.Close(); err != nil {
			log.Warn("failed to close destination", zap.Error(err))
		}
	}()

	if err := dest.WriteTable(ctx, silver); err != nil {
		return err
	}

	outPath, err := filepath.Abs(dest.Path())
	if err != nil {
		outPath = dest.Path()
	}
	summary.OutputPath = outPath

	if cfg.SummaryJSON != "" {
		data, err := summary.JSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.SummaryJSON, data, 0o644); err != nil {
			return pkgerrors.Wrap(err, pkgerrors.ErrorTypeFile, "failed to write summary JSON").
				WithDetail("path", cfg.SummaryJSON)
		}
	}

	fmt.Println(summary.String())
	return nil
}
