// Package cli implements the sqlcsv command line.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nao1215/sqlcsv"
	"github.com/nao1215/sqlcsv/internal/logging"
	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "dev"

type queryFlagValues struct {
	inputs     []string
	output     string
	noHeader   bool
	noBanner   bool
	batchSize  int
	pragmas    []string
	configPath string
	logLevel   string
	verbose    bool
}

// NewRootCommand builds the sqlcsv command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&queryFlagValues{})
}

func newRootCommand(flags *queryFlagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sqlcsv -f <file> [-f <file>...] <sql> [output]",
		Short: "Run SQL against CSV files",
		Long: `sqlcsv loads each input file into a private in-memory SQLite database and
runs one query against them. The first -f file is table1, the second table2,
and so on. Every column is TEXT.

The result is written as CSV to standard output, or to the output file when
one is given. A .tsv output name writes tab-separated text; a .gz, .xz or
.zst suffix compresses the file.

Inputs may be CSV, TSV, XLSX (first sheet) or Parquet, optionally compressed
with gzip, bzip2, xz or zstandard.

Settings are read from sqlcsv.yaml (or --config), then SQLCSV_* environment
variables (a .env file is honoured), then flags.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments, flags or config)
  3  - Panic or unexpected system error
  10 - Input has no usable header
  11 - Malformed input row
  12 - Store write failed
  13 - Query failed
  14 - Query returned no rows
  15 - Result value is not text
  16 - I/O failure`,
		Example: `  sqlcsv -f people.csv "select * from table1 where age > 30"
  sqlcsv -f users.csv -f orders.csv "select table1.name, table2.total from table1 join table2 on table1.id = table2.user_id" out.csv
  sqlcsv --no-header -f raw.tsv.gz "select col2 from table1" -o out.tsv`,
		Version:       Version,
		Args:          usageArgs(cobra.RangeArgs(1, 2)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, flags)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	f := cmd.Flags()
	f.StringArrayVarP(&flags.inputs, "fileinput", "f", nil,
		"Input file; repeat for more tables (first is table1)")
	f.StringVarP(&flags.output, "output", "o", "",
		"Write the result to this file instead of standard output")
	f.BoolVar(&flags.noHeader, "no-header", false,
		"Treat the first row as data and name columns col1..colN")
	f.BoolVar(&flags.noBanner, "no-banner", false,
		"Do not print the results banner before standard output")
	f.IntVar(&flags.batchSize, "batch-size", sqlcsv.DefaultBatchSize,
		"Rows per INSERT statement")
	f.StringArrayVar(&flags.pragmas, "pragma", nil,
		"SQLite pragma applied to the store, e.g. \"cache_size = -64000\" (repeatable)")
	f.StringVar(&flags.configPath, "config", "",
		"Config file (default ./sqlcsv.yaml when present)")
	f.StringVar(&flags.logLevel, "log-level", "",
		"Log level: debug, info, warn, error")
	f.BoolVarP(&flags.verbose, "verbose", "v", false,
		"Enable debug logging")

	return cmd
}

// usageArgs marks positional argument errors as usage errors
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

func runQuery(cmd *cobra.Command, args []string, flags *queryFlagValues) error {
	query := args[0]
	output := flags.output
	if len(args) == 2 {
		if output != "" {
			return fmt.Errorf("%w: output given both as argument and with --output", ErrUsage)
		}
		output = args[1]
	}
	if len(flags.inputs) == 0 {
		return fmt.Errorf("%w: at least one --fileinput is required", ErrUsage)
	}

	_ = godotenv.Load()

	cfg, err := resolveSettings(cmd, flags, os.LookupEnv)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Setup(logging.Options{
		Level:  cfg.LogLevel,
		SeqURL: cfg.SeqURL,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	builder := sqlcsv.NewBuilder().
		AddPaths(flags.inputs...).
		WithBatchSize(cfg.BatchSize).
		WithPragmas(cfg.Pragmas...).
		WithLogger(logger)
	if cfg.NoHeader {
		builder = builder.WithoutHeader()
	}

	pipeline, err := builder.Build(ctx)
	if err != nil {
		return err
	}

	sink, err := newSink(cmd, output, flags.noBanner)
	if err != nil {
		return err
	}

	report, err := pipeline.Run(ctx, query, sink)
	if err != nil {
		return err
	}

	logger.Info("finished",
		"tables", len(report.Tables),
		"result_rows", report.ResultRows,
		"output", outputName(output))
	return nil
}

// newSink picks standard output or a file
func newSink(cmd *cobra.Command, output string, noBanner bool) (sqlcsv.Sink, error) {
	if output == "" {
		out := cmd.OutOrStdout()
		return sqlcsv.NewStdoutSink(out, resultBanner(out, noBanner)), nil
	}
	return sqlcsv.NewFileSink(output)
}

func outputName(output string) string {
	if output == "" {
		return "stdout"
	}
	return output
}
