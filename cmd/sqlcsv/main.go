// Command sqlcsv runs one SQL query against CSV, TSV, XLSX and Parquet files.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/fatih/color"

	"github.com/nao1215/sqlcsv/internal/cli"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(cli.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		_, _ = color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCodeForError(err))
	}
}
