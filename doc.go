// Package sqlcsv loads delimited files into a private in-memory SQLite
// database, runs one SQL query against them, and writes the result as
// delimited text.
//
// Each input file becomes one table named by its position on the command
// line: the first file is table1, the second table2, and so on. Every
// column is stored as TEXT, so values round-trip exactly as they appeared
// in the input.
//
// # Basic Usage
//
//	pipeline, err := sqlcsv.NewBuilder().
//	    AddPath("users.csv").
//	    AddPath("orders.csv").
//	    Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := pipeline.Run(ctx,
//	    "SELECT table1.name, table2.total FROM table1 JOIN table2 ON table1.id = table2.user_id",
//	    sqlcsv.NewStdoutSink(os.Stdout, ""))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Supported Inputs
//
//   - CSV (.csv and any unrecognised extension) and TSV (.tsv)
//   - Excel (.xlsx), first sheet only
//   - Parquet (.parquet)
//   - Any of the above compressed with gzip, bzip2, xz or zstandard
//
// # Errors
//
// Every error returned by Pipeline.Run wraps one of ErrEmptySchema,
// ErrMalformedRow, ErrStoreWriteFailed, ErrQueryFailed, ErrNoRows,
// ErrNonTextValue or ErrIOFailure. Use errors.Is to tell them apart.
//
// # SQL Syntax
//
// Queries are passed to SQLite verbatim, so the full SQLite dialect is
// available. See https://www.sqlite.org/lang.html
package sqlcsv
