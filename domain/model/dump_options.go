package model

// OutputFormat represents the output file format
type OutputFormat int

const (
	// OutputFormatCSV represents CSV output format
	OutputFormatCSV OutputFormat = iota
	// OutputFormatTSV represents TSV output format
	OutputFormatTSV
)

// String returns the string representation of OutputFormat
func (f OutputFormat) String() string {
	switch f {
	case OutputFormatCSV:
		return "csv"
	case OutputFormatTSV:
		return "tsv"
	default:
		return "csv"
	}
}

// Delimiter returns the field delimiter of the format
func (f OutputFormat) Delimiter() rune {
	if f == OutputFormatTSV {
		return '\t'
	}
	return ','
}

// OutputOptions represents how a result set is written to a file.
type OutputOptions struct {
	// Format specifies the output file format
	Format OutputFormat
	// Compression specifies the compression type
	Compression CompressionType
}

// NewOutputOptions creates new OutputOptions with default values (CSV format, no compression)
func NewOutputOptions() OutputOptions {
	return OutputOptions{
		Format:      OutputFormatCSV,
		Compression: CompressionNone,
	}
}

// OutputOptionsFromPath derives the options from an output file name:
// a trailing compression extension selects the compression and a .tsv base
// extension selects tab-separated output.
func OutputOptionsFromPath(path string) OutputOptions {
	opts := NewOutputOptions().WithCompression(DetectCompressionType(path))
	if DetectFileType(path) == FileTypeTSV {
		opts = opts.WithFormat(OutputFormatTSV)
	}
	return opts
}

// WithFormat sets the output format
func (o OutputOptions) WithFormat(format OutputFormat) OutputOptions {
	o.Format = format
	return o
}

// WithCompression sets the compression type
func (o OutputOptions) WithCompression(compression CompressionType) OutputOptions {
	o.Compression = compression
	return o
}
