package model

import (
	"path/filepath"
	"strings"
)

// FileType represents the base format of a source file
type FileType int

const (
	// FileTypeCSV represents CSV file type. Unknown extensions are read as CSV.
	FileTypeCSV FileType = iota
	// FileTypeTSV represents TSV file type
	FileTypeTSV
	// FileTypeXLSX represents Excel XLSX file type
	FileTypeXLSX
	// FileTypeParquet represents Parquet file type
	FileTypeParquet
)

// File extensions
const (
	// ExtCSV is the CSV file extension
	ExtCSV = ".csv"
	// ExtTSV is the TSV file extension
	ExtTSV = ".tsv"
	// ExtXLSX is the Excel XLSX file extension
	ExtXLSX = ".xlsx"
	// ExtParquet is the Parquet file extension
	ExtParquet = ".parquet"
	// ExtGZ is the gzip compression extension
	ExtGZ = ".gz"
	// ExtBZ2 is the bzip2 compression extension
	ExtBZ2 = ".bz2"
	// ExtXZ is the xz compression extension
	ExtXZ = ".xz"
	// ExtZSTD is the zstd compression extension
	ExtZSTD = ".zst"
)

// String returns the string representation of FileType
func (ft FileType) String() string {
	switch ft {
	case FileTypeCSV:
		return "CSV"
	case FileTypeTSV:
		return "TSV"
	case FileTypeXLSX:
		return "XLSX"
	case FileTypeParquet:
		return "Parquet"
	default:
		return "CSV"
	}
}

// IsDelimited reports whether the format is line-oriented delimited text.
func (ft FileType) IsDelimited() bool {
	return ft == FileTypeCSV || ft == FileTypeTSV
}

// Delimiter returns the field delimiter of a delimited format.
func (ft FileType) Delimiter() rune {
	if ft == FileTypeTSV {
		return '\t'
	}
	return ','
}

// CompressionType represents the compression type
type CompressionType int

const (
	// CompressionNone represents no compression
	CompressionNone CompressionType = iota
	// CompressionGZ represents gzip compression
	CompressionGZ
	// CompressionBZ2 represents bzip2 compression
	CompressionBZ2
	// CompressionXZ represents xz compression
	CompressionXZ
	// CompressionZSTD represents zstd compression
	CompressionZSTD
)

// String returns the string representation of CompressionType
func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGZ:
		return "gz"
	case CompressionBZ2:
		return "bz2"
	case CompressionXZ:
		return "xz"
	case CompressionZSTD:
		return "zstd"
	default:
		return "none"
	}
}

// Extension returns the file extension for the compression type
func (c CompressionType) Extension() string {
	switch c {
	case CompressionNone:
		return ""
	case CompressionGZ:
		return ExtGZ
	case CompressionBZ2:
		return ExtBZ2
	case CompressionXZ:
		return ExtXZ
	case CompressionZSTD:
		return ExtZSTD
	default:
		return ""
	}
}

// DetectCompressionType detects the compression type from a file path
func DetectCompressionType(path string) CompressionType {
	p := strings.ToLower(path)
	switch {
	case strings.HasSuffix(p, ExtGZ):
		return CompressionGZ
	case strings.HasSuffix(p, ExtBZ2):
		return CompressionBZ2
	case strings.HasSuffix(p, ExtXZ):
		return CompressionXZ
	case strings.HasSuffix(p, ExtZSTD):
		return CompressionZSTD
	default:
		return CompressionNone
	}
}

// TrimCompressionExtension removes the compression extension from a file path if present
func TrimCompressionExtension(path string) string {
	ext := DetectCompressionType(path).Extension()
	if ext == "" {
		return path
	}
	return path[:len(path)-len(ext)]
}

// DetectFileType detects the base file type from the extension left after
// removing any compression extension.
func DetectFileType(path string) FileType {
	switch strings.ToLower(filepath.Ext(TrimCompressionExtension(path))) {
	case ExtTSV:
		return FileTypeTSV
	case ExtXLSX:
		return FileTypeXLSX
	case ExtParquet:
		return FileTypeParquet
	default:
		return FileTypeCSV
	}
}
