package sqlcsv

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nao1215/sqlcsv/domain/model"
)

// Sink is the destination of an encoded result set.
type Sink interface {
	// Delimiter returns the field delimiter the sink expects
	Delimiter() rune
	// Write delivers the complete encoded result
	Write(data []byte) error
}

// StdoutSink writes the result to a writer, preceded by an optional banner.
// The bytes after the banner are identical to what a FileSink would write
// for the same result.
type StdoutSink struct {
	w      io.Writer
	banner string
}

// NewStdoutSink creates a sink writing to w. banner may be empty.
func NewStdoutSink(w io.Writer, banner string) *StdoutSink {
	return &StdoutSink{w: w, banner: banner}
}

// Delimiter returns ','.
func (s *StdoutSink) Delimiter() rune {
	return csvDelimiter
}

// Write writes the banner and data.
func (s *StdoutSink) Write(data []byte) error {
	ec := newErrorContext("write output", "")
	if s.banner != "" {
		if _, err := io.WriteString(s.w, s.banner); err != nil {
			return ec.wrap(ErrIOFailure, err)
		}
	}
	if _, err := s.w.Write(data); err != nil {
		return ec.wrap(ErrIOFailure, err)
	}
	return nil
}

// FileSink writes the result to a file. The file appears complete or not
// at all: data goes to a temporary file in the same directory which is
// renamed over the target once fully written.
type FileSink struct {
	path    string
	options model.OutputOptions
}

// NewFileSink creates a sink for path. The format and compression follow
// the file name: "out.tsv.gz" is gzip-compressed tab-separated text.
func NewFileSink(path string) (*FileSink, error) {
	ec := newErrorContext("open output", path)
	opts := model.OutputOptionsFromPath(path)

	if err := newValidator().validateOutputPath(path); err != nil {
		return nil, ec.wrap(ErrIOFailure, err)
	}
	if opts.Compression == model.CompressionBZ2 {
		return nil, ec.wrap(ErrIOFailure, errBZ2WriteUnsupported)
	}
	return &FileSink{path: path, options: opts}, nil
}

// Path returns the target path.
func (s *FileSink) Path() string {
	return s.path
}

// Delimiter returns '\t' for .tsv targets and ',' otherwise.
func (s *FileSink) Delimiter() rune {
	return s.options.Format.Delimiter()
}

// Write compresses data if needed and replaces the target file atomically.
func (s *FileSink) Write(data []byte) (err error) {
	ec := newErrorContext("write output", s.path)

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return ec.wrap(ErrIOFailure, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	writer, closeWriter, err := newCompressionHandler(s.options.Compression).createWriter(tmp)
	if err != nil {
		return ec.wrap(ErrIOFailure, err)
	}
	if _, err = writer.Write(data); err != nil {
		return ec.wrap(ErrIOFailure, err)
	}
	if err = closeWriter(); err != nil {
		return ec.wrap(ErrIOFailure, fmt.Errorf("failed to finish compression: %w", err))
	}
	if err = tmp.Sync(); err != nil {
		return ec.wrap(ErrIOFailure, err)
	}
	if err = tmp.Close(); err != nil {
		return ec.wrap(ErrIOFailure, err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil { //nolint:gosec // result files are meant to be readable
		return ec.wrap(ErrIOFailure, err)
	}
	if err = os.Rename(tmpName, s.path); err != nil {
		return ec.wrap(ErrIOFailure, err)
	}
	return nil
}
