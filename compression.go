package sqlcsv

import (
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/nao1215/sqlcsv/domain/model"
	"github.com/ulikunitz/xz"
)

var (
	// errBZ2WriteUnsupported is returned when bzip2 output is requested
	errBZ2WriteUnsupported = errors.New("bzip2 compression is not supported for writing")
	// errUnknownCompression is returned for a CompressionType with no codec
	errUnknownCompression = errors.New("unknown compression type")
)

// compressionHandler wraps readers and writers for one compression type.
// The returned close function must be called once the stream is done;
// for writers it flushes the trailer.
type compressionHandler interface {
	createReader(reader io.Reader) (io.Reader, func() error, error)
	createWriter(writer io.Writer) (io.Writer, func() error, error)
}

// codec is the compressionHandler for one model.CompressionType
type codec struct {
	compression model.CompressionType
}

func newCompressionHandler(compression model.CompressionType) compressionHandler {
	return codec{compression: compression}
}

func noopClose() error { return nil }

func (c codec) createReader(reader io.Reader) (io.Reader, func() error, error) {
	switch c.compression {
	case model.CompressionNone:
		return reader, noopClose, nil
	case model.CompressionGZ:
		zr, err := gzip.NewReader(reader)
		if err != nil {
			return nil, nil, c.streamError("read", err)
		}
		return zr, zr.Close, nil
	case model.CompressionBZ2:
		return bzip2.NewReader(reader), noopClose, nil
	case model.CompressionXZ:
		zr, err := xz.NewReader(reader)
		if err != nil {
			return nil, nil, c.streamError("read", err)
		}
		return zr, noopClose, nil
	case model.CompressionZSTD:
		zr, err := zstd.NewReader(reader)
		if err != nil {
			return nil, nil, c.streamError("read", err)
		}
		return zr, func() error { zr.Close(); return nil }, nil
	}
	return nil, nil, fmt.Errorf("%w: %d", errUnknownCompression, c.compression)
}

func (c codec) createWriter(writer io.Writer) (io.Writer, func() error, error) {
	switch c.compression {
	case model.CompressionNone:
		return writer, noopClose, nil
	case model.CompressionGZ:
		zw := gzip.NewWriter(writer)
		return zw, zw.Close, nil
	case model.CompressionBZ2:
		return nil, nil, errBZ2WriteUnsupported
	case model.CompressionXZ:
		zw, err := xz.NewWriter(writer)
		if err != nil {
			return nil, nil, c.streamError("write", err)
		}
		return zw, zw.Close, nil
	case model.CompressionZSTD:
		zw, err := zstd.NewWriter(writer)
		if err != nil {
			return nil, nil, c.streamError("write", err)
		}
		return zw, zw.Close, nil
	}
	return nil, nil, fmt.Errorf("%w: %d", errUnknownCompression, c.compression)
}

// streamError names the codec and direction that failed
func (c codec) streamError(direction string, err error) error {
	return fmt.Errorf("cannot %s %s stream: %w", direction, c.compression, err)
}

// openSource opens path for reading, decompressing according to its
// extension. The returned close function releases the decoder and the file.
func openSource(path string) (io.Reader, func() error, error) {
	file, err := os.Open(path) //nolint:gosec // inputs are chosen by the user
	if err != nil {
		return nil, nil, err
	}

	reader, closeDecoder, err := newCompressionHandler(model.DetectCompressionType(path)).createReader(file)
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}

	return reader, func() error {
		return errors.Join(closeDecoder(), file.Close())
	}, nil
}
