package sqlcsv

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestStdoutSink(t *testing.T) {
	t.Parallel()

	t.Run("banner precedes data", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		sink := NewStdoutSink(&buf, "\nresults:\n\n")
		require.NoError(t, sink.Write([]byte("a,b\n1,2\n")))
		assert.Equal(t, "\nresults:\n\na,b\n1,2\n", buf.String())
		assert.Equal(t, ',', sink.Delimiter())
	})

	t.Run("no banner", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, NewStdoutSink(&buf, "").Write([]byte("a\n")))
		assert.Equal(t, "a\n", buf.String())
	})

	t.Run("write failure", func(t *testing.T) {
		t.Parallel()

		err := NewStdoutSink(failingWriter{}, "").Write([]byte("a\n"))
		assert.ErrorIs(t, err, ErrIOFailure)
	})
}

func TestFileSink(t *testing.T) {
	t.Parallel()

	data := []byte("a,b\n1,2\n")

	t.Run("plain file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.csv")
		sink, err := NewFileSink(path)
		require.NoError(t, err)
		assert.Equal(t, ',', sink.Delimiter())
		require.NoError(t, sink.Write(data))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, data, got)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, t.TempDir(), "out.csv", []byte("old content that is longer\n"))
		sink, err := NewFileSink(path)
		require.NoError(t, err)
		require.NoError(t, sink.Write(data))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("tsv target uses tab", func(t *testing.T) {
		t.Parallel()

		sink, err := NewFileSink(filepath.Join(t.TempDir(), "out.tsv"))
		require.NoError(t, err)
		assert.Equal(t, '\t', sink.Delimiter())
	})

	t.Run("gzip target", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.csv.gz")
		sink, err := NewFileSink(path)
		require.NoError(t, err)
		require.NoError(t, sink.Write(data))

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		zr, err := gzip.NewReader(f)
		require.NoError(t, err)
		got, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("zstd target", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.csv.zst")
		sink, err := NewFileSink(path)
		require.NoError(t, err)
		require.NoError(t, sink.Write(data))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		dec, err := zstd.NewReader(nil)
		require.NoError(t, err)
		defer dec.Close()
		got, err := dec.DecodeAll(raw, nil)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("bzip2 target is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewFileSink(filepath.Join(t.TempDir(), "out.csv.bz2"))
		assert.ErrorIs(t, err, ErrIOFailure)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := NewFileSink(filepath.Join(t.TempDir(), "missing", "out.csv"))
		assert.ErrorIs(t, err, ErrIOFailure)
	})

	t.Run("target is a directory", func(t *testing.T) {
		t.Parallel()

		_, err := NewFileSink(t.TempDir())
		assert.ErrorIs(t, err, ErrIOFailure)
	})

	t.Run("failed write leaves nothing behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.csv")
		sink, err := NewFileSink(path)
		require.NoError(t, err)

		// A non-empty directory at the target makes the final rename fail.
		require.NoError(t, os.MkdirAll(filepath.Join(path, "blocker"), 0o750))

		err = sink.Write(data)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIOFailure)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "out.csv", entries[0].Name())
		assert.True(t, entries[0].IsDir())
	})
}
