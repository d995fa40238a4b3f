package sqlcsv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(input, []byte("a\n1\n"), 0o600))

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		p, err := NewBuilder().AddPath(input).Build(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{input}, p.Paths())
		assert.Equal(t, DefaultBatchSize, p.batchSize)
	})

	t.Run("paths keep order", func(t *testing.T) {
		t.Parallel()

		p, err := NewBuilder().AddPaths(input, input).AddPath(input).Build(context.Background())
		require.NoError(t, err)
		assert.Len(t, p.Paths(), 3)
	})

	t.Run("nil logger keeps default", func(t *testing.T) {
		t.Parallel()

		b := NewBuilder().WithLogger(nil)
		assert.NotNil(t, b.logger)
	})

	tests := []struct {
		name    string
		builder *Builder
		want    error
	}{
		{name: "no sources", builder: NewBuilder(), want: ErrIOFailure},
		{name: "missing source", builder: NewBuilder().AddPath(filepath.Join(dir, "missing.csv")), want: ErrIOFailure},
		{name: "directory source", builder: NewBuilder().AddPath(dir), want: ErrIOFailure},
		{name: "zero batch size", builder: NewBuilder().AddPath(input).WithBatchSize(0), want: ErrInvalidOption},
		{name: "bad pragma", builder: NewBuilder().AddPath(input).WithPragmas("a; b"), want: ErrInvalidOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.builder.Build(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewBuilder().AddPath(input).Build(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestValidator_DistinctOutput(t *testing.T) {
	t.Parallel()

	v := newValidator()
	assert.ErrorIs(t, v.validateDistinctOutput("a.csv", []string{"b.csv", "./a.csv"}), errOutputIsInput)
	assert.NoError(t, v.validateDistinctOutput("c.csv", []string{"a.csv", "b.csv"}))
}
