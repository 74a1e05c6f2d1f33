package intseries

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrgy/parsing-int-series/internal/testgen"
)

func TestSplitChunks(t *testing.T) {
	seps := MustSeparators(",")
	data := []byte("123,45678,9,,0000000000,1")

	chunks := splitChunks(data, seps, 4)
	require.NotEmpty(t, chunks)
	assert.Equal(t, 0, chunks[0].start)
	assert.Equal(t, len(data), chunks[len(chunks)-1].end)
	for i, c := range chunks {
		assert.Less(t, c.start, c.end)
		if i > 0 {
			assert.Equal(t, chunks[i-1].end, c.start)
		}
		if i < len(chunks)-1 {
			assert.True(t, seps.Contains(data[c.end-1]), "chunk %d ends with %q", i, data[c.end-1])
			assert.GreaterOrEqual(t, c.end-c.start, 4)
		}
	}

	assert.Equal(t, []chunk{{0, len(data)}}, splitChunks(data, seps, 1000))
	assert.Empty(t, splitChunks(nil, seps, 16))
	assert.Equal(t, []chunk{{0, 10}}, splitChunks([]byte("1234567890"), seps, 2))
}

func TestDecodeParallelMatchesSequential(t *testing.T) {
	cfg := generatorConfigs["uniform"]
	seps := MustSeparators(cfg.Separators)
	rng := rand.New(rand.NewSource(21))
	unsigned := testgen.Unsigned(50000, cfg, rng)
	signed := testgen.Signed(50000, cfg, rng)

	wantU, err := ParseUnsigned(unsigned, seps)
	require.NoError(t, err)
	wantS, err := ParseSigned(signed, seps)
	require.NoError(t, err)

	for _, workers := range []int{1, 2, 8} {
		for _, size := range []int{16, 1000, 1 << 20} {
			gotU, err := decodeParallel[uint32](context.Background(), unsigned, seps, workers, size, AppendUnsigned)
			require.NoError(t, err)
			assert.Equal(t, wantU, gotU, "workers=%d size=%d", workers, size)

			gotS, err := decodeParallel[int32](context.Background(), signed, seps, workers, size, AppendSignedScalar)
			require.NoError(t, err)
			assert.Equal(t, wantS, gotS, "workers=%d size=%d", workers, size)
		}
	}

	gotU, err := ParseUnsignedParallel(context.Background(), unsigned, seps, 4)
	require.NoError(t, err)
	assert.Equal(t, wantU, gotU)
	gotS, err := ParseSignedParallel(context.Background(), signed, seps, 4)
	require.NoError(t, err)
	assert.Equal(t, wantS, gotS)
}

func TestDecodeParallelReportsFirstError(t *testing.T) {
	seps := MustSeparators(",")
	data := []byte(strings.Repeat("1234,", 1000))
	data[1503] = 'x'
	data[4002] = 'y'

	for _, workers := range []int{2, 4, 16} {
		got, err := decodeParallel[uint32](context.Background(), data, seps, workers, 64, AppendUnsigned)
		assert.Nil(t, got)

		var syntaxErr *SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
		assert.Equal(t, 1503, syntaxErr.Offset, "workers=%d", workers)
		assert.Equal(t, byte('x'), syntaxErr.Char)
	}

	signed := []byte(strings.Repeat("-12,", 1000))
	signed[2001] = '+'
	_, err := decodeParallel[int32](context.Background(), signed, seps, 4, 64, AppendSignedScalar)
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.ErrorIs(t, err, ErrInvalidSignPlacement)
	assert.Equal(t, 2001, syntaxErr.Offset)
}

func TestDecodeParallelCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := []byte(strings.Repeat("1,", 1000))
	for _, workers := range []int{1, 4} {
		got, err := decodeParallel[uint32](ctx, data, DefaultSeparators, workers, 32, AppendUnsigned)
		assert.Nil(t, got)
		assert.True(t, errors.Is(err, context.Canceled), "workers=%d: %v", workers, err)
	}
}
