package intseries

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mhr3/streamvbyte"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomValues(rng *rand.Rand, n int) []uint32 {
	var values []uint32
	for range n {
		// Mix byte lengths so every StreamVByte code appears.
		switch rng.Intn(4) {
		case 0:
			values = append(values, uint32(rng.Intn(1<<8)))
		case 1:
			values = append(values, uint32(rng.Intn(1<<16)))
		case 2:
			values = append(values, uint32(rng.Intn(1<<24)))
		default:
			values = append(values, rng.Uint32())
		}
	}
	return values
}

func TestPackedUint32RoundTrip(t *testing.T) {
	var empty PackedUint32
	assert.Nil(t, empty.Values(nil))

	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{0, 1, 127, 128, 129, 1000} {
		values := randomValues(rng, n)

		var p PackedUint32
		p.Append(values...)
		assert.Equal(t, n, p.Len(), "n=%d", n)
		assert.Equal(t, values, p.Values(nil), "n=%d", n)
		for i, v := range values {
			if got := p.At(i); got != v {
				t.Fatalf("n=%d: At(%d) = %d, want %d", n, i, got, v)
			}
		}
	}
}

func TestPackedUint32AppendInPieces(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	values := randomValues(rng, 700)

	var whole, pieces PackedUint32
	whole.Append(values...)
	for rest := values; len(rest) > 0; {
		n := min(rng.Intn(200), len(rest))
		pieces.Append(rest[:n]...)
		rest = rest[n:]
	}
	assert.Equal(t, whole.Values(nil), pieces.Values(nil))
	assert.Equal(t, whole.Size(), pieces.Size())
}

func TestPackedUint32Size(t *testing.T) {
	var p PackedUint32
	small := make([]uint32, packedBlockLen)
	p.Append(small...)
	require.Len(t, p.blocks, 1)
	encoded := len(p.blocks[0])
	assert.Equal(t, encoded, p.Size())
	// Small values take one data byte plus a quarter control byte.
	assert.Less(t, encoded, 2*packedBlockLen)

	p.Append(1, 2)
	assert.Equal(t, encoded+8, p.Size())

	p.Reset()
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 0, p.Size())
	assert.Empty(t, p.Values(nil))
}

func TestPackedUint32AtPanics(t *testing.T) {
	var p PackedUint32
	p.Append(1, 2, 3)
	assert.Panics(t, func() { p.At(3) })
	assert.Panics(t, func() { p.At(-1) })
}

func TestPackedBlocksMatchStreamVByte(t *testing.T) {
	values := randomValues(rand.New(rand.NewSource(3)), packedBlockLen)
	var p PackedUint32
	p.Append(values...)
	require.Len(t, p.blocks, 1)
	assert.Equal(t, streamvbyte.EncodeUint32(values, nil), p.blocks[0])
}

func TestPackedInt32RoundTrip(t *testing.T) {
	values := []int32{0, -1, 1, math.MinInt32, math.MaxInt32, -64, 63, -65536}
	for i := range 300 {
		values = append(values, int32(i*7919)-1000000)
	}

	var p PackedInt32
	p.Append(values...)
	assert.Equal(t, len(values), p.Len())
	assert.Equal(t, values, p.Values(nil))
	assert.Equal(t, int32(math.MinInt32), p.At(3))
	assert.Equal(t, int32(-65536), p.At(7))

	p.Reset()
	assert.Zero(t, p.Len())
}

func TestZigzag(t *testing.T) {
	tests := []struct {
		in   int32
		want uint32
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{math.MaxInt32, math.MaxUint32 - 1},
		{math.MinInt32, math.MaxUint32},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, zigzagEncode32(tt.in), "encode %d", tt.in)
		assert.Equal(t, tt.in, zigzagDecode32(tt.want), "decode %d", tt.want)
	}
}

func TestBlockValue(t *testing.T) {
	values := randomValues(rand.New(rand.NewSource(8)), packedBlockLen)
	copy(values, []uint32{1, 300, 70000, 1 << 30, 5, 0, 256, math.MaxUint32})
	block := streamvbyte.EncodeUint32(values, nil)
	for i, v := range values {
		assert.Equal(t, v, blockValue(block, i), "index %d", i)
	}
}

func TestControlDataLen(t *testing.T) {
	assert.Equal(t, uint8(4), controlDataLen[0x00])
	assert.Equal(t, uint8(16), controlDataLen[0xff])
	// Codes 0, 1, 2, 3 from the low bits up.
	assert.Equal(t, uint8(1+2+3+4), controlDataLen[0b11_10_01_00])
}
