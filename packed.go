package intseries

import (
	"fmt"

	"github.com/mhr3/streamvbyte"
)

// packedBlockLen is the number of values per StreamVByte block.
const packedBlockLen = 128

// controlDataLen maps a StreamVByte control byte to the number of data bytes
// of its four values; each 2-bit code holds a byte length minus one.
var controlDataLen [256]uint8

func init() {
	for c := range 256 {
		controlDataLen[c] = uint8(c&3 + c>>2&3 + c>>4&3 + c>>6 + 4)
	}
}

// PackedUint32 is an append-only store of decoded values. Full blocks of 128
// values are kept StreamVByte-encoded; the unfinished block stays plain.
// A PackedUint32 is not safe for concurrent mutation.
type PackedUint32 struct {
	blocks  [][]byte
	pending []uint32
	size    int
	// gen changes on Reset so readers drop cached blocks.
	gen uint64
}

// Append adds values in order.
func (p *PackedUint32) Append(values ...uint32) {
	if len(p.pending) > 0 {
		n := min(packedBlockLen-len(p.pending), len(values))
		p.pending = append(p.pending, values[:n]...)
		values = values[n:]
		if len(p.pending) < packedBlockLen {
			return
		}
		p.flush(p.pending)
		p.pending = p.pending[:0]
	}
	for len(values) >= packedBlockLen {
		p.flush(values[:packedBlockLen])
		values = values[packedBlockLen:]
	}
	p.pending = append(p.pending, values...)
}

func (p *PackedUint32) flush(block []uint32) {
	buf := make([]byte, streamvbyte.MaxEncodedLen(len(block)))
	data := streamvbyte.EncodeUint32(block, &streamvbyte.EncodeOptions[uint32]{
		Buffer: buf,
	})
	p.blocks = append(p.blocks, data)
	p.size += len(data)
}

// Len returns the number of stored values.
func (p *PackedUint32) Len() int {
	return len(p.blocks)*packedBlockLen + len(p.pending)
}

// Size returns the number of bytes used by the encoded blocks and the pending values.
func (p *PackedUint32) Size() int {
	return p.size + 4*len(p.pending)
}

// At returns the value at index i. It panics if i is out of range.
func (p *PackedUint32) At(i int) uint32 {
	if i < 0 || i >= p.Len() {
		panic(fmt.Sprintf("intseries: index %d out of range [0:%d]", i, p.Len()))
	}
	block := i / packedBlockLen
	if block == len(p.blocks) {
		return p.pending[i%packedBlockLen]
	}
	return blockValue(p.blocks[block], i%packedBlockLen)
}

// Values appends all stored values to dst.
func (p *PackedUint32) Values(dst []uint32) []uint32 {
	var scratch [packedBlockLen]uint32
	for b := range p.blocks {
		dst = append(dst, p.decodeBlock(b, scratch[:])...)
	}
	return append(dst, p.pending...)
}

// decodeBlock decodes block b into scratch, which must hold packedBlockLen values.
func (p *PackedUint32) decodeBlock(b int, scratch []uint32) []uint32 {
	return streamvbyte.DecodeUint32(p.blocks[b], packedBlockLen, &streamvbyte.DecodeOptions[uint32]{
		Buffer: scratch[:packedBlockLen],
	})
}

// Reset drops all values but keeps the pending buffer.
func (p *PackedUint32) Reset() {
	p.blocks = p.blocks[:0]
	p.pending = p.pending[:0]
	p.size = 0
	p.gen++
}

// PackedInt32 stores signed values zigzag-mapped in a PackedUint32, so small
// magnitudes of either sign take few bytes.
type PackedInt32 struct {
	u       PackedUint32
	scratch []uint32
}

// Append adds values in order.
func (p *PackedInt32) Append(values ...int32) {
	p.scratch = p.scratch[:0]
	for _, v := range values {
		p.scratch = append(p.scratch, zigzagEncode32(v))
	}
	p.u.Append(p.scratch...)
}

// Len returns the number of stored values.
func (p *PackedInt32) Len() int {
	return p.u.Len()
}

// Size returns the number of bytes used by the stored values.
func (p *PackedInt32) Size() int {
	return p.u.Size()
}

// At returns the value at index i. It panics if i is out of range.
func (p *PackedInt32) At(i int) int32 {
	return zigzagDecode32(p.u.At(i))
}

// Values appends all stored values to dst.
func (p *PackedInt32) Values(dst []int32) []int32 {
	for _, v := range p.u.Values(nil) {
		dst = append(dst, zigzagDecode32(v))
	}
	return dst
}

// Reset drops all values.
func (p *PackedInt32) Reset() {
	p.u.Reset()
}

// blockValue extracts value i of a full encoded block. The block holds
// packedBlockLen/4 control bytes followed by the data bytes.
func blockValue(block []byte, i int) uint32 {
	control, data := block[:packedBlockLen/4], block[packedBlockLen/4:]
	off := 0
	for _, c := range control[:i/4] {
		off += int(controlDataLen[c])
	}
	c, lane := control[i/4], uint(i%4)
	for j := range lane {
		off += int(c>>(2*j)&3) + 1
	}
	var v uint32
	for j := range int(c>>(2*lane)&3) + 1 {
		v |= uint32(data[off+j]) << (8 * j)
	}
	return v
}

// zigzagEncode32 maps signed values to unsigned ones with small magnitudes first.
func zigzagEncode32(v int32) uint32 {
	return uint32(v<<1) ^ uint32(v>>31)
}

// zigzagDecode32 inverts zigzagEncode32.
func zigzagDecode32(v uint32) int32 {
	return int32((v >> 1) ^ uint32(-int32(v&1)))
}
