package intseries

import "encoding/binary"

// Portable kernels. The window is processed as two little-endian 64-bit words
// whose bytes are the lanes; each pass folds neighbouring lanes into lanes of
// twice the width with weights (10, 1), (100, 1) and (10000, 1). Lane values
// stay below the next lane boundary, so no carry crosses a lane.

var bo = binary.LittleEndian

const (
	lowNibbles = 0x0f0f0f0f0f0f0f0f
	evenBytes  = 0x00ff00ff00ff00ff
	evenWords  = 0x0000ffff0000ffff
	evenDwords = 0x00000000ffffffff
)

// loadDigits returns the window as two words of digit values (0..15 per byte).
func loadDigits(in *[16]byte) (lo, hi uint64) {
	return bo.Uint64(in[0:8]) & lowNibbles, bo.Uint64(in[8:16]) & lowNibbles
}

// foldPairs combines byte lanes (a, b) into 16-bit lanes a*10+b.
func foldPairs(x uint64) uint64 {
	return (x*10 + x>>8) & evenBytes
}

// foldQuads combines 16-bit lanes (a, b) into 32-bit lanes a*100+b.
func foldQuads(x uint64) uint64 {
	return (x*100 + x>>16) & evenWords
}

// foldOctets combines 32-bit lanes (a, b) into a*10000+b.
func foldOctets(x uint64) uint64 {
	return (x*10000 + x>>32) & evenDwords
}

func convert1SWAR(in *[16]byte, out *[16]uint32) {
	lo, hi := loadDigits(in)
	for i := range 8 {
		out[i] = uint32(lo>>(8*i)) & 0xff
		out[8+i] = uint32(hi>>(8*i)) & 0xff
	}
}

func convert2SWAR(in *[16]byte, out *[16]uint32) {
	lo, hi := loadDigits(in)
	lo, hi = foldPairs(lo), foldPairs(hi)
	for i := range 4 {
		out[i] = uint32(lo>>(16*i)) & 0xffff
		out[4+i] = uint32(hi>>(16*i)) & 0xffff
	}
}

func convert3SWAR(in *[16]byte, out *[16]uint32) {
	var expanded [16]byte
	shuffleGeneric(&expanded, in, &expand3)
	convert4SWAR(&expanded, out)
}

func convert4SWAR(in *[16]byte, out *[16]uint32) {
	lo, hi := loadDigits(in)
	lo, hi = foldQuads(foldPairs(lo)), foldQuads(foldPairs(hi))
	out[0] = uint32(lo)
	out[1] = uint32(lo >> 32)
	out[2] = uint32(hi)
	out[3] = uint32(hi >> 32)
}

func convert8SWAR(in *[16]byte, out *[16]uint32) {
	lo, hi := loadDigits(in)
	out[0] = uint32(foldOctets(foldQuads(foldPairs(lo))))
	out[1] = uint32(foldOctets(foldQuads(foldPairs(hi))))
}
