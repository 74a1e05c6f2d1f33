// Package intseries decodes series of ASCII decimal numbers separated by a
// configurable set of separator bytes into 32-bit integers.
//
// Unsigned input is decoded 16 bytes at a time. The digit positions of each
// window form a 16-bit mask that indexes a precomputed table (see Classify).
// When every digit run in the window has the same length of 1, 2, 3, 4 or 8
// digits, the window is shuffled so the runs sit back to back and a vector
// kernel converts all of them at once. Any other window is handed to the
// scalar decoder, which defines the reference semantics. Signed input is
// always decoded by the scalar state machine.
//
// Decoding never returns partial results: on malformed input the whole call
// fails with a *SyntaxError wrapping ErrInvalidCharacter or
// ErrInvalidSignPlacement. Numbers that do not fit 32 bits wrap around.
package intseries

import (
	"context"
	"errors"
	"math/bits"
)

const windowSize = 16

// ParseUnsigned decodes data into unsigned numbers using the vector kernels
// wherever a window allows it.
func ParseUnsigned(data []byte, seps *Separators) ([]uint32, error) {
	out, err := AppendUnsigned(nil, data, seps)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AppendUnsigned appends the unsigned numbers encoded in data to dst.
// It produces exactly what AppendUnsignedScalar produces for the same input.
// On error dst is returned with its original length.
func AppendUnsigned(dst []uint32, data []byte, seps *Separators) ([]uint32, error) {
	start := len(dst)
	var (
		window   [windowSize]byte
		shuffled [windowSize]byte
		values   [windowSize]uint32
	)

	pos := 0
	for pos+windowSize <= len(data) {
		copy(window[:], data[pos:pos+windowSize])
		digits := DigitMask(&window)
		if invalid := ^(digits | seps.Mask(&window)); invalid != 0 {
			return dst[:start], invalidCharacter(data, pos+bits.TrailingZeros16(invalid))
		}

		switch digits {
		case 0:
			pos += windowSize
			continue
		case 0xffff:
			// A single run covers the window and may go on past it.
			end := pos + windowSize
			for end < len(data) && isDigit(data[end]) {
				end++
			}
			dst = appendDigitRun(dst, data[pos:end])
			pos = end
			continue
		}

		consumed := windowSize
		if digits&0x8000 != 0 {
			// The last run may continue in the next window; leave it there.
			consumed -= bits.LeadingZeros16(^digits)
			digits &= 1<<consumed - 1
		}

		info := &blocks[digits]
		if info.Kernel != KernelNone {
			n := int(info.Count)
			Shuffle(&shuffled, &window, &info.Shuffle)
			Convert(info.Kernel, &shuffled, n, values[:])
			dst = append(dst, values[:n]...)
		} else {
			// Only digits and separators remain, so the scalar path cannot fail.
			dst, _ = AppendUnsignedScalar(dst, window[:consumed], seps)
		}
		pos += consumed
	}

	dst, err := AppendUnsignedScalar(dst, data[pos:], seps)
	if err != nil {
		return dst[:start], withOffset(err, pos)
	}
	return dst, nil
}

// appendDigitRun appends the value of a run made only of digits.
func appendDigitRun(dst []uint32, run []byte) []uint32 {
	var result uint32
	for _, c := range run {
		result = 10*result + uint32(c-'0')
	}
	return append(dst, result)
}

// ParseSigned decodes data into signed numbers.
func ParseSigned(data []byte, seps *Separators) ([]int32, error) {
	return ParseSignedScalar(data, seps)
}

// AppendSigned appends the signed numbers encoded in data to dst.
// There is no vector path for signed input.
func AppendSigned(dst []int32, data []byte, seps *Separators) ([]int32, error) {
	return AppendSignedScalar(dst, data, seps)
}

// withOffset shifts the offset of a *SyntaxError by base.
func withOffset(err error, base int) error {
	var syntaxErr *SyntaxError
	if base != 0 && errors.As(err, &syntaxErr) {
		shifted := *syntaxErr
		shifted.Offset += base
		return &shifted
	}
	return err
}

// Parser bundles a separator set with decoding options. A Parser is
// immutable after construction and safe for concurrent use.
type Parser struct {
	seps       *Separators
	scalarOnly bool
	workers    int
	chunkSize  int
}

// Option configures a Parser.
type Option func(p *Parser)

// WithScalarOnly disables the vector kernels for unsigned input.
func WithScalarOnly() Option {
	return func(p *Parser) {
		p.scalarOnly = true
	}
}

// WithWorkers decodes buffers larger than the chunk size on up to n goroutines.
func WithWorkers(n int) Option {
	return func(p *Parser) {
		p.workers = max(n, 1)
	}
}

// WithChunkSize sets the minimum number of bytes handed to one worker.
func WithChunkSize(size int) Option {
	return func(p *Parser) {
		p.chunkSize = max(size, windowSize)
	}
}

// NewParser returns a Parser using seps (DefaultSeparators when nil).
func NewParser(seps *Separators, opts ...Option) *Parser {
	if seps == nil {
		seps = DefaultSeparators
	}
	p := &Parser{
		seps:      seps,
		workers:   1,
		chunkSize: defaultChunkSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Separators returns the separator set used by p.
func (p *Parser) Separators() *Separators {
	return p.seps
}

func (p *Parser) unsignedDecoder() decodeFunc[uint32] {
	if p.scalarOnly {
		return AppendUnsignedScalar
	}
	return AppendUnsigned
}

// Unsigned appends the unsigned numbers in data to dst.
func (p *Parser) Unsigned(dst []uint32, data []byte) ([]uint32, error) {
	if p.workers > 1 && len(data) > p.chunkSize {
		values, err := decodeParallel(context.Background(), data, p.seps, p.workers, p.chunkSize, p.unsignedDecoder())
		if err != nil {
			return dst, err
		}
		return append(dst, values...), nil
	}
	return p.unsignedDecoder()(dst, data, p.seps)
}

// Signed appends the signed numbers in data to dst.
func (p *Parser) Signed(dst []int32, data []byte) ([]int32, error) {
	if p.workers > 1 && len(data) > p.chunkSize {
		values, err := decodeParallel[int32](context.Background(), data, p.seps, p.workers, p.chunkSize, AppendSignedScalar)
		if err != nil {
			return dst, err
		}
		return append(dst, values...), nil
	}
	return AppendSignedScalar(dst, data, p.seps)
}

// UnsignedPacked decodes data and appends the numbers to dst.
// Nothing is appended on error.
func (p *Parser) UnsignedPacked(dst *PackedUint32, data []byte) error {
	values, err := p.Unsigned(nil, data)
	if err != nil {
		return err
	}
	dst.Append(values...)
	return nil
}

// SignedPacked decodes data and appends the numbers to dst.
// Nothing is appended on error.
func (p *Parser) SignedPacked(dst *PackedInt32, data []byte) error {
	values, err := p.Signed(nil, data)
	if err != nil {
		return err
	}
	dst.Append(values...)
	return nil
}
