package intseries

// Reader iterates over the values of a PackedUint32, decoding one block at a
// time. A Reader is not safe for concurrent use. Create multiple readers over
// the same PackedUint32 if concurrent access is needed, and do not append to
// it while readers are in use. Values appended after a Reset of the source
// are visible once appending is done.
type Reader struct {
	// src holds the packed values
	src *PackedUint32

	// block holds the decoded values of the block at blockIndex
	block      []uint32
	blockIndex int
	blockGen   uint64

	// pos is the current position for sequential iteration (0-based)
	pos int

	// loaded indicates if the reader has been loaded with data
	loaded bool
}

// NewReader creates an empty Reader that must be loaded with Load() before use.
func NewReader() *Reader {
	return &Reader{blockIndex: -1}
}

// Load points the reader at src and rewinds it.
// It can be called multiple times to reuse the reader.
func (r *Reader) Load(src *PackedUint32) {
	r.src = src
	r.blockIndex = -1
	r.pos = 0
	r.loaded = true
}

// IsLoaded returns whether the reader has been loaded with data.
func (r *Reader) IsLoaded() bool {
	return r.loaded
}

// Len returns the number of values.
func (r *Reader) Len() int {
	if !r.loaded {
		return 0
	}
	return r.src.Len()
}

// Pos returns the current position for sequential iteration.
func (r *Reader) Pos() int {
	return r.pos
}

// Reset resets the reader position to the beginning for sequential iteration.
func (r *Reader) Reset() {
	r.pos = 0
}

// Get returns the value at the specified position.
// Returns an error if the reader is not loaded or pos is out of range.
func (r *Reader) Get(pos int) (uint32, error) {
	if !r.loaded {
		return 0, ErrNotLoaded
	}
	if pos < 0 || pos >= r.src.Len() {
		return 0, ErrPositionOutOfRange
	}
	return r.value(pos), nil
}

// Next returns the value at the current position and advances it.
// ok is false once all values have been read.
func (r *Reader) Next() (value uint32, ok bool) {
	if !r.loaded || r.pos >= r.src.Len() {
		return 0, false
	}
	value = r.value(r.pos)
	r.pos++
	return value, true
}

// value returns the value at pos, decoding its block when needed.
func (r *Reader) value(pos int) uint32 {
	b := pos / packedBlockLen
	if b == len(r.src.blocks) {
		return r.src.pending[pos%packedBlockLen]
	}
	if b != r.blockIndex || r.blockGen != r.src.gen {
		if cap(r.block) < packedBlockLen {
			r.block = make([]uint32, packedBlockLen)
		}
		r.block = r.src.decodeBlock(b, r.block[:packedBlockLen])
		r.blockIndex = b
		r.blockGen = r.src.gen
	}
	return r.block[pos%packedBlockLen]
}
