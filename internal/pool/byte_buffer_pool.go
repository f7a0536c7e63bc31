// Package pool provides a reusable byte-buffer pool for the AAMP and BYML
// writers. Both writers build their output in two passes (size, then emit)
// and benefit from amortized buffer growth instead of repeated reallocation.
package pool

import (
	"io"
	"sync"
)

// ArenaDefaultSize is the default capacity handed out by the arena pool.
// ArenaMaxThreshold caps the capacity of buffers returned to the pool so one
// unusually large tree doesn't pin a huge allocation in memory forever.
const (
	ArenaDefaultSize  = 1024 * 4   // 4KiB, generous for a typical parameter archive
	ArenaMaxThreshold = 1024 * 256 // 256KiB
)

// ByteBuffer is a growable byte slice with amortized growth, sized for the
// append-only write pattern of a codec's emission pass.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)
}

// WriteByte appends a single byte to the buffer. Satisfies io.ByteWriter.
func (bb *ByteBuffer) WriteByte(b byte) error {
	bb.Grow(1)
	bb.B = append(bb.B, b)
	return nil
}

// SetLength sets the length of the buffer to n, zero-extending if needed.
// Used by writers that reserve a fixed-size record before its contents are
// known, such as a node whose child offset is patched in after the fact.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 {
		panic("pool: SetLength: negative length")
	}

	if n > len(bb.B) {
		bb.Grow(n - len(bb.B))
		for len(bb.B) < n {
			bb.B = append(bb.B, 0)
		}
	}
	bb.B = bb.B[:n]
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating.
//
// Growth strategy:
//   - For small buffers (<16KB), grow by ArenaDefaultSize to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	if requiredBytes <= 0 {
		return
	}

	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := ArenaDefaultSize
	if cap(bb.B) > 4*ArenaDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), cap(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
// Satisfies io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w. Satisfies io.WriterTo.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations across
// repeated encode calls.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var arenaPool = NewByteBufferPool(ArenaDefaultSize, ArenaMaxThreshold)

// GetArenaBuffer retrieves a ByteBuffer from the shared codec arena pool.
func GetArenaBuffer() *ByteBuffer {
	return arenaPool.Get()
}

// PutArenaBuffer returns a ByteBuffer to the shared codec arena pool.
func PutArenaBuffer(bb *ByteBuffer) {
	arenaPool.Put(bb)
}
