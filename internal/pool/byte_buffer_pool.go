package pool

import "sync"

// Buffer sizes tuned for sector assembly: most stored files are a handful
// of 4KiB sectors, and buffers beyond the threshold are not worth keeping.
const (
	SectorBufferDefaultSize  = 1024 * 16
	SectorBufferMaxThreshold = 1024 * 1024 * 4
)

// ByteBuffer is a reusable growable byte slice.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer while keeping its allocation for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Write appends data, growing the buffer as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ByteBufferPool pools ByteBuffers to minimize allocations across reads.
//
// Buffers above the configured threshold are dropped instead of pooled to
// avoid retaining one-off giants.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool handing out buffers of defaultSize
// capacity, discarding returned buffers above maxThreshold.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
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

var sectorDefaultPool = NewByteBufferPool(SectorBufferDefaultSize, SectorBufferMaxThreshold)

// GetSectorBuffer retrieves a ByteBuffer from the default sector pool.
func GetSectorBuffer() *ByteBuffer {
	return sectorDefaultPool.Get()
}

// PutSectorBuffer returns a ByteBuffer to the default sector pool.
func PutSectorBuffer(bb *ByteBuffer) {
	sectorDefaultPool.Put(bb)
}
