package parser

import "sync"

// bufferPool recycles the per-record field buffers. Pooling keeps a hot
// Parser allocation-light without any shared mutable scratch on the
// Parser itself.
var bufferPool = sync.Pool{
	New: func() interface{} {
		// Pre-allocate with capacity for typical field content
		b := make([]byte, 0, 128)
		return &b
	},
}

// getBuffer gets a []byte buffer from the pool.
// The buffer is returned with length 0 but may have capacity.
func getBuffer() []byte {
	p := bufferPool.Get().(*[]byte)
	buf := *p
	return buf[:0]
}

// putBuffer returns a []byte buffer to the pool.
func putBuffer(buf []byte) {
	// Avoid keeping huge buffers alive
	const maxCapacity = 4096
	if cap(buf) > maxCapacity {
		return
	}
	buf = buf[:0]
	bufferPool.Put(&buf)
}
