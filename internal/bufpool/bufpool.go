// Package bufpool pools the byte buffers the transport layer reads UDP
// responses into, trimmed from the teacher's internal/pool package down
// to the single size this resolver ever needs: one buffer per
// "receive one datagram of up to 4096 octets" step (spec.md §4.5).
package bufpool

import "sync"

// ReceiveBufferSize is the largest UDP response this resolver will read.
const ReceiveBufferSize = 4096

var receivePool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, ReceiveBufferSize)
		return &buf
	},
}

// Get returns a ReceiveBufferSize-length buffer, reused from the pool
// when possible.
func Get() []byte {
	bufPtr := receivePool.Get().(*[]byte)
	return (*bufPtr)[:ReceiveBufferSize]
}

// Put returns buf to the pool. Buffers with a capacity other than
// ReceiveBufferSize are dropped rather than pooled, mirroring the
// teacher's pool package refusing to pool "weird sizes".
func Put(buf []byte) {
	if cap(buf) != ReceiveBufferSize {
		return
	}
	buf = buf[:cap(buf)]
	receivePool.Put(&buf)
}
