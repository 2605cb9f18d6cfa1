package handler

import (
	"bytes"
	"sync"
)

// bufferPool recycles bytes.Buffer instances across JSON responses.
// Most responses fit in the 512 byte pre-allocation.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// putBuffer resets the buffer before returning it to the pool
func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
