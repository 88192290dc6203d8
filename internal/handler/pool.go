package handler

import (
	"bytes"
	"sync"
)

// bufferPool reuses encode buffers across responses. Most payloads here
// are small views and pages, so 512 bytes covers the common case.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
