package handler

import (
	"bytes"
	"sync"
)

// bufferPool holds scratch buffers for JSON bodies and rendered pages, so a
// failed encode never leaves a half-written response.
var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 2048))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
