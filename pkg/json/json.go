// Package json provides JSON serialization backed by goccy/go-json, with
// scratch buffers recycled through a pool.
package json

import (
	"bytes"
	"io"

	gojson "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/ajitpratap0/stockpile/pkg/pool"
)

// maxPooledBuffer caps the capacity of buffers kept for reuse.
const maxPooledBuffer = 1 << 20

var buffers = mustBufferPool()

func mustBufferPool() *pool.Locked[*bytes.Buffer] {
	p, err := pool.NewLocked(pool.Config[*bytes.Buffer]{
		Name:    "json_buffers",
		Factory: func() *bytes.Buffer { return bytes.NewBuffer(make([]byte, 0, 4096)) },
		Growth:  pool.GrowthLean,
		Logger:  zap.NewNop(),
		Hooks: pool.HookFuncs[*bytes.Buffer]{
			Release: func(b *bytes.Buffer) { b.Reset() },
		},
	})
	if err != nil {
		panic(err)
	}
	return p
}

func getBuffer() *bytes.Buffer {
	return buffers.Checkout()
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		// swap it for a fresh buffer so the pool's books stay balanced
		buffers.Return(bytes.NewBuffer(make([]byte, 0, 4096)))
		return
	}
	buffers.Return(buf)
}

// BufferStats reports the scratch buffer pool counters.
func BufferStats() pool.Stats {
	return buffers.Stats()
}

// Marshal is a drop-in replacement for encoding/json.Marshal
func Marshal(v interface{}) ([]byte, error) {
	return gojson.Marshal(v)
}

// Unmarshal is a drop-in replacement for encoding/json.Unmarshal
func Unmarshal(data []byte, v interface{}) error {
	return gojson.Unmarshal(data, v)
}

// MarshalIndent is a drop-in replacement for encoding/json.MarshalIndent
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return gojson.MarshalIndent(v, prefix, indent)
}

// Encode writes v to w as indented JSON followed by a newline. The document
// is built in a pooled buffer so nothing reaches w if encoding fails.
func Encode(w io.Writer, v interface{}) error {
	buf := getBuffer()
	defer putBuffer(buf)

	enc := gojson.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}

	_, err := w.Write(buf.Bytes())
	return err
}
