// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"io"

	"github.com/valyala/bytebufferpool"
)

// Buffer defines the interface for a reusable byte buffer.
// It abstracts the [bytebufferpool.ByteBuffer] type to avoid direct dependencies.
type Buffer interface {
	io.Writer
	io.ByteWriter
	io.StringWriter
	io.ReaderFrom
	Bytes() []byte
	Len() int
	String() string
	Reset()
}

// Pool defines the interface for buffer pooling.
// It abstracts the [bytebufferpool.Pool] type to avoid direct dependencies.
//
// Pool implementations must be safe for concurrent use by multiple goroutines.
type Pool interface {
	Get() Buffer
	Put(b Buffer)
}

// pool wraps [bytebufferpool.Pool] to implement Pool interface.
type pool struct{ p *bytebufferpool.Pool }

// Get returns an empty buffer from the pool.
func (p *pool) Get() Buffer { return p.p.Get() }

// Put resets b and returns it to the pool. Buffers that did not come from a
// bytebufferpool are dropped.
func (p *pool) Put(b Buffer) {
	if buf, ok := b.(*bytebufferpool.ByteBuffer); ok {
		buf.Reset()
		p.p.Put(buf)
	}
}

// Default is the buffer pool shared by the DER writer and the fetch layer.
//
// The DER writer takes one buffer per nested TLV while the value is being
// produced, so deep certificate encodes recycle a handful of buffers instead
// of allocating one per element:
//
//	buf := gc.Default.Get()
//	defer gc.Default.Put(buf)
//
//	encodeValue(buf)
//	appendHeader(parent, buf.Len())
//	parent.Write(buf.Bytes())
//
// HTTP bodies are read the same way before being copied out:
//
//	buf := gc.Default.Get()
//	defer gc.Default.Put(buf)
//
//	if _, err := buf.ReadFrom(resp.Body); err != nil {
//		return nil, fmt.Errorf("error reading response body: %w", err)
//	}
//	return bytes.Clone(buf.Bytes()), nil
var Default Pool = &pool{p: &bytebufferpool.Pool{}}

// ReadAll reads r to EOF through a pooled buffer and returns a copy of the
// bytes that is safe to keep after the buffer is recycled.
func ReadAll(r io.Reader) ([]byte, error) {
	buf := Default.Get()
	defer Default.Put(buf)

	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
