// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der

import (
	"strings"

	"github.com/cashapp/certifikit/src/internal/helper/gc"
)

// Writer encodes TLV elements. The value of every element is produced into a
// pooled scratch buffer first, so its header can carry the exact length in
// the shortest form.
//
// Encoding problems caused by invalid values are recorded with [Writer.Fail];
// the first one is kept and reported by [Writer.Err].
type Writer struct {
	buf  gc.Buffer
	path []string
	err  error
	hdr  []byte
}

// NewWriter returns an empty Writer. Call [Writer.Release] when done.
func NewWriter() *Writer {
	return &Writer{buf: gc.Default.Get()}
}

// Write emits one element. content is called to produce the value; it must
// write through w.
func (w *Writer) Write(name string, class Class, tag uint64, constructed bool, content func()) {
	parent := w.buf
	child := gc.Default.Get()

	w.buf = child
	w.path = append(w.path, name)
	content()
	w.path = w.path[:len(w.path)-1]
	w.buf = parent

	w.hdr = appendHeader(w.hdr[:0], Header{
		Class:       class,
		Tag:         tag,
		Constructed: constructed,
		Length:      int64(child.Len()),
	})
	parent.Write(w.hdr)
	parent.Write(child.Bytes())
	gc.Default.Put(child)
}

// WriteBytes appends p to the current value.
func (w *Writer) WriteBytes(p []byte) { w.buf.Write(p) }

// WriteByte appends c to the current value.
func (w *Writer) WriteByte(c byte) error { return w.buf.WriteByte(c) }

// WriteString appends s to the current value.
func (w *Writer) WriteString(s string) { w.buf.WriteString(s) }

// Fail records err against the element being written. Only the first
// failure is kept.
func (w *Writer) Fail(err error) {
	if w.err != nil || err == nil {
		return
	}
	w.err = &EncodeError{Path: strings.Join(w.path, "/"), Err: err}
}

// Err returns the first failure recorded by [Writer.Fail].
func (w *Writer) Err() error { return w.err }

// Bytes returns a copy of everything written so far.
func (w *Writer) Bytes() []byte {
	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())
	return out
}

// Release returns the Writer's buffer to the pool. The Writer must not be used afterwards.
func (w *Writer) Release() {
	if w.buf != nil {
		gc.Default.Put(w.buf)
		w.buf = nil
	}
}
