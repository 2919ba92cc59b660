// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der

import (
	"errors"
	"fmt"
)

// Adapter decodes and encodes values of type T as DER.
//
// Adapters are immutable once built and may be shared by concurrent callers.
type Adapter[T any] interface {
	// Name labels the adapter in error paths.
	Name() string

	// Matches reports whether an element with header h belongs to this
	// adapter. Optional fields and CHOICE dispatch use it to decide
	// without consuming input.
	Matches(h Header) bool

	// Decode consumes one element from r.
	Decode(r *Reader) (T, error)

	// Encode writes v to w. It panics when v does not have the shape the
	// adapter describes.
	Encode(w *Writer, v T)
}

// Basic is an adapter for a single element with a fixed tag. The element's
// value is handled by a decode/encode pair that only ever sees the value
// bytes, which is what lets [Implicit] swap the tag.
type Basic[T any] struct {
	name        string
	class       Class
	tag         uint64
	constructed bool
	decode      func(r *Reader, h Header) (T, error)
	encode      func(w *Writer, v T)
}

// NewBasic returns an adapter for elements tagged [class tag]. decode is
// called with the reader confined to the element's value and must consume
// all of it; encode writes the value only.
func NewBasic[T any](
	name string,
	class Class,
	tag uint64,
	constructed bool,
	decode func(r *Reader, h Header) (T, error),
	encode func(w *Writer, v T),
) *Basic[T] {
	return &Basic[T]{
		name:        name,
		class:       class,
		tag:         tag,
		constructed: constructed,
		decode:      decode,
		encode:      encode,
	}
}

func (b *Basic[T]) Name() string { return b.name }

// Class returns the tag class the adapter reads and writes.
func (b *Basic[T]) Class() Class { return b.class }

// Tag returns the tag number the adapter reads and writes.
func (b *Basic[T]) Tag() uint64 { return b.tag }

func (b *Basic[T]) Matches(h Header) bool {
	return h.Class == b.class && h.Tag == b.tag
}

func (b *Basic[T]) Decode(r *Reader) (T, error) {
	var v T

	h, err := r.Peek()
	if err != nil {
		return v, err
	}
	if !b.Matches(h) {
		return v, r.errorAt(r.pos, fmt.Errorf("%w: %s expects [%s %d], got %s",
			ErrUnexpectedTag, b.name, b.class, b.tag, h))
	}
	if h.Constructed != b.constructed {
		form := "primitive"
		if b.constructed {
			form = "constructed"
		}
		return v, r.errorAt(r.pos, fmt.Errorf("%w: %s must be %s", ErrMalformed, b.name, form))
	}

	err = r.Read(b.name, func(h Header) error {
		var err error
		v, err = b.decode(r, h)
		return r.Wrap(err)
	})
	return v, err
}

func (b *Basic[T]) Encode(w *Writer, v T) {
	w.Write(b.name, b.class, b.tag, b.constructed, func() { b.encode(w, v) })
}

// Implicit returns a copy of b that uses the tag [class tag] in place of its
// own. The value encoding is unchanged.
func Implicit[T any](class Class, tag uint64, b *Basic[T]) *Basic[T] {
	c := *b
	c.class = class
	c.tag = tag
	return &c
}

// Explicit wraps a in a constructed element tagged [class tag]. The inner
// element keeps its own tag, which is what CHOICE types need.
func Explicit[T any](class Class, tag uint64, a Adapter[T]) *Basic[T] {
	return &Basic[T]{
		name:        fmt.Sprintf("[%d]%s", tag, a.Name()),
		class:       class,
		tag:         tag,
		constructed: true,
		decode: func(r *Reader, _ Header) (T, error) {
			return a.Decode(r)
		},
		encode: func(w *Writer, v T) {
			a.Encode(w, v)
		},
	}
}

// Context is shorthand for [Explicit] with [ClassContextSpecific].
func Context[T any](tag uint64, a Adapter[T]) *Basic[T] {
	return Explicit(ClassContextSpecific, tag, a)
}

// Marshal encodes v with a and returns the DER bytes.
func Marshal[T any](a Adapter[T], v T) ([]byte, error) {
	w := NewWriter()
	defer w.Release()

	a.Encode(w, v)
	if err := w.Err(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Unmarshal decodes exactly one element from data with a. Bytes after the
// element are an error.
func Unmarshal[T any](a Adapter[T], data []byte, opts ...ReaderOption) (T, error) {
	r := NewReader(data, opts...)
	v, err := a.Decode(r)
	if err != nil {
		var zero T
		return zero, err
	}
	if r.More() {
		var zero T
		return zero, r.errorAt(r.pos, fmt.Errorf("%w: %d bytes after %s", ErrTrailingData, r.Remaining(), a.Name()))
	}
	return v, nil
}

// IsSyntaxError reports whether err is or wraps a [*SyntaxError].
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}
