// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der

import "fmt"

// optionalAdapter is implemented by adapters that may be absent from a
// SEQUENCE. [Sequence] uses it to tell required components apart.
type optionalAdapter interface {
	absentOK() bool
}

type optional[T any] struct {
	a Adapter[T]
}

// Optional makes a absent when the region has ended or the next element does
// not match it. Absence decodes to nil and a nil value encodes nothing.
func Optional[T any](a Adapter[T]) Adapter[*T] {
	return optional[T]{a: a}
}

func (o optional[T]) Name() string          { return o.a.Name() }
func (o optional[T]) Matches(h Header) bool { return o.a.Matches(h) }
func (o optional[T]) absentOK() bool        { return true }

func (o optional[T]) Decode(r *Reader) (*T, error) {
	if !r.More() {
		return nil, nil
	}
	h, err := r.Peek()
	if err != nil {
		return nil, err
	}
	if !o.a.Matches(h) {
		return nil, nil
	}
	v, err := o.a.Decode(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (o optional[T]) Encode(w *Writer, v *T) {
	if v != nil {
		o.a.Encode(w, *v)
	}
}

type withDefault[T comparable] struct {
	a   Adapter[T]
	def T
}

// WithDefault makes a absent when its value equals def. Absence decodes to
// def and def is never written.
func WithDefault[T comparable](a Adapter[T], def T) Adapter[T] {
	return withDefault[T]{a: a, def: def}
}

func (d withDefault[T]) Name() string          { return d.a.Name() }
func (d withDefault[T]) Matches(h Header) bool { return d.a.Matches(h) }
func (d withDefault[T]) absentOK() bool        { return true }

func (d withDefault[T]) Decode(r *Reader) (T, error) {
	if !r.More() {
		return d.def, nil
	}
	h, err := r.Peek()
	if err != nil {
		return d.def, err
	}
	if !d.a.Matches(h) {
		return d.def, nil
	}
	return d.a.Decode(r)
}

func (d withDefault[T]) Encode(w *Writer, v T) {
	if v != d.def {
		d.a.Encode(w, v)
	}
}

// SequenceOf returns an adapter for SEQUENCE OF a. Elements are decoded until
// the region is exhausted; an empty sequence decodes to an empty, non-nil slice.
func SequenceOf[T any](a Adapter[T]) *Basic[[]T] {
	return listOf("SEQUENCE OF "+a.Name(), TagSequence, a)
}

// SetOf returns an adapter for SET OF a. Elements keep the order they were
// decoded or supplied in; they are not sorted on encode.
func SetOf[T any](a Adapter[T]) *Basic[[]T] {
	return listOf("SET OF "+a.Name(), TagSet, a)
}

func listOf[T any](name string, tag uint64, a Adapter[T]) *Basic[[]T] {
	return NewBasic(name, ClassUniversal, tag, true,
		func(r *Reader, _ Header) ([]T, error) {
			out := make([]T, 0)
			for r.More() {
				v, err := a.Decode(r)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			return out, nil
		},
		func(w *Writer, vs []T) {
			for _, v := range vs {
				a.Encode(w, v)
			}
		},
	)
}

// Alternative is one member of a [Choice] over T.
type Alternative[T any] interface {
	name() string
	matches(h Header) bool
	decode(r *Reader) (T, error)
	encode(w *Writer, v T) bool
}

type alternative[T, V any] struct {
	a      Adapter[V]
	wrap   func(V) T
	unwrap func(T) (V, bool)
}

// Alt builds a CHOICE member from a. wrap lifts a decoded V into the choice
// type; unwrap reports whether a choice value belongs to this member and
// returns its V.
func Alt[T, V any](a Adapter[V], wrap func(V) T, unwrap func(T) (V, bool)) Alternative[T] {
	return alternative[T, V]{a: a, wrap: wrap, unwrap: unwrap}
}

func (m alternative[T, V]) name() string          { return m.a.Name() }
func (m alternative[T, V]) matches(h Header) bool { return m.a.Matches(h) }

func (m alternative[T, V]) decode(r *Reader) (T, error) {
	v, err := m.a.Decode(r)
	if err != nil {
		var zero T
		return zero, err
	}
	return m.wrap(v), nil
}

func (m alternative[T, V]) encode(w *Writer, v T) bool {
	inner, ok := m.unwrap(v)
	if ok {
		m.a.Encode(w, inner)
	}
	return ok
}

type choice[T any] struct {
	label string
	alts  []Alternative[T]
}

// Choice returns an adapter that dispatches on the next element's tag to the
// first alternative that matches it.
func Choice[T any](name string, alts ...Alternative[T]) Adapter[T] {
	return &choice[T]{label: name, alts: alts}
}

func (c *choice[T]) Name() string { return c.label }

func (c *choice[T]) Matches(h Header) bool {
	for _, alt := range c.alts {
		if alt.matches(h) {
			return true
		}
	}
	return false
}

func (c *choice[T]) Decode(r *Reader) (T, error) {
	var zero T

	h, err := r.Peek()
	if err != nil {
		return zero, err
	}
	for _, alt := range c.alts {
		if alt.matches(h) {
			return alt.decode(r)
		}
	}
	return zero, r.errorAt(r.pos, fmt.Errorf("%w: %s has no member for %s", ErrNoAlternative, c.label, h))
}

func (c *choice[T]) Encode(w *Writer, v T) {
	for _, alt := range c.alts {
		if alt.encode(w, v) {
			return
		}
	}
	panic(fmt.Sprintf("der: %s has no alternative for %T", c.label, v))
}

// AnyValue is an element kept as its header fields and raw value bytes.
type AnyValue struct {
	Class       Class
	Tag         uint64
	Constructed bool
	Bytes       []byte
}

// Header returns the header v encodes with.
func (v AnyValue) Header() Header {
	return Header{Class: v.Class, Tag: v.Tag, Constructed: v.Constructed, Length: int64(len(v.Bytes))}
}

// Marshal returns the complete TLV encoding of v.
func (v AnyValue) Marshal() []byte {
	out := appendHeader(make([]byte, 0, len(v.Bytes)+8), v.Header())
	return append(out, v.Bytes...)
}

// Any reads and writes any single element unchanged.
var Any Adapter[AnyValue] = anyAdapter{}

type anyAdapter struct{}

func (anyAdapter) Name() string        { return "ANY" }
func (anyAdapter) Matches(Header) bool { return true }

func (anyAdapter) Decode(r *Reader) (AnyValue, error) {
	var v AnyValue
	err := r.Read("ANY", func(h Header) error {
		v = AnyValue{
			Class:       h.Class,
			Tag:         h.Tag,
			Constructed: h.Constructed,
			Bytes:       r.ReadRemaining(),
		}
		return nil
	})
	return v, err
}

func (anyAdapter) Encode(w *Writer, v AnyValue) {
	w.Write("ANY", v.Class, v.Tag, v.Constructed, func() { w.WriteBytes(v.Bytes) })
}
