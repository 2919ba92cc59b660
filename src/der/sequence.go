// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der

import "fmt"

// Component is one member of a [Sequence]. Build it with [Field].
type Component interface {
	name() string
	required() bool
	decodeAny(r *Reader) (any, error)
	encodeAny(w *Writer, v any)
}

type field[T any] struct {
	a Adapter[T]
}

// Field turns a into a [Sequence] component. Components wrapped by
// [Optional] or [WithDefault] may be absent; all others are required.
func Field[T any](a Adapter[T]) Component {
	return field[T]{a: a}
}

func (f field[T]) name() string { return f.a.Name() }

func (f field[T]) required() bool {
	o, ok := f.a.(optionalAdapter)
	return !ok || !o.absentOK()
}

func (f field[T]) decodeAny(r *Reader) (any, error) {
	return f.a.Decode(r)
}

func (f field[T]) encodeAny(w *Writer, v any) {
	if v == nil {
		var zero T
		f.a.Encode(w, zero)
		return
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		panic(fmt.Sprintf("der: component %s takes %T, got %T", f.a.Name(), zero, v))
	}
	f.a.Encode(w, t)
}

// Sequence returns an adapter for a SEQUENCE whose members are components.
//
// decompose maps a value to one entry per component, in declaration order,
// and construct maps the decoded entries back. Each entry has the type of its
// component's adapter (for example *int64 for Optional(Int64)). A decompose
// result of the wrong length is a programming error and panics.
func Sequence[T any](
	name string,
	decompose func(T) []any,
	construct func([]any) (T, error),
	components ...Component,
) *Basic[T] {
	return NewBasic(name, ClassUniversal, TagSequence, true,
		func(r *Reader, _ Header) (T, error) {
			values := make([]any, len(components))
			for i, c := range components {
				if c.required() && !r.More() {
					var zero T
					return zero, r.errorAt(r.pos, fmt.Errorf("%w: %s", ErrMissingComponent, c.name()))
				}
				v, err := c.decodeAny(r)
				if err != nil {
					var zero T
					return zero, err
				}
				values[i] = v
			}
			return construct(values)
		},
		func(w *Writer, v T) {
			values := decompose(v)
			if len(values) != len(components) {
				panic(fmt.Sprintf("der: %s has %d components, decompose returned %d",
					name, len(components), len(values)))
			}
			for i, c := range components {
				c.encodeAny(w, values[i])
			}
		},
	)
}
