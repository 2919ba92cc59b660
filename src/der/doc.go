// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package der implements a composable codec for ASN.1 values in the
// Distinguished Encoding Rules ([X.690]).
//
// The package has two layers. The TLV layer ([Reader], [Writer], [Header])
// reads and writes single tag-length-value elements with definite lengths,
// bounds every nested read to the value region of its parent and enforces a
// maximum nesting depth. The adapter layer ([Adapter] and the combinators
// built on it) describes a schema as a tree of typed adapters:
//
//	type point struct{ X, Y int64 }
//
//	var pointAdapter = der.Sequence("Point",
//		func(p point) []any { return []any{p.X, p.Y} },
//		func(v []any) (point, error) { return point{v[0].(int64), v[1].(int64)}, nil },
//		der.Field(der.Int64),
//		der.Field(der.Int64),
//	)
//
//	data, err := der.Marshal(pointAdapter, point{1, 2})
//	p, err := der.Unmarshal(pointAdapter, data)
//
// Adapter trees are immutable once built and may be shared between
// goroutines. Decoding reports failures as [*SyntaxError]; encoding a value
// whose shape does not match its adapter panics.
//
// [X.690]: https://www.itu.int/rec/T-REC-X.690
package der
