// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxDepth is the nesting limit used when no [WithMaxDepth] option is given.
const DefaultMaxDepth = 64

// ReaderOption configures a [Reader].
type ReaderOption func(*Reader)

// WithMaxDepth limits how many TLV elements may be nested inside one another.
// Values below 1 are ignored.
func WithMaxDepth(depth int) ReaderOption {
	return func(r *Reader) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// Reader decodes TLV elements from a byte slice. All reads are confined to
// the current region: the whole input at the top level, and the value of the
// enclosing element inside [Reader.Read].
//
// A Reader is not safe for concurrent use.
type Reader struct {
	data     []byte
	pos      int
	limit    int
	depth    int
	maxDepth int
	path     []string
	headers  []Header
}

// NewReader returns a Reader over data. The Reader never modifies data and
// values it returns do not alias it.
func NewReader(data []byte, opts ...ReaderOption) *Reader {
	r := &Reader{
		data:     data,
		limit:    len(data),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Offset returns the position of the next unread byte.
func (r *Reader) Offset() int64 { return int64(r.pos) }

// Depth returns the number of elements currently entered.
func (r *Reader) Depth() int { return r.depth }

// More reports whether the current region has unread bytes.
func (r *Reader) More() bool { return r.pos < r.limit }

// Remaining returns the number of unread bytes in the current region.
func (r *Reader) Remaining() int { return r.limit - r.pos }

// Peek decodes the header of the next element without consuming it.
func (r *Reader) Peek() (Header, error) {
	h, _, err := r.header()
	return h, err
}

// header parses and validates the header at the current position.
func (r *Reader) header() (Header, int, error) {
	if !r.More() {
		return Header{}, 0, r.errorAt(r.pos, fmt.Errorf("%w: expected an element but the region ended", ErrTruncated))
	}

	h, n, err := parseHeader(r.data[r.pos:r.limit])
	if err != nil {
		return h, 0, r.errorAt(r.pos, err)
	}
	if h.Length > int64(r.limit-r.pos-n) {
		return h, 0, r.errorAt(r.pos, fmt.Errorf("%w: %s exceeds the %d bytes available", ErrTruncated, h, r.limit-r.pos-n))
	}
	return h, n, nil
}

// Read consumes the next element. fn is called with the element's header
// while the reader is confined to its value; fn must consume the value
// exactly or Read fails with [ErrTrailingData]. name labels the element in
// error paths.
func (r *Reader) Read(name string, fn func(h Header) error) error {
	start := r.pos
	h, n, err := r.header()
	if err != nil {
		return err
	}
	if r.depth >= r.maxDepth {
		return r.errorAt(start, fmt.Errorf("%w: limit is %d", ErrTooDeep, r.maxDepth))
	}

	end := r.pos + n + int(h.Length)
	parentLimit := r.limit

	r.pos += n
	r.limit = end
	r.depth++
	r.path = append(r.path, name)
	r.headers = append(r.headers, h)

	err = fn(h)
	if err == nil && r.pos != end {
		err = r.errorAt(r.pos, fmt.Errorf("%w: %d bytes left in %s", ErrTrailingData, end-r.pos, name))
	}

	r.path = r.path[:len(r.path)-1]
	r.headers = r.headers[:len(r.headers)-1]
	r.depth--
	r.limit = parentLimit
	if err != nil {
		return err
	}
	r.pos = end
	return nil
}

// ReadByte consumes one byte of the current region.
func (r *Reader) ReadByte() (byte, error) {
	if !r.More() {
		return 0, r.errorAt(r.pos, fmt.Errorf("%w: expected another byte", ErrTruncated))
	}
	c := r.data[r.pos]
	r.pos++
	return c, nil
}

// ReadRemaining consumes the rest of the current region and returns a copy of it.
func (r *Reader) ReadRemaining() []byte {
	out := make([]byte, r.limit-r.pos)
	copy(out, r.data[r.pos:r.limit])
	r.pos = r.limit
	return out
}

// Errorf returns a [*SyntaxError] wrapping [ErrMalformed] at the current offset.
func (r *Reader) Errorf(format string, args ...any) error {
	return r.errorAt(r.pos, fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...)))
}

// Wrap converts err into a [*SyntaxError] at the current offset. Errors that
// already are syntax errors are returned unchanged.
func (r *Reader) Wrap(err error) error {
	if err == nil {
		return nil
	}
	if se := (*SyntaxError)(nil); errors.As(err, &se) {
		return err
	}
	return r.errorAt(r.pos, err)
}

func (r *Reader) errorAt(offset int, err error) error {
	se := &SyntaxError{
		Offset: int64(offset),
		Path:   strings.Join(r.path, "/"),
		Err:    err,
	}
	if n := len(r.headers); n > 0 {
		se.Header = r.headers[n-1]
	}
	return se
}
