// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der

import (
	"errors"
	"fmt"
)

var (
	// ErrIndefiniteLength indicates a BER indefinite-length element.
	ErrIndefiniteLength = errors.New("der: indefinite length is not supported")

	// ErrTruncated indicates a header or value that extends past the bytes available.
	ErrTruncated = errors.New("der: data truncated")

	// ErrTrailingData indicates bytes left unconsumed inside a bounded region.
	ErrTrailingData = errors.New("der: unexpected trailing data")

	// ErrUnexpectedTag indicates a required element whose tag does not match its schema.
	ErrUnexpectedTag = errors.New("der: unexpected tag")

	// ErrMissingComponent indicates a required SEQUENCE component after the end of its region.
	ErrMissingComponent = errors.New("der: missing required component")

	// ErrNoAlternative indicates a CHOICE where no alternative matches the element's tag.
	ErrNoAlternative = errors.New("der: unrecognized alternative")

	// ErrTooDeep indicates nesting beyond the reader's maximum depth.
	ErrTooDeep = errors.New("der: maximum nesting depth exceeded")

	// ErrMalformed indicates content that violates the encoding rules of its type.
	ErrMalformed = errors.New("der: malformed content")
)

// SyntaxError describes a decoding failure. Offset is the absolute byte
// offset of the element or octet being decoded, Path names the adapters that
// were active, outermost first, and Header is the innermost element entered
// when the failure occurred (zero at the top level).
type SyntaxError struct {
	Offset int64
	Path   string
	Header Header
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("der: syntax error at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("der: syntax error at offset %d in %s: %v", e.Offset, e.Path, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// EncodeError describes a value that could not be represented in DER, such as
// an OBJECT IDENTIFIER string that does not parse.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("der: cannot encode: %v", e.Err)
	}
	return fmt.Sprintf("der: cannot encode %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
