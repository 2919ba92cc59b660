// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// String is a character string together with the universal tag it was
// encoded with, so that re-encoding keeps the original string type.
type String struct {
	Tag   uint64
	Value string
}

func (s String) String() string { return s.Value }

var (
	bmpEncoding encoding.Encoding = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	t61Encoding encoding.Encoding = charmap.ISO8859_1
)

// textString builds an adapter for a string type whose content is checked
// by validate, or transcoded through enc when enc is not nil.
func textString(name string, tag uint64, validate func(string) error, enc encoding.Encoding) *Basic[string] {
	return NewBasic(name, ClassUniversal, tag, false,
		func(r *Reader, _ Header) (string, error) {
			b := r.ReadRemaining()
			if enc != nil {
				s, err := enc.NewDecoder().Bytes(b)
				if err != nil {
					return "", r.Errorf("%s: %v", name, err)
				}
				return string(s), nil
			}
			s := string(b)
			if err := validate(s); err != nil {
				return "", r.Errorf("%s: %v", name, err)
			}
			return s, nil
		},
		func(w *Writer, v string) {
			if enc != nil {
				b, err := enc.NewEncoder().String(v)
				if err != nil {
					w.Fail(fmt.Errorf("%s: %w", name, err))
					return
				}
				w.WriteString(b)
				return
			}
			if err := validate(v); err != nil {
				w.Fail(fmt.Errorf("%s: %w", name, err))
				return
			}
			w.WriteString(v)
		},
	)
}

func validUTF8(s string) error {
	if !utf8.ValidString(s) {
		return errors.New("invalid UTF-8")
	}
	return nil
}

func validIA5(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return fmt.Errorf("byte 0x%02x is not ASCII", s[i])
		}
	}
	return nil
}

// validPrintable accepts the PrintableString alphabet plus '*' and '&',
// which are common in deployed certificates.
func validPrintable(s string) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case c == ' ', c == '\'', c == '(', c == ')', c == '+', c == ',', c == '-',
			c == '.', c == '/', c == ':', c == '=', c == '?', c == '*', c == '&':
		default:
			return fmt.Errorf("character %q is not printable", c)
		}
	}
	return nil
}

var (
	// UTF8String reads and writes UTF8String.
	UTF8String = textString("UTF8String", TagUTF8String, validUTF8, nil)

	// PrintableString reads and writes PrintableString.
	PrintableString = textString("PrintableString", TagPrintableString, validPrintable, nil)

	// IA5String reads and writes IA5String.
	IA5String = textString("IA5String", TagIA5String, validIA5, nil)

	// T61String reads and writes TeletexString, treated as Latin-1.
	T61String = textString("T61String", TagT61String, nil, t61Encoding)

	// BMPString reads and writes BMPString (UTF-16BE).
	BMPString = bmpString()
)

func bmpString() *Basic[string] {
	base := textString("BMPString", TagBMPString, nil, bmpEncoding)
	inner := base.decode
	base.decode = func(r *Reader, h Header) (string, error) {
		if h.Length%2 != 0 {
			return "", r.Errorf("BMPString has an odd number of octets")
		}
		return inner(r, h)
	}
	return base
}

func taggedString(a Adapter[string], tag uint64) Alternative[String] {
	return Alt(a,
		func(v string) String { return String{Tag: tag, Value: v} },
		func(s String) (string, bool) { return s.Value, s.Tag == tag },
	)
}

// DirectoryString reads any of the character string types used in
// distinguished names and writes a [String] back with its own tag.
var DirectoryString = Choice("DirectoryString",
	taggedString(UTF8String, TagUTF8String),
	taggedString(PrintableString, TagPrintableString),
	taggedString(IA5String, TagIA5String),
	taggedString(T61String, TagT61String),
	taggedString(BMPString, TagBMPString),
)
