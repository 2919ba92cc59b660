// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der

import (
	"fmt"
	"time"
)

// Time is an instant together with the ASN.1 type it was encoded with.
type Time struct {
	time.Time

	// Generalized is true for GeneralizedTime and false for UTCTime.
	Generalized bool
}

// UTC years run from 1950 through 2049.
const (
	utcTimeMinYear = 1950
	utcTimeMaxYear = 2049
)

const (
	utcTimeLayout          = "060102150405Z0700"
	utcTimeNoSecondsLayout = "0601021504Z0700"
	utcTimeEncodeLayout    = "060102150405Z"

	generalizedTimeLayout       = "20060102150405Z0700"
	generalizedTimeEncodeLayout = "20060102150405.999999999Z"
)

// NewTime returns t in UTC, marked for UTCTime when the year allows it, as
// RFC 5280 requires for certificate validity. UTCTime has no fractional
// seconds, so such values are truncated to the second.
func NewTime(t time.Time) Time {
	t = t.UTC()
	if fitsUTCTime(t) {
		return Time{Time: t.Truncate(time.Second)}
	}
	return Time{Time: t, Generalized: true}
}

func fitsUTCTime(t time.Time) bool {
	y := t.UTC().Year()
	return y >= utcTimeMinYear && y <= utcTimeMaxYear
}

// Equal reports whether t and o name the same instant in the same form.
func (t Time) Equal(o Time) bool {
	return t.Generalized == o.Generalized && t.Time.Equal(o.Time)
}

// UTCTime reads and writes UTCTime. Two-digit years below 50 are in the 2000s.
var UTCTime = NewBasic("UTCTime", ClassUniversal, TagUTCTime, false,
	func(r *Reader, _ Header) (Time, error) {
		s := string(r.ReadRemaining())
		t, err := time.Parse(utcTimeLayout, s)
		if err != nil {
			t, err = time.Parse(utcTimeNoSecondsLayout, s)
		}
		if err != nil {
			return Time{}, r.Errorf("UTCTime %q: %v", s, err)
		}
		if t.Year() > utcTimeMaxYear {
			t = t.AddDate(-100, 0, 0)
		}
		return Time{Time: t.UTC()}, nil
	},
	func(w *Writer, v Time) {
		if !fitsUTCTime(v.Time) {
			w.Fail(fmt.Errorf("year %d is outside the UTCTime range", v.UTC().Year()))
			return
		}
		if v.Nanosecond() != 0 {
			w.Fail(fmt.Errorf("UTCTime cannot hold fractional seconds: %s", v.UTC().Format(time.RFC3339Nano)))
			return
		}
		w.WriteString(v.UTC().Format(utcTimeEncodeLayout))
	},
)

// GeneralizedTime reads and writes GeneralizedTime. Fractional seconds are
// written without trailing zeros.
var GeneralizedTime = NewBasic("GeneralizedTime", ClassUniversal, TagGeneralizedTime, false,
	func(r *Reader, _ Header) (Time, error) {
		s := string(r.ReadRemaining())
		t, err := time.Parse(generalizedTimeLayout, s)
		if err != nil {
			return Time{}, r.Errorf("GeneralizedTime %q: %v", s, err)
		}
		return Time{Time: t.UTC(), Generalized: true}, nil
	},
	func(w *Writer, v Time) {
		w.WriteString(v.UTC().Format(generalizedTimeEncodeLayout))
	},
)

// TimeChoice reads either time type. It writes UTCTime unless the value is
// marked Generalized or its year cannot be expressed in two digits.
var TimeChoice = Choice("Time",
	Alt(UTCTime,
		func(t Time) Time { return t },
		func(t Time) (Time, bool) { return t, !t.Generalized && fitsUTCTime(t.Time) },
	),
	Alt(GeneralizedTime,
		func(t Time) Time { return t },
		func(t Time) (Time, bool) { return t, true },
	),
)
