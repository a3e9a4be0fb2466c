// Copyright 2024 Atomstate Technologies Private Limited
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tsvalue implements the bounded, microsecond-resolution SQL
// TIMESTAMP value used across the runtime: a signed 64-bit microseconds-
// since-epoch scalar restricted to the proleptic Gregorian range
// [1583-01-01, 9999-12-31] plus a distinguished NULL sentinel.
package tsvalue

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrorKind classifies timestamp construction/parsing failures.
type ErrorKind byte

const (
	ErrTimestampRange ErrorKind = iota
	ErrTimestampFormat
	ErrTimestampSubMicro
)

// String returns a human-readable name for the ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case ErrTimestampRange:
		return "TimestampRange"
	case ErrTimestampFormat:
		return "TimestampFormat"
	case ErrTimestampSubMicro:
		return "TimestampSubMicro"
	default:
		return "Unknown"
	}
}

// Error is the structured error type returned by every tsvalue
// constructor and projection, modeled on the same Kind+Message shape as
// topology.PlannerError.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

const (
	// MinMicros is 1583-01-01 00:00:00.000000 UTC in microseconds since
	// the Unix epoch.
	MinMicros int64 = -12212553600000000
	// MaxMicros is 9999-12-31 23:59:59.999999 UTC in microseconds since
	// the Unix epoch.
	MaxMicros int64 = 253402300799999999
	// NullMicros is the reserved sentinel denoting SQL NULL. It is the
	// only value permitted outside [MinMicros, MaxMicros].
	NullMicros int64 = math.MinInt64
)

// Value is an immutable, validated timestamp scalar. The zero Value is
// not meaningful on its own; always obtain one via a constructor or
// factory.
type Value struct {
	micros int64
}

// FromMicros validates and wraps a microseconds-since-epoch value. The
// sentinel NullMicros is accepted unconditionally.
func FromMicros(micros int64) (Value, error) {
	if micros == NullMicros {
		return Value{micros: micros}, nil
	}
	if micros < MinMicros || micros > MaxMicros {
		return Value{}, newError(ErrTimestampRange,
			fmt.Sprintf("microseconds %d outside valid range [%d, %d]", micros, MinMicros, MaxMicros))
	}
	return Value{micros: micros}, nil
}

// FromMillisInstant scales a millisecond-resolution instant to
// microseconds and validates it. The resulting value's microsecond
// sub-part is always zero.
func FromMillisInstant(instant time.Time) (Value, error) {
	millis := instant.UnixMilli()
	return FromMicros(millis * 1000)
}

var timestampPattern = regexp.MustCompile(
	`^(\d{4})-(\d{2})-(\d{2})(?: (\d{2}):(\d{2}):(\d{2})(?:\.(\d+))?)?$`)

// FromString parses "YYYY-MM-DD", "YYYY-MM-DD HH:MM:SS", or
// "YYYY-MM-DD HH:MM:SS.f" (1-6 fractional digits) in UTC. Date-only input
// defaults the time to midnight. A year that is not exactly four digits
// is a format error, not a range error; more than six fractional digits
// is a distinct sub-microsecond error.
func FromString(s string) (Value, error) {
	m := timestampPattern.FindStringSubmatch(s)
	if m == nil {
		return Value{}, newError(ErrTimestampFormat, "unparseable timestamp: "+s)
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	hour, minute, second := 0, 0, 0
	if m[4] != "" {
		hour, _ = strconv.Atoi(m[4])
		minute, _ = strconv.Atoi(m[5])
		second, _ = strconv.Atoi(m[6])
	}

	frac := m[7]
	if len(frac) > 6 {
		return Value{}, newError(ErrTimestampSubMicro,
			"fractional seconds exceed microsecond resolution: "+s)
	}
	fracMicros := int64(0)
	if frac != "" {
		padded := frac + strings.Repeat("0", 6-len(frac))
		fracMicros, _ = strconv.ParseInt(padded, 10, 64)
	}

	base := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	micros := base.Unix()*1_000_000 + fracMicros
	return FromMicros(micros)
}

// Micros returns the raw microseconds-since-epoch representation.
func (v Value) Micros() int64 {
	return v.micros
}

// IsNull reports whether v is the NULL sentinel.
func (v Value) IsNull() bool {
	return v.micros == NullMicros
}

// ToMillisInstant truncates v to millisecond resolution, erroring if any
// sub-millisecond microseconds would be discarded.
func (v Value) ToMillisInstant() (time.Time, error) {
	if v.IsNull() {
		return time.Time{}, newError(ErrTimestampRange, "cannot project NULL timestamp to an instant")
	}
	if v.micros%1000 != 0 {
		return time.Time{}, newError(ErrTimestampSubMicro,
			fmt.Sprintf("microseconds %d has non-zero sub-millisecond component", v.micros))
	}
	return time.UnixMilli(v.micros / 1000).UTC(), nil
}

// String returns the canonical UTC representation
// "YYYY-MM-DD HH:MM:SS.uuuuuu", always zero-padded to six fractional
// digits. The NULL sentinel renders as "NULL".
func (v Value) String() string {
	if v.IsNull() {
		return "NULL"
	}
	seconds := v.micros / 1_000_000
	fraction := v.micros % 1_000_000
	if fraction < 0 {
		fraction += 1_000_000
		seconds--
	}
	t := time.Unix(seconds, 0).UTC()
	return fmt.Sprintf("%s.%06d", t.Format("2006-01-02 15:04:05"), fraction)
}

// Equal reports whether v and other hold the same microsecond value.
func (v Value) Equal(other Value) bool {
	return v.micros == other.micros
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater
// than other, ordering naturally on the microsecond integer.
func (v Value) Compare(other Value) int {
	switch {
	case v.micros < other.micros:
		return -1
	case v.micros > other.micros:
		return 1
	default:
		return 0
	}
}

// Min returns the smallest representable non-NULL value.
func Min() Value { return Value{micros: MinMicros} }

// Max returns the largest representable non-NULL value.
func Max() Value { return Value{micros: MaxMicros} }

// Null returns the NULL sentinel value.
func Null() Value { return Value{micros: NullMicros} }
