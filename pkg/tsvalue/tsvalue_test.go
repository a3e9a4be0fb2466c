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

package tsvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalStringsAtBoundaries(t *testing.T) {
	assert.Equal(t, "1583-01-01 00:00:00.000000", Min().String())
	assert.Equal(t, "9999-12-31 23:59:59.999999", Max().String())

	zero, err := FromMicros(0)
	require.NoError(t, err)
	assert.Equal(t, "1970-01-01 00:00:00.000000", zero.String())
}

func TestConstructOutOfRange(t *testing.T) {
	_, err := FromMicros(MinMicros - 1)
	require.Error(t, err)
	var tsErr *Error
	require.ErrorAs(t, err, &tsErr)
	assert.Equal(t, ErrTimestampRange, tsErr.Kind)

	_, err = FromMicros(MaxMicros + 1)
	require.Error(t, err)
	require.ErrorAs(t, err, &tsErr)
	assert.Equal(t, ErrTimestampRange, tsErr.Kind)
}

func TestConstructNullSentinel(t *testing.T) {
	v, err := FromMicros(NullMicros)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestParseFiveDigitYearIsFormatError(t *testing.T) {
	_, err := FromString("10000-01-01 00:00:00.000")
	require.Error(t, err)
	var tsErr *Error
	require.ErrorAs(t, err, &tsErr)
	assert.Equal(t, ErrTimestampFormat, tsErr.Kind)
}

func TestParseBeforeMinRangeIsRangeError(t *testing.T) {
	_, err := FromString("1582-12-31 23:59:59.999")
	require.Error(t, err)
	var tsErr *Error
	require.ErrorAs(t, err, &tsErr)
	assert.Equal(t, ErrTimestampRange, tsErr.Kind)
}

func TestParseTooManyFractionalDigits(t *testing.T) {
	_, err := FromString("1999-01-01 00:00:00.1234567")
	require.Error(t, err)
	var tsErr *Error
	require.ErrorAs(t, err, &tsErr)
	assert.Equal(t, ErrTimestampSubMicro, tsErr.Kind)
}

func TestParseDateOnlyDefaultsToMidnight(t *testing.T) {
	v, err := FromString("2020-06-15")
	require.NoError(t, err)
	assert.Equal(t, "2020-06-15 00:00:00.000000", v.String())
}

func TestRoundTripParseAndFormat(t *testing.T) {
	original := "2020-06-15 12:30:45.123456"
	v, err := FromString(original)
	require.NoError(t, err)
	assert.Equal(t, original, v.String())

	parsedAgain, err := FromString(v.String())
	require.NoError(t, err)
	assert.True(t, v.Equal(parsedAgain))
}

func TestOrderingAndEquality(t *testing.T) {
	a, _ := FromMicros(100)
	b, _ := FromMicros(200)
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
}

func TestToMillisInstantRejectsSubMillisecond(t *testing.T) {
	v, err := FromMicros(1_000_001)
	require.NoError(t, err)
	_, err = v.ToMillisInstant()
	require.Error(t, err)
	var tsErr *Error
	require.ErrorAs(t, err, &tsErr)
	assert.Equal(t, ErrTimestampSubMicro, tsErr.Kind)
}

func TestToMillisInstantAccepted(t *testing.T) {
	v, err := FromMicros(1_000_000)
	require.NoError(t, err)
	instant, err := v.ToMillisInstant()
	require.NoError(t, err)
	assert.Equal(t, int64(1000), instant.UnixMilli())
}
