// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package exam

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseNumber parses a user-entered number. Both "0.026" and "0,026" are
// accepted and surrounding whitespace is ignored. Empty, unparseable and
// non-finite inputs report false.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Value is a recorded measurement exactly as it was entered or imported.
// Historical data may hold strings such as "4,5" or garbage; Float decides
// what counts as a number.
type Value string

// NumberValue formats f as a Value.
func NumberValue(f float64) Value {
	return Value(strconv.FormatFloat(f, 'f', -1, 64))
}

// Float returns the numeric value and whether it is usable.
func (v Value) Float() (float64, bool) {
	return ParseNumber(string(v))
}

// Ptr returns the numeric value as a pointer, nil when there is none.
func (v Value) Ptr() *float64 {
	f, ok := v.Float()
	if !ok {
		return nil
	}
	return &f
}

// UnmarshalJSON accepts a JSON number or string. Null, booleans, objects
// and arrays decode as an empty Value, which has no number.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*v = ""
		return nil
	}
	switch c := data[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = Value(n.String())
	default:
		*v = ""
	}
	return nil
}

// MarshalJSON writes usable values as JSON numbers and anything else as the
// original string so that no input is lost.
func (v Value) MarshalJSON() ([]byte, error) {
	if f, ok := v.Float(); ok {
		return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
	}
	return json.Marshal(string(v))
}
