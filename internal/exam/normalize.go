// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package exam

import (
	"strings"
	"unicode"
)

// Normalize returns the canonical form of a parameter name. It uppercases the
// input, collapses every run of underscores, periods and whitespace into a
// single space, and trims the result.
//
// Two names refer to the same parameter iff their canonical forms are equal.
// The empty string matches nothing.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingSpace := false
	for _, r := range strings.ToUpper(name) {
		if r == '_' || r == '.' || unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// SameParameter reports whether a and b name the same parameter.
func SameParameter(a, b string) bool {
	na := Normalize(a)
	return na != "" && na == Normalize(b)
}

// DisplayName is the form in which new parameter names are stored: trimmed
// and uppercased, with inner spacing left as typed.
func DisplayName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
