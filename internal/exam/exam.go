// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

// Package exam defines the lab tracker's data model: reports, their entries,
// and parameter reference configurations.
package exam

import (
	"strings"
	"time"
)

// DateLayout is the storage layout for report dates.
const DateLayout = "2006-01-02"

// Date is a calendar date stored as YYYY-MM-DD.
type Date string

var dateLayouts = []string{DateLayout, time.RFC3339, "2006-01-02T15:04"}

// Time parses the date. Values that are not dates report false.
func (d Date) Time() (time.Time, bool) {
	s := strings.TrimSpace(string(d))
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// Compare orders two dates by calendar day. Unparseable dates sort before
// every valid date and compare equal to each other.
func (d Date) Compare(other Date) int {
	a, aok := d.Time()
	b, bok := other.Time()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	return a.Compare(b)
}

// DateOf formats t as a Date.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Entry is one measured value inside a report. Param is a soft reference to
// a catalog entry, resolved by canonical name when read.
type Entry struct {
	Param string `json:"param"`
	Value Value  `json:"val"`
}

// Report is one clinical visit's bundle of dated measurements.
type Report struct {
	ID       string  `json:"id"`
	Date     Date    `json:"date"`
	Location string  `json:"location"`
	Notes    string  `json:"notes,omitempty"`
	Exams    []Entry `json:"exams"`
}

// Find returns the first entry whose parameter matches name.
func (r Report) Find(name string) (Entry, bool) {
	key := Normalize(name)
	if key == "" {
		return Entry{}, false
	}
	for _, e := range r.Exams {
		if Normalize(e.Param) == key {
			return e, true
		}
	}
	return Entry{}, false
}

// EntryList is a draft list of entries being assembled for a report.
type EntryList []Entry

// Find returns the index of param under any spelling, or -1.
func (l EntryList) Find(param string) int {
	key := Normalize(param)
	if key == "" {
		return -1
	}
	for i := range l {
		if Normalize(l[i].Param) == key {
			return i
		}
	}
	return -1
}

// Set records value for param. A parameter already present under any
// spelling has its value replaced in place instead of being appended.
func (l EntryList) Set(param string, value Value) EntryList {
	if i := l.Find(param); i >= 0 {
		l[i].Value = value
		return l
	}
	return append(l, Entry{Param: param, Value: value})
}

// Remove drops the entry at index i. Out of range indexes are ignored.
func (l EntryList) Remove(i int) EntryList {
	if i < 0 || i >= len(l) {
		return l
	}
	return append(l[:i], l[i+1:]...)
}

// Usable returns the entries that have a parameter and a numeric value.
func (l EntryList) Usable() []Entry {
	out := make([]Entry, 0, len(l))
	for _, e := range l {
		if strings.TrimSpace(e.Param) == "" {
			continue
		}
		if _, ok := e.Value.Float(); !ok {
			continue
		}
		out = append(out, e)
	}
	return out
}
