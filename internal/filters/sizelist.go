package filters

import (
	"strconv"

	"github.com/google/uuid"
)

// SizeList edits one ordered option list. An empty incoming list is seeded
// with a single blank entry so the form always has a row to type into; that
// seed only becomes part of the document once the list has been touched,
// which is how an untouched list round-trips back to "omitted".
//
// Every entry carries a generated id. Image links reference options by id,
// not by position, so reordering or deleting options cannot silently point a
// link at the wrong entry; positions are derived again only at encode time.
type SizeList struct {
	entries []sizeEntry
	seeded  bool // list came in empty and has not been touched
}

type sizeEntry struct {
	id  string
	opt SizeOption
}

func NewSizeList(initial []SizeOption) *SizeList {
	l := &SizeList{}
	if len(initial) == 0 {
		l.entries = []sizeEntry{{id: uuid.NewString()}}
		l.seeded = true
		return l
	}
	for _, o := range initial {
		l.entries = append(l.entries, sizeEntry{id: uuid.NewString(), opt: o})
	}
	return l
}

// Options returns the current entries in order, or nil for a list that was
// seeded and never touched.
func (l *SizeList) Options() []SizeOption {
	if l.seeded {
		return nil
	}
	out := make([]SizeOption, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.opt
	}
	return out
}

// Len reports the number of committed options (0 for an untouched seed).
func (l *SizeList) Len() int {
	if l.seeded {
		return 0
	}
	return len(l.entries)
}

// Add appends a blank option. Always allowed.
func (l *SizeList) Add() {
	l.seeded = false
	l.entries = append(l.entries, sizeEntry{id: uuid.NewString()})
}

// Remove deletes the option at i. Refused when only one entry remains or i
// is out of range.
func (l *SizeList) Remove(i int) bool {
	if len(l.entries) <= 1 || i < 0 || i >= len(l.entries) {
		return false
	}
	l.seeded = false
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return true
}

// SetLabel updates one locale of the option label at i.
func (l *SizeList) SetLabel(i int, loc Locale, v string) bool {
	if i < 0 || i >= len(l.entries) {
		return false
	}
	l.seeded = false
	l.entries[i].opt.Size.Set(loc, v)
	return true
}

// SetPriceModifier updates the price modifier at i from raw form input,
// coercing non-numeric input to 0.
func (l *SizeList) SetPriceModifier(i int, raw string) bool {
	if i < 0 || i >= len(l.entries) {
		return false
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		n = 0
	}
	l.seeded = false
	l.entries[i].opt.PriceModifier = n
	return true
}

// Label resolves the display label of option i for a locale, falling back to
// English when the locale field is empty.
func (l *SizeList) Label(i int, loc Locale) string {
	if i < 0 || i >= len(l.entries) {
		return ""
	}
	if v := l.entries[i].opt.Size.Get(loc); v != "" {
		return v
	}
	return l.entries[i].opt.Size.En
}

func (l *SizeList) idAt(i int) (string, bool) {
	if l.seeded || i < 0 || i >= len(l.entries) {
		return "", false
	}
	return l.entries[i].id, true
}

func (l *SizeList) indexOf(id string) int {
	if l.seeded {
		return -1
	}
	for i, e := range l.entries {
		if e.id == id {
			return i
		}
	}
	return -1
}
