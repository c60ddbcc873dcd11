// Package responses defines the canned response tables served by canned.
package responses

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// DefaultBody is returned for every request target that has no entry.
const DefaultBody = "Hello\n"

// ErrUnknownVariant is returned when a variant name is not recognised.
var ErrUnknownVariant = errors.New("unknown variant")

// Variant selects one of the built-in response tables.
type Variant string

const (
	// VariantA serves /1../4 with per-path delays and Hello for the rest.
	VariantA Variant = "a"
	// VariantB serves Hello for every path after the request body ends.
	VariantB Variant = "b"
	// VariantC serves Hello for every path without waiting for the body.
	VariantC Variant = "c"
)

// Variants lists the built-in variants in display order.
var Variants = []Variant{VariantA, VariantB, VariantC}

// ParseVariant parses a variant name, case-insensitively.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Variants {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of a, b, c)", ErrUnknownVariant, s)
}

// Entry is a single canned response.
type Entry struct {
	Path  string        `json:"path" yaml:"path"`
	Body  string        `json:"body" yaml:"body"`
	Delay time.Duration `json:"delay" yaml:"delay"`
}

// Table maps exact request targets to canned responses. A Table is never
// modified after construction and is safe for concurrent use.
type Table struct {
	entries     map[string]Entry
	fallback    string
	waitForBody bool
}

// NewTable builds a table from entries. Requests without an entry get the
// fallback body with no delay. When waitForBody is set the handler must not
// respond before the request body has been fully read.
func NewTable(entries []Entry, fallback string, waitForBody bool) *Table {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.Path] = e
	}
	return &Table{
		entries:     m,
		fallback:    fallback,
		waitForBody: waitForBody,
	}
}

// ForVariant returns the built-in table for v.
func ForVariant(v Variant) (*Table, error) {
	switch v {
	case VariantA:
		return NewTable([]Entry{
			{Path: "/1", Body: "[111]\n", Delay: 20 * time.Millisecond},
			{Path: "/2", Body: "[222]\n", Delay: 0},
			{Path: "/3", Body: "[333]\n", Delay: 30 * time.Millisecond},
			{Path: "/4", Body: "[444]\n", Delay: 10 * time.Millisecond},
		}, DefaultBody, true), nil
	case VariantB:
		return NewTable(nil, DefaultBody, true), nil
	case VariantC:
		return NewTable(nil, DefaultBody, false), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, string(v))
	}
}

// Lookup returns the entry for target. The match is on the raw target, so
// "/1?x=1" does not match "/1".
func (t *Table) Lookup(target string) Entry {
	if e, ok := t.entries[target]; ok {
		return e
	}
	return Entry{Path: target, Body: t.fallback}
}

// ContentLength is the Content-Length declared on every response. It is the
// length of the fallback body, not of the body actually sent.
func (t *Table) ContentLength() int {
	return len(t.fallback)
}

// WaitForBody reports whether responses wait for the end of the request body.
func (t *Table) WaitForBody() bool {
	return t.waitForBody
}

// Fallback returns the body sent for targets without an entry.
func (t *Table) Fallback() string {
	return t.fallback
}

// Entries returns the table's entries sorted by path.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
