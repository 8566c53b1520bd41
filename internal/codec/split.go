package codec

import (
	"iter"
	"strings"
)

// Splitter splits a string at unescaped pipe characters. A backslash escapes
// the following character; escape markers are dropped from the segments.
//
// A Splitter is single use. Create a new one to scan the same string again.
type Splitter struct {
	s    string
	pos  int
	done bool
}

// NewSplitter returns a Splitter over s. An empty s yields no segments.
func NewSplitter(s string) *Splitter {
	return &Splitter{s: s, done: s == ""}
}

// Next returns the next segment and true, or "" and false once the input is
// exhausted. A trailing delimiter yields a final empty segment.
func (sp *Splitter) Next() (string, bool) {
	if sp.done {
		return "", false
	}
	var b strings.Builder
	escaped := false
	// '\\' and '|' are ASCII, so scanning bytes never splits a multi-byte rune.
	for sp.pos < len(sp.s) {
		c := sp.s[sp.pos]
		sp.pos++
		switch {
		case c == '\\' && !escaped:
			escaped = true
		case c == '|' && !escaped:
			return b.String(), true
		default:
			escaped = false
			b.WriteByte(c)
		}
	}
	sp.done = true
	return b.String(), true
}

// SplitEscaped returns the segments of s as a sequence.
func SplitEscaped(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		sp := NewSplitter(s)
		for {
			seg, ok := sp.Next()
			if !ok || !yield(seg) {
				return
			}
		}
	}
}

// Escape doubles every backslash and then prefixes every pipe with a backslash.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `|`, `\|`)
}
