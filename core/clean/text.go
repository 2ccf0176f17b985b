package clean

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultEmptyMarkers are the cell texts treated as "no value".
var DefaultEmptyMarkers = []string{"", "—", "–", "N/A", "n/a", "--"}

// footnoteRe matches bracketed reference markers such as [1], [a] or
// [citation needed].
var footnoteRe = regexp.MustCompile(`\[[^\]]+\]`)

// StripFootnotes removes reference markers and collapses whitespace.
func StripFootnotes(s string) string {
	return CollapseSpace(footnoteRe.ReplaceAllString(s, ""))
}

// isGroupSpace reports whether r is a space used to group digits.
func isGroupSpace(r rune) bool {
	return r == '\u00a0' || r == '\u2009' || r == '\u202f'
}

// CollapseSpace trims s and turns every whitespace run into a single space.
// A lone digit-grouping space between two digits ("1\u2009234") is kept
// as is so numbers written with it can still be recognized.
func CollapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	var prev rune
	for i, r := range s {
		if !unicode.IsSpace(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			prev = r
			continue
		}
		if isGroupSpace(r) && !pendingSpace && unicode.IsDigit(prev) {
			next, _ := utf8.DecodeRuneInString(s[i+utf8.RuneLen(r):])
			if unicode.IsDigit(next) {
				b.WriteRune(r)
				prev = r
				continue
			}
		}
		pendingSpace = true
	}
	return b.String()
}

// markerSet is a set of empty-cell markers.
type markerSet map[string]struct{}

func newMarkerSet(extra []string) markerSet {
	set := make(markerSet, len(DefaultEmptyMarkers)+len(extra))
	for _, m := range DefaultEmptyMarkers {
		set[m] = struct{}{}
	}
	for _, m := range extra {
		set[strings.TrimSpace(m)] = struct{}{}
	}
	return set
}

func (m markerSet) has(s string) bool {
	_, ok := m[s]
	return ok
}

// Text normalizes free text such as a caption: footnotes are removed and an
// empty marker, default or configured, yields ok == false.
func (c *TableCleaner) Text(s string) (string, bool) {
	s = StripFootnotes(s)
	if c.markers.has(s) {
		return "", false
	}
	return s, true
}
