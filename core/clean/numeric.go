package clean

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/wikitables/core"
)

// maxExactInt is the largest magnitude a float64 holds without losing
// integer precision.
const maxExactInt = 1 << 53

// numberRe accepts plain decimal numbers with an optional exponent. It keeps
// ParseFloat from accepting "inf", "NaN" or hex floats.
var numberRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// groupedRe matches an integer part split into groups of three digits by
// grouping spaces, as in "7\u2009000\u2009000".
var groupedRe = regexp.MustCompile(`^[+-]?\d{1,3}([\x{00A0}\x{2009}\x{202F}]\d{3})+(\.\d*)?([eE][+-]?\d+)?$`)

// stripNumeric removes thousands separators, currency symbols and percent
// signs, and maps the Unicode minus sign to '-'. Surrounding whitespace is
// trimmed. Inner whitespace is removed only when it groups digits by three;
// anything else ("1983 1985") is left for the number check to reject.
func stripNumeric(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ',', '$', '€', '£', '¥', '₹', '₩', '%':
			return -1
		case '−':
			return '-'
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if groupedRe.MatchString(s) {
		s = strings.Map(func(r rune) rune {
			if isGroupSpace(r) {
				return -1
			}
			return r
		}, s)
	}
	return s
}

// parseNumber reports whether s is numeric once stripped.
func parseNumber(s string) (float64, bool) {
	s = stripNumeric(s)
	if !numberRe.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// coerce decides the kind of a column. It is numeric only if every present
// value parses; otherwise the text is kept as is.
func coerce(name string, values []core.Text) core.Column {
	nums := make([]core.Number, len(values))
	integral := true
	for i, v := range values {
		if !v.Valid {
			continue
		}
		f, ok := parseNumber(v.Value)
		if !ok {
			return &core.TextColumn{Name: name, Values: values}
		}
		nums[i] = core.Number{Value: f, Valid: true}
		if f != math.Trunc(f) || math.Abs(f) > maxExactInt {
			integral = false
		}
	}
	return &core.NumericColumn{Name: name, Values: nums, Integral: integral}
}
