package gedcom

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Modifier qualifies a date value as approximate, bounded or calculated.
// The modifier is reported separately from the normalized value so that
// downstream consumers never have to re-parse date strings to recover
// "about"/"before"/"after" semantics.
type Modifier string

const (
	ModifierNone       Modifier = ""
	ModifierAbout      Modifier = "ABT"
	ModifierBefore     Modifier = "BEF"
	ModifierAfter      Modifier = "AFT"
	ModifierCalculated Modifier = "CAL"
	ModifierEstimated  Modifier = "EST"
	ModifierBetween    Modifier = "BET"
)

// DateValue is the result of normalizing a raw GEDCOM date string.
// Normalized is "YYYY", "YYYY-MM" or "YYYY-MM-DD" depending on the precision
// the source carried; it is empty exactly when Valid is false.
type DateValue struct {
	Original   string
	Normalized string
	Valid      bool
	Partial    bool
	Modifier   Modifier
	Err        string
}

var (
	isoFullRe    = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	isoMonthRe   = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	yearOnlyRe   = regexp.MustCompile(`^\d{3,4}$`)
	dayMonYearRe = regexp.MustCompile(`^(\d{1,2}) ([A-Z]{3}) (\d{3,4})$`)
	monYearRe    = regexp.MustCompile(`^([A-Z]{3}) (\d{3,4})$`)
)

var monthNumbers = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

var dateModifiers = map[string]Modifier{
	"ABT": ModifierAbout,
	"BEF": ModifierBefore,
	"AFT": ModifierAfter,
	"CAL": ModifierCalculated,
	"EST": ModifierEstimated,
	"BET": ModifierBetween,
}

// NormalizeDate parses a raw GEDCOM date value. Recognized grammars, in
// order: ISO (7.0-style, already normalized), "DD MMM YYYY", "MMM YYYY" and
// a bare year, each optionally prefixed by a modifier token. Anything else
// yields Valid=false with the failure reason in Err; the original string is
// always preserved verbatim.
func NormalizeDate(raw string) DateValue {
	dv := DateValue{Original: raw}

	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		dv.Err = "empty date"
		return dv
	}

	if mod, rest, ok := splitModifier(s); ok {
		dv.Modifier = mod
		s = rest
		if mod == ModifierBetween {
			// "BET 1900 AND 1910" normalizes to the lower bound.
			if idx := strings.Index(s, " AND "); idx > 0 {
				s = strings.TrimSpace(s[:idx])
			}
		}
		if s == "" {
			dv.Err = fmt.Sprintf("modifier %s without a date", mod)
			return dv
		}
	}

	switch {
	case isoFullRe.MatchString(s):
		m := isoFullRe.FindStringSubmatch(s)
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if !validYMD(year, month, day) {
			dv.Err = fmt.Sprintf("impossible calendar date %q", raw)
			return dv
		}
		dv.Normalized = s
		dv.Valid = true
	case isoMonthRe.MatchString(s):
		m := isoMonthRe.FindStringSubmatch(s)
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			dv.Err = fmt.Sprintf("impossible calendar date %q", raw)
			return dv
		}
		dv.Normalized = s
		dv.Valid = true
		dv.Partial = true
	case dayMonYearRe.MatchString(s):
		m := dayMonYearRe.FindStringSubmatch(s)
		day, _ := strconv.Atoi(m[1])
		month, ok := monthNumbers[m[2]]
		if !ok {
			dv.Err = fmt.Sprintf("unknown month %q", m[2])
			return dv
		}
		year, _ := strconv.Atoi(m[3])
		if !validYMD(year, month, day) {
			dv.Err = fmt.Sprintf("impossible calendar date %q", raw)
			return dv
		}
		dv.Normalized = fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		dv.Valid = true
	case monYearRe.MatchString(s):
		m := monYearRe.FindStringSubmatch(s)
		month, ok := monthNumbers[m[1]]
		if !ok {
			dv.Err = fmt.Sprintf("unknown month %q", m[1])
			return dv
		}
		year, _ := strconv.Atoi(m[2])
		dv.Normalized = fmt.Sprintf("%04d-%02d", year, month)
		dv.Valid = true
		dv.Partial = true
	case yearOnlyRe.MatchString(s):
		year, _ := strconv.Atoi(s)
		dv.Normalized = fmt.Sprintf("%04d", year)
		dv.Valid = true
		dv.Partial = true
	default:
		dv.Err = fmt.Sprintf("unrecognized date format %q", raw)
	}

	return dv
}

func splitModifier(s string) (Modifier, string, bool) {
	head, rest, found := strings.Cut(s, " ")
	if !found {
		return ModifierNone, s, false
	}
	mod, ok := dateModifiers[head]
	if !ok {
		return ModifierNone, s, false
	}
	return mod, strings.TrimSpace(rest), true
}

func validYMD(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}
