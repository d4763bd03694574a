package gedcom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  DateValue
	}{
		{
			name:  "full day month year",
			input: "15 JAN 1950",
			want:  DateValue{Original: "15 JAN 1950", Normalized: "1950-01-15", Valid: true},
		},
		{
			name:  "month year is partial",
			input: "JAN 1952",
			want:  DateValue{Original: "JAN 1952", Normalized: "1952-01", Valid: true, Partial: true},
		},
		{
			name:  "bare year is partial",
			input: "1950",
			want:  DateValue{Original: "1950", Normalized: "1950", Valid: true, Partial: true},
		},
		{
			name:  "iso passthrough",
			input: "1950-03-15",
			want:  DateValue{Original: "1950-03-15", Normalized: "1950-03-15", Valid: true},
		},
		{
			name:  "iso year month",
			input: "1950-03",
			want:  DateValue{Original: "1950-03", Normalized: "1950-03", Valid: true, Partial: true},
		},
		{
			name:  "about modifier stripped from value",
			input: "ABT 1980",
			want:  DateValue{Original: "ABT 1980", Normalized: "1980", Valid: true, Partial: true, Modifier: ModifierAbout},
		},
		{
			name:  "before modifier with full date",
			input: "BEF 12 DEC 1812",
			want:  DateValue{Original: "BEF 12 DEC 1812", Normalized: "1812-12-12", Valid: true, Modifier: ModifierBefore},
		},
		{
			name:  "after modifier",
			input: "AFT 1900",
			want:  DateValue{Original: "AFT 1900", Normalized: "1900", Valid: true, Partial: true, Modifier: ModifierAfter},
		},
		{
			name:  "calculated modifier",
			input: "CAL MAR 1870",
			want:  DateValue{Original: "CAL MAR 1870", Normalized: "1870-03", Valid: true, Partial: true, Modifier: ModifierCalculated},
		},
		{
			name:  "estimated modifier",
			input: "EST 1755",
			want:  DateValue{Original: "EST 1755", Normalized: "1755", Valid: true, Partial: true, Modifier: ModifierEstimated},
		},
		{
			name:  "between range keeps lower bound",
			input: "BET 1900 AND 1910",
			want:  DateValue{Original: "BET 1900 AND 1910", Normalized: "1900", Valid: true, Partial: true, Modifier: ModifierBetween},
		},
		{
			name:  "lowercase month accepted",
			input: "3 may 1921",
			want:  DateValue{Original: "3 may 1921", Normalized: "1921-05-03", Valid: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDate(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDate_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"garbage tokens", "99 ZZZ 9999"},
		{"empty string", ""},
		{"whitespace only", "   "},
		{"unknown month word", "15 JANUARY 1950"},
		{"impossible day", "31 FEB 1950"},
		{"impossible iso month", "1950-13-01"},
		{"modifier alone", "ABT"},
		{"free text", "sometime long ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDate(tt.input)
			assert.False(t, got.Valid)
			assert.Empty(t, got.Normalized, "invalid dates must not carry a normalized value")
			assert.NotEmpty(t, got.Err)
			assert.Equal(t, tt.input, got.Original)
		})
	}
}

func TestNormalizeDate_ModifierAloneKeepsModifier(t *testing.T) {
	got := NormalizeDate("ABT")
	// A bare modifier token has no date to qualify; it parses as free text.
	assert.False(t, got.Valid)
	assert.Equal(t, ModifierNone, got.Modifier)
}
