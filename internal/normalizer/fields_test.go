package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{name: "Percent", input: "45%", want: 0.45, wantOK: true},
		{name: "Hundred", input: "100%", want: 1.0, wantOK: true},
		{name: "No sign", input: "25", want: 0.25, wantOK: true},
		{name: "Padded", input: " 12.5 % ", want: 0.125, wantOK: true},
		{name: "Empty", input: "", wantOK: false},
		{name: "Blank", input: "   ", wantOK: false},
		{name: "Not numeric", input: "abc%", wantOK: false},
		{name: "Only sign", input: "%", wantOK: false},
		{name: "NaN", input: "NaN%", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Percentage(tt.input)
			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-12)
			}
		})
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{name: "Decimal", input: "199.99", want: 199.99, wantOK: true},
		{name: "Integer", input: "200", want: 200, wantOK: true},
		{name: "Sold out title case", input: "Sold Out", wantOK: false},
		{name: "Sold out upper", input: "SOLD OUT", wantOK: false},
		{name: "Empty", input: "", wantOK: false},
		{name: "Not available", input: "N/A", wantOK: false},
		{name: "Currency symbol", input: "$199.99", wantOK: false},
		{name: "Hex is rejected", input: "0x10", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Price(tt.input)
			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2024-01-15", "2024-01-15"},
		{"01/15/2024", "2024-01-15"},
		{"1/5/2024", "2024-01-05"},
		{"2024-01-15 13:45:00", "2024-01-15"},
		{"January 15, 2024", "2024-01-15"},
		{" 2024-01-15 ", "2024-01-15"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Date(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDate_Invalid(t *testing.T) {
	for _, input := range []string{"not a date", "", "2024-13-45"} {
		_, err := Date(input)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", input)
	}
}

func TestTrim_Idempotent(t *testing.T) {
	for _, input := range []string{"  high ", "low", "", "\tmid\n"} {
		once := Trim(input)
		assert.Equal(t, once, Trim(once))
	}

	assert.Equal(t, "high", Trim("  high "))
}
