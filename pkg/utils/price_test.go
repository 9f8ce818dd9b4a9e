package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"$1,234", 1234.0, true},
		{"1234", 1234.0, true},
		{"$500.00", 500.0, true},
		{"$500", 500.0, true},
		{"USD 750", 750.0, true},
		{"1,234.56", 1234.56, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"Price unavailable", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := ParsePrice(tc.input)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestFormatStops(t *testing.T) {
	assert.Equal(t, "Nonstop", FormatStops(0))
	assert.Equal(t, "1 stop", FormatStops(1))
	assert.Equal(t, "2 stops", FormatStops(2))
}

func TestFormatPriceStatus(t *testing.T) {
	assert.Equal(t, "Unknown", FormatPriceStatus(""))
	assert.Equal(t, "Low", FormatPriceStatus("low"))
	assert.Equal(t, "Typical", FormatPriceStatus("typical"))
	assert.Equal(t, "High", FormatPriceStatus("high"))
	assert.Equal(t, "Somewhat High", FormatPriceStatus("somewhat-high"))
}
