// internal/utils/price_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		{"formatted vnd", "100.000đ", 100000},
		{"with thousands separators", "1.250.000đ", 1250000},
		{"plain digits", "45000", 45000},
		{"currency suffix and spaces", "250.000 VND", 250000},
		{"empty string", "", 0},
		{"no digits", "Liên hệ", 0},
		{"zero", "0đ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePrice(tt.input))
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "100.000đ", FormatPrice(100000))
	assert.Equal(t, "1.250.000đ", FormatPrice(1250000))
	assert.Equal(t, "0đ", FormatPrice(0))
	assert.Equal(t, "999đ", FormatPrice(999))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, amount := range []int64{0, 999, 30000, 100000, 1250000} {
		assert.Equal(t, amount, ParsePrice(FormatPrice(amount)))
	}
}
