package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecimalRU(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"44", "44", true},
		{"95,50", "95.5", true},
		{"1 234,50", "1234.5", true},
		{"1 234,5", "1234.5", true},
		{"197 ,00", "197", true},
		{"89.90 ₽", "89.9", true},
		{"-3", "-3", true},
		{"", "0", false},
		{"цена", "0", false},
		{"1.2.3", "0", false},
		{"120 руб.", "120", true},
		{"75р", "75", true},
		{"3 по 100", "0", false},
		{"1e3", "0", false},
		{"12-5", "0", false},
		{"~100", "0", false},
		{"100 $", "0", false},
		{"1,234.50", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDecimalRU(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseFloatRU(t *testing.T) {
	f, ok := ParseFloatRU("2 345,6")
	assert.True(t, ok)
	assert.InDelta(t, 2345.6, f, 1e-9)

	_, ok = ParseFloatRU(" - ")
	assert.False(t, ok)
}
