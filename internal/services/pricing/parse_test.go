package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"1100", 1100},
		{" 80 ", 80},
		{"32.5325", 32.5325},
		{".5", 0.5},
		{"12.", 12},
		{"12abc", 12},
		{"1e3", 1000},
		{"+7", 7},
		{"-3", -3},
		{"1,000", 1},
		{"Infinity", 0},
		{"NaN", 0},
		{"1e999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.in))
		})
	}
}
