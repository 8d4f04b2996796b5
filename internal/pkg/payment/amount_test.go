package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"12.34", 1234},
		{"0.1", 10},
		{"10", 1000},
		{"10.5", 1050},
		{"10.50", 1050},
		{" 0.01 ", 1},
		{"0", 0},
		{"0.005", 0},
		{"0.015", 2},
		{"0.025", 2},
		{"1.235", 124},
		{"1.245", 124},
		{"-3.20", -320},
		{"1e2", 10000},
		{"1e15", 100000000000000000},
		{"0.000000000000000001", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "10,50", "1.2.3", "NaN", "99999999999999999999",
		"1e2000000000", "1e-2000000000", "-1e2000000000", "1e19", "1e-19",
		"1" + strings.Repeat("0", 70)} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseAmount(in)
			assert.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}
