package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatFloat(t *testing.T) {
	t.Parallel()

	// Summed at run time so the constant is not folded to exactly 0.3.
	a, b := 0.1, 0.2

	tests := []struct {
		in   float64
		want string
	}{
		{2.5, "2.5"},
		{180, "180.0"},
		{0, "0.0"},
		{0.00001, "1e-05"},
		{63000000, "63000000.0"},
		{1e16, "1e+16"},
		{-4.25, "-4.25"},
		{a + b, "0.30000000000000004"},
		{math.NaN(), ""},
		{math.Inf(1), "inf"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FormatFloat(tt.in), "FormatFloat(%v)", tt.in)
	}
}
