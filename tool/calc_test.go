package tool

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expression string
		want       float64
	}{
		{"2 + 2", 4},
		{"42 * 17 + 365", 1079},
		{"10 - 3 - 2", 5},
		{"2 * 3 + 4", 10},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"7 / 2", 3.5},
		{"10 % 3", 1},
		{"-5 + 3", -2},
		{"2 ^ 10", 1024},
		{"3 ** 4", 81},
		{"2 ^ 3 ^ 2", 512}, // right associative
		{"sqrt(16)", 4},
		{"abs(-7.5)", 7.5},
		{"round(3.6)", 4},
		{"min(3, 9)", 3},
		{"max(3, 9)", 9},
		{"pow(2, 8)", 256},
		{"log10(1000)", 3},
		{"exp(0)", 1},
		{"cos(0)", 1},
		{"pi", math.Pi},
		{"e", math.E},
		{"sqrt(9) + 2 ^ 2", 7},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			got, err := evaluate(tt.expression)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []string{
		"",
		"1 / 0",
		"5 % 0",
		"2 +",
		"(1 + 2",
		"foo(3)",
		"1 2",
		"sqrt(-1)",
		"bogus",
	}

	for _, expression := range tests {
		t.Run(expression, func(t *testing.T) {
			_, err := evaluate(expression)
			assert.Error(t, err)
		})
	}
}
