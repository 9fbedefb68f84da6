package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "integer", in: "3", want: true},
		{name: "negative_integer", in: "-3", want: true},
		{name: "decimal", in: "3.5", want: true},
		{name: "negative_decimal", in: "-0.25", want: true},
		{name: "surrounding_space", in: "  4 ", want: true},
		{name: "leading_plus", in: "+3", want: false},
		{name: "exponent", in: "1e5", want: false},
		{name: "trailing_dot", in: "3.", want: false},
		{name: "leading_dot", in: ".5", want: false},
		{name: "inner_space", in: "1 0", want: false},
		{name: "identifier", in: "N", want: false},
		{name: "empty", in: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNumber(tt.in), "IsNumber(%q)", tt.in)
		})
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "identifier", in: "x", want: "x"},
		{name: "identifier_trimmed", in: "  y ", want: "y"},
		{name: "decimal", in: "3.5", want: "3.5"},
		{name: "negative_number", in: "-2", want: "-2"},
		{name: "expression", in: "A+B", want: "(A+B)"},
		{name: "already_enclosed", in: "(A+B)", want: "(A+B)"},
		{name: "two_groups", in: "(a)+(b)", want: "((a)+(b))"},
		{name: "negated_identifier", in: "-x", want: "(-x)"},
		{name: "exponent_literal", in: "1e5", want: "(1e5)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.in))
		})
	}
}

func TestSquaredValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "integer", in: "3", want: "9"},
		{name: "decimal", in: "3.5", want: "12.25"},
		{name: "negative", in: "-2", want: "4"},
		{name: "zero", in: "0", want: "0"},
		{name: "negative_decimal", in: "-0.5", want: "0.25"},
		{name: "float_noise_trimmed", in: "0.1", want: "0.01"},
		{name: "float_noise_trimmed_above_one", in: "1.1", want: "1.21"},
		{name: "integer_from_decimal", in: "1.5", want: "2.25"},
		{name: "huge_integer", in: "1000000000000", want: "1e+24"},
		{name: "expression", in: "x+1", want: "(x+1)^2"},
		{name: "identifier", in: "N", want: "N^2"},
		{name: "parenthesized", in: "(A+B)", want: "(A+B)^2"},
		{name: "trimmed", in: " 4 ", want: "16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SquaredValue(tt.in))
		})
	}
}
