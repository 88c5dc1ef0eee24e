package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "missing", in: "", want: 5},
		{name: "valid", in: "20", want: 20},
		{name: "max", in: "200", want: 200},
		{name: "too large", in: "201", want: 5},
		{name: "zero", in: "0", want: 5},
		{name: "negative", in: "-3", want: 5},
		{name: "not a number", in: "ten", want: 5},
		{name: "overflows int", in: "184467440737095518000", want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Limit(tt.in, 5))
		})
	}
}

func TestParseIntDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("x", 7))
	assert.Equal(t, -2, ParseIntDefault("-2", 7))
}
