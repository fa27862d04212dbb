package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatInt(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
		{-1234567, "-1,234,567"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatInt(tc.n), "n %d", tc.n)
	}
}

func TestRoundTo2(t *testing.T) {
	assert.Equal(t, 0.1, RoundTo2(0.1))
	assert.Equal(t, 0.05, RoundTo2(10.0/200.0))
	assert.Equal(t, 3.33, RoundTo2(10.0/3.0))
	assert.Equal(t, 0.67, RoundTo2(2.0/3.0))
}
