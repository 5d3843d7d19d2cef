package sms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9876543210", "+919876543210"},
		{"+919876543210", "+919876543210"},
		{"98765 43210", "+919876543210"},
		{"(987) 654-3210", "+919876543210"},
		{"", ""},
		{"  ", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePhone(tc.in, "+91"), "in=%q", tc.in)
	}
}
