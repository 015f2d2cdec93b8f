package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"0701020304", "+2250701020304", true},
		{"+2250701020304", "+2250701020304", true},
		{"07 01 02 03 04", "+2250701020304", true},
		{"07.01.02.03.04", "+2250701020304", true},
		{"07-01-02-03-04", "+2250701020304", true},
		{"  0701020304  ", "+2250701020304", true},
		{"070102030", "", false},
		{"07010203045", "", false},
		{"+33701020304", "", false},
		{"07010203ab", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizePhone(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestPhoneToEmail(t *testing.T) {
	assert.Equal(t, "2250701020304@monrepetiteur.local", PhoneToEmail("+2250701020304"))
}
