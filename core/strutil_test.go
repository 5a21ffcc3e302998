package core

import "testing"

func TestUtoa(t *testing.T) {
	testCases := []struct {
		n        uint32
		expected string
	}{
		{0, "0"},
		{7, "7"},
		{250, "250"},
		{262140, "262140"},
		{4294967295, "4294967295"},
	}

	for _, tc := range testCases {
		if got := utoa(tc.n); got != tc.expected {
			t.Errorf("utoa(%d) = %q, want %q", tc.n, got, tc.expected)
		}
	}
}

func TestItoa(t *testing.T) {
	if got := itoa(-42); got != "-42" {
		t.Errorf("itoa(-42) = %q, want -42", got)
	}
	if got := itoa(0); got != "0" {
		t.Errorf("itoa(0) = %q, want 0", got)
	}
	if got := itoa(125000); got != "125000" {
		t.Errorf("itoa(125000) = %q, want 125000", got)
	}
}
