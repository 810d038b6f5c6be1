package services

import (
	"testing"
	"time"
)

func TestNextApplicationNumber(t *testing.T) {
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		last string
		want string
	}{
		{"first of the day", "", "IRB-20260310-0001"},
		{"follows highest issued", "IRB-20260310-0007", "IRB-20260310-0008"},
		{"past four digits", "IRB-20260310-9999", "IRB-20260310-10000"},
		{"other day resets", "IRB-20260309-0042", "IRB-20260310-0001"},
		{"garbage suffix resets", "IRB-20260310-00xy", "IRB-20260310-0001"},
	}

	for _, tc := range cases {
		if got := NextApplicationNumber(tc.last, day); got != tc.want {
			t.Errorf("%s: NextApplicationNumber(%q) = %q, want %q", tc.name, tc.last, got, tc.want)
		}
	}
}
