package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		s    string
		def  int
		want int
	}{
		{"", 10, 10},
		{"42", 0, 42},
		{"-13", 1, -13},
		{"x", 5, 5},
		{" 42", 7, 7},
		{"999999999999999999999999", -1, -1},
	}
	for _, tc := range cases {
		if got := AtoiDefault(tc.s, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.s, tc.def, got, tc.want)
		}
	}
}

func TestPageParams(t *testing.T) {
	cases := []struct {
		page, size         string
		wantPage, wantSize int
	}{
		{"", "", 1, 20},
		{"3", "10", 3, 10},
		{"0", "0", 1, 1},
		{"-2", "500", 1, 100},
		{"abc", "xyz", 1, 20},
	}
	for _, tc := range cases {
		p, s := PageParams(tc.page, tc.size, 20, 100)
		if p != tc.wantPage || s != tc.wantSize {
			t.Fatalf("PageParams(%q,%q) = (%d,%d); want (%d,%d)", tc.page, tc.size, p, s, tc.wantPage, tc.wantSize)
		}
	}
}

func TestTotalPages(t *testing.T) {
	if TotalPages(0, 10) != 0 || TotalPages(10, 10) != 1 || TotalPages(11, 10) != 2 || TotalPages(5, 0) != 0 {
		t.Fatal("unexpected TotalPages result")
	}
}

func TestWeakETag(t *testing.T) {
	if got := WeakETag("surveys", "gas-user-abc1234", 3, int64(1700000000)); got != `W/"surveys:gas-user-abc1234:3:1700000000"` {
		t.Fatalf("WeakETag = %s", got)
	}
}
