package native

import "testing"

func TestFitsULong(t *testing.T) {
	cases := []struct {
		n    uint64
		bits uint
		want bool
	}{
		{0, 32, true},
		{1<<32 - 1, 32, true},
		{1 << 32, 32, false},
		{1 << 40, 32, false},
		{1 << 40, 64, true},
		{^uint64(0), 64, true},
		{^uint64(0), 32, false},
	}
	for _, c := range cases {
		if got := fitsULong(c.n, c.bits); got != c.want {
			t.Errorf("fitsULong(%d, %d) = %v, want %v", c.n, c.bits, got, c.want)
		}
	}
}

func TestCheckNativeLen(t *testing.T) {
	if err := checkNativeLen(0); err != nil {
		t.Fatalf("zero length should be accepted: %v", err)
	}
	if err := checkNativeLen(1 << 20); err != nil {
		t.Fatalf("small length should be accepted: %v", err)
	}
	if err := checkNativeLen(-1); err == nil {
		t.Fatal("negative length must be rejected")
	}
}
