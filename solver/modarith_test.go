package solver

import "testing"

func TestNegModIsAdditiveInverse(t *testing.T) {
	for _, w := range []uint{2, 3, 4, 8} {
		for a := uint64(0); a < 1<<w; a++ {
			if got := (a + negMod(a, w)) & ((1 << w) - 1); got != 0 {
				t.Errorf("width %d: a=%d + negMod(a)=%d = %d, want 0", w, a, negMod(a, w), got)
			}
		}
	}
}

func TestModMulWraps(t *testing.T) {
	if got := modMul(5, 6, 4); got != (30 % 16) {
		t.Errorf("modMul(5,6,4): got %d, want %d", got, 30%16)
	}
}

func TestSingletonViableContainsOnlyThatValue(t *testing.T) {
	vs := singletonViable(3, 5)
	for x := uint64(0); x < 8; x++ {
		want := x == 5
		if vs.contains(x) != want {
			t.Errorf("singletonViable(3,5).contains(%d): got %v, want %v", x, vs.contains(x), want)
		}
	}
}
