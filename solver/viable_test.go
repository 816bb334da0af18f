package solver

import "testing"

func TestFullViableSetContainsEverything(t *testing.T) {
	vs := fullViableSet(3)
	for x := uint64(0); x < 8; x++ {
		if !vs.contains(x) {
			t.Errorf("fullViableSet(3) missing %d", x)
		}
	}
}

func TestExcludingDropsExactlyOneValue(t *testing.T) {
	vs := excluding(3, 5)
	for x := uint64(0); x < 8; x++ {
		want := x != 5
		if vs.contains(x) != want {
			t.Errorf("excluding(3,5).contains(%d): got %v, want %v", x, vs.contains(x), want)
		}
	}
}

func TestIntersectAndRestoreRoundTrips(t *testing.T) {
	vs := fullViableSet(2)
	other := excluding(2, 1)
	prior := vs.intersect(other)
	if vs.contains(1) {
		t.Fatalf("intersect did not exclude 1")
	}
	vs.restore(prior)
	if !vs.contains(1) {
		t.Errorf("restore did not bring back 1")
	}
}

func TestFindViablePrefersHint(t *testing.T) {
	vs := fullViableSet(2)
	vs.intersect(excluding(2, 0))
	res, val := vs.findViable(2)
	if res != findMultiple || val != 2 {
		t.Errorf("findViable(2): got (%v,%v), want (findMultiple,2)", res, val)
	}
}

func TestFindViableSingleton(t *testing.T) {
	vs := &viableSet{width: 2, bits: newBigInt(0)}
	vs.bits.SetBit(vs.bits, 3, 1)
	res, val := vs.findViable(0)
	if res != findSingleton || val != 3 {
		t.Errorf("findViable on singleton {3}: got (%v,%v)", res, val)
	}
}

func TestFindViableEmpty(t *testing.T) {
	vs := &viableSet{width: 2, bits: newBigInt(0)}
	res, _ := vs.findViable(0)
	if res != findEmpty {
		t.Errorf("findViable on empty set: got %v, want findEmpty", res)
	}
}

func TestExcludingRangeWraps(t *testing.T) {
	// [6, 2) mod 8 == {6, 7, 0, 1}
	vs := excludingRange(3, 6, 2)
	for _, x := range []uint64{6, 7, 0, 1} {
		if !vs.contains(x) {
			t.Errorf("excludingRange(3,6,2) missing wrapped member %d", x)
		}
	}
	for _, x := range []uint64{2, 3, 4, 5} {
		if vs.contains(x) {
			t.Errorf("excludingRange(3,6,2) unexpectedly contains %d", x)
		}
	}
}

func TestValuesSatisfyingULE(t *testing.T) {
	// {x in [0,4) : x <=u 2}
	vs := valuesSatisfyingULE(2, 1, 0, 0, 2)
	for x := uint64(0); x < 4; x++ {
		want := x <= 2
		if vs.contains(x) != want {
			t.Errorf("valuesSatisfyingULE x=%d: got %v, want %v", x, vs.contains(x), want)
		}
	}
}
