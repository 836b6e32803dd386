package city

import (
	"math"
	"sort"
	"testing"
)

func testParams() Params {
	return Params{
		ChunkLength:     1000,
		Buildings:       8,
		RoadWidth:       8,
		LaneMargin:      2,
		Spread:          60,
		WidthMin:        4,
		WidthMax:        12,
		DepthMin:        4,
		DepthMax:        12,
		HeightMin:       10,
		HeightMax:       60,
		LandmarkChance:  0.05,
		LandmarkScale:   1.8,
		BeaconMinHeight: 50,
		Theme:           ThemeByName("dusk"),
	}
}

// checkGapless verifies the chunks' spans tile one contiguous interval of
// length K*chunkLength with no gap and no overlap.
func checkGapless(t *testing.T, p *Pool) {
	t.Helper()
	offsets := make([]float64, 0, p.Len())
	for slot := 0; slot < p.Len(); slot++ {
		offsets = append(offsets, p.Chunk(slot).Offset)
	}
	sort.Float64s(offsets)
	for i := 1; i < len(offsets); i++ {
		if d := offsets[i] - offsets[i-1]; math.Abs(d-p.length) > 1e-9 {
			t.Fatalf("spans not contiguous: offsets %v, gap %v at %d", offsets, d, i)
		}
	}
}

func TestPoolInitialLayout(t *testing.T) {
	pool := NewPool(42, 3, testParams())

	for slot := 0; slot < 3; slot++ {
		want := -float64(slot) * 1000
		if got := pool.Chunk(slot).Offset; got != want {
			t.Fatalf("slot %d: offset = %v, want %v", slot, got, want)
		}
	}
	order := pool.Ordered(nil)
	for i, c := range order {
		if c.Slot != i {
			t.Fatalf("initial order[%d] = slot %d, want %d", i, c.Slot, i)
		}
	}
	checkGapless(t, pool)
}

func TestPoolRecycleDistances(t *testing.T) {
	pool := NewPool(42, 3, testParams())

	// 1000 units of travel in uneven steps: slot 0 teleports to -3000 and the
	// pool order rotates to [1 2 0].
	for i := 0; i < 9; i++ {
		if n := pool.Advance(111); n != 0 {
			t.Fatalf("premature recycle after %d units", (i+1)*111)
		}
	}
	if n := pool.Advance(1); n != 1 {
		t.Fatalf("Advance(1) at threshold: %d recycles, want 1", n)
	}
	if got := pool.Chunk(0).Offset; got != -3000 {
		t.Fatalf("slot 0 offset = %v, want -3000", got)
	}
	wantOrder := []int{1, 2, 0}
	for i, c := range pool.Ordered(nil) {
		if c.Slot != wantOrder[i] {
			t.Fatalf("order after 1 recycle: got slot %d at %d, want %d", c.Slot, i, wantOrder[i])
		}
	}

	// Another 1000 units: slot 1 to -4000, order [2 0 1].
	if n := pool.Advance(1000); n != 1 {
		t.Fatalf("second recycle: %d events, want 1", n)
	}
	if got := pool.Chunk(1).Offset; got != -4000 {
		t.Fatalf("slot 1 offset = %v, want -4000", got)
	}
	wantOrder = []int{2, 0, 1}
	for i, c := range pool.Ordered(nil) {
		if c.Slot != wantOrder[i] {
			t.Fatalf("order after 2 recycles: got slot %d at %d, want %d", c.Slot, i, wantOrder[i])
		}
	}
	checkGapless(t, pool)
}

func TestPoolCounterStaysBounded(t *testing.T) {
	pool := NewPool(7, 3, testParams())
	rng := NewRand(99)

	for i := 0; i < 20000; i++ {
		pool.Advance(rng.RangeF(0, 45))
		if tr := pool.Traveled(); tr < 0 || tr >= pool.length {
			t.Fatalf("step %d: traveled %v outside [0, %v)", i, tr, pool.length)
		}
	}
	checkGapless(t, pool)
}

func TestPoolFractionalTravelCarries(t *testing.T) {
	pool := NewPool(1, 3, testParams())

	pool.Advance(999.75)
	if n := pool.Advance(0.5); n != 1 {
		t.Fatalf("expected recycle crossing threshold, got %d", n)
	}
	if tr := pool.Traveled(); math.Abs(tr-0.25) > 1e-9 {
		t.Fatalf("fractional travel lost: traveled %v, want 0.25", tr)
	}
}

func TestPoolMultiRecycleSingleAdvance(t *testing.T) {
	pool := NewPool(1, 3, testParams())

	if n := pool.Advance(2500); n != 2 {
		t.Fatalf("Advance(2500) = %d recycles, want 2", n)
	}
	if tr := pool.Traveled(); math.Abs(tr-500) > 1e-9 {
		t.Fatalf("traveled %v, want 500", tr)
	}
	checkGapless(t, pool)
}
