package flopsbench

import "testing"

func TestGridFor(t *testing.T) {
	tests := []struct {
		n    uint64
		want Dim3
	}{
		{0, Dim3{1, 1, 1}},
		{1, Dim3{1, 1, 1}},
		{128, Dim3{128, 1, 1}},
		{10000, Dim3{10000, 1, 1}},
		{10001, Dim3{5000, 2, 1}},
		{25000, Dim3{8333, 3, 1}},
		{100000000, Dim3{10000, 10000, 1}},
		{100000001, Dim3{10000, 5000, 2}},
		{250000000, Dim3{9999, 8334, 3}},
	}

	for _, tt := range tests {
		if got := GridFor(tt.n); got != tt.want {
			t.Errorf("GridFor(%d) = %+v, want %+v", tt.n, got, tt.want)
		}
	}
}

func TestGridForBounds(t *testing.T) {
	check := func(n uint64) {
		g := GridFor(n)
		if g.X < 1 || g.Y < 1 || g.Z < 1 {
			t.Fatalf("GridFor(%d) = %+v has an empty axis", n, g)
		}
		if g.X > MaxGridDim || g.Y > MaxGridDim || g.Z > MaxGridDim {
			t.Fatalf("GridFor(%d) = %+v exceeds %d", n, g, MaxGridDim)
		}
	}

	for n := uint64(1); n <= 30000; n++ {
		check(n)
	}
	for n := uint64(1); n < 1<<62; n = n*3 + 1 {
		check(n)
	}
	check(MaxIterations)
	check(MaxIterations + 1)
	check(^uint64(0))
}

func TestGridForVolumeNearRequest(t *testing.T) {
	// Truncating X loses less than one row per plane.
	for _, n := range []uint64{1, 7, 9999, 10001, 12345, 99999999, 100000001, 123456789012} {
		g := GridFor(n)
		v := g.Volume()
		if v > n {
			t.Errorf("GridFor(%d) volume %d exceeds request", n, v)
		}
		if slack := uint64(g.Y) * uint64(g.Z); n-v > slack+n/uint64(MaxGridDim*MaxGridDim) {
			t.Errorf("GridFor(%d) volume %d loses more than %d", n, v, slack)
		}
	}
}

func TestDispatchVisitsEveryInvocation(t *testing.T) {
	grid := Dim3{X: 3, Y: 2, Z: 2}
	seen := make(map[[3]uint32]int)
	Dispatch(grid, func(gx, gy, gz uint32) {
		seen[[3]uint32{gx, gy, gz}]++
	})

	want := int(grid.Volume()) * WorkgroupInvocations
	if len(seen) != want {
		t.Fatalf("visited %d distinct coordinates, want %d", len(seen), want)
	}
	for c, count := range seen {
		if count != 1 {
			t.Errorf("coordinate %v visited %d times", c, count)
		}
		if c[0] >= grid.X*WorkgroupX || c[1] >= grid.Y*WorkgroupY || c[2] >= grid.Z {
			t.Errorf("coordinate %v outside the dispatch", c)
		}
	}
}

func TestDispatchOrder(t *testing.T) {
	var coords [][3]uint32
	Dispatch(Dim3{X: 2, Y: 1, Z: 1}, func(gx, gy, gz uint32) {
		coords = append(coords, [3]uint32{gx, gy, gz})
	})

	if len(coords) != 2*WorkgroupInvocations {
		t.Fatalf("got %d invocations", len(coords))
	}
	first, second := coords[0], coords[WorkgroupInvocations]
	if first != [3]uint32{0, 0, 0} {
		t.Errorf("first invocation at %v", first)
	}
	// The second workgroup starts 32 columns to the right.
	if second != [3]uint32{WorkgroupX, 0, 0} {
		t.Errorf("second workgroup starts at %v", second)
	}
	if last := coords[len(coords)-1]; last != [3]uint32{2*WorkgroupX - 1, WorkgroupY - 1, 0} {
		t.Errorf("last invocation at %v", last)
	}
}

func TestDim3Volume(t *testing.T) {
	if v := (Dim3{MaxGridDim, MaxGridDim, MaxGridDim}).Volume(); v != MaxIterations {
		t.Errorf("Volume() = %d, want %d", v, MaxIterations)
	}
	if v := WorkgroupSize.Volume(); v != WorkgroupInvocations {
		t.Errorf("workgroup volume %d, want %d", v, WorkgroupInvocations)
	}
}
