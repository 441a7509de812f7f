package flopsbench

// Dim3 represents 3D dimensions for grid and workgroup configurations.
// It mirrors the dim3 triple passed to a GPU compute dispatch.
type Dim3 struct {
	X, Y, Z uint32
}

// Volume returns X*Y*Z, the number of cells the dimensions describe.
func (d Dim3) Volume() uint64 {
	return uint64(d.X) * uint64(d.Y) * uint64(d.Z)
}

// WorkgroupSize is the fixed shape of one workgroup.
var WorkgroupSize = Dim3{X: WorkgroupX, Y: WorkgroupY, Z: 1}

// MaxIterations is the largest workgroup count a grid can hold.
const MaxIterations = uint64(MaxGridDim) * MaxGridDim * MaxGridDim

// Kernel is one invocation of a workload at global coordinates (gx, gy, gz).
type Kernel func(gx, gy, gz uint32)

// GridFor returns a grid of at most MaxGridDim cells per axis covering
// roughly n workgroups.
//
// The decomposition truncates X, so Volume may be slightly below n. The
// executed volume, not n, is the amount of work actually done; callers
// computing throughput from n inherit that bias.
func GridFor(n uint64) Dim3 {
	if n < 1 {
		n = 1
	}
	if n > MaxIterations {
		n = MaxIterations
	}

	const plane = uint64(MaxGridDim) * MaxGridDim
	var x, y, z uint64
	if n > plane {
		z = ceilDiv(n, plane)
		remaining := n / z
		y = ceilDiv(remaining, MaxGridDim)
		x = remaining / y
	} else {
		z = 1
		y = ceilDiv(n, MaxGridDim)
		x = n / y
	}
	return Dim3{X: uint32(x), Y: uint32(y), Z: uint32(z)}
}

func ceilDiv(a, b uint64) uint64 {
	return (a + b - 1) / b
}

// Dispatch runs k once for every invocation of every workgroup in grid.
//
// Workgroups are visited z-major, then y, then x. Invocation (i, j) of
// workgroup (x, y, z) receives coordinates (x*32+i, y*4+j, z). Everything
// runs on the calling goroutine.
func Dispatch(grid Dim3, k Kernel) {
	for z := uint32(0); z < grid.Z; z++ {
		for y := uint32(0); y < grid.Y; y++ {
			for x := uint32(0); x < grid.X; x++ {
				for j := uint32(0); j < WorkgroupSize.Y; j++ {
					gy := y*WorkgroupSize.Y + j
					for i := uint32(0); i < WorkgroupSize.X; i++ {
						k(x*WorkgroupSize.X+i, gy, z)
					}
				}
			}
		}
	}
}
