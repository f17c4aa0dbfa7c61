package rmsd

// Rotation represents a 3x3 matrix, in row-major order
// | 0 1 2 |
// | 3 4 5 |
// | 6 7 8 |
//
// Points are treated as row vectors, so a point c is rotated as c·R.
type Rotation [9]float64

// Identity is the rotation that leaves every point where it is.
var Identity = Rotation{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}

func (a Rotation) Mult(b Rotation) Rotation {
	return Rotation{
		a[0]*b[0] + a[1]*b[3] + a[2]*b[6],
		a[0]*b[1] + a[1]*b[4] + a[2]*b[7],
		a[0]*b[2] + a[1]*b[5] + a[2]*b[8],

		a[3]*b[0] + a[4]*b[3] + a[5]*b[6],
		a[3]*b[1] + a[4]*b[4] + a[5]*b[7],
		a[3]*b[2] + a[4]*b[5] + a[5]*b[8],

		a[6]*b[0] + a[7]*b[3] + a[8]*b[6],
		a[6]*b[1] + a[7]*b[4] + a[8]*b[7],
		a[6]*b[2] + a[7]*b[5] + a[8]*b[8],
	}
}

func (a Rotation) Transpose() Rotation {
	return Rotation{
		a[0], a[3], a[6],
		a[1], a[4], a[7],
		a[2], a[5], a[8],
	}
}

func (a Rotation) Det() float64 {
	// 048 + 156 + 237 - 246 - 138 - 057
	return a[0]*a[4]*a[8] +
		a[1]*a[5]*a[6] +
		a[2]*a[3]*a[7] -
		a[2]*a[4]*a[6] -
		a[1]*a[3]*a[8] -
		a[0]*a[5]*a[7]
}

// Apply returns the row vector c multiplied by a.
func (a Rotation) Apply(c Coords) Coords {
	return Coords{
		c[0]*a[0] + c[1]*a[3] + c[2]*a[6],
		c[0]*a[1] + c[1]*a[4] + c[2]*a[7],
		c[0]*a[2] + c[1]*a[5] + c[2]*a[8],
	}
}

// ApplyAll returns a new slice with every point of points multiplied by a.
func (a Rotation) ApplyAll(points []Coords) []Coords {
	rotated := make([]Coords, len(points))
	for i, c := range points {
		rotated[i] = a.Apply(c)
	}
	return rotated
}

// covariance computes the 3x3 cross-covariance matrix (P^T)Q of two point
// sets of equal length.
func covariance(p, q []Coords) [9]float64 {
	var C [9]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			for i := range p {
				C[r*3+c] += p[i][r] * q[i][c]
			}
		}
	}
	return C
}
