package rmsd

import (
	"fmt"

	matrix "github.com/skelterjohn/go.matrix"
)

// Kabsch computes the rotation that best superimposes p onto q in the
// least-squares sense. Both sets should already be centered; Kabsch does not
// subtract centroids itself.
//
// A brief, high-level overview:
//
// Compute the covariance matrix C = (P^T)Q
//
// Compute the SVD (Singular Value Decomposition) of C = VS(W^T)
//
// If det(V)det(W) < 0, negate the last column of V (and, implicitly, the
// last singular value).
//
// Compute the optimal rotation U = V(W^T)
//
// For degenerate input (collinear points, or fewer than three points) the
// SVD is not unique and neither is the rotation. Whatever the decomposition
// yields is returned; it is still proper and still optimal, but it may not be
// stable under small perturbations of the input.
func Kabsch(p, q []Coords) (Rotation, error) {
	if err := checkPair(p, q); err != nil {
		return Rotation{}, err
	}

	C := covariance(p, q)
	V, _, W, err := matrix.MakeDenseMatrix(C[:], 3, 3).SVD()
	if err != nil {
		return Rotation{}, fmt.Errorf("rmsd: singular value decomposition: %w",
			err)
	}

	// If the product of the determinants is negative, V(W^T) is an
	// "improper rotation" (a reflection). Flipping the axis that belongs to
	// the smallest singular value makes the rotation proper at the least
	// possible cost in RMSD.
	if V.Det()*W.Det() < 0 {
		for i := 0; i < 3; i++ {
			V.Set(i, 2, -V.Get(i, 2))
		}
	}

	return rotation(V).Mult(rotation(W).Transpose()), nil
}

// rotation copies a 3x3 go.matrix matrix.
func rotation(m *matrix.DenseMatrix) Rotation {
	var r Rotation
	for i := range r {
		r[i] = m.Get(i/3, i%3)
	}
	return r
}

// Rotate returns p expressed in the frame of q: a new slice containing p
// multiplied by the rotation from Kabsch.
func Rotate(p, q []Coords) ([]Coords, error) {
	U, err := Kabsch(p, q)
	if err != nil {
		return nil, err
	}
	return U.ApplyAll(p), nil
}

// KabschRMSD returns the RMSD between p and q after p has been optimally
// rotated onto q. Translation is held fixed: p and q are not re-centered, so
// the result depends on where their centroids lie.
func KabschRMSD(p, q []Coords) (float64, error) {
	rotated, err := Rotate(p, q)
	if err != nil {
		return 0, err
	}
	return rmsd(rotated, q), nil
}
