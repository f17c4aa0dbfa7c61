package rmsd

import (
	"math"
)

// Coords is a single point in three dimensions.
type Coords [3]float64

// Add returns the component-wise sum of c and v.
func (c Coords) Add(v Coords) Coords {
	return Coords{c[0] + v[0], c[1] + v[1], c[2] + v[2]}
}

// Sub returns the component-wise difference of c and v.
func (c Coords) Sub(v Coords) Coords {
	return Coords{c[0] - v[0], c[1] - v[1], c[2] - v[2]}
}

// Centroid calculates the average position of a set of points.
// ErrEmpty is returned if there are no points.
func Centroid(points []Coords) (Coords, error) {
	if len(points) == 0 {
		return Coords{}, ErrEmpty
	}
	var sum Coords
	for _, c := range points {
		sum = sum.Add(c)
	}
	n := float64(len(points))
	return Coords{sum[0] / n, sum[1] / n, sum[2] / n}, nil
}

// Center returns a copy of points translated so that its centroid is at the
// origin, along with the centroid that was subtracted.
func Center(points []Coords) ([]Coords, Coords, error) {
	c, err := Centroid(points)
	if err != nil {
		return nil, Coords{}, err
	}
	return Translate(points, Coords{-c[0], -c[1], -c[2]}), c, nil
}

// Translate returns a copy of points with v added to every point.
func Translate(points []Coords, v Coords) []Coords {
	moved := make([]Coords, len(points))
	for i, c := range points {
		moved[i] = c.Add(v)
	}
	return moved
}

// translate adds v to every point in place.
func translate(points []Coords, v Coords) {
	for i := range points {
		points[i] = points[i].Add(v)
	}
}

// RMSD returns the root of the mean squared distance between paired points
// of struct1 and struct2. No superposition is performed.
//
// A *LengthError is returned if the sets have different lengths and ErrEmpty
// if they have no points.
func RMSD(struct1, struct2 []Coords) (float64, error) {
	if err := checkPair(struct1, struct2); err != nil {
		return 0, err
	}
	return rmsd(struct1, struct2), nil
}

// rmsd assumes that both sets are non-empty and of equal length.
func rmsd(struct1, struct2 []Coords) float64 {
	var sum, dist float64
	for i := range struct1 {
		for d := 0; d < 3; d++ {
			dist = struct1[i][d] - struct2[i][d]
			sum += dist * dist
		}
	}
	return math.Sqrt(sum / float64(len(struct1)))
}

// maxCoords returns the largest value along each axis.
func maxCoords(points []Coords) Coords {
	m := points[0]
	for _, c := range points[1:] {
		for d := 0; d < 3; d++ {
			m[d] = math.Max(m[d], c[d])
		}
	}
	return m
}

func clone(points []Coords) []Coords {
	cp := make([]Coords, len(points))
	copy(cp, points)
	return cp
}
