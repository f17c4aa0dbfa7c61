package rmsd

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

var inf = math.Inf(1)

// FitNelderMead minimizes KabschRMSD(p + t, q) over the translation t with
// the Nelder-Mead simplex method, starting from t = 0.
//
// It optimizes the same objective as Fit but moves all three components of
// the translation at once, which can escape some of the axis-aligned valleys
// that trap coordinate descent. The result is never worse than
// KabschRMSD(p, q). p is not modified.
func FitNelderMead(p, q []Coords) (*FitResult, error) {
	start, err := KabschRMSD(p, q)
	if err != nil {
		return nil, err
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return rmsdAfterMove(p, q, Coords{x[0], x[1], x[2]})
		},
	}
	result, err := optimize.Minimize(
		problem, []float64{0, 0, 0}, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("rmsd: nelder-mead: %w", err)
	}

	res := &FitResult{
		RMSD:       start,
		Coords:     clone(p),
		Iterations: result.Stats.MajorIterations,
	}
	if result.F < start {
		res.RMSD = result.F
		res.Offset = Coords{result.X[0], result.X[1], result.X[2]}
		res.Coords = Translate(p, res.Offset)
	}
	return res, nil
}
