package rmsd

// DefaultThreshold is the fraction of its initial value below which a step
// size is considered converged.
const DefaultThreshold = 1e-9

// FitResult describes the translation found by Fit or FitNelderMead.
type FitResult struct {
	// The lowest Kabsch RMSD found.
	RMSD float64

	// The translation that was applied to the first point set.
	Offset Coords

	// A copy of the first point set with Offset applied.
	Coords []Coords

	// The number of sweeps (Fit) or major iterations (FitNelderMead).
	Iterations int
}

type fitConfig struct {
	threshold float64
	maxSweeps int
}

// FitOption tunes the search performed by Fit.
type FitOption func(*fitConfig)

// WithThreshold sets the fraction of the initial step size at which an axis
// is considered converged.
func WithThreshold(fraction float64) FitOption {
	return func(c *fitConfig) {
		c.threshold = fraction
	}
}

// WithMaxSweeps sets the number of sweeps after which Fit gives up with
// ErrNoConvergence. By default there is no limit: a step is only halved when
// neither direction improves the score, so a small point set far away from
// the other one can take tens of thousands of sweeps to get there. A limit
// of zero or less means no limit.
func WithMaxSweeps(n int) FitOption {
	return func(c *fitConfig) {
		c.maxSweeps = n
	}
}

// Fit searches for a translation of p that minimizes KabschRMSD(p, q).
//
// The search is a coordinate descent with a shrinking step. The step along
// each axis starts at the largest coordinate of p along that axis. Each sweep
// visits the axes in order: p is moved by +step, and if that does not lower
// the score, by -step. An improving move is kept (later axes in the same
// sweep see it); otherwise the step for that axis is halved. Sweeps continue
// until every step is at most its threshold.
//
// This is a greedy local search and can stop in a local minimum. Note also
// that the initial steps depend on the absolute coordinates of p rather than
// on its spread; for centered input they are bounded by the extent of p.
//
// p is not modified. The translated copy is returned in the result.
func Fit(p, q []Coords, opts ...FitOption) (*FitResult, error) {
	conf := fitConfig{
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(&conf)
	}

	best, err := KabschRMSD(p, q)
	if err != nil {
		return nil, err
	}

	work := clone(p)
	step := maxCoords(p)
	var threshold, offset Coords
	for i := range step {
		threshold[i] = step[i] * conf.threshold
	}

	sweeps := 0
	for {
		if conf.maxSweeps > 0 && sweeps >= conf.maxSweeps {
			return nil, ErrNoConvergence
		}
		sweeps++

		for i := 0; i < 3; i++ {
			var move Coords
			move[i] = step[i]
			if score := rmsdAfterMove(work, q, move); score < best {
				best = score
				translate(work, move)
				offset[i] += step[i]
				continue
			}

			move[i] = -step[i]
			if score := rmsdAfterMove(work, q, move); score < best {
				best = score
				translate(work, move)
				offset[i] -= step[i]
				continue
			}
			step[i] /= 2
		}

		if !(step[0] > threshold[0] ||
			step[1] > threshold[1] ||
			step[2] > threshold[2]) {
			break
		}
	}
	return &FitResult{
		RMSD:       best,
		Offset:     offset,
		Coords:     work,
		Iterations: sweeps,
	}, nil
}

// rmsdAfterMove returns the Kabsch RMSD of p translated by v against q.
// Both sets have already been validated.
func rmsdAfterMove(p, q []Coords, v Coords) float64 {
	moved := Translate(p, v)
	U, err := Kabsch(moved, q)
	if err != nil {
		// Only a failed SVD can get here. Treat it as no improvement.
		return inf
	}
	return rmsd(U.ApplyAll(moved), q)
}
