package rmsd

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitNeverWorse(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 30; i++ {
		p, q := centeredPair(t, rng, 8)
		k, err := KabschRMSD(p, q)
		require.NoError(t, err)

		fit, err := Fit(p, q)
		require.NoError(t, err)
		assert.LessOrEqual(t, fit.RMSD, k)
		assert.Greater(t, fit.Iterations, 0)
	}
}

func TestFitRecoversTranslation(t *testing.T) {
	// q is p rotated about Z and then pushed further from the origin. No
	// rotation about the origin can undo a push along the direction of the
	// centroid.
	p := []Coords{
		{1.0, 0.5, 0.2},
		{2.0, 1.5, 0.4},
		{0.5, 2.5, 1.0},
		{1.5, 1.0, 2.0},
		{2.5, 2.0, 1.5},
	}
	q := Translate(rotZ(0.4).ApplyAll(p), Coords{0.2, 0.4, 0.2})

	k, err := KabschRMSD(p, q)
	require.NoError(t, err)
	require.Greater(t, k, 0.05)

	fit, err := Fit(p, q)
	require.NoError(t, err)
	assert.Less(t, fit.RMSD, k)

	// The reported RMSD is the score of the translated copy.
	again, err := KabschRMSD(fit.Coords, q)
	require.NoError(t, err)
	assert.InDelta(t, fit.RMSD, again, tolerance)
	for i, c := range Translate(p, fit.Offset) {
		for d := 0; d < 3; d++ {
			assert.InDelta(t, c[d], fit.Coords[i][d], tolerance)
		}
	}
}

func TestFitLeavesInput(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	p, q := randomPoints(rng, 6), randomPoints(rng, 6)
	pc, qc := clone(p), clone(q)

	_, err := Fit(p, q)
	require.NoError(t, err)
	assert.Equal(t, pc, p)
	assert.Equal(t, qc, q)

	_, err = FitNelderMead(p, q)
	require.NoError(t, err)
	assert.Equal(t, pc, p)
	assert.Equal(t, qc, q)
}

func TestFitErrors(t *testing.T) {
	_, err := Fit(triangle, triangle[:2])
	require.ErrorIs(t, err, ErrLength)

	_, err = Fit(nil, nil)
	require.ErrorIs(t, err, ErrEmpty)

	_, err = FitNelderMead(triangle[:1], triangle)
	require.ErrorIs(t, err, ErrLength)

	rng := rand.New(rand.NewSource(13))
	p, q := centeredPair(t, rng, 5)
	_, err = Fit(p, q, WithMaxSweeps(1))
	require.ErrorIs(t, err, ErrNoConvergence)
}

func TestFitThreshold(t *testing.T) {
	rng := rand.New(rand.NewSource(14))
	p, q := centeredPair(t, rng, 7)

	coarse, err := Fit(p, q, WithThreshold(1e-2))
	require.NoError(t, err)
	fine, err := Fit(p, q)
	require.NoError(t, err)
	assert.Less(t, coarse.Iterations, fine.Iterations)
}

func TestFitZeroSteps(t *testing.T) {
	// Every maximum is zero, so there is nothing to search.
	p := []Coords{{0, 0, 0}, {-1, -2, -3}, {-2, 0, -1}}
	q := []Coords{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	fit, err := Fit(p, q)
	require.NoError(t, err)
	assert.Equal(t, 1, fit.Iterations)
	assert.Equal(t, Coords{}, fit.Offset)
}

func TestFitNelderMeadNeverWorse(t *testing.T) {
	rng := rand.New(rand.NewSource(15))
	for i := 0; i < 10; i++ {
		p, q := centeredPair(t, rng, 8)
		k, err := KabschRMSD(p, q)
		require.NoError(t, err)

		fit, err := FitNelderMead(p, q)
		require.NoError(t, err)
		assert.LessOrEqual(t, fit.RMSD, k)

		again, err := KabschRMSD(fit.Coords, q)
		require.NoError(t, err)
		assert.InDelta(t, fit.RMSD, again, tolerance)
	}
}

func TestFitDistantTarget(t *testing.T) {
	// p is tiny, so its steps are tiny too. A step is never halved while it
	// keeps improving the score, so reaching q takes about 100/0.003 sweeps.
	p := []Coords{
		{0.003, 0, 0},
		{0, 0.003, 0},
		{0, 0, 0.003},
		{0.001, 0.002, 0.001},
	}
	q := Translate(p, Coords{100, 100, 100})

	fit, err := Fit(p, q)
	require.NoError(t, err)
	assert.Greater(t, fit.Iterations, 10000)
	assert.Less(t, fit.RMSD, 1e-4)
}

// octahedron is centered and its cross-covariance with any translated copy
// of itself is diagonal and positive, so the Kabsch rotation is the identity
// and the Kabsch RMSD of a copy moved by s is just |s|. That makes every step
// of Fit easy to follow by hand.
var octahedron = []Coords{
	{1, 0, 0}, {-1, 0, 0},
	{0, 2, 0}, {0, -2, 0},
	{0, 0, 3}, {0, 0, -3},
}

func TestFitSteps(t *testing.T) {
	tests := []struct {
		name       string
		shift      Coords
		offset     Coords
		iterations int
	}{
		// The steps start at (0.5, 2, 3). One +0.5 move along x reaches q
		// in the first sweep, so x starts halving a sweep after y and z do
		// and needs one more sweep to fall below 0.5e-9.
		{"plus step", Coords{-0.5, 0, 0}, Coords{0.5, 0, 0}, 31},

		// The step along x starts at -1, and only moving by -step helps.
		// Two sweeps of that reach q. A negative step is never above its
		// negative threshold, so y and z decide: 30 halvings each.
		{"minus step", Coords{-2, 0, 0}, Coords{2, 0, 0}, 30},

		// The steps start at (0.5, 1, 3). The x move lowers the score from
		// |(-0.5, -1, 0)| to 1, and the y move in the same sweep sees it and
		// lowers the score to 0.
		{"axes in order", Coords{-0.5, -1, 0}, Coords{0.5, 1, 0}, 31},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := Translate(octahedron, test.shift)
			fit, err := Fit(p, octahedron)
			require.NoError(t, err)
			assert.Equal(t, test.offset, fit.Offset)
			assert.Equal(t, test.iterations, fit.Iterations)
			assert.InDelta(t, 0, fit.RMSD, tolerance)
		})
	}
}

func TestFitStopsEarly(t *testing.T) {
	// From (-0.5, -1, 0) the x move alone gives a score of exactly 1.
	p := Translate(octahedron, Coords{-0.5, -1, 0})
	k, err := KabschRMSD(p, octahedron)
	require.NoError(t, err)
	assert.InDelta(t, 1.118033988749895, k, tolerance)

	moved := Translate(p, Coords{0.5, 0, 0})
	k, err = KabschRMSD(moved, octahedron)
	require.NoError(t, err)
	assert.InDelta(t, 1, k, tolerance)
}
