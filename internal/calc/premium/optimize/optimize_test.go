package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mix "MixLab/internal/calc/mix"
)

func testParams() mix.Params {
	return mix.Params{
		DensityKgM3:  2400,
		MoistureFA:   2,
		AbsorptionFA: 1,
		MoistureCA:   1,
		AbsorptionCA: 0.5,
		Costs:        mix.Rates{Cement: 7, FineAgg: 0.9, CoarseAgg: 0.8, Water: 0.05, Admixture: 120, SCM: 3.5},
		CO2:          mix.Rates{Cement: 0.9, FineAgg: 0.005, CoarseAgg: 0.0075, Water: 0.0003, Admixture: 1.5, SCM: 0.1},
	}
}

func TestRatios(t *testing.T) {
	assert.Equal(t, []float64{0.48, 0.49, 0.5, 0.51, 0.52}, Ratios(0.5))
	assert.Equal(t, []float64{0.3, 0.31, 0.32}, Ratios(0.3))
	assert.Equal(t, []float64{0.68, 0.69, 0.7}, Ratios(0.7))
	assert.Empty(t, Ratios(0.9))
}

func TestRatios_KeepsBaseOffStep(t *testing.T) {
	assert.Equal(t, []float64{0.584, 0.594, 0.604, 0.614, 0.624}, Ratios(0.604))
	assert.Equal(t, []float64{0.485, 0.495, 0.505, 0.515, 0.525}, Ratios(0.505))
	assert.Equal(t, []float64{0.695}, Ratios(0.715))
}

func TestOptimize_BaseOffStepStaysOnItsGrid(t *testing.T) {
	best, ok, err := Optimize(0.604, testParams())
	require.NoError(t, err)
	require.True(t, ok)

	// 0.604 and above break the w/c limit; 0.594 needs the least cement.
	assert.Equal(t, 0.594, best.WaterCementRatio)
	assert.Equal(t, 0.0, best.SCMPercent)
	assert.Equal(t, 313.1, best.CementKg)
}

func TestGrid_OrderAndSize(t *testing.T) {
	grid := Grid(0.5)
	require.Len(t, grid, 30)
	assert.Equal(t, Point{WaterCementRatio: 0.48, SCMPercent: 0}, grid[0])
	assert.Equal(t, Point{WaterCementRatio: 0.48, SCMPercent: 50}, grid[5])
	assert.Equal(t, Point{WaterCementRatio: 0.49, SCMPercent: 0}, grid[6])
	assert.Equal(t, Point{WaterCementRatio: 0.52, SCMPercent: 50}, grid[29])

	assert.Len(t, Grid(0.3), 18)
}

func TestFeasible(t *testing.T) {
	c := DefaultConstraints()
	assert.True(t, c.Feasible(mix.Result{CementKg: 300, WaterCementRatio: 0.6}))
	assert.False(t, c.Feasible(mix.Result{CementKg: 299.9, WaterCementRatio: 0.5}))
	assert.False(t, c.Feasible(mix.Result{CementKg: 350, WaterCementRatio: 0.61}))
}

func TestOptimize_PicksCheapestFeasible(t *testing.T) {
	p := testParams()
	best, ok, err := Optimize(0.5, p)
	require.NoError(t, err)
	require.True(t, ok)

	assert.InDelta(t, 0.52, best.WaterCementRatio, 1e-9)
	assert.Equal(t, 10.0, best.SCMPercent)

	c := DefaultConstraints()
	assert.True(t, c.Feasible(best))
	for _, pt := range Grid(0.5) {
		res, err := mix.Compute(pt.WaterCementRatio, pt.SCMPercent, p)
		require.NoError(t, err)
		if c.Feasible(res) {
			assert.LessOrEqual(t, best.TotalCost, res.TotalCost, "point %+v", pt)
		}
	}
}

func TestOptimize_HighSCMWhenCheapAndFeasible(t *testing.T) {
	p := testParams()
	p.Costs = mix.Rates{Cement: 7, SCM: 0.5}

	best, ok, err := Optimize(0.32, p)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 50.0, best.SCMPercent)
	assert.InDelta(t, 0.31, best.WaterCementRatio, 1e-9)
	assert.GreaterOrEqual(t, best.CementKg, 300.0)
}

func TestOptimize_NeverPicksInfeasible(t *testing.T) {
	p := testParams()
	// SCM is free, so the cheapest points overall are infeasible high-SCM ones.
	p.Costs = mix.Rates{Cement: 10}

	best, ok, err := Optimize(0.5, p)
	require.NoError(t, err)
	require.True(t, ok)
	assert.GreaterOrEqual(t, best.CementKg, 300.0)
	assert.LessOrEqual(t, best.WaterCementRatio, 0.6)
}

func TestOptimize_NoFeasibleMix(t *testing.T) {
	_, ok, err := Optimize(0.68, testParams())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOptimize_TiesKeepFirst(t *testing.T) {
	p := testParams()
	p.Costs = mix.Rates{}

	best, ok, err := Optimize(0.5, p)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0.48, best.WaterCementRatio)
	assert.Equal(t, 0.0, best.SCMPercent)
}

func TestOptimize_PropagatesInvalidParams(t *testing.T) {
	p := testParams()
	p.DensityKgM3 = 0
	_, _, err := Optimize(0.5, p)
	assert.ErrorIs(t, err, mix.ErrInvalidParameter)
}

func TestRun_FallsBackToDirectEvaluation(t *testing.T) {
	out, err := Run(Input{WaterCementRatio: 0.68, SCMPercent: 15, Params: testParams()})
	require.NoError(t, err)
	assert.False(t, out.Optimized)
	assert.Equal(t, 0.68, out.Result.WaterCementRatio)
	assert.Equal(t, 15.0, out.Result.SCMPercent)
	assert.Len(t, out.Cost, 6)
}

func TestRun_Optimized(t *testing.T) {
	out, err := Run(Input{WaterCementRatio: 0.5, SCMPercent: 0, Params: testParams()})
	require.NoError(t, err)
	assert.True(t, out.Optimized)
	assert.Equal(t, 10.0, out.Result.SCMPercent)
}
