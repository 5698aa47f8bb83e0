package heating

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/wildstyl3r/dustheat/internal/constants"
	"github.com/wildstyl3r/dustheat/internal/utils"
)

const (
	referenceDensity = 1e-20 // [g cm^-3]
	referenceRadius  = 5e-3  // [micron]
)

func referenceDensities() (nH, nE float64) {
	nH = referenceDensity * constants.SolarHydrogenFraction / constants.MassH
	return nH, constants.ElectronsPerHydrogen * nH
}

func TestCollisionalHeatingNonNegative(t *testing.T) {
	for _, a := range []float64{1e-3, 5e-3, 0.1, 1.} {
		for _, nH := range []float64{0, 1, 4.3e3} {
			for _, temp := range utils.LogSpace(0., 9., 91) {
				rate := CollisionalHeating(temp, a, nH)
				assert.True(t, utils.IsFinite(rate), "a=%g n=%g T=%g", a, nH, temp)
				assert.GreaterOrEqual(t, rate, 0., "a=%g n=%g T=%g", a, nH, temp)

				h := CollisionalEfficiency(temp, a)
				assert.GreaterOrEqual(t, h, 0.)
				assert.LessOrEqual(t, h, 1.)
			}
		}
	}
}

func TestCollisionalEfficiencyLimits(t *testing.T) {
	assert.Equal(t, 1., CollisionalEfficiency(1., referenceRadius))

	// y << 1: h_n = y/2 - y^3/12 + ...
	temp := 1e12
	y := 1e3 * constants.EVToErg * 133. * referenceRadius / (constants.KBoltz * temp)
	series := y/2 - y*y*y/12
	assert.True(t, scalar.EqualWithinRel(series, CollisionalEfficiency(temp, referenceRadius), 1e-9))

	literal := 1 - (1+y/2)*math.Exp(-y)
	assert.InDelta(t, literal, CollisionalEfficiency(temp, referenceRadius), 1e-12)
}

func TestElectronEfficiencyBounds(t *testing.T) {
	xs := utils.LogSpace(-4., 4., 200)
	prev := 0.
	for _, x := range xs {
		h := ElectronEfficiency(x)
		require.GreaterOrEqual(t, h, 0., "x_e=%g", x)
		require.LessOrEqual(t, h, 1., "x_e=%g", x)
		require.GreaterOrEqual(t, h, prev-1e-12, "h_e decreased at x_e=%g", x)
		prev = h
	}
}

func TestElectronEfficiencyLimits(t *testing.T) {
	assert.InDelta(t, 0., ElectronEfficiency(0), 1e-3)
	assert.Equal(t, 1., ElectronEfficiency(1e4))
	assert.Equal(t, 1., ElectronEfficiency(7.8e6))

	assert.InDelta(t, 0.2678978785027626, ElectronEfficiency(1), 1e-9)
	assert.InDelta(t, 0.9993058901384202, ElectronEfficiency(10), 1e-9)
}

func TestElectronEfficiencyInvalid(t *testing.T) {
	assert.True(t, math.IsNaN(ElectronEfficiency(-1)))
	assert.True(t, math.IsNaN(ElectronEfficiency(math.NaN())))

	_, err := ElectronEfficiencyChecked(-1)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	h, err := ElectronEfficiencyChecked(1)
	require.NoError(t, err)
	assert.Equal(t, ElectronEfficiency(1), h)
}

func TestExcessPowerMatchesLiteral(t *testing.T) {
	for _, x := range []float64{1e-3, 1., 10., 1e3} {
		for _, z := range []float64{1e-2, 1., 1e2} {
			literal := math.Pow(z+x, 1.5) - math.Pow(x, 1.5)
			assert.True(t, scalar.EqualWithinRel(literal, excessPower(z, x), 1e-9), "z=%g x=%g", z, x)
		}
	}
	assert.Equal(t, math.Pow(2., 1.5), excessPower(2., 0))
}

func TestElectronEfficiencyTinyRatio(t *testing.T) {
	for _, x := range []float64{1e-250, 1e-300, 5e-324} {
		for _, z := range zGrid.z {
			assert.True(t, utils.IsFinite(excessPower(z, x)), "z=%g x=%g", z, x)
		}
		h := ElectronEfficiency(x)
		assert.False(t, math.IsNaN(h), "x=%g", x)
		assert.Equal(t, ElectronEfficiency(0), h, "x=%g", x)
	}
}

func TestEnergyGrid(t *testing.T) {
	require.Len(t, zGrid.z, EnergyGridPoints)
	assert.InDelta(t, 1e-2, zGrid.z[0], 1e-15)
	assert.True(t, scalar.EqualWithinRel(1e2, zGrid.z[EnergyGridPoints-1], 1e-12))
	for n := 1; n < EnergyGridPoints; n++ {
		require.Greater(t, zGrid.z[n], zGrid.z[n-1])
		assert.Equal(t, math.Exp(-zGrid.z[n]), zGrid.expmz[n])
	}
}

func TestReferenceScenario(t *testing.T) {
	nH, nE := referenceDensities()
	assert.True(t, scalar.EqualWithinRel(4.268e3, nH, 1e-3), "n_H = %g", nH)
	assert.True(t, scalar.EqualWithinRel(5.122e3, nE, 1e-3), "n_e = %g", nE)

	s, err := Evaluate(1e6, referenceRadius, nH, nE)
	require.NoError(t, err)
	assert.True(t, s.Valid)
	assert.Greater(t, s.CollisionalRate, 0.)
	assert.Greater(t, s.ElectronRate, 0.)
	assert.Equal(t, CollisionalHeating(1e6, referenceRadius, nH), s.CollisionalRate)
	assert.Equal(t, ElectronHeating(1e6, referenceRadius, nE), s.ElectronRate)
	assert.True(t, scalar.EqualWithinRel(1.644008781031851e-13, s.Coefficient, 1e-6), "lambda = %g", s.Coefficient)
	assert.InDelta(t, s.Coefficient, s.CollisionalCoefficient()+s.ElectronCoefficient(), 1e-25)
}

func TestBoundaryTemperatures(t *testing.T) {
	nH, nE := referenceDensities()
	for _, temp := range []float64{1., 1e9} {
		s, err := Evaluate(temp, referenceRadius, nH, nE)
		require.NoError(t, err, "T=%g", temp)
		assert.True(t, utils.IsFinite(s.Coefficient))
		assert.Greater(t, s.Coefficient, 0.)
	}
}

func TestEvaluateNonFinite(t *testing.T) {
	s, err := Evaluate(1e6, referenceRadius, 0, 0)
	assert.ErrorIs(t, err, ErrNonFinite)
	assert.False(t, s.Valid)
}

func TestEvaluateIdempotent(t *testing.T) {
	nH, nE := referenceDensities()
	first, err := Evaluate(3.3e4, referenceRadius, nH, nE)
	require.NoError(t, err)
	second, err := Evaluate(3.3e4, referenceRadius, nH, nE)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPositive(t *testing.T) {
	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := Positive("v", v)
		assert.True(t, errors.Is(err, ErrInvalidParameter), "v=%g", v)
	}
	assert.NoError(t, Positive("v", 1e-300))
}

func TestSampleError(t *testing.T) {
	err := error(&SampleError{Index: 3, Temperature: 10, Wrapped: ErrNonFinite})
	assert.ErrorIs(t, err, ErrNonFinite)
	assert.Contains(t, err.Error(), "T = 10 K")
}
