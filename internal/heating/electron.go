package heating

import (
	"fmt"
	"math"

	"github.com/wildstyl3r/dustheat/internal/constants"
	"github.com/wildstyl3r/dustheat/internal/utils"
)

// Energy grid of the efficiency quadrature. Changing any of these changes results.
const (
	EnergyGridPoints = 401
	LogZMin          = -2.
	LogZMax          = 2.
)

// electronEnergyScale is the electron stopping energy scale [keV micron^-2/3].
const electronEnergyScale = 23.

type energyGrid struct {
	z     []float64
	expmz []float64
}

// shared, read only
var zGrid = newEnergyGrid()

func newEnergyGrid() energyGrid {
	g := energyGrid{
		z:     utils.LogSpace(LogZMin, LogZMax, EnergyGridPoints),
		expmz: make([]float64, EnergyGridPoints),
	}
	for n := range g.z {
		g.expmz[n] = math.Exp(-g.z[n])
	}
	return g
}

// separatedRatio is the z/x beyond which (z+x)^1.5 - x^1.5 has no cancellation.
const separatedRatio = 1e8

// excessPower is (z+x)^1.5 - x^1.5 without cancellation for x >> z.
func excessPower(z, x float64) float64 {
	if x == 0 || z > separatedRatio*x {
		return math.Pow(z+x, 1.5) - math.Pow(x, 1.5)
	}
	return math.Pow(x, 1.5) * math.Expm1(1.5*math.Log1p(z/x))
}

// ElectronEfficiency returns h_e(x_e) by trapezoidal quadrature on the fixed
// log-spaced z grid. The quadrature slightly overshoots near x_e = 0 (about -8.8e-5),
// so the result is clamped to [0, 1]. Negative or NaN x_e gives NaN.
func ElectronEfficiency(xE float64) float64 {
	if xE < 0 || math.IsNaN(xE) {
		return math.NaN()
	}
	f := make([]float64, EnergyGridPoints)
	for n, z := range zGrid.z {
		zpxe := z + xE
		f[n] = zpxe * math.Pow(excessPower(z, xE), 2./3.) * zGrid.expmz[n]
	}
	intf := utils.Trapezoid(zGrid.z, f)
	ixStar := 0.5 * math.Exp(-xE) * intf
	return min(max(1.-ixStar, 0.), 1.)
}

func ElectronEfficiencyChecked(xE float64) (float64, error) {
	if xE < 0 || math.IsNaN(xE) {
		return math.NaN(), fmt.Errorf("%w: energy ratio %g", ErrInvalidParameter, xE)
	}
	return ElectronEfficiency(xE), nil
}

// ElectronEnergyRatio is x_e = E_e / kT for a grain of radius a microns at t K.
func ElectronEnergyRatio(t, a float64) float64 {
	ee := keVToErg(electronEnergyScale * math.Pow(a, 2./3.))
	return ee / (constants.KBoltz * t)
}

// ElectronHeating returns the grain heating rate due to electron impacts.
// The sqrt of the mass ratio rescales the hydrogen thermal speed to the electron one.
func ElectronHeating(t, a, nE float64) float64 {
	hE := ElectronEfficiency(ElectronEnergyRatio(t, a))
	return baseRate(t, a, nE) * hE / math.Sqrt(constants.HERatio)
}
