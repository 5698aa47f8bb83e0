package heating

import (
	"math"

	"github.com/wildstyl3r/dustheat/internal/constants"
)

// rateFactor is the idealized heating prefactor in erg s^-1 for a in microns and n in cm^-3.
const rateFactor = 1.26e-19

// hydrogenEnergyPerMicron is the characteristic hydrogen stopping energy scale [keV micron^-1].
const hydrogenEnergyPerMicron = 133.

func keVToErg(e float64) float64 {
	return 1.e3 * constants.EVToErg * e
}

func baseRate(t, a, n float64) float64 {
	return rateFactor * a * a * math.Pow(t, 1.5) * n
}

// CollisionalEfficiency is h_n = 1 - (1 + y/2) e^{-y} with y = E_H / kT.
func CollisionalEfficiency(t, a float64) float64 {
	kt := constants.KBoltz * t
	eh := keVToErg(hydrogenEnergyPerMicron * a)
	y := eh / kt
	// -expm1(-y) keeps the leading y/2 term exact when y -> 0
	return -math.Expm1(-y) - 0.5*y*math.Exp(-y)
}

// CollisionalHeating returns the grain heating rate due to hydrogen impacts.
// t is in K, a in microns, nH in cm^-3.
func CollisionalHeating(t, a, nH float64) float64 {
	return baseRate(t, a, nH) * CollisionalEfficiency(t, a)
}
