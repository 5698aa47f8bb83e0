// Package heating evaluates dust-grain heating by hydrogen and electron impacts.
//
// Units are CGS, with grain radii in microns.
package heating

import (
	"fmt"
	"math"

	"github.com/wildstyl3r/dustheat/internal/constants"
	"github.com/wildstyl3r/dustheat/internal/utils"
)

// Sample is one point of a temperature sweep.
type Sample struct {
	Temperature           float64 // [K]
	HydrogenDensity       float64 // [cm^-3]
	CollisionalRate       float64 // [erg s^-1]
	ElectronRate          float64 // [erg s^-1]
	CollisionalEfficiency float64 // h_n
	ElectronEfficiency    float64 // h_e
	Coefficient           float64 // (H_coll + H_el) / n_H
	Valid                 bool
}

// Evaluate computes both channels at t and normalizes their sum by nH.
func Evaluate(t, a, nH, nE float64) (Sample, error) {
	s := Sample{Temperature: t, HydrogenDensity: nH}
	s.CollisionalEfficiency = CollisionalEfficiency(t, a)
	s.ElectronEfficiency = ElectronEfficiency(ElectronEnergyRatio(t, a))
	s.CollisionalRate = baseRate(t, a, nH) * s.CollisionalEfficiency
	s.ElectronRate = baseRate(t, a, nE) * s.ElectronEfficiency / math.Sqrt(constants.HERatio)
	s.Coefficient = (s.CollisionalRate + s.ElectronRate) / nH

	for _, v := range []float64{s.CollisionalRate, s.ElectronRate, s.Coefficient} {
		if !utils.IsFinite(v) {
			return s, ErrNonFinite
		}
	}
	s.Valid = true
	return s, nil
}

func (s Sample) CollisionalCoefficient() float64 {
	return s.CollisionalRate / s.HydrogenDensity
}

func (s Sample) ElectronCoefficient() float64 {
	return s.ElectronRate / s.HydrogenDensity
}

// Positive rejects zero, negative, NaN and infinite values.
func Positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return fmt.Errorf("%w: %s = %g", ErrInvalidParameter, name, v)
	}
	return nil
}
