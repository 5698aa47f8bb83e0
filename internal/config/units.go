package config

import "github.com/wildstyl3r/dustheat/internal/utils"

// conversion to the internal base units: micron, g cm^-3, cm^-3
var unitToBase = map[string]float64{
	"micron": 1,    // [micron]
	"mkm":    1,    // [micron]
	"nm":     1e-3, // [micron]
	"cm":     1e4,  // [micron]
	"m":      1e6,  // [micron]
	"g/cm3":  1,    // [g cm^-3]
	"kg/m3":  1e-3, // [g cm^-3]
	"cm-3":   1,    // [cm^-3]
	"m-3":    1e-6, // [cm^-3]
}

type UnitClass int

const (
	Length UnitClass = iota
	MassDensity
	NumberDensity
)

var unitsInClass = map[UnitClass][]string{
	Length:        {"nm", "micron", "mkm", "cm", "m"},
	MassDensity:   {"g/cm3", "kg/m3"},
	NumberDensity: {"cm-3", "m-3"},
}

var classesOfUnits = map[string]UnitClass{
	"micron": Length,
	"mkm":    Length,
	"nm":     Length,
	"cm":     Length,
	"m":      Length,
	"g/cm3":  MassDensity,
	"kg/m3":  MassDensity,
	"cm-3":   NumberDensity,
	"m-3":    NumberDensity,
}

type UnitElement = struct {
	Class UnitClass
	Power int // positive
}

var defaultUnits = []string{"micron", "g/cm3", "cm-3"}

// checkUnits reports unknown units and repeated classes, and fills the missing classes from defaults.
func checkUnits(units []string) (extended, conflicts []string) {
	classes := map[UnitClass]struct{}{}
	for _, unit := range units {
		class, known := classesOfUnits[unit]
		if !known {
			conflicts = append(conflicts, unit)
			continue
		}
		if _, some := classes[class]; some {
			conflicts = append(conflicts, unit)
		} else {
			classes[class] = struct{}{}
		}
	}
	extended = append([]string{}, units...)
	for _, unit := range defaultUnits {
		if _, some := classes[classesOfUnits[unit]]; !some {
			extended = append(extended, unit)
		}
	}
	return
}

// ToBase converts v expressed in units to base units.
func ToBase(v float64, classes []UnitElement, units []string) float64 {
	for _, uc := range classes {
		unit := utils.Intersect(unitsInClass[uc.Class], units)
		if unit == nil {
			continue
		}
		for range uc.Power {
			v *= unitToBase[*unit]
		}
	}
	return v
}
