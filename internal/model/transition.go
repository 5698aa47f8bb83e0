package model

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/wildstyl3r/dustheat/internal/heating"
	"github.com/wildstyl3r/dustheat/internal/utils"
)

// TransparencyLevel is the efficiency below which a channel counts as passing through the grain.
const TransparencyLevel = 0.5

type Transition struct {
	Channel     string
	Temperature float64 // [K]
}

// TransitionTemperature bisects log10 T for the point where a decreasing efficiency
// falls to level. NaN if the level is not crossed inside the sweep range.
func (m *Model) TransitionTemperature(efficiency func(t float64) float64, level float64) float64 {
	p := &m.Parameters
	below := func(logT float64) bool {
		return efficiency(m.temperatureAt(logT)) <= level
	}
	if below(p.LogTMin) || !below(p.LogTMax) {
		return math.NaN()
	}
	_, logT := utils.BinarySearch(below, p.LogTMin, p.LogTMax, p.TransitionPrecision)
	return m.temperatureAt(logT)
}

func (m *Model) Transitions() []Transition {
	a := m.Parameters.GrainRadius
	transitions := []Transition{
		{
			Channel: "collisional",
			Temperature: m.TransitionTemperature(func(t float64) float64 {
				return heating.CollisionalEfficiency(t, a)
			}, TransparencyLevel),
		},
		{
			Channel: "electron",
			Temperature: m.TransitionTemperature(func(t float64) float64 {
				return heating.ElectronEfficiency(heating.ElectronEnergyRatio(t, a))
			}, TransparencyLevel),
		},
	}
	for _, tr := range transitions {
		if math.IsNaN(tr.Temperature) {
			log.WithFields(log.Fields{
				"model":   m.Name,
				"channel": tr.Channel,
			}).Warn("efficiency does not cross the transparency level inside the temperature range")
		}
	}
	return transitions
}
