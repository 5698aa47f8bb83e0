package model

import (
	"fmt"
	"math"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/wildstyl3r/dustheat/internal/config"
	"github.com/wildstyl3r/dustheat/internal/heating"
	"github.com/wildstyl3r/dustheat/internal/utils"
)

// Model is a temperature sweep for one grain radius and gas density.
type Model struct {
	Name         string
	Parameters   config.ModelParameters
	Temperatures []float64 // [K], strictly increasing
	Samples      []heating.Sample
}

func NewModel(name string, parameters config.ModelParameters) (*Model, error) {
	if err := parameters.Validate(); err != nil {
		return nil, fmt.Errorf("model %s: %w", name, err)
	}
	m := Model{
		Name:         name,
		Parameters:   parameters,
		Temperatures: utils.LogSpace(parameters.LogTMin, parameters.LogTMax, parameters.NTemperatures),
	}
	for i, t := range m.Temperatures {
		if err := heating.Positive("temperature", t); err != nil {
			return nil, fmt.Errorf("model %s: %w", name, err)
		}
		if i > 0 && t <= m.Temperatures[i-1] {
			return nil, fmt.Errorf("model %s: %w: temperature grid not increasing at %d", name, heating.ErrInvalidParameter, i)
		}
	}
	return &m, nil
}

// Run evaluates every grid temperature. Samples keep grid order whatever the thread count.
func (m *Model) Run() error {
	startTime := time.Now()
	p := &m.Parameters
	m.Samples = make([]heating.Sample, len(m.Temperatures))
	errs := make([]error, len(m.Temperatures))

	computeflow := make(chan int, len(m.Temperatures))
	for i := range m.Temperatures {
		computeflow <- i
	}
	close(computeflow)

	var computeWg sync.WaitGroup
	for range min(p.Threads(), len(m.Temperatures)) {
		computeWg.Add(1)
		go func() {
			defer computeWg.Done()
			for i := range computeflow {
				t := m.Temperatures[i]
				sample, err := heating.Evaluate(t, p.GrainRadius, p.HydrogenDensity, p.ElectronDensity)
				m.Samples[i] = sample
				if err != nil {
					errs[i] = &heating.SampleError{Index: i, Temperature: t, Wrapped: err}
				}
			}
		}()
	}
	computeWg.Wait()

	skipped := 0
	for i := range errs {
		if errs[i] == nil {
			continue
		}
		if !p.SkipNonFinite {
			return fmt.Errorf("model %s: %w", m.Name, errs[i])
		}
		skipped++
		log.WithFields(log.Fields{
			"model":       m.Name,
			"temperature": m.Temperatures[i],
		}).Warn("non-finite heating sample flagged")
	}

	if coefficients := m.Coefficients(); p.Verbose() && len(coefficients) > 0 {
		log.WithFields(log.Fields{
			"model":   m.Name,
			"samples": len(m.Samples),
			"skipped": skipped,
			"min":     floats.Min(coefficients),
			"max":     floats.Max(coefficients),
			"elapsed": time.Since(startTime),
		}).Debug("sweep done")
	}
	return nil
}

// Coefficients returns the heating coefficients of the valid samples in grid order.
func (m *Model) Coefficients() []float64 {
	coefficients := make([]float64, 0, len(m.Samples))
	for _, s := range m.Samples {
		if s.Valid {
			coefficients = append(coefficients, s.Coefficient)
		}
	}
	return coefficients
}

func (m *Model) temperatureAt(logT float64) float64 {
	return math.Pow(10., logT)
}
