package outbreak

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
)

// Sample is the state of the population at a given time (in days).
type Sample struct {
	T     float64   `json:"t" yaml:"t"`
	State []float64 `json:"state" yaml:"state,flow"`
}

// Trajectory is the immutable result of a run. Accessors return copies.
type Trajectory struct {
	model  Model
	params Params
	rates  Rates
	times  []float64
	states [][]float64
}

func newTrajectory(m Model, p Params, times []float64, states [][]float64) *Trajectory {
	rates := p.Rates()
	if m == SIR {
		rates.Alpha = 0
	}
	return &Trajectory{model: m, params: p, rates: rates, times: times, states: states}
}

// Model returns the model which produced this trajectory.
func (t *Trajectory) Model() Model {
	return t.model
}

// Params returns the parameters of the run.
func (t *Trajectory) Params() Params {
	return t.params
}

// Rates returns the rate constants of the run, for annotation.
func (t *Trajectory) Rates() Rates {
	return t.rates
}

// Len returns the number of samples.
func (t *Trajectory) Len() int {
	return len(t.times)
}

// At returns the i-th sample.
func (t *Trajectory) At(i int) Sample {
	return Sample{T: t.times[i], State: append([]float64(nil), t.states[i]...)}
}

// Times returns the sample times.
func (t *Trajectory) Times() []float64 {
	return append([]float64(nil), t.times...)
}

// Prefix returns the first n samples; n is clamped to [0, Len()].
// Successive prefixes are what a renderer reveals frame by frame.
func (t *Trajectory) Prefix(n int) []Sample {
	if n < 0 {
		n = 0
	}
	if n > t.Len() {
		n = t.Len()
	}
	samples := make([]Sample, n)
	for i := range samples {
		samples[i] = t.At(i)
	}
	return samples
}

// Series returns the proportion of the population in a compartment at every sample.
func (t *Trajectory) Series(c Compartment) ([]float64, error) {
	idx := t.model.Index(c)
	if idx < 0 {
		return nil, invalidf("model %s has no %s compartment", t.model, c)
	}
	series := make([]float64, len(t.states))
	for i, s := range t.states {
		series[i] = s[idx]
	}
	return series, nil
}

// Peak returns the time and value of the maximum of a compartment.
func (t *Trajectory) Peak(c Compartment) (float64, float64, error) {
	series, err := t.Series(c)
	if err != nil {
		return 0, 0, err
	}
	i := floats.MaxIdx(series)
	return t.times[i], series[i], nil
}

// AttackRate returns the fraction of the population infected by the end of the horizon.
func (t *Trajectory) AttackRate() float64 {
	return 1 - t.states[len(t.states)-1][0]
}

// MaxConservationError returns the largest deviation of the total population from 1.
func (t *Trajectory) MaxConservationError() float64 {
	worst := 0.0
	for _, s := range t.states {
		worst = math.Max(worst, math.Abs(floats.Sum(s)-1))
	}
	return worst
}

func (t *Trajectory) String() string {
	return fmt.Sprintf("%s trajectory of %d samples over [%g, %g] (%s)", t.model, t.Len(), t.times[0], t.times[len(t.times)-1], t.params)
}
