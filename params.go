package outbreak

import (
	"fmt"
	"math"
	"strings"
)

const (
	// DefaultPopulation is the population size used to seed the outbreak.
	DefaultPopulation = 500000
	// MaxDistancing is the largest reduction of transmission that can be applied.
	MaxDistancing = 0.3
	// MaxPeriod is the longest infectious or incubation period in days.
	MaxPeriod = 10.0
	// MinR0 and MaxR0 bound the basic reproduction number.
	MinR0 = 1.0
	MaxR0 = 10.0
)

// Params are the inputs of a single run. They are passed by value and never cached.
type Params struct {
	Population       float64 // N, only used to derive the seed fraction 1/N.
	Distancing       float64 // μ, fractional reduction of transmission.
	InfectiousPeriod float64 // days
	IncubationPeriod float64 // days, SEIR only
	R0               float64
}

// DefaultParams returns the initial slider positions.
func DefaultParams() Params {
	return Params{Population: DefaultPopulation, Distancing: 0, InfectiousPeriod: 1, IncubationPeriod: 1, R0: 1.5}
}

// Validate returns an ErrInvalidInput error if any parameter used by the model is out of its domain.
// Out of domain values are rejected, never clamped.
func (p Params) Validate(m Model) error {
	if !m.valid() {
		return invalidf("unknown model %d", m)
	}
	for _, spec := range ParamSpecs(m) {
		if err := spec.check(spec.get(p)); err != nil {
			return err
		}
	}
	return nil
}

// Rates returns the rate constants derived from the parameters.
// Alpha is zero when the incubation period is not positive.
func (p Params) Rates() Rates {
	r := Rates{}
	if p.InfectiousPeriod > 0 {
		r.Gamma = 1 / p.InfectiousPeriod
		r.Beta = p.R0 * r.Gamma
	}
	if p.IncubationPeriod > 0 {
		r.Alpha = 1 / p.IncubationPeriod
	}
	return r
}

func (p Params) seed() float64 {
	return 1 / p.Population
}

func (p Params) String() string {
	return fmt.Sprintf("N=%g μ=%g infectious=%gd incubation=%gd R0=%g", p.Population, p.Distancing, p.InfectiousPeriod, p.IncubationPeriod, p.R0)
}

// Rates are the rate constants of a run, exposed for annotation.
type Rates struct {
	Alpha float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"` // 1/incubation period
	Beta  float64 `json:"beta" yaml:"beta"`                       // R0 * gamma
	Gamma float64 `json:"gamma" yaml:"gamma"`                     // 1/infectious period
}

// Annotation returns the parameter box displayed next to the curves.
func (r Rates) Annotation(m Model) string {
	lines := []string{"Parameters:"}
	if m == SEIR {
		lines = append(lines, fmt.Sprintf("α = %.2f", r.Alpha))
	}
	lines = append(lines, fmt.Sprintf("β = %.2f", r.Beta), fmt.Sprintf("γ = %.2f", r.Gamma))
	return strings.Join(lines, "\n")
}

// ParamSpec describes one adjustable parameter for control surfaces.
type ParamSpec struct {
	Name         string
	Description  string
	Min, Max     float64
	ExclusiveMin bool
	Default      float64
	Step         float64 // Increment of the original sliders.
	get          func(Params) float64
}

func (s ParamSpec) check(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalidf("%s must be finite, got %g", s.Name, v)
	}
	if s.ExclusiveMin && v <= s.Min || !s.ExclusiveMin && v < s.Min || v > s.Max {
		return invalidf("%s=%g outside of %s", s.Name, v, s.Domain())
	}
	return nil
}

// Domain returns the interval notation of the valid values.
func (s ParamSpec) Domain() string {
	open := "["
	if s.ExclusiveMin {
		open = "("
	}
	if math.IsInf(s.Max, 1) {
		return fmt.Sprintf("%s%g, +inf)", open, s.Min)
	}
	return fmt.Sprintf("%s%g, %g]", open, s.Min, s.Max)
}

// ParamSpecs returns the parameters used by the model, in display order.
func ParamSpecs(m Model) []ParamSpec {
	specs := []ParamSpec{
		{Name: "population", Description: "Population size (N)", Min: 1, Max: math.Inf(1), Default: DefaultPopulation, Step: 1,
			get: func(p Params) float64 { return p.Population }},
		{Name: "distancing", Description: "Social distancing (μ)", Min: 0, Max: MaxDistancing, Default: 0, Step: 0.1,
			get: func(p Params) float64 { return p.Distancing }},
		{Name: "infectious_period", Description: "Infectious period (days)", Min: 0, Max: MaxPeriod, ExclusiveMin: true, Default: 1, Step: 0.5,
			get: func(p Params) float64 { return p.InfectiousPeriod }},
	}
	if m == SEIR {
		specs = append(specs, ParamSpec{Name: "incubation_period", Description: "Incubation period (days)", Min: 0, Max: MaxPeriod, ExclusiveMin: true, Default: 1, Step: 0.5,
			get: func(p Params) float64 { return p.IncubationPeriod }})
	}
	return append(specs, ParamSpec{Name: "R0", Description: "Basic reproduction number", Min: MinR0, Max: MaxR0, Default: 1.5, Step: 0.5,
		get: func(p Params) float64 { return p.R0 }})
}
