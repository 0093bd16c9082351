package outbreak

import (
	"fmt"
	"strings"
)

// Model defines an enum of compartmental models.
type Model uint8

// Compartment defines an enum of epidemiological statuses.
type Compartment uint8

const (
	// SIR is the Susceptible-Infected-Recovered model.
	SIR Model = iota + 1
	// SEIR adds an exposed (infected but not yet infectious) compartment to SIR.
	SEIR
)

const (
	// Susceptible individuals can be infected.
	Susceptible Compartment = iota + 1
	// Exposed individuals are infected but not infectious yet.
	Exposed
	// Infected individuals are infectious.
	Infected
	// Recovered individuals are immune for the rest of the horizon.
	Recovered
)

// Models lists the supported models in menu order.
var Models = []Model{SIR, SEIR}

func (m Model) String() string {
	switch m {
	case SIR:
		return "SIR"
	case SEIR:
		return "SEIR"
	}
	panic("cannot stringify unknown model")
}

// ModelFromString returns the model from its name, ignoring case.
func ModelFromString(name string) (Model, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "SIR":
		return SIR, nil
	case "SEIR":
		return SEIR, nil
	}
	return 0, invalidf("unknown model `%s`", name)
}

// Compartments returns the layout of the state vector of this model.
func (m Model) Compartments() []Compartment {
	switch m {
	case SIR:
		return []Compartment{Susceptible, Infected, Recovered}
	case SEIR:
		return []Compartment{Susceptible, Exposed, Infected, Recovered}
	}
	panic(fmt.Errorf("no compartments for model %d", m))
}

// Index returns the position of the compartment in the state vector, or -1.
func (m Model) Index(c Compartment) int {
	for i, mc := range m.Compartments() {
		if mc == c {
			return i
		}
	}
	return -1
}

// Horizon returns the default time horizon of this model.
func (m Model) Horizon() Horizon {
	switch m {
	case SIR:
		return Horizon{End: 150, Samples: 150}
	case SEIR:
		return Horizon{End: 201, Samples: 200}
	}
	panic(fmt.Errorf("no horizon for model %d", m))
}

func (m Model) valid() bool {
	return m == SIR || m == SEIR
}

func (c Compartment) String() string {
	switch c {
	case Susceptible:
		return "Susceptible"
	case Exposed:
		return "Exposed"
	case Infected:
		return "Infected"
	case Recovered:
		return "Recovered"
	}
	panic("cannot stringify unknown compartment")
}

// Symbol returns the one letter name of the compartment.
func (c Compartment) Symbol() string {
	return c.String()[:1]
}

// Horizon is a time span in days starting at zero, sampled at evenly spaced points.
type Horizon struct {
	End     float64
	Samples int
}

// Times returns the sample times, both ends included.
func (h Horizon) Times() []float64 {
	return Linspace(0, h.End, h.Samples)
}

// Validate returns an error if the horizon cannot be integrated.
func (h Horizon) Validate() error {
	if !(h.End > 0) || !allFinite([]float64{h.End}) {
		return invalidf("horizon end must be finite and positive, got %g", h.End)
	}
	if h.Samples < 2 {
		return invalidf("horizon needs at least two samples, got %d", h.Samples)
	}
	return nil
}

func (h Horizon) String() string {
	return fmt.Sprintf("[0, %g] days (%d samples)", h.End, h.Samples)
}
