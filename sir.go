package outbreak

// sirSystem is the SIR vector field with the state layout [S, I, R].
type sirSystem struct {
	beta, gamma, u float64
}

func newSIRSystem(p Params) sirSystem {
	r := p.Rates()
	return sirSystem{beta: r.Beta, gamma: r.Gamma, u: p.Distancing}
}

// Dim implements the System interface.
func (sys sirSystem) Dim() int {
	return 3
}

// Derivative implements the System interface.
func (sys sirSystem) Derivative(t float64, s, ds []float64) {
	infection := (1 - sys.u) * sys.beta * s[0] * s[1]
	recovery := sys.gamma * s[1]
	ds[0] = -infection
	ds[1] = infection - recovery
	ds[2] = recovery
}

// sirInitialState seeds one infectious individual in an otherwise susceptible population.
func sirInitialState(p Params) []float64 {
	i0, r0 := p.seed(), 0.0
	return []float64{1 - i0 - r0, i0, r0}
}
