package outbreak

// seirSystem is the SEIR vector field with the state layout [S, E, I, R].
type seirSystem struct {
	alpha, beta, gamma, u float64
}

func newSEIRSystem(p Params) seirSystem {
	r := p.Rates()
	return seirSystem{alpha: r.Alpha, beta: r.Beta, gamma: r.Gamma, u: p.Distancing}
}

// Dim implements the System interface.
func (sys seirSystem) Dim() int {
	return 4
}

// Derivative implements the System interface.
func (sys seirSystem) Derivative(t float64, s, ds []float64) {
	exposure := (1 - sys.u) * sys.beta * s[0] * s[2]
	onset := sys.alpha * s[1]
	recovery := sys.gamma * s[2]
	ds[0] = -exposure
	ds[1] = exposure - onset
	ds[2] = onset - recovery
	ds[3] = recovery
}

// seirInitialState seeds one exposed individual; nobody is infectious at t=0.
func seirInitialState(p Params) []float64 {
	e0, i0, r0 := p.seed(), 0.0, 0.0
	return []float64{1 - e0 - i0 - r0, e0, i0, r0}
}
