package outbreak

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ChristopherRabotin/ode"
	"github.com/gonum/floats"
	"github.com/ready-steady/ode/dopri"
)

// System defines a set of ordinary differential equations of a fixed dimension.
type System interface {
	Dim() int                              // Number of components of the state vector.
	Derivative(t float64, s, ds []float64) // Stores ds/dt at time t and state s in ds.
}

// Method defines an enum of integration methods.
type Method uint8

const (
	// DormandPrince is the adaptive Runge-Kutta 5(4) method with dense output.
	DormandPrince Method = iota + 1
	// RK4 is the classical fixed step Runge-Kutta method.
	RK4
)

func (m Method) String() string {
	switch m {
	case DormandPrince:
		return "dopri"
	case RK4:
		return "rk4"
	}
	panic("cannot stringify unknown integration method")
}

// MethodFromString returns the integration method from its name.
func MethodFromString(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dopri", "dormand-prince", "dp45":
		return DormandPrince, nil
	case "rk4":
		return RK4, nil
	}
	return 0, invalidf("unknown integration method `%s`", name)
}

// IntegratorConfig configures Integrate.
type IntegratorConfig struct {
	Method   Method
	AbsError float64 // Absolute error tolerance (DormandPrince).
	RelError float64 // Relative error tolerance (DormandPrince).
	MaxStep  float64 // Largest step allowed, zero lets the solver pick (DormandPrince).
	Step     float64 // Largest step (RK4).
	// MaxEvaluations bounds the derivative evaluations of one run (DormandPrince); zero
	// selects DefaultMaxEvaluations.
	MaxEvaluations int
}

// DefaultMaxEvaluations is the evaluation budget of the adaptive method. A default run uses a
// few thousand evaluations; stiff runs (periods close to zero) exhaust it in under a second.
const DefaultMaxEvaluations = 10000000

// DefaultIntegratorConfig returns a configuration tight enough to conserve the population to
// well below 1e-6 over the whole parameter domain.
func DefaultIntegratorConfig() IntegratorConfig {
	return IntegratorConfig{Method: DormandPrince, AbsError: 1e-10, RelError: 1e-8, Step: 0.01}
}

// Validate returns an error if the configuration cannot be used.
func (c IntegratorConfig) Validate() error {
	switch c.Method {
	case DormandPrince:
		if !(c.AbsError > 0) || !(c.RelError > 0) {
			return invalidf("error tolerances must be positive (abs=%g, rel=%g)", c.AbsError, c.RelError)
		}
		if !(c.MaxStep >= 0) || math.IsInf(c.MaxStep, 0) {
			return invalidf("maximum step must be finite and nonnegative, got %g", c.MaxStep)
		}
		if c.MaxEvaluations < 0 {
			return invalidf("maximum evaluations must be nonnegative, got %d", c.MaxEvaluations)
		}
	case RK4:
		if !(c.Step > 0) || math.IsInf(c.Step, 0) {
			return invalidf("RK4 step must be finite and positive, got %g", c.Step)
		}
	default:
		return invalidf("unknown integration method %d", c.Method)
	}
	return nil
}

// Integrate integrates the system from y0 at ts[0] and returns the state at each of the
// requested time points, which must be strictly increasing.
func Integrate(sys System, y0, ts []float64, conf IntegratorConfig) ([][]float64, error) {
	if sys == nil {
		return nil, invalidf("nil system")
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if len(ts) < 2 {
		return nil, invalidf("at least two time points are required, got %d", len(ts))
	}
	if !allFinite(ts) {
		return nil, invalidf("time points must be finite")
	}
	for i := 1; i < len(ts); i++ {
		if ts[i] <= ts[i-1] {
			return nil, invalidf("time points are not strictly increasing at index %d (%g <= %g)", i, ts[i], ts[i-1])
		}
	}
	if len(y0) != sys.Dim() {
		return nil, invalidf("initial state has %d components, system expects %d", len(y0), sys.Dim())
	}
	if !allFinite(y0) {
		return nil, invalidf("initial state must be finite")
	}

	var states [][]float64
	var err error
	switch conf.Method {
	case DormandPrince:
		states, err = integrateDopri(sys, y0, ts, conf)
	case RK4:
		states, err = integrateRK4(sys, y0, ts, conf)
	}
	if err != nil {
		return nil, err
	}
	for i, s := range states {
		if !allFinite(s) {
			return nil, divergedf("non finite state at t=%g", ts[i])
		}
	}
	return states, nil
}

func (c IntegratorConfig) maxEvaluations() int {
	if c.MaxEvaluations == 0 {
		return DefaultMaxEvaluations
	}
	return c.MaxEvaluations
}

// errBudget is panicked by the derivative wrapper of integrateDopri, which recovers it.
var errBudget = errors.New("evaluation budget exhausted")

func integrateDopri(sys System, y0, ts []float64, conf IntegratorConfig) (states [][]float64, err error) {
	budget, evals := conf.maxEvaluations(), 0
	dydx := func(t float64, s, ds []float64) {
		evals++
		if evals > budget {
			panic(errBudget)
		}
		sys.Derivative(t, s, ds)
	}
	defer func() {
		if r := recover(); r != nil {
			if r != errBudget {
				panic(r)
			}
			states, err = nil, divergedf("no solution after %d derivative evaluations (stiff system)", budget)
		}
	}()

	integrator, err := dopri.New(&dopri.Config{MaxStep: conf.MaxStep, AbsError: conf.AbsError, RelError: conf.RelError})
	if err != nil {
		return nil, invalidf("%s", err)
	}
	// dopri only samples at the requested points when given more than two of them.
	points := ts
	if len(ts) == 2 {
		points = []float64{ts[0], ts[0] + (ts[1]-ts[0])/2, ts[1]}
	}
	ys, _, err := integrator.Compute(dydx, y0, points)
	if err != nil {
		return nil, divergedf("%s", err)
	}
	nd := len(y0)
	if len(ys) != len(points)*nd {
		return nil, divergedf("solver returned %d values for %d points", len(ys), len(points))
	}
	states = make([][]float64, 0, len(ts))
	for i := range points {
		if len(ts) == 2 && i == 1 {
			continue
		}
		s := make([]float64, nd)
		copy(s, ys[i*nd:(i+1)*nd])
		states = append(states, s)
	}
	return states, nil
}

// rk4Segment is an ode.Integrable covering one interval between two requested time points.
type rk4Segment struct {
	sys       System
	state     []float64
	end, half float64
}

func (r *rk4Segment) GetState() []float64 {
	return r.state
}

func (r *rk4Segment) SetState(t float64, s []float64) {
	r.state = s
}

func (r *rk4Segment) Stop(t float64) bool {
	return t >= r.end-r.half || !allFinite(r.state)
}

func (r *rk4Segment) Func(t float64, s []float64) []float64 {
	ds := make([]float64, len(s))
	r.sys.Derivative(t, s, ds)
	return ds
}

func integrateRK4(sys System, y0, ts []float64, conf IntegratorConfig) ([][]float64, error) {
	states := make([][]float64, len(ts))
	states[0] = append([]float64(nil), y0...)
	seg := &rk4Segment{sys: sys, state: append([]float64(nil), y0...)}
	for i := 1; i < len(ts); i++ {
		span := ts[i] - ts[i-1]
		n := math.Ceil(span/conf.Step - 1e-9)
		if n < 1 {
			n = 1
		}
		h := span / n
		seg.end, seg.half = ts[i], h/2
		if _, _, err := ode.NewRK4(ts[i-1], h, seg).Solve(); err != nil {
			return nil, divergedf("%s", err)
		}
		if !allFinite(seg.state) {
			return nil, divergedf("non finite state between t=%g and t=%g", ts[i-1], ts[i])
		}
		states[i] = append([]float64(nil), seg.state...)
	}
	return states, nil
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Linspace returns n evenly spaced points from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{start}
	}
	pts := floats.Span(make([]float64, n), start, stop)
	pts[n-1] = stop
	return pts
}

func (c IntegratorConfig) String() string {
	if c.Method == RK4 {
		return fmt.Sprintf("%s(h=%g)", c.Method, c.Step)
	}
	return fmt.Sprintf("%s(abs=%g, rel=%g, evals<=%d)", c.Method, c.AbsError, c.RelError, c.maxEvaluations())
}
