package outbreak

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/floats"
)

// decay is dy/dt = -2y.
type decay struct{}

func (decay) Dim() int { return 1 }

func (decay) Derivative(t float64, s, ds []float64) {
	ds[0] = -2 * s[0]
}

// blowup is dy/dt = y², which has a singularity at t=1/y0.
type blowup struct{}

func (blowup) Dim() int { return 1 }

func (blowup) Derivative(t float64, s, ds []float64) {
	ds[0] = s[0] * s[0]
}

func TestIntegrateDecay(t *testing.T) {
	rk4 := DefaultIntegratorConfig()
	rk4.Method = RK4
	for _, conf := range []struct {
		IntegratorConfig
		tol float64
	}{{DefaultIntegratorConfig(), 1e-7}, {rk4, 1e-7}} {
		ts := Linspace(0, 1, 11)
		states, err := Integrate(decay{}, []float64{1}, ts, conf.IntegratorConfig)
		if err != nil {
			t.Fatalf("%s: %s", conf.IntegratorConfig, err)
		}
		if len(states) != len(ts) {
			t.Fatalf("%s: expected %d states, got %d", conf.IntegratorConfig, len(ts), len(states))
		}
		for i, s := range states {
			if exp := math.Exp(-2 * ts[i]); !floats.EqualWithinAbs(s[0], exp, conf.tol) {
				t.Fatalf("%s: y(%f)=%.12f expected %.12f", conf.IntegratorConfig, ts[i], s[0], exp)
			}
		}
	}
}

func TestIntegrateTwoPoints(t *testing.T) {
	for _, method := range []Method{DormandPrince, RK4} {
		conf := DefaultIntegratorConfig()
		conf.Method = method
		states, err := Integrate(decay{}, []float64{1}, []float64{0, 1}, conf)
		if err != nil {
			t.Fatalf("%s: %s", method, err)
		}
		if len(states) != 2 {
			t.Fatalf("%s: expected 2 states, got %d", method, len(states))
		}
		if states[0][0] != 1 || !floats.EqualWithinAbs(states[1][0], math.Exp(-2), 1e-7) {
			t.Fatalf("%s: incorrect states %v", method, states)
		}
	}
}

func TestIntegrateDoesNotAlias(t *testing.T) {
	y0 := []float64{1}
	states, err := Integrate(decay{}, y0, []float64{0, 0.5, 1}, DefaultIntegratorConfig())
	if err != nil {
		t.Fatal(err)
	}
	states[0][0] = 42
	if y0[0] != 1 {
		t.Fatal("initial state was modified")
	}
}

func TestIntegrateInvalidInput(t *testing.T) {
	conf := DefaultIntegratorConfig()
	sir := newSIRSystem(DefaultParams())
	cases := []struct {
		name string
		sys  System
		y0   []float64
		ts   []float64
		conf IntegratorConfig
	}{
		{"nil system", nil, []float64{1}, []float64{0, 1}, conf},
		{"single point", decay{}, []float64{1}, []float64{0}, conf},
		{"decreasing", decay{}, []float64{1}, []float64{0, 2, 1}, conf},
		{"repeated", decay{}, []float64{1}, []float64{0, 1, 1}, conf},
		{"nan time", decay{}, []float64{1}, []float64{0, math.NaN(), 2}, conf},
		{"dimension", sir, []float64{0.5, 0.5}, []float64{0, 1}, conf},
		{"nan state", decay{}, []float64{math.NaN()}, []float64{0, 1}, conf},
		{"no method", decay{}, []float64{1}, []float64{0, 1}, IntegratorConfig{}},
		{"tolerance", decay{}, []float64{1}, []float64{0, 1}, IntegratorConfig{Method: DormandPrince, RelError: 1e-6}},
		{"rk4 step", decay{}, []float64{1}, []float64{0, 1}, IntegratorConfig{Method: RK4}},
		{"evaluations", decay{}, []float64{1}, []float64{0, 1}, IntegratorConfig{Method: DormandPrince, AbsError: 1e-6, RelError: 1e-6, MaxEvaluations: -1}},
	}
	for _, c := range cases {
		if _, err := Integrate(c.sys, c.y0, c.ts, c.conf); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", c.name, err)
		}
	}
}

func TestIntegrateDivergence(t *testing.T) {
	for _, method := range []Method{DormandPrince, RK4} {
		conf := DefaultIntegratorConfig()
		conf.Method = method
		_, err := Integrate(blowup{}, []float64{1}, []float64{0, 0.5, 2}, conf)
		if !errors.Is(err, ErrIntegrationDivergence) {
			t.Fatalf("%s: expected ErrIntegrationDivergence, got %v", method, err)
		}
	}
}

func TestIntegrateEvaluationBudget(t *testing.T) {
	conf := DefaultIntegratorConfig()
	conf.MaxEvaluations = 50
	ts := Linspace(0, 10, 11)
	if _, err := Integrate(decay{}, []float64{1}, ts, conf); !errors.Is(err, ErrIntegrationDivergence) {
		t.Fatalf("expected ErrIntegrationDivergence, got %v", err)
	}
	conf.MaxEvaluations = 0
	if _, err := Integrate(decay{}, []float64{1}, ts, conf); err != nil {
		t.Fatalf("default budget: %s", err)
	}
}

func TestMethodFromString(t *testing.T) {
	for name, exp := range map[string]Method{"dopri": DormandPrince, "Dormand-Prince": DormandPrince, " RK4 ": RK4} {
		if m, err := MethodFromString(name); err != nil || m != exp {
			t.Fatalf("%q: got %d (%v)", name, m, err)
		}
	}
	if _, err := MethodFromString("lsoda"); !errors.Is(err, ErrInvalidInput) {
		t.Fatal("lsoda should not be supported")
	}
}

func TestLinspace(t *testing.T) {
	pts := Linspace(0, 150, 150)
	if len(pts) != 150 || pts[0] != 0 || pts[149] != 150 {
		t.Fatalf("incorrect end points %f %f", pts[0], pts[len(pts)-1])
	}
	if !floats.EqualWithinAbs(pts[1], 150./149, 1e-12) {
		t.Fatalf("incorrect spacing %f", pts[1])
	}
	if Linspace(0, 1, 0) != nil {
		t.Fatal("expected no points")
	}
	if pts := Linspace(3, 4, 1); len(pts) != 1 || pts[0] != 3 {
		t.Fatalf("incorrect single point %v", pts)
	}
}
