package outbreak

import (
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// Simulator runs the compartmental models. It only holds immutable configuration and may be
// shared between goroutines.
type Simulator struct {
	conf   IntegratorConfig
	logger kitlog.Logger
}

// NewSimulator returns a simulator integrating with the provided configuration.
// A nil logger discards all logs.
func NewSimulator(conf IntegratorConfig, logger kitlog.Logger) (*Simulator, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Simulator{conf: conf, logger: kitlog.With(logger, "subsys", "sim")}, nil
}

var defaultSimulator = &Simulator{conf: DefaultIntegratorConfig(), logger: kitlog.NewNopLogger()}

// Run runs the selected model with the default simulator.
func Run(m Model, p Params) (*Trajectory, error) {
	return defaultSimulator.Run(m, p)
}

// RunSIR runs the SIR model with the default simulator.
func RunSIR(p Params) (*Trajectory, error) {
	return defaultSimulator.RunSIR(p)
}

// RunSEIR runs the SEIR model with the default simulator.
func RunSEIR(p Params) (*Trajectory, error) {
	return defaultSimulator.RunSEIR(p)
}

// Run dispatches to the engine of the selected model, over that model's default horizon.
func (s *Simulator) Run(m Model, p Params) (*Trajectory, error) {
	if !m.valid() {
		return nil, invalidf("unknown model %d", m)
	}
	return s.Simulate(m, p, m.Horizon())
}

// RunSIR computes the SIR trajectory over 150 days.
func (s *Simulator) RunSIR(p Params) (*Trajectory, error) {
	return s.Simulate(SIR, p, SIR.Horizon())
}

// RunSEIR computes the SEIR trajectory over 201 days.
func (s *Simulator) RunSEIR(p Params) (*Trajectory, error) {
	return s.Simulate(SEIR, p, SEIR.Horizon())
}

// Simulate computes the trajectory of a model over a custom horizon.
func (s *Simulator) Simulate(m Model, p Params, h Horizon) (*Trajectory, error) {
	if !m.valid() {
		return nil, invalidf("unknown model %d", m)
	}
	if err := p.Validate(m); err != nil {
		level.Error(s.logger).Log("model", m, "params", p, "err", err)
		return nil, err
	}
	if err := h.Validate(); err != nil {
		level.Error(s.logger).Log("model", m, "horizon", h, "err", err)
		return nil, err
	}

	var sys System
	var y0 []float64
	switch m {
	case SIR:
		sys, y0 = newSIRSystem(p), sirInitialState(p)
	case SEIR:
		sys, y0 = newSEIRSystem(p), seirInitialState(p)
	}

	level.Debug(s.logger).Log("model", m, "params", p, "horizon", h, "integrator", s.conf)
	start := time.Now()
	ts := h.Times()
	states, err := Integrate(sys, y0, ts, s.conf)
	if err != nil {
		level.Error(s.logger).Log("model", m, "params", p, "err", err)
		return nil, err
	}
	traj := newTrajectory(m, p, ts, states)
	peakT, peakI, _ := traj.Peak(Infected)
	rates := traj.Rates()
	level.Info(s.logger).Log("model", m, "status", "finished", "duration", time.Since(start),
		"alpha", rates.Alpha, "beta", rates.Beta, "gamma", rates.Gamma,
		"peak(d)", peakT, "peak", peakI, "attack", traj.AttackRate(), "conservation", traj.MaxConservationError())
	return traj, nil
}
