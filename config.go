package outbreak

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Scenario is a model selection with its parameters and integrator settings.
type Scenario struct {
	Model      Model
	Params     Params
	Integrator IntegratorConfig
}

// DefaultScenario returns the SIR model with the default parameters.
func DefaultScenario() Scenario {
	return Scenario{Model: SIR, Params: DefaultParams(), Integrator: DefaultIntegratorConfig()}
}

// Validate returns an error if the scenario cannot be run.
func (s Scenario) Validate() error {
	if err := s.Params.Validate(s.Model); err != nil {
		return err
	}
	return s.Integrator.Validate()
}

// NewScenarioReader returns a viper instance with the scenario defaults and the OUTBREAK_
// environment overrides (e.g. OUTBREAK_PARAMETERS_R0).
func NewScenarioReader() *viper.Viper {
	v := viper.New()
	def := DefaultScenario()
	v.SetDefault("model.name", def.Model.String())
	v.SetDefault("population.size", def.Params.Population)
	v.SetDefault("parameters.distancing", def.Params.Distancing)
	v.SetDefault("parameters.infectious_period", def.Params.InfectiousPeriod)
	v.SetDefault("parameters.incubation_period", def.Params.IncubationPeriod)
	v.SetDefault("parameters.R0", def.Params.R0)
	v.SetDefault("integrator.method", def.Integrator.Method.String())
	v.SetDefault("integrator.abs_error", def.Integrator.AbsError)
	v.SetDefault("integrator.rel_error", def.Integrator.RelError)
	v.SetDefault("integrator.max_step", def.Integrator.MaxStep)
	v.SetDefault("integrator.step", def.Integrator.Step)
	v.SetDefault("integrator.max_evaluations", def.Integrator.MaxEvaluations)
	v.SetEnvPrefix("outbreak")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadScenario reads a scenario file (TOML, YAML or JSON, by extension). An empty path only
// applies the defaults and the environment.
func LoadScenario(path string) (Scenario, error) {
	v := NewScenarioReader()
	if err := ReadScenarioFile(v, path); err != nil {
		return Scenario{}, err
	}
	return ScenarioFromViper(v)
}

// ReadScenarioFile merges the scenario file at path, if any, into a reader created by
// NewScenarioReader, typically one with bound flags.
func ReadScenarioFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: reading scenario %s: %s", ErrInvalidInput, path, err)
	}
	return nil
}

// ScenarioFromViper decodes and validates a scenario.
func ScenarioFromViper(v *viper.Viper) (Scenario, error) {
	m, err := ModelFromString(v.GetString("model.name"))
	if err != nil {
		return Scenario{}, err
	}
	method, err := MethodFromString(v.GetString("integrator.method"))
	if err != nil {
		return Scenario{}, err
	}
	s := Scenario{
		Model: m,
		Params: Params{
			Population:       v.GetFloat64("population.size"),
			Distancing:       v.GetFloat64("parameters.distancing"),
			InfectiousPeriod: v.GetFloat64("parameters.infectious_period"),
			IncubationPeriod: v.GetFloat64("parameters.incubation_period"),
			R0:               v.GetFloat64("parameters.R0"),
		},
		Integrator: IntegratorConfig{
			Method:         method,
			AbsError:       v.GetFloat64("integrator.abs_error"),
			RelError:       v.GetFloat64("integrator.rel_error"),
			MaxStep:        v.GetFloat64("integrator.max_step"),
			Step:           v.GetFloat64("integrator.step"),
			MaxEvaluations: v.GetInt("integrator.max_evaluations"),
		},
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}
