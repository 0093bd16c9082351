package outbreak

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenarioDefaults(t *testing.T) {
	s, err := LoadScenario("")
	require.NoError(t, err)
	assert.Equal(t, DefaultScenario(), s)
}

func TestLoadScenarioTOML(t *testing.T) {
	path := writeScenario(t, "seir.toml", `
[model]
name = "seir"

[population]
size = 1000

[parameters]
distancing = 0.2
infectious_period = 3.5
incubation_period = 5
R0 = 2.5

[integrator]
method = "rk4"
step = 0.05
`)
	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, SEIR, s.Model)
	assert.Equal(t, Params{Population: 1000, Distancing: 0.2, InfectiousPeriod: 3.5, IncubationPeriod: 5, R0: 2.5}, s.Params)
	assert.Equal(t, RK4, s.Integrator.Method)
	assert.Equal(t, 0.05, s.Integrator.Step)

	traj, err := mustSimulator(t, s).Run(s.Model, s.Params)
	require.NoError(t, err)
	assert.Equal(t, 200, traj.Len())
}

func TestLoadScenarioYAMLPartial(t *testing.T) {
	path := writeScenario(t, "sir.yaml", "parameters:\n  R0: 4\nintegrator:\n  max_evaluations: 100000\n")
	s, err := LoadScenario(path)
	require.NoError(t, err)
	exp := DefaultParams()
	exp.R0 = 4
	assert.Equal(t, SIR, s.Model)
	assert.Equal(t, exp, s.Params)
	assert.Equal(t, 100000, s.Integrator.MaxEvaluations)
	assert.Equal(t, DormandPrince, s.Integrator.Method)
}

func TestLoadScenarioEnvironment(t *testing.T) {
	t.Setenv("OUTBREAK_MODEL_NAME", "SEIR")
	t.Setenv("OUTBREAK_PARAMETERS_DISTANCING", "0.1")
	s, err := LoadScenario("")
	require.NoError(t, err)
	assert.Equal(t, SEIR, s.Model)
	assert.Equal(t, 0.1, s.Params.Distancing)
}

func TestLoadScenarioErrors(t *testing.T) {
	cases := map[string]string{
		"model.toml":      "[model]\nname = \"SIRS\"\n",
		"method.toml":     "[integrator]\nmethod = \"lsoda\"\n",
		"distancing.toml": "[parameters]\ndistancing = 0.5\n",
		"period.toml":     "[parameters]\ninfectious_period = 0\n",
		"tolerance.toml":  "[integrator]\nrel_error = -1\n",
	}
	for name, content := range cases {
		_, err := LoadScenario(writeScenario(t, name, content))
		assert.ErrorIs(t, err, ErrInvalidInput, name)
	}
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func mustSimulator(t *testing.T, s Scenario) *Simulator {
	sim, err := NewSimulator(s.Integrator, nil)
	require.NoError(t, err)
	return sim
}

func TestReadScenarioFile(t *testing.T) {
	v := NewScenarioReader()
	require.NoError(t, ReadScenarioFile(v, ""))
	assert.False(t, v.InConfig("model.name"))

	path := writeScenario(t, "seir.toml", "[model]\nname = \"SEIR\"\n[parameters]\nR0 = 3\n")
	require.NoError(t, ReadScenarioFile(v, path))
	assert.True(t, v.InConfig("model.name"))
	v.Set("parameters.R0", 6)
	s, err := ScenarioFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, SEIR, s.Model)
	assert.Equal(t, 6.0, s.Params.R0)

	assert.ErrorIs(t, ReadScenarioFile(v, filepath.Join(t.TempDir(), "missing.yaml")), ErrInvalidInput)
}
