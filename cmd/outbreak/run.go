package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/epidemics/outbreak"
	"github.com/go-kit/kit/log/level"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// defaultCadence is the frame interval of the original animation.
const defaultCadence = 50 * time.Millisecond

type runOptions struct {
	scenario string
	format   string
	animate  time.Duration
	verbose  bool
}

// flagKeys maps the parameter flags to their scenario keys.
var flagKeys = map[string]string{
	"model":             "model.name",
	"population":        "population.size",
	"distancing":        "parameters.distancing",
	"infectious-period": "parameters.infectious_period",
	"incubation-period": "parameters.incubation_period",
	"r0":                "parameters.R0",
	"method":            "integrator.method",
	"step":              "integrator.step",
}

func newRunCmd() *cobra.Command {
	opts := runOptions{}
	def := outbreak.DefaultScenario()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and write its trajectory to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()
			return runSimulation(ctx, cmd, opts)
		},
	}
	flags := cmd.Flags()
	flags.String("model", "", "model to run (SIR or SEIR); prompts when unset")
	flags.Float64("population", def.Params.Population, "population size N")
	flags.Float64("distancing", def.Params.Distancing, "social distancing μ in [0, 0.3]")
	flags.Float64("infectious-period", def.Params.InfectiousPeriod, "infectious period in days, in (0, 10]")
	flags.Float64("incubation-period", def.Params.IncubationPeriod, "incubation period in days, in (0, 10] (SEIR)")
	flags.Float64("r0", def.Params.R0, "basic reproduction number in [1, 10]")
	flags.String("method", def.Integrator.Method.String(), "integration method (dopri or rk4)")
	flags.Float64("step", def.Integrator.Step, "rk4 step in days")
	flags.StringVar(&opts.scenario, "scenario", "", "scenario file (TOML, YAML or JSON)")
	flags.StringVar(&opts.format, "format", "csv", "output format (csv, json, yaml or table)")
	flags.DurationVar(&opts.animate, "animate", 0, fmt.Sprintf("reveal one sample per interval, e.g. %s (csv only)", defaultCadence))
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func runSimulation(ctx context.Context, cmd *cobra.Command, opts runOptions) error {
	logger := outbreak.NewLogger(cmd.ErrOrStderr(), opts.verbose)
	format, err := outbreak.FormatFromString(opts.format)
	if err != nil {
		return err
	}
	if opts.animate > 0 && format != outbreak.CSV {
		return fmt.Errorf("%w: animation only supports csv output", outbreak.ErrInvalidInput)
	}

	v, err := scenarioReader(cmd, opts.scenario)
	if err != nil {
		return err
	}
	if !modelSelected(cmd, v) {
		m, err := promptModel(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		v.Set("model.name", m.String())
	}
	scenario, err := outbreak.ScenarioFromViper(v)
	if err != nil {
		level.Error(logger).Log("subsys", "cli", "err", err)
		return err
	}

	sim, err := outbreak.NewSimulator(scenario.Integrator, logger)
	if err != nil {
		return err
	}
	traj, err := sim.Run(scenario.Model, scenario.Params)
	if err != nil {
		return err
	}
	if opts.animate > 0 {
		return play(ctx, cmd.OutOrStdout(), traj, opts.animate)
	}
	return outbreak.Encode(cmd.OutOrStdout(), traj, format)
}

// scenarioReader returns the scenario reader with the flags bound and the file, if any, read.
func scenarioReader(cmd *cobra.Command, path string) (*viper.Viper, error) {
	v := outbreak.NewScenarioReader()
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, err
		}
	}
	if err := outbreak.ReadScenarioFile(v, path); err != nil {
		return nil, err
	}
	return v, nil
}

func modelSelected(cmd *cobra.Command, v *viper.Viper) bool {
	if cmd.Flags().Changed("model") || v.InConfig("model.name") {
		return true
	}
	_, ok := os.LookupEnv("OUTBREAK_MODEL_NAME")
	return ok
}
