package outbreak

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format defines an enum of trajectory encodings.
type Format uint8

const (
	// CSV writes one row per sample with a t,S,(E,)I,R header.
	CSV Format = iota + 1
	// JSON writes the whole trajectory document.
	JSON
	// YAML writes the same document as JSON.
	YAML
	// Table writes aligned columns followed by the rate annotation.
	Table
)

func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case Table:
		return "table"
	}
	panic("cannot stringify unknown format")
}

// FormatFromString returns the format from its name.
func FormatFromString(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "table", "text":
		return Table, nil
	}
	return 0, invalidf("unknown output format `%s`", name)
}

// document is the serialized form of a trajectory.
type document struct {
	Model        string   `json:"model" yaml:"model"`
	Compartments []string `json:"compartments" yaml:"compartments,flow"`
	Params       struct {
		Population       float64 `json:"population" yaml:"population"`
		Distancing       float64 `json:"distancing" yaml:"distancing"`
		InfectiousPeriod float64 `json:"infectious_period" yaml:"infectious_period"`
		IncubationPeriod float64 `json:"incubation_period,omitempty" yaml:"incubation_period,omitempty"`
		R0               float64 `json:"R0" yaml:"R0"`
	} `json:"params" yaml:"params"`
	Rates      Rates    `json:"rates" yaml:"rates"`
	AttackRate float64  `json:"attack_rate" yaml:"attack_rate"`
	Samples    []Sample `json:"samples" yaml:"samples"`
}

func newDocument(t *Trajectory) document {
	doc := document{Model: t.model.String(), Rates: t.rates, AttackRate: t.AttackRate(), Samples: t.Prefix(t.Len())}
	for _, c := range t.model.Compartments() {
		doc.Compartments = append(doc.Compartments, c.Symbol())
	}
	doc.Params.Population = t.params.Population
	doc.Params.Distancing = t.params.Distancing
	doc.Params.InfectiousPeriod = t.params.InfectiousPeriod
	if t.model == SEIR {
		doc.Params.IncubationPeriod = t.params.IncubationPeriod
	}
	doc.Params.R0 = t.params.R0
	return doc
}

// Encode writes the trajectory to w in the requested format.
func Encode(w io.Writer, t *Trajectory, f Format) error {
	switch f {
	case CSV:
		return WriteCSV(w, t.model, t.Prefix(t.Len()), true)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newDocument(t))
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(t)); err != nil {
			return err
		}
		return enc.Close()
	case Table:
		return writeTable(w, t)
	}
	return invalidf("unknown output format %d", f)
}

// CSVHeader returns the header row of the model.
func CSVHeader(m Model) []string {
	header := []string{"t"}
	for _, c := range m.Compartments() {
		header = append(header, c.Symbol())
	}
	return header
}

// WriteCSV writes samples as CSV rows, preceded by the header if requested.
func WriteCSV(w io.Writer, m Model, samples []Sample, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(CSVHeader(m)); err != nil {
			return err
		}
	}
	for _, s := range samples {
		if err := cw.Write(sampleRecord(s)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func sampleRecord(s Sample) []string {
	record := make([]string, 0, len(s.State)+1)
	record = append(record, strconv.FormatFloat(s.T, 'f', -1, 64))
	for _, v := range s.State {
		record = append(record, strconv.FormatFloat(v, 'g', 10, 64))
	}
	return record
}

func writeTable(w io.Writer, t *Trajectory) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(CSVHeader(t.model), "\t")+"\t")
	for i := 0; i < t.Len(); i++ {
		s := t.At(i)
		row := fmt.Sprintf("%.2f", s.T)
		for _, v := range s.State {
			row += fmt.Sprintf("\t%.6f", v)
		}
		fmt.Fprintln(tw, row+"\t")
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\nattack rate = %.4f\n", t.rates.Annotation(t.model), t.AttackRate())
	return err
}
