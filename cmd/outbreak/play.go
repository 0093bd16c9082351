package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/epidemics/outbreak"
)

// play reveals the trajectory one sample per tick, as CSV rows, then prints the annotation.
// The trajectory is fully computed beforehand: after frame n the output holds Prefix(n).
func play(ctx context.Context, w io.Writer, traj *outbreak.Trajectory, cadence time.Duration) error {
	if err := outbreak.WriteCSV(w, traj.Model(), nil, true); err != nil {
		return err
	}
	ticker := time.NewTicker(cadence)
	defer ticker.Stop()
	for n := 1; n <= traj.Len(); n++ {
		if err := outbreak.WriteCSV(w, traj.Model(), []outbreak.Sample{traj.At(n - 1)}, false); err != nil {
			return err
		}
		if n == traj.Len() {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	annotation := traj.Rates().Annotation(traj.Model())
	_, err := fmt.Fprintf(w, "# %s\n", strings.ReplaceAll(annotation, "\n", "\n# "))
	return err
}
